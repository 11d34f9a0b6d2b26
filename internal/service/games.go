package service

import (
	"github.com/google/uuid"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

// GameService composes GameRegistry operations into the actions the HTTP
// layer needs, each one a single lock/resolve/mutate/unlock cycle.
type GameService struct {
	games *GameRegistry
}

func NewGameService(games *GameRegistry) *GameService {
	return &GameService{games: games}
}

// OpenGameSummary is one row of GET /games/open.
type OpenGameSummary struct {
	GameID                   uuid.UUID `json:"game_id"`
	CreatorID                uuid.UUID `json:"creator_id"`
	EnrolledCount            int       `json:"enrolled_count"`
	MaxPlayers               int       `json:"max_players"`
	EnrollmentTimeoutSeconds int       `json:"enrollment_timeout_seconds"`
	TimeRemainingSeconds     int       `json:"time_remaining_seconds"`
}

// CreateGame creates and registers a new game owned by creatorID.
func (s *GameService) CreateGame(creatorID uuid.UUID, enrollmentTimeoutSeconds int) *domain.Game {
	g := domain.NewGame(creatorID, enrollmentTimeoutSeconds)
	s.games.Put(g)
	return g
}

// ListOpenGames returns a summary of every game still accepting enrollment.
func (s *GameService) ListOpenGames() []OpenGameSummary {
	open := s.games.ListOpen()
	out := make([]OpenGameSummary, 0, len(open))
	for _, g := range open {
		out = append(out, OpenGameSummary{
			GameID:                   g.ID,
			CreatorID:                g.CreatorID,
			EnrolledCount:            len(g.Players),
			MaxPlayers:               domain.MaxPlayers,
			EnrollmentTimeoutSeconds: g.EnrollmentTimeoutSeconds,
			TimeRemainingSeconds:     g.TimeRemainingSeconds(),
		})
	}
	return out
}

// Enroll enrolls email into game id.
func (s *GameService) Enroll(id uuid.UUID, email string) error {
	return s.games.WithGame(id, func(g *domain.Game) error {
		return g.Enroll(email)
	})
}

// CloseEnrollment closes enrollment on game id, returning the finalized
// turn order.
func (s *GameService) CloseEnrollment(id uuid.UUID, userID uuid.UUID) ([]string, error) {
	var turnOrder []string
	err := s.games.WithGame(id, func(g *domain.Game) error {
		if err := g.CloseEnrollment(userID); err != nil {
			return err
		}
		turnOrder = append([]string{}, g.TurnOrder...)
		return nil
	})
	return turnOrder, err
}

// RequirePlayerInGame fails with PlayerNotInGame unless email is enrolled
// in game id. Used by handlers that need membership checked before acting.
func (s *GameService) RequirePlayerInGame(id uuid.UUID, email string) error {
	return s.games.WithGame(id, func(g *domain.Game) error {
		if _, ok := g.Players[email]; !ok {
			return domain.NewError(domain.KindPlayerNotInGame, "caller is not a player in this game")
		}
		return nil
	})
}

// Draw draws one card for email in game id.
func (s *GameService) Draw(id uuid.UUID, email string) (domain.Card, error) {
	var card domain.Card
	err := s.games.WithGame(id, func(g *domain.Game) error {
		c, err := g.DrawCard(email)
		if err != nil {
			return err
		}
		card = c
		return nil
	})
	return card, err
}

// Stand stands email in game id.
func (s *GameService) Stand(id uuid.UUID, email string) error {
	return s.games.WithGame(id, func(g *domain.Game) error {
		return g.Stand(email)
	})
}

// SetAceValue revalues an Ace for email in game id.
func (s *GameService) SetAceValue(id uuid.UUID, email string, cardID uuid.UUID, asEleven bool) error {
	return s.games.WithGame(id, func(g *domain.Game) error {
		return g.SetAceValue(email, cardID, asEleven)
	})
}

// Finish forces game id to finish, per userID's creator privilege.
func (s *GameService) Finish(id uuid.UUID, userID uuid.UUID) error {
	return s.games.WithGame(id, func(g *domain.Game) error {
		return g.Finish(userID)
	})
}

// View runs fn with read access to game id while the registry lock is held.
func (s *GameService) View(id uuid.UUID, fn func(*domain.Game) error) error {
	return s.games.View(id, fn)
}

// Results computes the final outcome of game id.
func (s *GameService) Results(id uuid.UUID) (domain.Results, error) {
	var res domain.Results
	err := s.games.WithGame(id, func(g *domain.Game) error {
		r, err := g.ComputeResults()
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	return res, err
}

// Enrolled reports whether email is currently enrolled in game id, without
// surfacing GameNotFound as a fatal condition to the caller (it is folded
// into "false").
func (s *GameService) Enrolled(id uuid.UUID, email string) bool {
	enrolled := false
	_ = s.games.WithGame(id, func(g *domain.Game) error {
		_, enrolled = g.Players[email]
		return nil
	})
	return enrolled
}
