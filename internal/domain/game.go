package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MaxPlayers is the hard capacity of a Game.
const MaxPlayers = 10

// DefaultEnrollmentTimeoutSeconds is used when a game is created without an
// explicit enrollment_timeout_seconds.
const DefaultEnrollmentTimeoutSeconds = 300

// Game is identified by UUID and exclusively owns its Players and Deck.
// It is not safe for concurrent use by itself — callers (the service
// registry) are responsible for serializing access via a single lock per
// §4.6 and §9 of the design: Games are never sharded per-instance.
type Game struct {
	ID                       uuid.UUID
	CreatorID                uuid.UUID
	EnrollmentTimeoutSeconds int
	EnrollmentStartTime      time.Time
	EnrollmentClosed         bool
	Players                  map[string]*Player
	PlayerOrder              []string // insertion order, the source of TurnOrder at close
	TurnOrder                []string
	CurrentTurnIndex         int
	Finished                 bool

	deck *Deck
}

// NewGame creates a Game in the Enrolling state, owned by creatorID.
// Per the Open Question in §9, the creator is NOT auto-enrolled — Players
// starts empty.
func NewGame(creatorID uuid.UUID, enrollmentTimeoutSeconds int) *Game {
	if enrollmentTimeoutSeconds <= 0 {
		enrollmentTimeoutSeconds = DefaultEnrollmentTimeoutSeconds
	}
	return &Game{
		ID:                       uuid.New(),
		CreatorID:                creatorID,
		EnrollmentTimeoutSeconds: enrollmentTimeoutSeconds,
		EnrollmentStartTime:      time.Now().UTC(),
		Players:                  make(map[string]*Player),
		PlayerOrder:              []string{},
		deck:                     NewDeck(),
	}
}

// enrollmentDeadline is the wall-clock instant the enrollment window closes.
func (g *Game) enrollmentDeadline() time.Time {
	return g.EnrollmentStartTime.Add(time.Duration(g.EnrollmentTimeoutSeconds) * time.Second)
}

// EnrollmentExpired reports whether the wall clock has passed the
// enrollment deadline, regardless of whether close_enrollment was called.
func (g *Game) EnrollmentExpired() bool {
	return time.Now().After(g.enrollmentDeadline())
}

// CanEnroll reports whether new players may currently join.
func (g *Game) CanEnroll() bool {
	return !g.EnrollmentClosed && !g.EnrollmentExpired()
}

// TimeRemainingSeconds is the non-negative seconds left in the enrollment
// window, used by the GET /games/open listing.
func (g *Game) TimeRemainingSeconds() int {
	remaining := int(time.Until(g.enrollmentDeadline()).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Enroll adds email as a new player. Fails with GameFull at capacity and
// EnrollmentClosed once enrollment has closed or expired. A duplicate email
// is rejected as InvalidPlayerCount — joining twice would make |players|
// count a player once but the map insert silently no-op, breaking the
// "unique emails" invariant if callers assumed a fresh Player was created.
func (g *Game) Enroll(email string) error {
	if !g.CanEnroll() {
		return NewError(KindEnrollmentClosed, "enrollment is closed")
	}
	if _, exists := g.Players[email]; exists {
		return NewError(KindInvalidPlayerCount, "player already enrolled")
	}
	if len(g.Players) >= MaxPlayers {
		return NewError(KindGameFull, "game is full")
	}
	g.Players[email] = NewPlayer(email)
	g.PlayerOrder = append(g.PlayerOrder, email)
	return nil
}

// CanInvite reports whether userID/email may invite a new player into g:
// only the creator or an already-enrolled player may extend an invitation.
func (g *Game) CanInvite(userID uuid.UUID, email string) bool {
	if userID == g.CreatorID {
		return true
	}
	_, enrolled := g.Players[email]
	return enrolled
}

// CloseEnrollment closes enrollment and fixes TurnOrder to insertion order.
// Only the creator may call this.
func (g *Game) CloseEnrollment(userID uuid.UUID) error {
	if userID != g.CreatorID {
		return NewError(KindNotCreator, "only the creator may close enrollment")
	}
	if g.EnrollmentClosed {
		return NewError(KindEnrollmentClosed, "enrollment is already closed")
	}
	g.EnrollmentClosed = true
	g.TurnOrder = append([]string{}, g.PlayerOrder...)
	g.CurrentTurnIndex = 0
	if len(g.TurnOrder) == 0 {
		g.Finished = true
		return nil
	}
	// If the player at index 0 is somehow already terminal (can't happen on
	// a freshly-closed game, but advanceTurn is the single source of truth
	// for "is anyone left to play"), let it resolve the starting position.
	if g.Players[g.TurnOrder[0]].State.Terminal() {
		g.advanceTurn()
	}
	return nil
}

// currentPlayerEmail returns the email at CurrentTurnIndex, or "" if
// TurnOrder is empty.
func (g *Game) currentPlayerEmail() string {
	if len(g.TurnOrder) == 0 {
		return ""
	}
	return g.TurnOrder[g.CurrentTurnIndex]
}

// advanceTurn moves CurrentTurnIndex forward, skipping Standing/Busted
// players, wrapping modulo len(TurnOrder). If no Active player remains, the
// game auto-finishes.
func (g *Game) advanceTurn() {
	n := len(g.TurnOrder)
	if n == 0 {
		g.Finished = true
		return
	}
	for i := 0; i < n; i++ {
		g.CurrentTurnIndex = (g.CurrentTurnIndex + 1) % n
		p := g.Players[g.TurnOrder[g.CurrentTurnIndex]]
		if !p.State.Terminal() {
			return
		}
	}
	g.Finished = true
}

// requireTurn resolves email's Player and validates it is that player's
// turn and that the game is in a state where turn actions are legal.
func (g *Game) requireTurn(email string) (*Player, error) {
	if g.Finished {
		return nil, NewError(KindGameAlreadyFinished, "game has already finished")
	}
	if !g.EnrollmentClosed {
		return nil, NewError(KindEnrollmentNotClosed, "enrollment has not been closed")
	}
	p, ok := g.Players[email]
	if !ok {
		return nil, NewError(KindPlayerNotInGame, "player is not enrolled in this game")
	}
	if g.currentPlayerEmail() != email {
		return nil, NewError(KindNotYourTurn, "it is not this player's turn")
	}
	if p.State != Active {
		return nil, NewError(KindNotYourTurn, "player is not active")
	}
	return p, nil
}

// DrawCard draws one card for email, the current-turn player, appends it to
// their history, recomputes points (which may bust them), and advances the
// turn regardless of outcome.
func (g *Game) DrawCard(email string) (Card, error) {
	p, err := g.requireTurn(email)
	if err != nil {
		return Card{}, err
	}
	card, err := g.deck.Draw()
	if err != nil {
		return Card{}, err
	}
	p.addCard(card)
	g.advanceTurn()
	return card, nil
}

// Stand marks email's player Standing and advances the turn.
func (g *Game) Stand(email string) error {
	p, err := g.requireTurn(email)
	if err != nil {
		return err
	}
	p.State = Standing
	g.advanceTurn()
	return nil
}

// SetAceValue revalues an Ace already in email's history. Per §4.1: the
// card must belong to the player's history and be an Ace, the game must not
// be finished, and the player must not be Busted. No turn restriction
// applies — per §9's Open Question resolution, revaluation is allowed after
// a player has stood, as long as the game has not finished.
func (g *Game) SetAceValue(email string, cardID uuid.UUID, asEleven bool) error {
	if g.Finished {
		return NewError(KindGameAlreadyFinished, "game has already finished")
	}
	p, ok := g.Players[email]
	if !ok {
		return NewError(KindPlayerNotInGame, "player is not enrolled in this game")
	}
	if p.Busted() {
		return NewError(KindInvalidAce, "player has busted")
	}
	return p.setAceValue(cardID, asEleven)
}

// Finish forcibly finishes the game. Only the creator may call this, and
// only after enrollment has closed.
func (g *Game) Finish(userID uuid.UUID) error {
	if userID != g.CreatorID {
		return NewError(KindNotCreator, "only the creator may finish the game")
	}
	if g.Finished {
		return NewError(KindGameAlreadyFinished, "game has already finished")
	}
	if !g.EnrollmentClosed {
		return NewError(KindEnrollmentNotClosed, "enrollment has not been closed")
	}
	g.Finished = true
	return nil
}

// Results describes the outcome of a finished game: the single highest
// non-busted scorer, or a tie list, or (if all busted) no winner and an
// empty tie list.
type Results struct {
	Winner        *string
	TiedPlayers   []string
	HighestScore  int
	AllPlayers    map[string]PlayerResult
}

// PlayerResult is one player's line in the results payload.
type PlayerResult struct {
	Points     int  `json:"points"`
	CardsCount int  `json:"cards_count"`
	Busted     bool `json:"busted"`
}

// ComputeResults returns the final outcome. Requires Finished.
func (g *Game) ComputeResults() (Results, error) {
	if !g.Finished {
		return Results{}, NewError(KindGameNotFinished, "game has not finished")
	}
	all := make(map[string]PlayerResult, len(g.Players))
	highest := -1
	var leaders []string
	for _, email := range g.PlayerOrder {
		p := g.Players[email]
		all[email] = PlayerResult{
			Points:     p.Points,
			CardsCount: len(p.CardsHistory),
			Busted:     p.Busted(),
		}
		if p.Busted() {
			continue
		}
		switch {
		case p.Points > highest:
			highest = p.Points
			leaders = []string{email}
		case p.Points == highest:
			leaders = append(leaders, email)
		}
	}
	res := Results{AllPlayers: all, TiedPlayers: []string{}}
	switch len(leaders) {
	case 0:
		res.HighestScore = 0
	case 1:
		res.Winner = &leaders[0]
		res.HighestScore = highest
	default:
		res.TiedPlayers = leaders
		res.HighestScore = highest
	}
	return res, nil
}

// AvailableCards returns a copy of the cards remaining in the deck.
func (g *Game) AvailableCards() []Card {
	return g.deck.Cards()
}

// RemainingCards is the count of undrawn cards.
func (g *Game) RemainingCards() int {
	return g.deck.Remaining()
}

// gameJSON is the wire shape for Game — needed because the deck field is
// unexported (it carries a non-serializable RNG alongside its cards).
type gameJSON struct {
	ID                       uuid.UUID          `json:"id"`
	CreatorID                uuid.UUID          `json:"creator_id"`
	EnrollmentTimeoutSeconds int                `json:"enrollment_timeout_seconds"`
	EnrollmentStartTime      time.Time          `json:"enrollment_start_time"`
	EnrollmentClosed         bool               `json:"enrollment_closed"`
	Players                  map[string]*Player `json:"players"`
	PlayerOrder              []string           `json:"player_order"`
	TurnOrder                []string           `json:"turn_order"`
	CurrentTurnIndex         int                `json:"current_turn_index"`
	AvailableCards           []Card             `json:"available_cards"`
	Finished                 bool               `json:"finished"`
}

func (g *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameJSON{
		ID:                       g.ID,
		CreatorID:                g.CreatorID,
		EnrollmentTimeoutSeconds: g.EnrollmentTimeoutSeconds,
		EnrollmentStartTime:      g.EnrollmentStartTime,
		EnrollmentClosed:         g.EnrollmentClosed,
		Players:                  g.Players,
		PlayerOrder:              g.PlayerOrder,
		TurnOrder:                g.TurnOrder,
		CurrentTurnIndex:         g.CurrentTurnIndex,
		AvailableCards:           g.deck.Cards(),
		Finished:                 g.Finished,
	})
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var gj gameJSON
	if err := json.Unmarshal(data, &gj); err != nil {
		return err
	}
	g.ID = gj.ID
	g.CreatorID = gj.CreatorID
	g.EnrollmentTimeoutSeconds = gj.EnrollmentTimeoutSeconds
	g.EnrollmentStartTime = gj.EnrollmentStartTime
	g.EnrollmentClosed = gj.EnrollmentClosed
	g.Players = gj.Players
	g.PlayerOrder = gj.PlayerOrder
	g.TurnOrder = gj.TurnOrder
	g.CurrentTurnIndex = gj.CurrentTurnIndex
	g.Finished = gj.Finished
	g.deck = NewDeckFromCards(gj.AvailableCards)
	return nil
}
