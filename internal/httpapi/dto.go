package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresIn int       `json:"expires_in"`
}

type createGameRequest struct {
	EnrollmentTimeoutSeconds int `json:"enrollment_timeout_seconds"`
}

type createGameResponse struct {
	GameID    uuid.UUID `json:"game_id"`
	CreatorID uuid.UUID `json:"creator_id"`
	TurnOrder []string  `json:"turn_order"`
}

type closeEnrollmentResponse struct {
	TurnOrder []string `json:"turn_order"`
}

type createInvitationRequest struct {
	InviteeEmail string `json:"invitee_email"`
}

type invitationResponse struct {
	ID           uuid.UUID `json:"id"`
	GameID       uuid.UUID `json:"game_id"`
	InviterID    uuid.UUID `json:"inviter_id"`
	InviteeEmail string    `json:"invitee_email"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func toInvitationResponse(inv *domain.Invitation) invitationResponse {
	return invitationResponse{
		ID:           inv.ID,
		GameID:       inv.GameID,
		InviterID:    inv.InviterID,
		InviteeEmail: inv.InviteeEmail,
		Status:       string(inv.Status),
		CreatedAt:    inv.CreatedAt,
		ExpiresAt:    inv.ExpiresAt,
	}
}

type setAceRequest struct {
	CardID   uuid.UUID `json:"card_id"`
	AsEleven bool      `json:"as_eleven"`
}

type drawResponse struct {
	Card domain.Card `json:"card"`
}

type gameView struct {
	ID               uuid.UUID             `json:"id"`
	CreatorID        uuid.UUID             `json:"creator_id"`
	EnrollmentClosed bool                  `json:"enrollment_closed"`
	Players          map[string]playerView `json:"players"`
	TurnOrder        []string              `json:"turn_order"`
	CurrentTurnIndex int                   `json:"current_turn_index"`
	Finished         bool                  `json:"finished"`
}

type playerView struct {
	Email        string        `json:"email"`
	CardsHistory []domain.Card `json:"cards_history"`
	Points       int           `json:"points"`
	State        string        `json:"state"`
}

func toGameView(g *domain.Game) gameView {
	players := make(map[string]playerView, len(g.Players))
	for email, p := range g.Players {
		players[email] = playerView{
			Email:        p.Email,
			CardsHistory: p.CardsHistory,
			Points:       p.Points,
			State:        string(p.State),
		}
	}
	return gameView{
		ID:               g.ID,
		CreatorID:        g.CreatorID,
		EnrollmentClosed: g.EnrollmentClosed,
		Players:          players,
		TurnOrder:        g.TurnOrder,
		CurrentTurnIndex: g.CurrentTurnIndex,
		Finished:         g.Finished,
	}
}

type resultsResponse struct {
	Winner       *string                        `json:"winner"`
	TiedPlayers  []string                       `json:"tied_players"`
	HighestScore int                            `json:"highest_score"`
	AllPlayers   map[string]domain.PlayerResult `json:"all_players"`
}

func toResultsResponse(r domain.Results) resultsResponse {
	return resultsResponse{
		Winner:       r.Winner,
		TiedPlayers:  r.TiedPlayers,
		HighestScore: r.HighestScore,
		AllPlayers:   r.AllPlayers,
	}
}
