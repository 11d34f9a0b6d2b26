package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

// InvitationService composes InvitationRegistry and GameRegistry
// operations. Per §4.6, any operation spanning both acquires the
// invitations lock before the games lock.
type InvitationService struct {
	invitations *InvitationRegistry
	games       *GameRegistry
}

func NewInvitationService(invitations *InvitationRegistry, games *GameRegistry) *InvitationService {
	return &InvitationService{invitations: invitations, games: games}
}

// Create invites inviteeEmail to gameID on behalf of inviterID/inviterEmail,
// allowed only for the game's creator or an already-enrolled player, and
// only while the game is still Enrolling. Per §9, re-inviting the same
// email to the same game is not deduplicated — it always succeeds with a
// fresh id.
func (s *InvitationService) Create(gameID, inviterID uuid.UUID, inviterEmail, inviteeEmail string) (*domain.Invitation, error) {
	var inv *domain.Invitation
	err := s.games.WithGame(gameID, func(g *domain.Game) error {
		if !g.CanInvite(inviterID, inviterEmail) {
			return domain.NewError(domain.KindPlayerNotInGame, "caller is neither the creator nor enrolled in this game")
		}
		if !g.CanEnroll() {
			return domain.NewError(domain.KindEnrollmentClosed, "enrollment is closed")
		}
		expiresAt := g.EnrollmentStartTime.Add(time.Duration(g.EnrollmentTimeoutSeconds) * time.Second)
		inv = domain.NewInvitation(gameID, inviterID, inviteeEmail, expiresAt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invitations.Put(inv)
	return inv, nil
}

// Accept validates and accepts invitation id on behalf of accepterEmail,
// atomically enrolling them into the invited game. If the game is full or
// enrollment has closed, the enroll error is returned and the invitation
// is left Pending. Lock order: invitations (via WithInvitation) then games
// (via the nested WithGame) — invitations before games, per §4.6.
func (s *InvitationService) Accept(id uuid.UUID, accepterEmail string) error {
	return s.invitations.WithInvitation(id, func(inv *domain.Invitation) error {
		if err := inv.CheckAcceptable(accepterEmail); err != nil {
			return err
		}
		return s.games.WithGame(inv.GameID, func(g *domain.Game) error {
			if err := g.Enroll(accepterEmail); err != nil {
				return err
			}
			inv.MarkAccepted()
			return nil
		})
	})
}

// Decline declines invitation id on behalf of declinerEmail.
func (s *InvitationService) Decline(id uuid.UUID, declinerEmail string) error {
	return s.invitations.WithInvitation(id, func(inv *domain.Invitation) error {
		return inv.Decline(declinerEmail)
	})
}

// PendingFor returns email's pending, non-expired invitations.
func (s *InvitationService) PendingFor(email string) []*domain.Invitation {
	return s.invitations.PendingFor(email)
}

// CleanupExpired bulk-sweeps expired invitations; intended for a periodic
// background caller (see cmd/server's optional sweep goroutine).
func (s *InvitationService) CleanupExpired() int {
	return s.invitations.CleanupExpired()
}
