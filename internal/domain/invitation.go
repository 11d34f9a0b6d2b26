package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus is a tagged-variant enum. Transitions are monotonic:
// Pending → {Accepted, Declined, Expired}; terminal states are final.
type InvitationStatus string

const (
	Pending  InvitationStatus = "Pending"
	Accepted InvitationStatus = "Accepted"
	Declined InvitationStatus = "Declined"
	Expired  InvitationStatus = "Expired"
)

// Invitation is a standalone record of an invite to enroll in a Game.
type Invitation struct {
	ID           uuid.UUID        `json:"id"`
	GameID       uuid.UUID        `json:"game_id"`
	InviterID    uuid.UUID        `json:"inviter_id"`
	InviteeEmail string           `json:"invitee_email"`
	Status       InvitationStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	ExpiresAt    time.Time        `json:"expires_at"`
}

// NewInvitation creates a Pending invitation expiring at expiresAt (the
// inviting Game's enrollment deadline). Per §9's Open Question resolution,
// re-inviting the same email to the same game is not deduplicated — it
// always succeeds with a fresh id.
func NewInvitation(gameID, inviterID uuid.UUID, inviteeEmail string, expiresAt time.Time) *Invitation {
	return &Invitation{
		ID:           uuid.New(),
		GameID:       gameID,
		InviterID:    inviterID,
		InviteeEmail: inviteeEmail,
		Status:       Pending,
		CreatedAt:    time.Now().UTC(),
		ExpiresAt:    expiresAt,
	}
}

// ExpiredNow reports whether wall-clock time has passed ExpiresAt. This is
// independent of Status — callers decide whether/when to apply the
// resulting Expired transition (lazy sweep).
func (inv *Invitation) ExpiredNow() bool {
	return time.Now().After(inv.ExpiresAt)
}

// sweepExpiry transitions a Pending invitation whose deadline has passed to
// Expired. No-op for already-terminal invitations.
func (inv *Invitation) sweepExpiry() {
	if inv.Status == Pending && inv.ExpiredNow() {
		inv.Status = Expired
	}
}

// SweepExpiry is the exported form of sweepExpiry, used by the registry's
// lazy and bulk expiry sweeps (§4.3's get_pending_for / cleanup_expired).
func (inv *Invitation) SweepExpiry() {
	inv.sweepExpiry()
}

// CheckAcceptable validates (and, via the lazy expiry sweep, may mutate
// Status to Expired) without marking the invitation Accepted. The service
// layer calls this before attempting the corresponding Game enrollment, so
// that a failed enrollment (full/closed) leaves the invitation Pending
// rather than Accepted.
func (inv *Invitation) CheckAcceptable(accepterEmail string) error {
	inv.sweepExpiry()
	if inv.Status != Pending {
		if inv.Status == Expired {
			return NewError(KindInvitationExpired, "invitation has expired")
		}
		return NewError(KindInvitationNotPending, "invitation is not pending")
	}
	if inv.InviteeEmail != accepterEmail {
		return NewError(KindPlayerNotInGame, "invitation is not addressed to this user")
	}
	return nil
}

// MarkAccepted sets Status to Accepted. Callers must have already validated
// with CheckAcceptable and performed the matching Game enrollment.
func (inv *Invitation) MarkAccepted() {
	inv.Status = Accepted
}

// Accept is CheckAcceptable immediately followed by MarkAccepted, for
// callers that have no associated Game enrollment to perform (e.g. tests).
func (inv *Invitation) Accept(accepterEmail string) error {
	if err := inv.CheckAcceptable(accepterEmail); err != nil {
		return err
	}
	inv.MarkAccepted()
	return nil
}

// Decline transitions a Pending invitation addressed to declinerEmail to
// Declined.
func (inv *Invitation) Decline(declinerEmail string) error {
	inv.sweepExpiry()
	if inv.Status != Pending {
		return NewError(KindInvitationNotPending, "invitation is not pending")
	}
	if inv.InviteeEmail != declinerEmail {
		return NewError(KindPlayerNotInGame, "invitation is not addressed to this user")
	}
	inv.Status = Declined
	return nil
}
