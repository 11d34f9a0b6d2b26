package domain

import (
	"errors"
	"fmt"
)

// Kind is the closed taxonomy of domain errors. Each Kind maps to exactly
// one HTTP status and one machine-readable error code at the HTTP boundary.
type Kind string

const (
	KindUnauthorized         Kind = "UNAUTHORIZED"
	KindRateLimitExceeded    Kind = "RATE_LIMIT_EXCEEDED"
	KindGameNotFound         Kind = "GAME_NOT_FOUND"
	KindPlayerNotInGame      Kind = "PLAYER_NOT_IN_GAME"
	KindInvalidPlayerCount   Kind = "INVALID_PLAYER_COUNT"
	KindGameFull             Kind = "GAME_FULL"
	KindEnrollmentClosed     Kind = "ENROLLMENT_CLOSED"
	KindEnrollmentNotClosed  Kind = "ENROLLMENT_NOT_CLOSED"
	KindNotYourTurn          Kind = "NOT_YOUR_TURN"
	KindDeckEmpty            Kind = "DECK_EMPTY"
	KindGameAlreadyFinished  Kind = "GAME_ALREADY_FINISHED"
	KindGameNotFinished      Kind = "GAME_NOT_FINISHED"
	KindNotCreator           Kind = "NOT_CREATOR"
	KindInvitationNotFound   Kind = "INVITATION_NOT_FOUND"
	KindInvitationExpired    Kind = "INVITATION_EXPIRED"
	KindInvitationNotPending Kind = "INVITATION_NOT_PENDING"
	KindWeakPassword         Kind = "WEAK_PASSWORD"
	KindInvalidCredentials   Kind = "INVALID_CREDENTIALS"
	KindUserAlreadyExists    Kind = "USER_ALREADY_EXISTS"
	KindInvalidAce           Kind = "INVALID_ACE"
	KindInternal             Kind = "INTERNAL"
)

// Error is the domain-level error type. It always carries a Kind so the
// HTTP layer can map it to a status code without inspecting message text.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds a domain error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a domain error of the given kind wrapping a lower-level cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err, defaulting to KindInternal when err is
// not a *Error — that path indicates an invariant violation the spec says
// "cannot happen" and is the only class of fault that surfaces as 5xx.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
