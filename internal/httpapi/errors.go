package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

// errorEnvelope is the uniform JSON shape for every non-2xx response.
type errorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Status  int               `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

// statusForKind maps each closed-taxonomy Kind to exactly one HTTP status.
// KindInternal is the only kind that surfaces as 5xx.
func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindUnauthorized, domain.KindInvalidCredentials:
		return http.StatusUnauthorized
	case domain.KindRateLimitExceeded:
		return http.StatusTooManyRequests
	case domain.KindGameNotFound, domain.KindInvitationNotFound:
		return http.StatusNotFound
	case domain.KindPlayerNotInGame, domain.KindNotCreator:
		return http.StatusForbidden
	case domain.KindInvalidPlayerCount, domain.KindWeakPassword, domain.KindInvalidAce:
		return http.StatusBadRequest
	case domain.KindInvitationExpired:
		return http.StatusGone
	case domain.KindGameFull, domain.KindEnrollmentClosed, domain.KindEnrollmentNotClosed,
		domain.KindNotYourTurn, domain.KindDeckEmpty, domain.KindGameAlreadyFinished,
		domain.KindGameNotFinished, domain.KindInvitationNotPending, domain.KindUserAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError translates err into the uniform envelope and writes it. When
// err is not a *domain.Error it is treated as an unexpected invariant
// violation: it is answered with a 500, which requestLogger logs at error
// level, and its message is never leaked to the client.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	var details map[string]string
	if kind == domain.KindInternal {
		message = "an unexpected error occurred"
	}
	if kind == domain.KindWeakPassword {
		details = map[string]string{"requirements": "password must be at least 8 characters"}
	}

	writeJSON(w, status, errorEnvelope{
		Message: message,
		Code:    string(kind),
		Status:  status,
		Details: details,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeBadRequest reports a malformed request body or path parameter. This
// sits outside the closed domain Kind taxonomy — it is a transport-level
// concern, never something a service method returns.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{
		Message: message,
		Code:    "BAD_REQUEST",
		Status:  http.StatusBadRequest,
	})
}

// decodeJSON decodes the request body into v, writing a 400 and returning
// false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil {
		writeBadRequest(w, "request body is required")
		return false
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "malformed request body")
		return false
	}
	return true
}

// decodeJSONOptional decodes the request body into v when one is present,
// silently leaving v at its zero value for an empty body (used by endpoints
// whose request body is entirely optional, like game creation).
func decodeJSONOptional(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err.Error() != "EOF" {
		return err
	}
	return nil
}
