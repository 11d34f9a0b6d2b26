package httpapi

import (
	"net/http"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

const minPasswordLength = 8

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, domain.NewError(domain.KindWeakPassword, "password is too short"))
		return
	}

	u, err := s.users.Register(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    u.ID,
		"email": u.Email,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		writeError(w, domain.Wrap(domain.KindInternal, "failed to issue token", err))
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		UserID:    u.ID,
		ExpiresIn: int(s.tokens.TTLSeconds()),
	})
}
