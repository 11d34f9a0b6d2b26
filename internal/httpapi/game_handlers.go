package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

// gameIDFrom parses the {id} path parameter, writing a 400 and returning
// (uuid.Nil, false) on failure. On success it also stashes the id into the
// request's fields slot so requestLogger can include it in the access log.
func gameIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid game id")
		return uuid.Nil, false
	}
	setGameID(r.Context(), id)
	return id, true
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	// Body is optional — enrollment_timeout_seconds defaults when omitted.
	_ = decodeJSONOptional(r, &req)

	g := s.games.CreateGame(userIDFrom(r.Context()), req.EnrollmentTimeoutSeconds)
	writeJSON(w, http.StatusCreated, createGameResponse{
		GameID:    g.ID,
		CreatorID: g.CreatorID,
		TurnOrder: g.TurnOrder,
	})
}

func (s *Server) handleListOpenGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.games.ListOpenGames())
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	if err := s.games.Enroll(id, emailFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "enrolled"})
}

func (s *Server) handleCloseEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	turnOrder, err := s.games.CloseEnrollment(id, userIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, closeEnrollmentResponse{TurnOrder: turnOrder})
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	card, err := s.games.Draw(id, emailFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drawResponse{Card: card})
}

func (s *Server) handleStand(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	if err := s.games.Stand(id, emailFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "standing"})
}

func (s *Server) handleSetAce(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	var req setAceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.games.SetAceValue(id, emailFrom(r.Context()), req.CardID, req.AsEleven); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "revalued"})
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	if err := s.games.Finish(id, userIDFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "finished"})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	if err := s.games.RequirePlayerInGame(id, emailFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	var view gameView
	err := s.games.View(id, func(g *domain.Game) error {
		view = toGameView(g)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	if err := s.games.RequirePlayerInGame(id, emailFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.games.Results(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResultsResponse(res))
}
