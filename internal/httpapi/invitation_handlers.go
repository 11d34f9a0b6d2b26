package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func invitationIDFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "invalid invitation id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFrom(w, r)
	if !ok {
		return
	}
	var req createInvitationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inv, err := s.invitations.Create(gameID, userIDFrom(r.Context()), emailFrom(r.Context()), req.InviteeEmail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInvitationResponse(inv))
}

func (s *Server) handlePendingInvitations(w http.ResponseWriter, r *http.Request) {
	pending := s.invitations.PendingFor(emailFrom(r.Context()))
	out := make([]invitationResponse, 0, len(pending))
	for _, inv := range pending {
		out = append(out, toInvitationResponse(inv))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := invitationIDFrom(w, r)
	if !ok {
		return
	}
	if err := s.invitations.Accept(id, emailFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *Server) handleDeclineInvitation(w http.ResponseWriter, r *http.Request) {
	id, ok := invitationIDFrom(w, r)
	if !ok {
		return
	}
	if err := s.invitations.Decline(id, emailFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "declined"})
}
