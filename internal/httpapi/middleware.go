package httpapi

import (
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

// requestLogger emits one structured log line per request, at debug for 2xx
// through 4xx and at error for 5xx, per §7's propagation policy. It installs the
// request-scoped fields slot before calling next, so user_id and game_id —
// resolved by authenticate and gameIDFrom further down the chain — are
// both known by the time this reads them back.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(withRequestFields(r.Context()))
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		evt := s.logger.Debug()
		if ww.Status() >= 500 {
			evt = s.logger.Error()
		}
		evt = evt.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("user_id", userIDFrom(r.Context()).String())
		if gameID := gameIDFromContext(r.Context()); gameID != uuid.Nil {
			evt = evt.Str("game_id", gameID.String())
		}
		evt.Msg("request")
	})
}

// authenticate requires a valid bearer token, rejecting anything else with
// 401 UNAUTHORIZED — missing header, malformed token, bad signature, and
// expiry are all folded into the same response (§4.4).
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			writeError(w, domain.NewError(domain.KindUnauthorized, "missing bearer token"))
			return
		}

		claims, err := s.tokens.Verify(tokenString)
		if err != nil {
			writeError(w, err)
			return
		}

		setIdentity(r.Context(), claims.UserID, claims.Email)
		next.ServeHTTP(w, r)
	})
}

// rateLimit enforces the per-identity sliding-window cap (§4.4). It runs
// after authenticate, so the identity is the authenticated user id.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := userIDFrom(r.Context()).String()
		if !s.limiter.Allow(identity) {
			writeError(w, domain.NewError(domain.KindRateLimitExceeded, "too many requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sunsetHeaders stamps every /api/v1 response with the deprecation headers
// described in §6, computed from the configured deprecation horizon.
func (s *Server) sunsetHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Deprecated", "false")
		w.Header().Set("X-API-Sunset-Date", s.sunsetDate)
		next.ServeHTTP(w, r)
	})
}
