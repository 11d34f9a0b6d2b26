// Package httpapi maps the versioned REST surface (§6) onto the service
// layer: every route except health and register/login passes through the
// authenticate and rateLimit middleware, and each handler calls the service
// layer and translates the result (or domain error) into JSON.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/swarm-blackjack/tablehouse/internal/auth"
	"github.com/swarm-blackjack/tablehouse/internal/config"
	"github.com/swarm-blackjack/tablehouse/internal/service"
)

// Server holds every dependency the HTTP layer needs, injected at startup
// per §9's "inject, don't reach into globals" guidance.
type Server struct {
	games       *service.GameService
	users       *service.UserService
	invitations *service.InvitationService

	tokens  *auth.TokenIssuer
	limiter *auth.RateLimiter
	logger  zerolog.Logger

	corsOrigins []string
	sunsetDate  string
}

// Deps bundles the services and auth components a Server is built from.
type Deps struct {
	Games       *service.GameService
	Users       *service.UserService
	Invitations *service.InvitationService
	Tokens      *auth.TokenIssuer
	Limiter     *auth.RateLimiter
	Logger      zerolog.Logger
}

func NewServer(cfg config.Config, d Deps) *Server {
	sunset := time.Now().AddDate(0, cfg.API.VersionDeprecationMonths, 0).UTC().Format(time.RFC3339)
	return &Server{
		games:       d.Games,
		users:       d.Users,
		invitations: d.Invitations,
		tokens:      d.Tokens,
		limiter:     d.Limiter,
		logger:      d.Logger,
		corsOrigins: cfg.CORS.AllowedOrigins,
		sunsetDate:  sunset,
	}
}

// Router assembles the full chi.Router: health checks unauthenticated at
// the root, everything else versioned under /api/v1.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.cors)

	r.Get("/health", s.handleHealth)
	r.Get("/health/ready", s.handleHealthReady)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(s.sunsetHeaders)

		v1.Post("/auth/register", s.handleRegister)
		v1.Post("/auth/login", s.handleLogin)

		v1.Group(func(protected chi.Router) {
			protected.Use(s.authenticate)
			protected.Use(s.rateLimit)

			protected.Post("/games", s.handleCreateGame)
			protected.Get("/games/open", s.handleListOpenGames)
			protected.Post("/games/{id}/enroll", s.handleEnroll)
			protected.Post("/games/{id}/close-enrollment", s.handleCloseEnrollment)
			protected.Post("/games/{id}/invitations", s.handleCreateInvitation)
			protected.Get("/invitations/pending", s.handlePendingInvitations)
			protected.Post("/invitations/{id}/accept", s.handleAcceptInvitation)
			protected.Post("/invitations/{id}/decline", s.handleDeclineInvitation)
			protected.Post("/games/{id}/draw", s.handleDraw)
			protected.Post("/games/{id}/stand", s.handleStand)
			protected.Put("/games/{id}/ace", s.handleSetAce)
			protected.Post("/games/{id}/finish", s.handleFinish)
			protected.Get("/games/{id}", s.handleGetGame)
			protected.Get("/games/{id}/results", s.handleResults)
		})
	})

	return r
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
