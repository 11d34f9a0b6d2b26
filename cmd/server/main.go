package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/swarm-blackjack/tablehouse/internal/auth"
	"github.com/swarm-blackjack/tablehouse/internal/config"
	"github.com/swarm-blackjack/tablehouse/internal/httpapi"
	"github.com/swarm-blackjack/tablehouse/internal/logging"
	"github.com/swarm-blackjack/tablehouse/internal/service"
)

const invitationSweepInterval = 30 * time.Second

func main() {
	logger := logging.New()

	configPath := os.Getenv("BJACK_CONFIG_FILE")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	games := service.NewGameRegistry()
	users := service.NewUserRegistry()
	invitations := service.NewInvitationRegistry()

	gameSvc := service.NewGameService(games)
	userSvc := service.NewUserService(users, auth.NewArgon2Hasher())
	invitationSvc := service.NewInvitationService(invitations, games)

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL())
	limiter := auth.NewRateLimiter(cfg.RateLimit.RequestsPerMinute)

	srv := httpapi.NewServer(cfg, httpapi.Deps{
		Games:       gameSvc,
		Users:       userSvc,
		Invitations: invitationSvc,
		Tokens:      tokens,
		Limiter:     limiter,
		Logger:      logger,
	})

	stopSweep := make(chan struct{})
	go sweepExpiredInvitations(invitationSvc, stopSweep)
	defer close(stopSweep)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("starting server")

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

// sweepExpiredInvitations is the optional periodic background sweep
// mentioned in §2: it keeps the invitation registry from accumulating
// stale Pending entries between lazy get_pending_for sweeps.
func sweepExpiredInvitations(invitations *service.InvitationService, stop <-chan struct{}) {
	ticker := time.NewTicker(invitationSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			invitations.CleanupExpired()
		case <-stop:
			return
		}
	}
}
