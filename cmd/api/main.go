package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/playforge/casino-api/internal/api"
	"github.com/playforge/casino-api/internal/games"
	"github.com/playforge/casino-api/internal/infra/logging"
	"github.com/playforge/casino-api/internal/infra/pgutils"
	"github.com/playforge/casino-api/internal/infra/redisutils"
	sessionsredis "github.com/playforge/casino-api/internal/repos/sessions/redis"
	"github.com/playforge/casino-api/internal/services/auth"
	"github.com/playforge/casino-api/internal/services/wager"
	"github.com/playforge/casino-api/pkg/envconf"
	"github.com/playforge/casino-api/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// Best-effort: a local .env is a dev convenience, not a requirement.
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON("casino-api", cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Close postgres pool")

		return db.Close()
	})

	redisClient, err := redisutils.Open(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("open redis: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Close redis client")

		return redisClient.Close()
	})

	sessionStore := sessionsredis.New(redisClient, sessionsredis.WithTTL(cfg.Redis.SessionTTL))

	wagerSrv := wager.New(db, sessionStore, games.SystemRand())
	authSrv := auth.NewJWT(cfg.Auth)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, wagerSrv, authSrv)

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
