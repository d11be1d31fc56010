package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/api"
	"github.com/inkpost/blog-api/internal/auth"
	"github.com/inkpost/blog-api/internal/infrastructure/config"
	"github.com/inkpost/blog-api/internal/infrastructure/db/postgres"
	redisdb "github.com/inkpost/blog-api/internal/infrastructure/db/redis"
	"github.com/inkpost/blog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// newFallbackLogger builds the bare logger used before configuration is
// loaded. Callers must bind the result to a variable; Fatal and friends
// take a pointer receiver.
func newFallbackLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func main() {
	ctx := context.Background()

	// Configuration is a startup precondition: a missing secret or DSN must
	// kill the process before it serves a single request.
	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := newFallbackLogger(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, auth.SessionTTL)
	e := api.NewRouter(db, rdb, issuer, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
