package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"wedding-site/internal/auth"
	"wedding-site/internal/config"
	"wedding-site/internal/handler"
	"wedding-site/internal/storage"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.LoadConfig()

	store, err := storage.NewStorage(cfg.GuestsFile,
		log.With().Str("component", "storage").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	gate, err := auth.NewGate(auth.Config{
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		TokenSecret:  cfg.TokenSecret,
		TokenTTL:     cfg.TokenTTL,
	}, log.With().Str("component", "auth").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize admin gate")
	}

	h := handler.New(store, gate, cfg,
		log.With().Str("component", "http").Logger())

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: h.Router(),
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("wedding site listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
