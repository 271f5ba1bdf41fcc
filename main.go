package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"country-explorer/internal/config"
	"country-explorer/internal/db"
	"country-explorer/internal/logger"
	"country-explorer/internal/router"
	"country-explorer/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	// A missing signing secret is a deployment error; refuse to start.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logr, closeLog, err := logger.InitLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closeLog()
	logr.Info().Msg("User service starting")

	tokens, err := services.NewTokenIssuer(cfg.JWTSecret, services.TokenTTL)
	if err != nil {
		logr.Fatal().Err(err).Msg("Token issuer configuration error")
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := db.Open(connectCtx, cfg.DBUrl, logr)
	cancelConnect()
	if err != nil {
		logr.Fatal().Err(err).Msg("Database connection error")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			logr.Error().Err(err).Msg("Closing database failed")
		}
	}()

	userService, err := services.NewUserService(store, tokens, cfg.BcryptCost, logr)
	if err != nil {
		logr.Fatal().Err(err).Msg("User service setup failed")
	}

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.SetupRouter(router.Deps{
			Config:      cfg,
			UserService: userService,
			Tokens:      tokens,
			Logger:      logr,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info().Msgf("User service running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logr.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logr.Info().Msg("Server stopped")
}
