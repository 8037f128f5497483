package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edureach/internal/bootstrap"
	"github.com/yigit/edureach/internal/devbackend"
	"github.com/yigit/edureach/internal/pkg/logger"
)

func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		os.Exit(1)
	}
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	secret := cfg.DevBackend.JWTSecret
	if secret == "" {
		secret = "edureach-dev-secret"
		lgr.Warn().Msg("DEVBACKEND_JWT_SECRET not set, using the built-in development secret")
	}

	srv, err := devbackend.New(devbackend.Options{
		JWTSecret:   secret,
		TokenTTL:    cfg.DevBackendTokenTTL(),
		StoragePath: cfg.DevBackend.StoragePath,
		SeedDemo:    cfg.DevBackend.SeedDemo,
		Logger:      lgr.With().Str("component", "devbackend").Logger(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize dev backend")
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.DevBackend.Port,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		lgr.Info().Str("addr", httpServer.Addr).Msg("Dev backend listening")
		serverErrors <- httpServer.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Dev backend failed")
			os.Exit(1)
		}
	case sig := <-osSignals:
		lgr.Info().Str("signal", sig.String()).Msg("Received OS signal, shutting down dev backend...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Dev backend shutdown error")
		os.Exit(1)
	}
}
