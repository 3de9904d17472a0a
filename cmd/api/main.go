package main

//go:generate swag init -d ../.. -g cmd/api/main.go -o ../../internal/docs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-qr-tags/internal/config"
	"pet-qr-tags/internal/platform/credentials"
	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/router"
)

// @title Pet QR Tags API
// @version 1.3.0
// @description Etiquetas QR para mascotas: login con código y PIN, registro, modo perdido y vista pública para quien la encuentra.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx := context.Background()
	backends, cleanup, err := router.Open(ctx, cfg, log)
	if err != nil {
		log.Error("backend setup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer cleanup()

	tokens, err := router.Tokens(cfg)
	if err != nil {
		log.Error("auth setup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	r := router.NewRouter(router.Options{
		Backends:       backends,
		Tokens:         tokens,
		Log:            log,
		Hasher:         credentials.NewArgon2(nil),
		AdminAPIKey:    cfg.Auth.AdminAPIKey,
		Version:        config.AppVersion,
		GeoTimeout:     cfg.Geo.Timeout,
		NoticeLimit:    cfg.Scans.NoticeLimit,
		CodeTTL:        cfg.Auth.CodeTTL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SeedTags:       cfg.SeedTags,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down", nil)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown error", map[string]any{"error": err.Error()})
		}
	}()

	log.Info("starting server", map[string]any{"addr": srv.Addr, "version": config.AppVersion})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		cleanup()
		os.Exit(1)
	}
	<-done
}
