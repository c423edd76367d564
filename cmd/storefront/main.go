package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/swambasic/storefront/internal/api"
	"github.com/swambasic/storefront/internal/audit"
	"github.com/swambasic/storefront/internal/config"
	"github.com/swambasic/storefront/internal/gate"
	"github.com/swambasic/storefront/internal/shopify"
)

func main() {
	// Bootstrap logger for config loading.
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.TimeOnly}))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Re-create logger with configured level.
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	log = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
	log.Info("config loaded", "address", cfg.Address, "environment", cfg.Environment, "log_level", level.String())

	if cfg.SitePassword == "" || cfg.SessionSecret == "" {
		// Not fatal: the access endpoint answers a configuration error until
		// the secrets appear in the environment.
		log.Warn("site access secrets not configured; the gate cannot be unlocked")
	}

	store, err := audit.Open(cfg.Database, log)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("database ready", "path", cfg.Database)

	shop := shopify.New(cfg.Shopify, log)
	if !shop.Configured() {
		log.Warn("shopify store domain not configured; customer operations will fail")
	}

	srv := api.NewServer(cfg, shop, store, log)
	g := gate.New(cfg.Production(), log)
	handler := g.Middleware(srv.Handler())

	httpServer := &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	// Graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}
		log.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("storefront starting", "address", cfg.Address)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("http server error", "error", err)
		os.Exit(1)
	}
}
