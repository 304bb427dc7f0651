// CLAUDE:SUMMARY Entry point for the reprise daemon: config, SQLite KV, null player backend, chi API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hazyhaar/reprise"
	"github.com/hazyhaar/reprise/kvstore"
	"github.com/hazyhaar/reprise/player"
)

func main() {
	// .env is optional; real env always wins.
	godotenv.Load()

	// Logging.
	var lvl slog.Level
	switch env("LOG_LEVEL", "info") {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Config: YAML file if given, env overrides on top.
	cfg := reprise.DefaultConfig()
	if path := os.Getenv("REPRISE_CONFIG"); path != "" {
		loaded, err := reprise.LoadConfigFile(path)
		if err != nil {
			slog.Error("load config", "path", path, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.DBPath = env("DB_PATH", cfg.DBPath)
	cfg.ListenAddr = env("LISTEN_ADDR", cfg.ListenAddr)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Persistent store.
	kv, err := kvstore.Open(cfg.DBPath)
	if err != nil {
		slog.Error("open kv store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	// Playback backend. The null session logs transport transitions; a real
	// backend (libmpv bridge) plugs in here without touching the core.
	session := player.NewNull(logger)

	svc := reprise.New(kv, session, logger, cfg)
	defer svc.Close()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           reprise.Router(svc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("reprise listening", "addr", cfg.ListenAddr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
