package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
	"github.com/JonMunkholm/CoursePlanner/internal/config"
	"github.com/JonMunkholm/CoursePlanner/internal/logging"
	"github.com/JonMunkholm/CoursePlanner/internal/pgstore"
	"github.com/JonMunkholm/CoursePlanner/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"catalog_source", cfg.Catalog.Source,
		"max_concurrent_loads", cfg.Catalog.MaxConcurrentLoads,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	ctx := context.Background()
	svc := catalog.NewService(cfg.Catalog)

	var src catalog.Source
	switch strings.ToLower(cfg.Catalog.Source) {
	case config.SourcePostgres:
		pool, err := pgstore.Connect(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to database", "error", err, "code", catalog.MapError(err).Code)
			os.Exit(1)
		}
		defer pool.Close()

		if u, err := url.Parse(cfg.Database.URL); err == nil {
			slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
		}

		src, err = pgstore.NewSource(pool, cfg.Database.Table)
		if err != nil {
			slog.Error("invalid catalog table", "error", err)
			os.Exit(1)
		}
	default:
		if cfg.Catalog.Path != "" {
			src = catalog.FileSource{Path: cfg.Catalog.Path, MaxSize: cfg.Catalog.MaxFileSize}
		}
	}

	// A bad initial catalog is not fatal: the server starts empty and the
	// catalog can be fixed and reloaded over the API.
	if src != nil {
		if _, err := svc.Load(ctx, src); err != nil {
			slog.Warn("initial catalog load failed, starting empty",
				"source", src.Name(),
				"error", err,
				"code", catalog.MapError(err).Code,
			)
		}
	} else {
		slog.Info("no catalog source configured, waiting for an upload")
	}

	server := web.NewServer(svc, src, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := svc.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for catalog loads to complete", "active", status.Active)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
