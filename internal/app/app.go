package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"TeleshopNews/internal/api"
	"TeleshopNews/internal/config"
	"TeleshopNews/internal/extract"
	"TeleshopNews/internal/infrastructure/parser"
	"TeleshopNews/internal/infrastructure/storage"
	"TeleshopNews/internal/infrastructure/translate"
	"TeleshopNews/internal/logging"
	"TeleshopNews/internal/usecase"
)

// Application wires config to adapters, the ingestion pipeline, and the
// HTTP read layer.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	server *api.Server
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := extract.NewRegistry()
	registry.Register(parser.NewGagadgetScanner(&http.Client{Timeout: cfg.Source.FetchTimeout()}))

	source := parser.NewSiteSource(registry, cfg.Source, baseLogger.With("component", "source"))
	translator := translate.NewGoogleClient(cfg.Translate)
	repository := storage.NewFileRepository(cfg.Store.Path)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Extractor:    source,
		Translator:   translator,
		Repository:   repository,
		Logger:       baseLogger.With("component", "pipeline"),
		MaxStoreSize: cfg.Store.MaxSize,
		RecentHours:  cfg.Store.RecentHours,
		FetchTimeout: cfg.Source.FetchTimeout(),
		FetchDelay:   cfg.Source.Delay(),
	})

	refresher := usecase.NewRefresher(pipeline, cfg.API.Cooldown(), baseLogger.With("component", "refresher"))

	server := api.NewServer(api.Options{
		Logger:       baseLogger.With("component", "api"),
		Repository:   repository,
		Refresher:    refresher,
		DefaultLimit: cfg.API.DefaultLimit,
		MaxLimit:     cfg.API.MaxLimit,
	})

	return &Application{cfg: cfg, logger: baseLogger, server: server}
}

// Run serves the read API until the context is cancelled, then shuts down
// gracefully.
func (a *Application) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// A list request may carry a full ingestion run, so writes get
		// generous headroom.
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("api server starting", "addr", a.cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
