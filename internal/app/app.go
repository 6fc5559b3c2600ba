package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/common"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/handlers"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/llm"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/prompts"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/render"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/reports"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/research"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/watchlist"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Model transport
	Provider interfaces.ResearchProvider

	// Domain services
	ResearchService  *research.Service
	WatchlistService *watchlist.Service
	ReportsService   *reports.Service
	Renderer         *render.Reports

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	ResearchHandler  *handlers.ResearchHandler
	MarketsHandler   *handlers.MarketsHandler
	WatchlistHandler *handlers.WatchlistHandler
	ReportsHandler   *handlers.ReportsHandler
	PageHandler      *handlers.PageHandler
}

// New initializes the application with all dependencies
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("model", cfg.Gemini.Model).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices wires the model transport and domain services
func (a *App) initServices(ctx context.Context) error {
	provider, err := llm.NewGeminiProvider(ctx, &a.Config.Gemini, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize research provider: %w", err)
	}
	a.Provider = provider

	builder := prompts.NewBuilder("")
	a.ResearchService = research.NewService(provider, builder, a.Logger)
	a.WatchlistService = watchlist.NewService(a.StorageManager.Watchlist(), a.Logger)
	a.ReportsService = reports.NewService(a.StorageManager.Reports(), a.Config.Reports.RecentLimit, a.Logger)
	a.Renderer = render.NewReports()

	return nil
}

// initHandlers wires the HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.ResearchHandler = handlers.NewResearchHandler(a.ResearchService, a.ReportsService, a.WatchlistService, a.Renderer, a.Logger)
	a.MarketsHandler = handlers.NewMarketsHandler(a.ResearchService, a.Logger)
	a.WatchlistHandler = handlers.NewWatchlistHandler(a.WatchlistService, a.Logger)
	a.ReportsHandler = handlers.NewReportsHandler(a.ReportsService, a.WatchlistService, a.Renderer, a.Logger)
	a.PageHandler = handlers.NewPageHandler(a.Logger)
}

// Close releases application resources in reverse initialization order
func (a *App) Close() error {
	var firstErr error

	if a.Provider != nil {
		if err := a.Provider.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Provider close failed")
			firstErr = err
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
