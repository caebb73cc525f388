// Package app wires configuration, storage, clients and services into the
// shared application core used by the server binary.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/clients/sheets"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/common"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/interfaces"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/services/advisor"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/services/portfolio"
	syncsvc "github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/services/sync"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	PortfolioService interfaces.PortfolioService
	AdvisorService   interfaces.AdvisorService
	SyncService      interfaces.SyncService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, MICROCAP_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("MICROCAP_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "microcap.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/microcap.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative data path to binary directory for self-contained operation
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	portfolioService := portfolio.NewService(storageManager, storageManager.FileStore(), logger)
	advisorService := advisor.NewService(storageManager, portfolioService, logger)

	factory := func(url string) interfaces.SheetsClient {
		return sheets.NewClient(url,
			sheets.WithLogger(logger),
			sheets.WithRateLimit(config.Sheets.RateLimit),
			sheets.WithTimeout(config.Sheets.GetTimeout()),
		)
	}
	syncService := syncsvc.NewService(storageManager, portfolioService, advisorService, factory, logger)

	// Seed the stored web-app URL from config when nothing is stored yet.
	if config.Sheets.WebAppURL != "" {
		ctx := context.Background()
		kv := storageManager.KeyValueStore()
		if stored, err := kv.Get(ctx, syncsvc.KeyWebAppURL); err == nil && stored == "" {
			if err := kv.Set(ctx, syncsvc.KeyWebAppURL, config.Sheets.WebAppURL); err != nil {
				logger.Warn().Err(err).Msg("Failed to store configured web app URL")
			}
		}
	}

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		PortfolioService: portfolioService,
		AdvisorService:   advisorService,
		SyncService:      syncService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
