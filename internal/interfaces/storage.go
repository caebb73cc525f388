// Package interfaces defines the contracts between layers.
package interfaces

import (
	"context"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// PortfolioStore persists the portfolio collections. Each collection is
// stored as a whole document and overwritten on every save; a missing
// document loads as an empty slice, not an error.
type PortfolioStore interface {
	LoadPositions(ctx context.Context) ([]models.Position, error)
	SavePositions(ctx context.Context, positions []models.Position) error
	LoadTrades(ctx context.Context) ([]models.Trade, error)
	SaveTrades(ctx context.Context, trades []models.Trade) error
	LoadDailyResults(ctx context.Context) ([]models.DailyResult, error)
	SaveDailyResults(ctx context.Context, results []models.DailyResult) error
}

// AdvisorStore persists recommendations and interaction logs.
type AdvisorStore interface {
	LoadRecommendations(ctx context.Context) ([]models.Recommendation, error)
	SaveRecommendations(ctx context.Context, recs []models.Recommendation) error
	LoadInteractions(ctx context.Context) ([]models.Interaction, error)
	SaveInteractions(ctx context.Context, interactions []models.Interaction) error
}

// KeyValueStore provides simple string key-value persistence for
// runtime settings such as the sheet web-app URL.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// StorageManager provides access to all storage areas.
type StorageManager interface {
	PortfolioStore() PortfolioStore
	AdvisorStore() AdvisorStore
	KeyValueStore() KeyValueStore
	Close() error
}
