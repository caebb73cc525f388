package interfaces

import (
	"context"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// SheetsClient talks to the remote spreadsheet web app. Pushes are
// last-write-wins whole-collection replacements; there is no retry or
// idempotency guarantee.
type SheetsClient interface {
	TestConnection(ctx context.Context) error
	Pull(ctx context.Context) (*models.Snapshot, error)
	PushPositions(ctx context.Context, positions []models.Position) error
	PushTrades(ctx context.Context, trades []models.Trade) error
	PushDailyResults(ctx context.Context, results []models.DailyResult) error
	PushRecommendations(ctx context.Context, recs []models.Recommendation) error
	PushInteractions(ctx context.Context, interactions []models.Interaction) error
	PushAll(ctx context.Context, snapshot *models.Snapshot) error
}
