package interfaces

import (
	"context"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// PortfolioService owns the position, trade and daily-result collections.
type PortfolioService interface {
	Positions(ctx context.Context) ([]models.Position, error)
	ReplacePositions(ctx context.Context, positions []models.Position) error
	AppendPosition(ctx context.Context, position models.Position) error
	RemovePositionsByTicker(ctx context.Context, ticker string) (int, error)
	Trades(ctx context.Context) ([]models.Trade, error)
	ReplaceTrades(ctx context.Context, trades []models.Trade) error
	AppendTrade(ctx context.Context, trade models.Trade) error
	DailyResults(ctx context.Context) ([]models.DailyResult, error)
	ReplaceDailyResults(ctx context.Context, results []models.DailyResult) error
	ImportPortfolioCSV(ctx context.Context, content string) (*models.ImportResult, error)
	ImportTradesCSV(ctx context.Context, content string) (*models.ImportResult, error)
	ExportPortfolioCSV(ctx context.Context) (string, error)
	ExportTradesCSV(ctx context.Context) (string, error)
	Summary(ctx context.Context) (*models.DashboardSummary, error)
	RenderEquityChart(ctx context.Context) ([]byte, error)
}

// AdvisorService owns recommendation and interaction collections and the
// free-text position extraction workflow.
type AdvisorService interface {
	ExtractPositions(text string) ([]models.Position, error)
	InitializePortfolio(ctx context.Context, prompt, response string, startingCash float64) ([]models.Position, error)
	Recommendations(ctx context.Context) ([]models.Recommendation, error)
	AddRecommendation(ctx context.Context, rec models.Recommendation) (*models.Recommendation, error)
	ExecuteRecommendation(ctx context.Context, id string, price float64, notes string) (*models.Recommendation, error)
	SkipRecommendation(ctx context.Context, id, notes string) (*models.Recommendation, error)
	ReplaceRecommendations(ctx context.Context, recs []models.Recommendation) error
	Interactions(ctx context.Context) ([]models.Interaction, error)
	LogInteraction(ctx context.Context, interaction models.Interaction) (*models.Interaction, error)
	ReplaceInteractions(ctx context.Context, interactions []models.Interaction) error
}

// SyncService manages the remote spreadsheet connection and transfers.
type SyncService interface {
	Connect(ctx context.Context, url string) (*models.SyncStatus, error)
	Disconnect(ctx context.Context) error
	Status(ctx context.Context) (*models.SyncStatus, error)
	Push(ctx context.Context, target string) (*models.SyncStatus, error)
	Pull(ctx context.Context) (*models.Snapshot, error)
}
