// Package portfolio owns the position, trade and daily-result collections
// and the dashboard aggregates computed from them.
package portfolio

import (
	"context"
	"strings"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/common"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/interfaces"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/services/impexp"
)

// RawWriter persists rendered binary artifacts such as chart PNGs.
type RawWriter interface {
	WriteRaw(subdir, key string, data []byte) error
}

// Service implements the PortfolioService interface. The file store is the
// source of truth; every mutation rewrites the affected collection whole.
type Service struct {
	storage interfaces.StorageManager
	raw     RawWriter
	logger  *common.Logger
}

// NewService creates a new portfolio service. raw may be nil, in which case
// rendered charts are returned but not cached to disk.
func NewService(storage interfaces.StorageManager, raw RawWriter, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		raw:     raw,
		logger:  logger,
	}
}

// Positions returns the current position collection.
func (s *Service) Positions(ctx context.Context) ([]models.Position, error) {
	return s.storage.PortfolioStore().LoadPositions(ctx)
}

// ReplacePositions overwrites the position collection.
func (s *Service) ReplacePositions(ctx context.Context, positions []models.Position) error {
	return s.storage.PortfolioStore().SavePositions(ctx, positions)
}

// AppendPosition adds a position to the collection.
func (s *Service) AppendPosition(ctx context.Context, position models.Position) error {
	positions, err := s.storage.PortfolioStore().LoadPositions(ctx)
	if err != nil {
		return err
	}
	positions = append(positions, position)
	return s.storage.PortfolioStore().SavePositions(ctx, positions)
}

// RemovePositionsByTicker removes every position for a ticker and returns
// the number removed. Selling closes the whole ticker, not a single lot.
func (s *Service) RemovePositionsByTicker(ctx context.Context, ticker string) (int, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	positions, err := s.storage.PortfolioStore().LoadPositions(ctx)
	if err != nil {
		return 0, err
	}

	kept := positions[:0]
	removed := 0
	for _, p := range positions {
		if p.Ticker == ticker {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := s.storage.PortfolioStore().SavePositions(ctx, kept); err != nil {
		return 0, err
	}
	s.logger.Debug().Str("ticker", ticker).Int("removed", removed).Msg("Positions removed")
	return removed, nil
}

// Trades returns the trade log.
func (s *Service) Trades(ctx context.Context) ([]models.Trade, error) {
	return s.storage.PortfolioStore().LoadTrades(ctx)
}

// ReplaceTrades overwrites the trade log.
func (s *Service) ReplaceTrades(ctx context.Context, trades []models.Trade) error {
	return s.storage.PortfolioStore().SaveTrades(ctx, trades)
}

// AppendTrade adds a trade to the log.
func (s *Service) AppendTrade(ctx context.Context, trade models.Trade) error {
	trades, err := s.storage.PortfolioStore().LoadTrades(ctx)
	if err != nil {
		return err
	}
	trades = append(trades, trade)
	return s.storage.PortfolioStore().SaveTrades(ctx, trades)
}

// DailyResults returns the daily equity summaries.
func (s *Service) DailyResults(ctx context.Context) ([]models.DailyResult, error) {
	return s.storage.PortfolioStore().LoadDailyResults(ctx)
}

// ReplaceDailyResults overwrites the daily result collection.
func (s *Service) ReplaceDailyResults(ctx context.Context, results []models.DailyResult) error {
	return s.storage.PortfolioStore().SaveDailyResults(ctx, results)
}

// ImportPortfolioCSV parses portfolio CSV content and replaces the position
// and daily-result collections with the mapped rows. TOTAL sentinel rows
// become daily results; short rows are dropped silently.
func (s *Service) ImportPortfolioCSV(ctx context.Context, content string) (*models.ImportResult, error) {
	table, err := impexp.Parse(content)
	if err != nil {
		return nil, err
	}

	positions, results := impexp.MapPortfolio(table)

	if err := s.storage.PortfolioStore().SavePositions(ctx, positions); err != nil {
		return nil, err
	}
	if err := s.storage.PortfolioStore().SaveDailyResults(ctx, results); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("positions", len(positions)).
		Int("daily_results", len(results)).
		Msg("Portfolio CSV imported")
	return &models.ImportResult{Positions: len(positions), DailyResults: len(results)}, nil
}

// ImportTradesCSV parses trade-log CSV content and replaces the trade log.
func (s *Service) ImportTradesCSV(ctx context.Context, content string) (*models.ImportResult, error) {
	table, err := impexp.Parse(content)
	if err != nil {
		return nil, err
	}

	trades := impexp.MapTrades(table)
	if err := s.storage.PortfolioStore().SaveTrades(ctx, trades); err != nil {
		return nil, err
	}

	s.logger.Info().Int("trades", len(trades)).Msg("Trade CSV imported")
	return &models.ImportResult{Trades: len(trades)}, nil
}

// ExportPortfolioCSV renders the position collection to CSV.
func (s *Service) ExportPortfolioCSV(ctx context.Context) (string, error) {
	positions, err := s.storage.PortfolioStore().LoadPositions(ctx)
	if err != nil {
		return "", err
	}
	return impexp.ExportPositions(positions)
}

// ExportTradesCSV renders the trade log to CSV.
func (s *Service) ExportTradesCSV(ctx context.Context) (string, error) {
	trades, err := s.storage.PortfolioStore().LoadTrades(ctx)
	if err != nil {
		return "", err
	}
	return impexp.ExportTrades(trades)
}

// Summary computes the dashboard aggregates: latest equity totals, total
// return against the first recorded day, holdings totals, and tickers
// trading within 5% of their stop loss.
func (s *Service) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	positions, err := s.storage.PortfolioStore().LoadPositions(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.storage.PortfolioStore().LoadDailyResults(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{}

	if len(results) > 0 {
		latest := results[len(results)-1]
		summary.TotalEquity = latest.TotalEquity
		summary.CashBalance = latest.CashBalance
		summary.TotalPnL = latest.TotalPnL
		summary.AsOf = latest.Date

		first := results[0]
		if len(results) > 1 && first.TotalEquity != 0 {
			ret := ((latest.TotalEquity - first.TotalEquity) / first.TotalEquity) * 100
			summary.TotalReturnPct = &ret
		}
	}

	holdings := models.Holdings(positions)
	summary.ActivePositions = len(holdings)
	for _, p := range holdings {
		if p.TotalValue != nil {
			summary.HoldingsValue += *p.TotalValue
		} else {
			summary.HoldingsValue += p.CostBasis
		}
		if p.PnL != nil {
			summary.HoldingsPnL += *p.PnL
		}
		if p.CurrentPrice != nil && p.StopLoss > 0 && *p.CurrentPrice <= p.StopLoss*1.05 {
			summary.NearStopLoss = append(summary.NearStopLoss, p.Ticker)
		}
	}

	return summary, nil
}

// RenderEquityChart renders the equity curve from daily results as a PNG
// and caches it under the charts area when a raw writer is configured.
func (s *Service) RenderEquityChart(ctx context.Context) ([]byte, error) {
	results, err := s.storage.PortfolioStore().LoadDailyResults(ctx)
	if err != nil {
		return nil, err
	}

	data, err := RenderEquityChart(results)
	if err != nil {
		return nil, err
	}

	if s.raw != nil {
		if err := s.raw.WriteRaw("charts", "equity.png", data); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache equity chart")
		}
	}

	return data, nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
