package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/common"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/interfaces"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// Service implements the AdvisorService interface.
type Service struct {
	storage   interfaces.StorageManager
	portfolio interfaces.PortfolioService
	logger    *common.Logger
}

// NewService creates a new advisor service.
func NewService(storage interfaces.StorageManager, portfolio interfaces.PortfolioService, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		portfolio: portfolio,
		logger:    logger,
	}
}

// ExtractPositions scans advisor text for candidate positions.
func (s *Service) ExtractPositions(text string) ([]models.Position, error) {
	return ExtractPositions(text)
}

// InitializePortfolio extracts positions from an advisor response, replaces
// the current portfolio with them, and records the conversation as an
// INITIAL_PORTFOLIO interaction. The recommendation collection is replaced
// with a single executed PORTFOLIO record summarizing the starting capital
// and holdings. Nothing is written when extraction finds no stocks.
func (s *Service) InitializePortfolio(ctx context.Context, prompt, response string, startingCash float64) ([]models.Position, error) {
	positions, err := ExtractPositions(response)
	if err != nil {
		return nil, err
	}

	if err := s.portfolio.ReplacePositions(ctx, positions); err != nil {
		return nil, err
	}

	today := models.Today()
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("%s (%d shares)", p.Ticker, p.Shares)
	}
	rec := models.Recommendation{
		ID:     uuid.New().String(),
		Date:   today,
		Ticker: "PORTFOLIO",
		Action: models.ActionBuy,
		Reasoning: fmt.Sprintf("Initial portfolio creation with $%s starting capital: %s",
			strconv.FormatFloat(startingCash, 'f', -1, 64), strings.Join(parts, ", ")),
		Executed:       true,
		ExecutionDate:  today,
		ExecutionNotes: "Initial portfolio setup",
	}
	if err := s.storage.AdvisorStore().SaveRecommendations(ctx, []models.Recommendation{rec}); err != nil {
		return nil, err
	}

	value := 0.0
	for _, p := range positions {
		value += p.CostBasis
	}
	if _, err := s.LogInteraction(ctx, models.Interaction{
		Type:           models.InteractionInitialPortfolio,
		Prompt:         prompt,
		Response:       response,
		PortfolioValue: &value,
	}); err != nil {
		return nil, err
	}

	s.logger.Info().Int("positions", len(positions)).Msg("Portfolio initialized from advisor response")
	return positions, nil
}

// Recommendations returns all recommendations, pending and resolved.
func (s *Service) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	return s.storage.AdvisorStore().LoadRecommendations(ctx)
}

// ReplaceRecommendations overwrites the recommendation collection.
func (s *Service) ReplaceRecommendations(ctx context.Context, recs []models.Recommendation) error {
	return s.storage.AdvisorStore().SaveRecommendations(ctx, recs)
}

// AddRecommendation appends a pending recommendation. The ticker is
// upper-cased and the date defaults to today.
func (s *Service) AddRecommendation(ctx context.Context, rec models.Recommendation) (*models.Recommendation, error) {
	rec.Ticker = strings.ToUpper(strings.TrimSpace(rec.Ticker))
	if rec.Ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if !models.ValidActions[rec.Action] {
		return nil, fmt.Errorf("invalid action '%s': must be one of BUY, SELL, HOLD", rec.Action)
	}
	if rec.Shares <= 0 && rec.Action != models.ActionHold {
		return nil, fmt.Errorf("shares must be positive")
	}

	rec.ID = uuid.New().String()
	if rec.Date == "" {
		rec.Date = models.Today()
	}
	rec.Executed = false
	rec.ExecutionPrice = nil
	rec.ExecutionDate = ""
	rec.ExecutionNotes = ""

	recs, err := s.storage.AdvisorStore().LoadRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	recs = append(recs, rec)
	if err := s.storage.AdvisorStore().SaveRecommendations(ctx, recs); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("ticker", rec.Ticker).Str("action", rec.Action).Msg("Recommendation added")
	return &rec, nil
}

// ExecuteRecommendation marks a pending recommendation executed at the
// given price and applies its portfolio effects: a BUY appends a position
// and a buy trade, a SELL logs a sell trade with realized P&L and removes
// every position for the ticker, a HOLD records the execution only.
func (s *Service) ExecuteRecommendation(ctx context.Context, id string, price float64, notes string) (*models.Recommendation, error) {
	if price <= 0 {
		return nil, fmt.Errorf("execution price must be positive")
	}

	recs, err := s.storage.AdvisorStore().LoadRecommendations(ctx)
	if err != nil {
		return nil, err
	}

	idx := findRecommendation(recs, id)
	if idx < 0 {
		return nil, fmt.Errorf("recommendation '%s' not found", id)
	}
	rec := &recs[idx]
	if rec.Resolved() {
		return nil, fmt.Errorf("recommendation '%s' is already resolved", id)
	}

	today := models.Today()
	reason := "ChatGPT Recommendation: " + rec.Reasoning

	switch rec.Action {
	case models.ActionBuy:
		stop := price * 0.8
		if rec.StopLoss != nil && *rec.StopLoss > 0 {
			stop = *rec.StopLoss
		}
		position := models.Position{
			Date:      today,
			Ticker:    rec.Ticker,
			Shares:    rec.Shares,
			BuyPrice:  price,
			CostBasis: float64(rec.Shares) * price,
			StopLoss:  stop,
		}
		if err := s.portfolio.AppendPosition(ctx, position); err != nil {
			return nil, err
		}
		shares := rec.Shares
		buyPrice := price
		if err := s.portfolio.AppendTrade(ctx, models.Trade{
			Date:         today,
			Ticker:       rec.Ticker,
			SharesBought: &shares,
			BuyPrice:     &buyPrice,
			CostBasis:    float64(rec.Shares) * price,
			PnL:          0,
			Reason:       reason,
		}); err != nil {
			return nil, err
		}

	case models.ActionSell:
		positions, err := s.portfolio.Positions(ctx)
		if err != nil {
			return nil, err
		}
		var held *models.Position
		for i := range positions {
			if positions[i].Ticker == rec.Ticker && !positions[i].IsTotal() {
				held = &positions[i]
				break
			}
		}

		// A sell with no held position still logs the trade; the cost
		// basis and realized P&L are zero and removal is a no-op.
		var costBasis, pnl float64
		if held != nil {
			costBasis = held.BuyPrice * float64(rec.Shares)
			pnl = (price - held.BuyPrice) * float64(rec.Shares)
		}

		shares := rec.Shares
		sellPrice := price
		if err := s.portfolio.AppendTrade(ctx, models.Trade{
			Date:       today,
			Ticker:     rec.Ticker,
			SharesSold: &shares,
			SellPrice:  &sellPrice,
			CostBasis:  costBasis,
			PnL:        pnl,
			Reason:     reason,
		}); err != nil {
			return nil, err
		}
		if _, err := s.portfolio.RemovePositionsByTicker(ctx, rec.Ticker); err != nil {
			return nil, err
		}

	case models.ActionHold:
		// No portfolio effect.

	default:
		return nil, fmt.Errorf("invalid action '%s'", rec.Action)
	}

	rec.Executed = true
	rec.ExecutionPrice = &price
	rec.ExecutionDate = today
	rec.ExecutionNotes = notes

	if err := s.storage.AdvisorStore().SaveRecommendations(ctx, recs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("ticker", rec.Ticker).
		Str("action", rec.Action).
		Float64("price", price).
		Msg("Recommendation executed")
	return rec, nil
}

// SkipRecommendation resolves a pending recommendation without executing
// it. Executed stays false; the notes record why it was skipped.
func (s *Service) SkipRecommendation(ctx context.Context, id, notes string) (*models.Recommendation, error) {
	recs, err := s.storage.AdvisorStore().LoadRecommendations(ctx)
	if err != nil {
		return nil, err
	}

	idx := findRecommendation(recs, id)
	if idx < 0 {
		return nil, fmt.Errorf("recommendation '%s' not found", id)
	}
	rec := &recs[idx]
	if rec.Resolved() {
		return nil, fmt.Errorf("recommendation '%s' is already resolved", id)
	}

	if strings.TrimSpace(notes) == "" {
		notes = "skipped"
	}
	rec.ExecutionNotes = notes
	rec.ExecutionDate = models.Today()

	if err := s.storage.AdvisorStore().SaveRecommendations(ctx, recs); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("ticker", rec.Ticker).Msg("Recommendation skipped")
	return rec, nil
}

// Interactions returns the advisor conversation log.
func (s *Service) Interactions(ctx context.Context) ([]models.Interaction, error) {
	return s.storage.AdvisorStore().LoadInteractions(ctx)
}

// ReplaceInteractions overwrites the interaction collection.
func (s *Service) ReplaceInteractions(ctx context.Context, interactions []models.Interaction) error {
	return s.storage.AdvisorStore().SaveInteractions(ctx, interactions)
}

// LogInteraction appends a conversation turn to the interaction log.
// Unknown types are recorded as OTHER rather than rejected.
func (s *Service) LogInteraction(ctx context.Context, interaction models.Interaction) (*models.Interaction, error) {
	interaction.ID = uuid.New().String()
	if interaction.Date == "" {
		interaction.Date = models.Today()
	}
	if !models.ValidInteractionTypes[interaction.Type] {
		interaction.Type = models.InteractionOther
	}

	interactions, err := s.storage.AdvisorStore().LoadInteractions(ctx)
	if err != nil {
		return nil, err
	}
	interactions = append(interactions, interaction)
	if err := s.storage.AdvisorStore().SaveInteractions(ctx, interactions); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("type", interaction.Type).Msg("Interaction logged")
	return &interaction, nil
}

func findRecommendation(recs []models.Recommendation, id string) int {
	for i := range recs {
		if recs[i].ID == id {
			return i
		}
	}
	return -1
}

// Ensure Service implements AdvisorService
var _ interfaces.AdvisorService = (*Service)(nil)
