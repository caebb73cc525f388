// Package sync manages the remote spreadsheet connection and transfers
// between the local collections and the sheet.
package sync

import (
	"context"
	"fmt"
	"strings"
	gosync "sync"
	"time"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/common"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/interfaces"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// KeyWebAppURL is the key-value store entry holding the sheet endpoint.
const KeyWebAppURL = "sheets_webapp_url"

// Push targets accepted by Push.
const (
	TargetPositions       = "positions"
	TargetTrades          = "trades"
	TargetDailyResults    = "dailyResults"
	TargetRecommendations = "recommendations"
	TargetInteractions    = "interactions"
	TargetAll             = "all"
)

// ClientFactory builds a sheets client for a web-app URL.
type ClientFactory func(url string) interfaces.SheetsClient

// Service implements the SyncService interface. Connection state is
// in-memory only; the URL persists, the connected flag does not survive a
// restart and is re-established by the next probe.
type Service struct {
	storage   interfaces.StorageManager
	portfolio interfaces.PortfolioService
	advisor   interfaces.AdvisorService
	factory   ClientFactory
	logger    *common.Logger

	mu        gosync.Mutex
	client    interfaces.SheetsClient
	connected bool
	webAppURL string
	lastSync  string
	lastErr   string
	lastAct   string
}

// NewService creates a new sync service.
func NewService(storage interfaces.StorageManager, portfolio interfaces.PortfolioService, advisor interfaces.AdvisorService, factory ClientFactory, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		portfolio: portfolio,
		advisor:   advisor,
		factory:   factory,
		logger:    logger,
	}
}

// Connect probes the web app at the given URL. An empty URL falls back to
// the stored one. On success the URL is persisted and the connection is
// marked up; on failure the connection is marked down and the probe error
// is reported in the returned status.
func (s *Service) Connect(ctx context.Context, url string) (*models.SyncStatus, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		stored, err := s.storage.KeyValueStore().Get(ctx, KeyWebAppURL)
		if err != nil {
			return nil, err
		}
		url = stored
	}
	if url == "" {
		return nil, fmt.Errorf("web app URL is required")
	}

	client := s.factory(url)
	probeErr := client.TestConnection(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.webAppURL = url
	if probeErr != nil {
		s.connected = false
		s.client = nil
		s.lastErr = probeErr.Error()
		s.logger.Warn().Err(probeErr).Msg("Sheet connection probe failed")
		return s.statusLocked(), nil
	}

	if err := s.storage.KeyValueStore().Set(ctx, KeyWebAppURL, url); err != nil {
		return nil, err
	}

	s.connected = true
	s.client = client
	s.lastErr = ""
	s.logger.Info().Msg("Sheet connection established")
	return s.statusLocked(), nil
}

// Disconnect drops the connection and forgets the stored URL.
func (s *Service) Disconnect(ctx context.Context) error {
	if err := s.storage.KeyValueStore().Delete(ctx, KeyWebAppURL); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	s.client = nil
	s.webAppURL = ""
	s.lastErr = ""
	s.logger.Info().Msg("Sheet connection removed")
	return nil
}

// Status reports the current connection state.
func (s *Service) Status(ctx context.Context) (*models.SyncStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.webAppURL == "" {
		if stored, err := s.storage.KeyValueStore().Get(ctx, KeyWebAppURL); err == nil {
			s.webAppURL = stored
		}
	}
	return s.statusLocked(), nil
}

func (s *Service) statusLocked() *models.SyncStatus {
	return &models.SyncStatus{
		Connected:  s.connected,
		WebAppURL:  s.webAppURL,
		LastSync:   s.lastSync,
		LastError:  s.lastErr,
		LastAction: s.lastAct,
	}
}

// ensureClient returns a connected client, probing the stored URL when no
// connection has been established yet this session.
func (s *Service) ensureClient(ctx context.Context) (interfaces.SheetsClient, error) {
	s.mu.Lock()
	if s.connected && s.client != nil {
		client := s.client
		s.mu.Unlock()
		return client, nil
	}
	s.mu.Unlock()

	status, err := s.Connect(ctx, "")
	if err != nil {
		return nil, err
	}
	if !status.Connected {
		return nil, fmt.Errorf("sheet connection is down: %s", status.LastError)
	}

	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	return client, nil
}

// Push sends a collection (or all of them) to the sheet. The local data is
// the source of truth; the sheet side is replaced wholesale. Failures mark
// the connection down and leave local state untouched.
func (s *Service) Push(ctx context.Context, target string) (*models.SyncStatus, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	switch target {
	case TargetPositions:
		var positions []models.Position
		if positions, err = s.portfolio.Positions(ctx); err == nil {
			err = client.PushPositions(ctx, positions)
		}
	case TargetTrades:
		var trades []models.Trade
		if trades, err = s.portfolio.Trades(ctx); err == nil {
			err = client.PushTrades(ctx, trades)
		}
	case TargetDailyResults:
		var results []models.DailyResult
		if results, err = s.portfolio.DailyResults(ctx); err == nil {
			err = client.PushDailyResults(ctx, results)
		}
	case TargetRecommendations:
		var recs []models.Recommendation
		if recs, err = s.advisor.Recommendations(ctx); err == nil {
			err = client.PushRecommendations(ctx, recs)
		}
	case TargetInteractions:
		var interactions []models.Interaction
		if interactions, err = s.advisor.Interactions(ctx); err == nil {
			err = client.PushInteractions(ctx, interactions)
		}
	case TargetAll:
		var snapshot *models.Snapshot
		if snapshot, err = s.snapshot(ctx); err == nil {
			err = client.PushAll(ctx, snapshot)
		}
	default:
		return nil, fmt.Errorf("invalid sync target '%s'", target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAct = "push:" + target
	if err != nil {
		s.connected = false
		s.lastErr = err.Error()
		s.logger.Warn().Err(err).Str("target", target).Msg("Sheet push failed")
		return s.statusLocked(), nil
	}

	s.lastErr = ""
	s.lastSync = time.Now().Format(time.RFC3339)
	s.logger.Info().Str("target", target).Msg("Sheet push complete")
	return s.statusLocked(), nil
}

// Pull fetches every collection from the sheet and replaces the local
// collections with the result. A failed pull changes nothing locally.
func (s *Service) Pull(ctx context.Context) (*models.Snapshot, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := client.Pull(ctx)
	if err != nil {
		s.mu.Lock()
		s.connected = false
		s.lastErr = err.Error()
		s.lastAct = "pull"
		s.mu.Unlock()
		s.logger.Warn().Err(err).Msg("Sheet pull failed")
		return nil, err
	}

	if err := s.portfolio.ReplacePositions(ctx, snapshot.Positions); err != nil {
		return nil, err
	}
	if err := s.portfolio.ReplaceTrades(ctx, snapshot.Trades); err != nil {
		return nil, err
	}
	if err := s.portfolio.ReplaceDailyResults(ctx, snapshot.DailyResults); err != nil {
		return nil, err
	}
	if err := s.advisor.ReplaceRecommendations(ctx, snapshot.Recommendations); err != nil {
		return nil, err
	}
	if err := s.advisor.ReplaceInteractions(ctx, snapshot.Interactions); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastErr = ""
	s.lastAct = "pull"
	s.lastSync = time.Now().Format(time.RFC3339)
	s.mu.Unlock()

	s.logger.Info().
		Int("positions", len(snapshot.Positions)).
		Int("trades", len(snapshot.Trades)).
		Int("daily_results", len(snapshot.DailyResults)).
		Msg("Sheet pull complete")
	return snapshot, nil
}

// snapshot bundles all five local collections.
func (s *Service) snapshot(ctx context.Context) (*models.Snapshot, error) {
	positions, err := s.portfolio.Positions(ctx)
	if err != nil {
		return nil, err
	}
	trades, err := s.portfolio.Trades(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.portfolio.DailyResults(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.advisor.Recommendations(ctx)
	if err != nil {
		return nil, err
	}
	interactions, err := s.advisor.Interactions(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Positions:       positions,
		Trades:          trades,
		DailyResults:    results,
		Recommendations: recs,
		Interactions:    interactions,
	}, nil
}

// Ensure Service implements SyncService
var _ interfaces.SyncService = (*Service)(nil)
