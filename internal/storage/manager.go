package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/common"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/interfaces"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// Collection document keys under the portfolio and advisor areas.
const (
	keyPositions       = "positions"
	keyTrades          = "trades"
	keyDailyResults    = "daily_results"
	keyRecommendations = "recommendations"
	keyInteractions    = "interactions"
)

// Manager wires the file store into the per-area storage interfaces.
type Manager struct {
	fs        *FileStore
	portfolio *portfolioStorage
	advisor   *advisorStorage
	kv        *kvStorage
	logger    *common.Logger
}

// NewManager creates a storage manager rooted at the configured data path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	fs, err := NewFileStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file store: %w", err)
	}

	return &Manager{
		fs:        fs,
		portfolio: newPortfolioStorage(fs, logger),
		advisor:   newAdvisorStorage(fs, logger),
		kv:        newKVStorage(fs, logger),
		logger:    logger,
	}, nil
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore { return m.portfolio }
func (m *Manager) AdvisorStore() interfaces.AdvisorStore     { return m.advisor }
func (m *Manager) KeyValueStore() interfaces.KeyValueStore   { return m.kv }

// FileStore exposes the underlying store for raw writes (chart PNGs).
func (m *Manager) FileStore() *FileStore { return m.fs }

// Close releases storage resources. File-backed storage holds no open
// handles between operations, so this is a no-op kept for interface parity.
func (m *Manager) Close() error { return nil }

// --- Portfolio Storage ---

type portfolioStorage struct {
	fs     *FileStore
	dir    string
	logger *common.Logger
}

func newPortfolioStorage(fs *FileStore, logger *common.Logger) *portfolioStorage {
	return &portfolioStorage{fs: fs, dir: filepath.Join(fs.basePath, "portfolio"), logger: logger}
}

func (s *portfolioStorage) LoadPositions(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := s.fs.readJSON(s.dir, keyPositions, &positions); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}
	return positions, nil
}

func (s *portfolioStorage) SavePositions(ctx context.Context, positions []models.Position) error {
	if positions == nil {
		positions = []models.Position{}
	}
	if err := s.fs.writeJSON(s.dir, keyPositions, positions); err != nil {
		return fmt.Errorf("failed to save positions: %w", err)
	}
	s.logger.Debug().Int("count", len(positions)).Msg("Positions saved")
	return nil
}

func (s *portfolioStorage) LoadTrades(ctx context.Context) ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.fs.readJSON(s.dir, keyTrades, &trades); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}
	return trades, nil
}

func (s *portfolioStorage) SaveTrades(ctx context.Context, trades []models.Trade) error {
	if trades == nil {
		trades = []models.Trade{}
	}
	if err := s.fs.writeJSON(s.dir, keyTrades, trades); err != nil {
		return fmt.Errorf("failed to save trades: %w", err)
	}
	s.logger.Debug().Int("count", len(trades)).Msg("Trades saved")
	return nil
}

func (s *portfolioStorage) LoadDailyResults(ctx context.Context) ([]models.DailyResult, error) {
	var results []models.DailyResult
	if err := s.fs.readJSON(s.dir, keyDailyResults, &results); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load daily results: %w", err)
	}
	return results, nil
}

func (s *portfolioStorage) SaveDailyResults(ctx context.Context, results []models.DailyResult) error {
	if results == nil {
		results = []models.DailyResult{}
	}
	if err := s.fs.writeJSON(s.dir, keyDailyResults, results); err != nil {
		return fmt.Errorf("failed to save daily results: %w", err)
	}
	s.logger.Debug().Int("count", len(results)).Msg("Daily results saved")
	return nil
}

// --- Advisor Storage ---

type advisorStorage struct {
	fs     *FileStore
	dir    string
	logger *common.Logger
}

func newAdvisorStorage(fs *FileStore, logger *common.Logger) *advisorStorage {
	return &advisorStorage{fs: fs, dir: filepath.Join(fs.basePath, "advisor"), logger: logger}
}

func (s *advisorStorage) LoadRecommendations(ctx context.Context) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	if err := s.fs.readJSON(s.dir, keyRecommendations, &recs); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	return recs, nil
}

func (s *advisorStorage) SaveRecommendations(ctx context.Context, recs []models.Recommendation) error {
	if recs == nil {
		recs = []models.Recommendation{}
	}
	if err := s.fs.writeJSON(s.dir, keyRecommendations, recs); err != nil {
		return fmt.Errorf("failed to save recommendations: %w", err)
	}
	s.logger.Debug().Int("count", len(recs)).Msg("Recommendations saved")
	return nil
}

func (s *advisorStorage) LoadInteractions(ctx context.Context) ([]models.Interaction, error) {
	var interactions []models.Interaction
	if err := s.fs.readJSON(s.dir, keyInteractions, &interactions); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	return interactions, nil
}

func (s *advisorStorage) SaveInteractions(ctx context.Context, interactions []models.Interaction) error {
	if interactions == nil {
		interactions = []models.Interaction{}
	}
	if err := s.fs.writeJSON(s.dir, keyInteractions, interactions); err != nil {
		return fmt.Errorf("failed to save interactions: %w", err)
	}
	s.logger.Debug().Int("count", len(interactions)).Msg("Interactions saved")
	return nil
}

// --- Key-Value Storage ---

type kvEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type kvStorage struct {
	fs     *FileStore
	dir    string
	logger *common.Logger
}

func newKVStorage(fs *FileStore, logger *common.Logger) *kvStorage {
	return &kvStorage{fs: fs, dir: filepath.Join(fs.basePath, "kv"), logger: logger}
}

// Get returns the stored value, or empty string when the key is absent.
func (s *kvStorage) Get(ctx context.Context, key string) (string, error) {
	var entry kvEntry
	if err := s.fs.readJSON(s.dir, key, &entry); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get kv '%s': %w", key, err)
	}
	return entry.Value, nil
}

func (s *kvStorage) Set(ctx context.Context, key, value string) error {
	entry := kvEntry{Key: key, Value: value}
	if err := s.fs.writeJSON(s.dir, key, entry); err != nil {
		return fmt.Errorf("failed to set kv '%s': %w", key, err)
	}
	return nil
}

func (s *kvStorage) Delete(ctx context.Context, key string) error {
	return s.fs.deleteJSON(s.dir, key)
}

var _ interfaces.StorageManager = (*Manager)(nil)
