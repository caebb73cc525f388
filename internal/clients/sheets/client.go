// Package sheets provides a client for the spreadsheet web-app endpoint.
//
// The remote side is a single URL: GET ?action=getAllData pulls every
// collection, POST with an action field pushes whole collections. Pushes
// are last-write-wins with no retry or idempotency guarantee.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/common"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/interfaces"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 2 // requests per second
)

// Sync actions understood by the web app.
const (
	actionGetAllData       = "getAllData"
	actionSyncPositions    = "syncPositions"
	actionSyncTrades       = "syncTrades"
	actionSyncResults      = "syncDailyResults"
	actionSyncRecs         = "syncRecommendations"
	actionSyncInteractions = "syncChatGPTInteractions"
	actionSyncAll          = "syncAll"
)

// Client implements the SheetsClient interface
type Client struct {
	webAppURL  string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new sheets client for a web-app URL
func NewClient(webAppURL string, opts ...ClientOption) *Client {
	c := &Client{
		webAppURL: webAppURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a web-app error response
type APIError struct {
	StatusCode int
	Message    string
	Action     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sheets API error: %s (status: %d, action: %s)", e.Message, e.StatusCode, e.Action)
}

// syncResponse is the web app's standard envelope.
type syncResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   string    `json:"error"`
	Data    *pullData `json:"data"`
}

// pullData carries all five collections as sheet rows keyed by display
// headers.
type pullData struct {
	Positions       []sheetRow `json:"positions"`
	Trades          []sheetRow `json:"trades"`
	DailyResults    []sheetRow `json:"dailyResults"`
	Recommendations []sheetRow `json:"recommendations"`
	Interactions    []sheetRow `json:"interactions"`
}

// getAllData performs the rate-limited pull request.
func (c *Client) getAllData(ctx context.Context) (*syncResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.webAppURL + "?action=" + actionGetAllData

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("action", actionGetAllData).Msg("Sheets request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Action:     actionGetAllData,
		}
	}

	var out syncResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !out.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    out.Error,
			Action:     actionGetAllData,
		}
	}

	return &out, nil
}

// post performs a rate-limited POST with the given action and payload.
func (c *Client) post(ctx context.Context, action string, payload map[string]interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body := map[string]interface{}{"action": action}
	for k, v := range payload {
		body[k] = v
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webAppURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("action", action).Msg("Sheets request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
			Action:     action,
		}
	}

	var out syncResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !out.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    out.Error,
			Action:     action,
		}
	}

	return nil
}

// TestConnection probes the web app with a pull request.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.getAllData(ctx)
	return err
}

// Pull retrieves every collection from the sheet.
func (c *Client) Pull(ctx context.Context) (*models.Snapshot, error) {
	resp, err := c.getAllData(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &models.Snapshot{}
	if resp.Data != nil {
		snapshot.Positions = rowsToPositions(resp.Data.Positions)
		snapshot.Trades = rowsToTrades(resp.Data.Trades)
		snapshot.DailyResults = rowsToDailyResults(resp.Data.DailyResults)
		snapshot.Recommendations = rowsToRecommendations(resp.Data.Recommendations)
		snapshot.Interactions = rowsToInteractions(resp.Data.Interactions)
	}

	return snapshot, nil
}

// PushPositions replaces the positions sheet.
func (c *Client) PushPositions(ctx context.Context, positions []models.Position) error {
	return c.post(ctx, actionSyncPositions, map[string]interface{}{
		"positions": positionsToRows(positions),
	})
}

// PushTrades replaces the trades sheet.
func (c *Client) PushTrades(ctx context.Context, trades []models.Trade) error {
	return c.post(ctx, actionSyncTrades, map[string]interface{}{
		"trades": tradesToRows(trades),
	})
}

// PushDailyResults replaces the daily results sheet.
func (c *Client) PushDailyResults(ctx context.Context, results []models.DailyResult) error {
	return c.post(ctx, actionSyncResults, map[string]interface{}{
		"dailyResults": dailyResultsToRows(results),
	})
}

// PushRecommendations replaces the recommendations sheet.
func (c *Client) PushRecommendations(ctx context.Context, recs []models.Recommendation) error {
	return c.post(ctx, actionSyncRecs, map[string]interface{}{
		"recommendations": recommendationsToRows(recs),
	})
}

// PushInteractions replaces the interactions sheet.
func (c *Client) PushInteractions(ctx context.Context, interactions []models.Interaction) error {
	return c.post(ctx, actionSyncInteractions, map[string]interface{}{
		"interactions": interactionsToRows(interactions),
	})
}

// PushAll replaces every sheet in a single request.
func (c *Client) PushAll(ctx context.Context, snapshot *models.Snapshot) error {
	return c.post(ctx, actionSyncAll, map[string]interface{}{
		"positions":       positionsToRows(snapshot.Positions),
		"trades":          tradesToRows(snapshot.Trades),
		"dailyResults":    dailyResultsToRows(snapshot.DailyResults),
		"recommendations": recommendationsToRows(snapshot.Recommendations),
		"interactions":    interactionsToRows(snapshot.Interactions),
	})
}

// Ensure Client implements SheetsClient
var _ interfaces.SheetsClient = (*Client)(nil)
