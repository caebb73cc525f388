package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

func TestTestConnectionSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "getAllData", r.URL.Query().Get("action"))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	assert.NoError(t, client.TestConnection(context.Background()))
}

func TestTestConnectionHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "script not deployed", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	err := client.TestConnection(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "getAllData", apiErr.Action)
}

func TestTestConnectionEnvelopeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "spreadsheet not found",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	err := client.TestConnection(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "spreadsheet not found", apiErr.Message)
}

func TestPullTranslatesSheetRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"positions": []map[string]interface{}{
					{
						"Date": "2025-06-27", "Ticker": "ABEO", "Shares": 6,
						"Buy Price": 5.77, "Cost Basis": 34.62, "Stop Loss": 4.616,
						"Current Price": "5.8", "P&L": 0.18,
					},
					{"Date": "2025-06-27", "Ticker": ""}, // blank row, skipped
				},
				"trades": []map[string]interface{}{
					{
						"Date": "2025-07-03", "Ticker": "ABEO",
						"Shares Sold": 6, "Sell Price": 6, "Cost Basis": 34.62, "P&L": 1.38,
						"Reason": "ChatGPT Recommendation: take profits",
					},
				},
				"dailyResults": []map[string]interface{}{
					{
						"Date": "2025-06-27", "Total Equity": 104.5, "Cash Balance": 15.5,
						"Total P&L": 2.5, "Max Drawdown": -4.2, "Sharpe Ratio": 1.3,
					},
					{"Date": ""},
				},
				"recommendations": []map[string]interface{}{
					{
						"ID": "r1", "Date": "2025-07-01", "Ticker": "CADL",
						"Action": "buy", "Shares": 10, "Executed": "yes",
						"Execution Price": 4.25,
					},
				},
				"interactions": []map[string]interface{}{
					{"ID": "i1", "Date": "2025-06-27", "Type": "INITIAL_PORTFOLIO", "Portfolio Value": 77.12},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	snapshot, err := client.Pull(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Positions, 1)
	p := snapshot.Positions[0]
	assert.Equal(t, "ABEO", p.Ticker)
	assert.Equal(t, 6, p.Shares)
	require.NotNil(t, p.CurrentPrice, "numeric strings parse as numbers")
	assert.Equal(t, 5.8, *p.CurrentPrice)
	require.NotNil(t, p.PnL)
	assert.Equal(t, 0.18, *p.PnL)

	require.Len(t, snapshot.Trades, 1)
	tr := snapshot.Trades[0]
	assert.Nil(t, tr.SharesBought)
	require.NotNil(t, tr.SharesSold)
	assert.Equal(t, 6, *tr.SharesSold)
	assert.Equal(t, 1.38, tr.PnL)
	assert.Equal(t, "ChatGPT Recommendation: take profits", tr.Reason)

	require.Len(t, snapshot.DailyResults, 1)
	dr := snapshot.DailyResults[0]
	assert.Equal(t, 2.5, dr.TotalPnL)
	require.NotNil(t, dr.MaxDrawdown)
	assert.Equal(t, -4.2, *dr.MaxDrawdown)
	require.NotNil(t, dr.SharpeRatio)
	assert.Equal(t, 1.3, *dr.SharpeRatio)
	assert.Nil(t, dr.BenchmarkComparison, "absent analytics columns stay unset")

	require.Len(t, snapshot.Recommendations, 1)
	rec := snapshot.Recommendations[0]
	assert.Equal(t, "BUY", rec.Action, "actions are upper-cased on pull")
	assert.True(t, rec.Executed, "Executed accepts any case of YES")

	require.Len(t, snapshot.Interactions, 1)
	require.NotNil(t, snapshot.Interactions[0].PortfolioValue)
}

func TestPushPositionsBody(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	err := client.PushPositions(context.Background(), []models.Position{
		{Date: "2025-06-27", Ticker: "ABEO", Shares: 6, BuyPrice: 5.77,
			PnL: models.Float64Ptr(0.18)},
	})
	require.NoError(t, err)

	assert.Equal(t, "syncPositions", got["action"])
	rows := got["positions"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "ABEO", row["Ticker"])
	assert.Equal(t, 0.18, row["P&L"], "sheet rows use the ampersand header")
	assert.Equal(t, "", row["Current Price"], "missing optionals push as blank cells")
}

func TestPushRecommendationsExecutedAsYesNo(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	err := client.PushRecommendations(context.Background(), []models.Recommendation{
		{ID: "r1", Ticker: "ABEO", Action: "BUY", Shares: 6, Executed: true},
		{ID: "r2", Ticker: "CADL", Action: "SELL", Shares: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, "syncRecommendations", got["action"])
	rows := got["recommendations"].([]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, "YES", rows[0].(map[string]interface{})["Executed"])
	assert.Equal(t, "NO", rows[1].(map[string]interface{})["Executed"])
}

func TestPushDailyResultsAnalyticsColumns(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	err := client.PushDailyResults(context.Background(), []models.DailyResult{
		{Date: "2025-06-27", TotalEquity: 104.5, CashBalance: 15.5, TotalPnL: 2.5},
		{Date: "2025-06-28", TotalEquity: 106.0, CashBalance: 15.5, TotalPnL: 4.0,
			MaxDrawdown: models.Float64Ptr(-4.2), SharpeRatio: models.Float64Ptr(1.3)},
	})
	require.NoError(t, err)

	assert.Equal(t, "syncDailyResults", got["action"])
	rows := got["dailyResults"].([]interface{})

	// Unset analytics push as blank cells
	blank := rows[0].(map[string]interface{})
	assert.Equal(t, 2.5, blank["Total P&L"])
	assert.Equal(t, "", blank["Max Drawdown"])
	assert.Equal(t, "", blank["Sharpe Ratio"])
	assert.Equal(t, "", blank["Benchmark Comparison"])

	// Tracked analytics push their values
	filled := rows[1].(map[string]interface{})
	assert.Equal(t, -4.2, filled["Max Drawdown"])
	assert.Equal(t, 1.3, filled["Sharpe Ratio"])
	assert.Equal(t, "", filled["Benchmark Comparison"])
}

func TestPushTradesIncludesReason(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	err := client.PushTrades(context.Background(), []models.Trade{
		{Date: "2025-07-03", Ticker: "ABEO", SharesSold: models.IntPtr(6),
			SellPrice: models.Float64Ptr(6.00), CostBasis: 34.62, PnL: 1.38,
			Reason: "ChatGPT Recommendation: take profits"},
	})
	require.NoError(t, err)

	assert.Equal(t, "syncTrades", got["action"])
	row := got["trades"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "ChatGPT Recommendation: take profits", row["Reason"])
	assert.Equal(t, 1.38, row["P&L"])
}

func TestPushAllBundlesEveryCollection(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	err := client.PushAll(context.Background(), &models.Snapshot{
		Positions: []models.Position{{Ticker: "ABEO"}},
		Trades:    []models.Trade{{Ticker: "ABEO"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "syncAll", got["action"])
	for _, key := range []string{"positions", "trades", "dailyResults", "recommendations", "interactions"} {
		assert.Contains(t, got, key)
	}
}

func TestPushErrorCarriesAction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "quota exceeded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(100))
	err := client.PushTrades(context.Background(), []models.Trade{{Ticker: "ABEO"}})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "syncTrades", apiErr.Action)
	assert.Equal(t, "quota exceeded", apiErr.Message)
}
