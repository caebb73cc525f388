package impexp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

func TestExportPositionsEmpty(t *testing.T) {
	_, err := ExportPositions(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExportTradesEmpty(t *testing.T) {
	_, err := ExportTrades([]models.Trade{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExportPositionsHeaderAndRow(t *testing.T) {
	out, err := ExportPositions([]models.Position{
		{
			Date: "2025-06-27", Ticker: "ABEO", Shares: 6,
			BuyPrice: 5.77, CostBasis: 34.62, StopLoss: 4.616,
			CurrentPrice: models.Float64Ptr(5.8),
			Action:       "BUY",
		},
	})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, portfolioHeader, lines[0])
	assert.Equal(t, "2025-06-27,ABEO,6,5.77,34.62,4.616,5.8,,,BUY,,", lines[1])
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestExportQuotesCommaFields(t *testing.T) {
	out, err := ExportPositions([]models.Position{
		{Date: "2025-06-27", Ticker: "ABEO, Inc", Shares: 1},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `"ABEO, Inc"`)
}

func TestExportTradesNilLegsRenderEmpty(t *testing.T) {
	out, err := ExportTrades([]models.Trade{
		{
			Date: "2025-07-03", Ticker: "ABEO",
			CostBasis: 34.62, PnL: 1.38,
			SharesSold: models.IntPtr(6), SellPrice: models.Float64Ptr(6),
		},
	})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Ticker,Shares Bought,Buy Price,Cost Basis,PnL,Reason,Shares Sold,Sell Price", lines[0])
	assert.Equal(t, "2025-07-03,ABEO,,,34.62,1.38,,6,6", lines[1])
}

func TestExportTradesReasonRoundTrip(t *testing.T) {
	original := []models.Trade{
		{
			Date: "2025-06-27", Ticker: "ABEO",
			SharesBought: models.IntPtr(6), BuyPrice: models.Float64Ptr(5.77),
			CostBasis: 34.62,
			Reason:    "ChatGPT Recommendation: FDA catalyst, strong momentum",
		},
	}

	out, err := ExportTrades(original)
	require.NoError(t, err)
	assert.Contains(t, out, `"ChatGPT Recommendation: FDA catalyst, strong momentum"`)

	table, err := Parse(out)
	require.NoError(t, err)
	trades := MapTrades(table)
	require.Len(t, trades, 1)
	assert.Equal(t, original[0], trades[0])
}

func TestExportImportRoundTrip(t *testing.T) {
	original := []models.Position{
		{
			Date: "2025-06-27", Ticker: "ABEO", Shares: 6,
			BuyPrice: 5.77, CostBasis: 34.62, StopLoss: 4.616,
			CurrentPrice: models.Float64Ptr(5.8),
			TotalValue:   models.Float64Ptr(34.8),
			PnL:          models.Float64Ptr(0.18),
			Action:       "BUY",
		},
		{
			Date: "2025-06-27", Ticker: "CADL", Shares: 10,
			BuyPrice: 4.25, CostBasis: 42.5, StopLoss: 3.4,
		},
	}

	out, err := ExportPositions(original)
	require.NoError(t, err)

	table, err := Parse(out)
	require.NoError(t, err)
	positions, results := MapPortfolio(table)

	assert.Empty(t, results)
	require.Len(t, positions, 2)
	assert.Equal(t, original[0], positions[0])
	assert.Equal(t, original[1], positions[1])
}
