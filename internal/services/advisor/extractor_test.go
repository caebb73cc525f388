package advisor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPositionsSingleStock(t *testing.T) {
	positions, err := ExtractPositions("ABEO - 6 shares at $5.77")
	require.NoError(t, err)
	require.Len(t, positions, 1)

	p := positions[0]
	assert.Equal(t, "ABEO", p.Ticker)
	assert.Equal(t, 6, p.Shares)
	assert.Equal(t, 5.77, p.BuyPrice)
	assert.InDelta(t, 34.62, p.CostBasis, 0.001)
	assert.True(t, math.Abs(p.StopLoss-4.616) < 0.01, "stop loss should be 80%% of price, got %v", p.StopLoss)
	assert.NotEmpty(t, p.Date)
}

func TestExtractPositionsMultipleStocks(t *testing.T) {
	text := "ABEO: 6 shares at $5.77. CADL: 10 shares at $4.25."
	positions, err := ExtractPositions(text)
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.Equal(t, "ABEO", positions[0].Ticker)
	assert.Equal(t, "CADL", positions[1].Ticker)
	assert.Equal(t, 10, positions[1].Shares)
	assert.Equal(t, 4.25, positions[1].BuyPrice)
}

func TestExtractPositionsLowercaseTicker(t *testing.T) {
	positions, err := ExtractPositions("abeo looks cheap, 6 shares at 5.77")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "ABEO", positions[0].Ticker)
}

func TestExtractPositionsLeftmostWordWinsTickerGroup(t *testing.T) {
	// Known limit of the heuristic: an earlier 2-5 letter word beats the
	// real ticker. Callers preview extractions before committing them.
	positions, err := ExtractPositions("buy ABEO, 6 shares at $5.77")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "BUY", positions[0].Ticker)
}

func TestExtractPositionsNoMatches(t *testing.T) {
	_, err := ExtractPositions("The market looks choppy, stay in cash for now.")
	assert.ErrorIs(t, err, ErrNoMatches)
}

func TestExtractPositionsEmptyText(t *testing.T) {
	_, err := ExtractPositions("")
	assert.ErrorIs(t, err, ErrNoMatches)
}

func TestExtractPositionsRejectsZeroShares(t *testing.T) {
	_, err := ExtractPositions("ABEO: 0 shares at $5.77")
	assert.ErrorIs(t, err, ErrNoMatches)
}

func TestExtractPositionsRejectsZeroPrice(t *testing.T) {
	_, err := ExtractPositions("ABEO: 6 shares at $0")
	assert.ErrorIs(t, err, ErrNoMatches)
}
