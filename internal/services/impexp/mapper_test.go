package impexp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portfolioHeader = "Date,Ticker,Shares,Buy Price,Cost Basis,Stop Loss,Current Price,Total Value,PnL,Action,Cash Balance,Total Equity"

func parsePortfolio(t *testing.T, lines ...string) *Table {
	t.Helper()
	table, err := Parse(strings.Join(append([]string{portfolioHeader}, lines...), "\n"))
	require.NoError(t, err)
	return table
}

func TestMapPortfolioPositionRow(t *testing.T) {
	table := parsePortfolio(t,
		"2025-06-27,ABEO,6,5.77,34.62,4.616,5.8,34.8,0.18,BUY,,")

	positions, results := MapPortfolio(table)
	require.Len(t, positions, 1)
	assert.Empty(t, results)

	p := positions[0]
	assert.Equal(t, "ABEO", p.Ticker)
	assert.Equal(t, 6, p.Shares)
	assert.Equal(t, 5.77, p.BuyPrice)
	assert.Equal(t, 4.616, p.StopLoss)
	require.NotNil(t, p.CurrentPrice)
	assert.Equal(t, 5.8, *p.CurrentPrice)
	assert.Equal(t, "BUY", p.Action)

	// Empty optional fields stay nil rather than zero
	assert.Nil(t, p.CashBalance)
	assert.Nil(t, p.TotalEquity)
}

func TestMapPortfolioTotalSentinel(t *testing.T) {
	table := parsePortfolio(t,
		"2025-06-27,ABEO,6,5.77,34.62,4.616,,,,,,",
		"2025-06-27,TOTAL,,,,,,,2.5,,15.5,104.5")

	positions, results := MapPortfolio(table)
	require.Len(t, positions, 1)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "2025-06-27", r.Date)
	assert.Equal(t, 104.5, r.TotalEquity)
	assert.Equal(t, 15.5, r.CashBalance)
	assert.Equal(t, 2.5, r.TotalPnL)
}

func TestMapPortfolioSkipsShortRows(t *testing.T) {
	table := parsePortfolio(t,
		"2025-06-27,ABEO", // short row, dropped whole
		"2025-06-27,CADL,10,4.25,42.5,3.4,,,,,,")

	positions, results := MapPortfolio(table)
	require.Len(t, positions, 1)
	assert.Empty(t, results)
	assert.Equal(t, "CADL", positions[0].Ticker)
}

func TestMapPortfolioMissingNumericsDefaultToZero(t *testing.T) {
	table := parsePortfolio(t,
		"2025-06-27,ABEO,,,,,,,,,,")

	positions, _ := MapPortfolio(table)
	require.Len(t, positions, 1)

	p := positions[0]
	assert.Equal(t, 0, p.Shares)
	assert.Equal(t, 0.0, p.BuyPrice)
	assert.Equal(t, 0.0, p.CostBasis)
	assert.Equal(t, 0.0, p.StopLoss)
	assert.Nil(t, p.CurrentPrice)
	assert.Nil(t, p.PnL)
}

func TestParseFloatLoose(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{"12.5 USD", 12.5, true},
		{"-3.4", -3.4, true},
		{".5", 0.5, true},
		{"  7 ", 7, true},
		{"$5.77", 0, false}, // leading symbol defeats the prefix match
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseFloatLoose(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestMapTrades(t *testing.T) {
	table, err := Parse(strings.Join([]string{
		"Date,Ticker,Shares Bought,Buy Price,Cost Basis,PnL,Reason,Shares Sold,Sell Price",
		`2025-06-27,ABEO,6,5.77,34.62,0,"ChatGPT Recommendation: FDA catalyst",,`,
		"2025-07-03,ABEO,,,34.62,1.38,,6,6",
	}, "\n"))
	require.NoError(t, err)

	trades := MapTrades(table)
	require.Len(t, trades, 2)

	buy := trades[0]
	require.NotNil(t, buy.SharesBought)
	assert.Equal(t, 6, *buy.SharesBought)
	require.NotNil(t, buy.BuyPrice)
	assert.Equal(t, 5.77, *buy.BuyPrice)
	assert.Equal(t, "ChatGPT Recommendation: FDA catalyst", buy.Reason)
	assert.Nil(t, buy.SharesSold)
	assert.Nil(t, buy.SellPrice)

	sell := trades[1]
	assert.Nil(t, sell.SharesBought)
	require.NotNil(t, sell.SharesSold)
	assert.Equal(t, 6, *sell.SharesSold)
	assert.Equal(t, 1.38, sell.PnL)
	assert.Empty(t, sell.Reason)
}

func TestMapPortfolioQuotedTickerField(t *testing.T) {
	table := parsePortfolio(t,
		`2025-06-27,"ABEO, Inc",6,5.77,34.62,4.616,,,,,,`)

	positions, _ := MapPortfolio(table)
	require.Len(t, positions, 1)
	assert.Equal(t, "ABEO, Inc", positions[0].Ticker)
}
