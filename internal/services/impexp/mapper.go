package impexp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// CSV column names. Note the profit column is "PnL" in CSV files while the
// remote sheet uses "P&L" (see clients/sheets). The two sets are kept
// separate on purpose; existing files on both sides depend on them.
const (
	ColDate         = "Date"
	ColTicker       = "Ticker"
	ColShares       = "Shares"
	ColBuyPrice     = "Buy Price"
	ColCostBasis    = "Cost Basis"
	ColStopLoss     = "Stop Loss"
	ColCurrentPrice = "Current Price"
	ColTotalValue   = "Total Value"
	ColPnL          = "PnL"
	ColReason       = "Reason"
	ColAction       = "Action"
	ColCashBalance  = "Cash Balance"
	ColTotalEquity  = "Total Equity"
	ColSharesBought = "Shares Bought"
	ColSharesSold   = "Shares Sold"
	ColSellPrice    = "Sell Price"
)

var (
	floatPrefixRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)
	intPrefixRe   = regexp.MustCompile(`^[+-]?\d+`)
)

// parseFloatLoose reads the longest numeric prefix of s and ignores any
// trailing text, so "12.5 USD" parses as 12.5. Returns ok=false when no
// prefix parses.
func parseFloatLoose(s string) (float64, bool) {
	m := floatPrefixRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseIntLoose reads the longest integer prefix of s.
func parseIntLoose(s string) (int, bool) {
	m := intPrefixRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// floatOrZero parses a required numeric field, defaulting to zero.
func floatOrZero(s string) float64 {
	v, _ := parseFloatLoose(s)
	return v
}

// floatPtr parses an optional numeric field, returning nil when absent
// or unparseable.
func floatPtr(s string) *float64 {
	if v, ok := parseFloatLoose(s); ok {
		return &v
	}
	return nil
}

// intPtr parses an optional integer field, returning nil when absent.
func intPtr(s string) *int {
	if s == "" {
		return nil
	}
	if v, ok := parseIntLoose(s); ok {
		return &v
	}
	return nil
}

// MapPortfolio classifies portfolio CSV rows into positions and daily
// results. A row whose ticker is the TOTAL sentinel becomes a DailyResult;
// every other row becomes a Position. Rows shorter than the header are
// skipped silently.
func MapPortfolio(table *Table) ([]models.Position, []models.DailyResult) {
	var positions []models.Position
	var results []models.DailyResult

	for _, row := range table.Rows {
		m, ok := table.rowMap(row)
		if !ok {
			continue
		}

		if m[ColTicker] == models.TickerTotal {
			results = append(results, models.DailyResult{
				Date:        m[ColDate],
				TotalEquity: floatOrZero(m[ColTotalEquity]),
				CashBalance: floatOrZero(m[ColCashBalance]),
				TotalPnL:    floatOrZero(m[ColPnL]),
			})
			continue
		}

		shares, _ := parseIntLoose(m[ColShares])
		positions = append(positions, models.Position{
			Date:         m[ColDate],
			Ticker:       m[ColTicker],
			Shares:       shares,
			BuyPrice:     floatOrZero(m[ColBuyPrice]),
			CostBasis:    floatOrZero(m[ColCostBasis]),
			StopLoss:     floatOrZero(m[ColStopLoss]),
			CurrentPrice: floatPtr(m[ColCurrentPrice]),
			TotalValue:   floatPtr(m[ColTotalValue]),
			PnL:          floatPtr(m[ColPnL]),
			Action:       m[ColAction],
			CashBalance:  floatPtr(m[ColCashBalance]),
			TotalEquity:  floatPtr(m[ColTotalEquity]),
		})
	}

	return positions, results
}

// MapTrades maps trade-log CSV rows. Buy and sell legs are optional per
// row; required numerics default to zero.
func MapTrades(table *Table) []models.Trade {
	var trades []models.Trade

	for _, row := range table.Rows {
		m, ok := table.rowMap(row)
		if !ok {
			continue
		}

		trades = append(trades, models.Trade{
			Date:         m[ColDate],
			Ticker:       m[ColTicker],
			SharesBought: intPtr(m[ColSharesBought]),
			BuyPrice:     floatPtr(m[ColBuyPrice]),
			CostBasis:    floatOrZero(m[ColCostBasis]),
			PnL:          floatOrZero(m[ColPnL]),
			Reason:       m[ColReason],
			SharesSold:   intPtr(m[ColSharesSold]),
			SellPrice:    floatPtr(m[ColSellPrice]),
		})
	}

	return trades
}
