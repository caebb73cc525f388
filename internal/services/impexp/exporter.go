package impexp

import (
	"errors"
	"strconv"
	"strings"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// ErrNoData is returned when an export is requested for an empty collection.
// No file is produced in that case.
var ErrNoData = errors.New("no data to export")

// positionColumns is the fixed portfolio CSV header, in file order.
var positionColumns = []string{
	ColDate, ColTicker, ColShares, ColBuyPrice, ColCostBasis, ColStopLoss,
	ColCurrentPrice, ColTotalValue, ColPnL, ColAction, ColCashBalance, ColTotalEquity,
}

// tradeColumns is the fixed trade-log CSV header, in file order.
var tradeColumns = []string{
	ColDate, ColTicker, ColSharesBought, ColBuyPrice, ColCostBasis, ColPnL,
	ColReason, ColSharesSold, ColSellPrice,
}

// csvField renders a value for CSV output. Strings containing commas are
// wrapped in double quotes; embedded quotes are not escaped, matching the
// parser's limits.
func csvField(s string) string {
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func joinRow(fields []string) string {
	for i, f := range fields {
		fields[i] = csvField(f)
	}
	return strings.Join(fields, ",")
}

// ExportPositions renders positions to portfolio CSV.
func ExportPositions(positions []models.Position) (string, error) {
	if len(positions) == 0 {
		return "", ErrNoData
	}

	lines := []string{strings.Join(positionColumns, ",")}
	for _, p := range positions {
		lines = append(lines, joinRow([]string{
			p.Date,
			p.Ticker,
			strconv.Itoa(p.Shares),
			formatFloat(p.BuyPrice),
			formatFloat(p.CostBasis),
			formatFloat(p.StopLoss),
			formatFloatPtr(p.CurrentPrice),
			formatFloatPtr(p.TotalValue),
			formatFloatPtr(p.PnL),
			p.Action,
			formatFloatPtr(p.CashBalance),
			formatFloatPtr(p.TotalEquity),
		}))
	}

	return strings.Join(lines, "\n"), nil
}

// ExportTrades renders trades to trade-log CSV.
func ExportTrades(trades []models.Trade) (string, error) {
	if len(trades) == 0 {
		return "", ErrNoData
	}

	lines := []string{strings.Join(tradeColumns, ",")}
	for _, t := range trades {
		lines = append(lines, joinRow([]string{
			t.Date,
			t.Ticker,
			formatIntPtr(t.SharesBought),
			formatFloatPtr(t.BuyPrice),
			formatFloat(t.CostBasis),
			formatFloat(t.PnL),
			t.Reason,
			formatIntPtr(t.SharesSold),
			formatFloatPtr(t.SellPrice),
		}))
	}

	return strings.Join(lines, "\n"), nil
}
