// Package models defines the core data types for the micro-cap tracker.
package models

import "time"

// DateFormat is the wire format for all date fields.
const DateFormat = "2006-01-02"

// TickerTotal is the sentinel ticker marking a portfolio summary row.
// Rows with this ticker carry equity totals rather than a holding.
const TickerTotal = "TOTAL"

// Trade actions.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
	ActionHold = "HOLD"
)

// Position represents a single portfolio holding on a given date.
// Required numeric fields default to zero when absent from imported data.
// Optional fields are pointers so that "not recorded" survives a round trip
// instead of collapsing to zero.
type Position struct {
	Date         string   `json:"date"`
	Ticker       string   `json:"ticker"`
	Shares       int      `json:"shares"`
	BuyPrice     float64  `json:"buyPrice"`
	CostBasis    float64  `json:"costBasis"`
	StopLoss     float64  `json:"stopLoss"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	TotalValue   *float64 `json:"totalValue,omitempty"`
	PnL          *float64 `json:"pnl,omitempty"`
	Action       string   `json:"action,omitempty"`
	CashBalance  *float64 `json:"cashBalance,omitempty"`
	TotalEquity  *float64 `json:"totalEquity,omitempty"`
}

// IsTotal reports whether the position is a summary sentinel row.
func (p *Position) IsTotal() bool {
	return p.Ticker == TickerTotal
}

// Trade represents one side of an executed trade. A buy populates
// SharesBought/BuyPrice, a sell populates SharesSold/SellPrice. Reason
// records why the trade happened, typically citing the advisor
// recommendation that triggered it.
type Trade struct {
	Date         string   `json:"date"`
	Ticker       string   `json:"ticker"`
	SharesBought *int     `json:"sharesBought,omitempty"`
	BuyPrice     *float64 `json:"buyPrice,omitempty"`
	CostBasis    float64  `json:"costBasis"`
	PnL          float64  `json:"pnl"`
	Reason       string   `json:"reason,omitempty"`
	SharesSold   *int     `json:"sharesSold,omitempty"`
	SellPrice    *float64 `json:"sellPrice,omitempty"`
}

// DailyResult is the end-of-day equity summary derived from TOTAL rows.
// The analytics fields are not computed locally but are preserved when the
// remote sheet carries them.
type DailyResult struct {
	Date                string   `json:"date"`
	TotalEquity         float64  `json:"totalEquity"`
	CashBalance         float64  `json:"cashBalance"`
	TotalPnL            float64  `json:"totalPnL"`
	MaxDrawdown         *float64 `json:"maxDrawdown,omitempty"`
	SharpeRatio         *float64 `json:"sharpeRatio,omitempty"`
	BenchmarkComparison *float64 `json:"benchmarkComparison,omitempty"`
}

// Holdings returns the positions excluding TOTAL sentinel rows.
func Holdings(positions []Position) []Position {
	out := make([]Position, 0, len(positions))
	for _, p := range positions {
		if !p.IsTotal() {
			out = append(out, p)
		}
	}
	return out
}

// Today returns the current date in wire format.
func Today() string {
	return time.Now().Format(DateFormat)
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
