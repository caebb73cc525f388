package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// sheetRow is one spreadsheet row keyed by display header. Values may come
// back as JSON numbers or strings depending on how the sheet formats cells.
type sheetRow map[string]interface{}

// Sheet display headers. The profit column is "P&L" here while CSV files
// use "PnL"; the existing spreadsheets depend on the ampersand form, so the
// two header sets must not be unified.
const (
	hdrDate         = "Date"
	hdrTicker       = "Ticker"
	hdrShares       = "Shares"
	hdrBuyPrice     = "Buy Price"
	hdrCostBasis    = "Cost Basis"
	hdrStopLoss     = "Stop Loss"
	hdrCurrentPrice = "Current Price"
	hdrTotalValue   = "Total Value"
	hdrPnL          = "P&L"
	hdrReason       = "Reason"
	hdrAction       = "Action"
	hdrCashBalance  = "Cash Balance"
	hdrTotalEquity  = "Total Equity"
	hdrSharesBought = "Shares Bought"
	hdrSharesSold   = "Shares Sold"
	hdrSellPrice    = "Sell Price"

	hdrTargetPrice    = "Target Price"
	hdrReasoning      = "Reasoning"
	hdrExecuted       = "Executed"
	hdrExecutionPrice = "Execution Price"
	hdrExecutionDate  = "Execution Date"
	hdrExecutionNotes = "Execution Notes"

	hdrID             = "ID"
	hdrType           = "Type"
	hdrPrompt         = "Prompt"
	hdrResponse       = "Response"
	hdrPortfolioValue = "Portfolio Value"

	hdrTotalPnL    = "Total P&L"
	hdrMaxDrawdown = "Max Drawdown"
	hdrSharpeRatio = "Sharpe Ratio"
	hdrBenchmark   = "Benchmark Comparison"
)

// rowString reads a cell as text.
func rowString(row sheetRow, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "YES"
		}
		return "NO"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// rowFloat reads a cell as a number, accepting both JSON numbers and
// numeric strings.
func rowFloat(row sheetRow, key string) (float64, bool) {
	switch v := row[key].(type) {
	case float64:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func rowFloatOrZero(row sheetRow, key string) float64 {
	v, _ := rowFloat(row, key)
	return v
}

func rowFloatPtr(row sheetRow, key string) *float64 {
	if v, ok := rowFloat(row, key); ok {
		return &v
	}
	return nil
}

func rowInt(row sheetRow, key string) (int, bool) {
	if v, ok := rowFloat(row, key); ok {
		return int(v), true
	}
	return 0, false
}

func rowIntPtr(row sheetRow, key string) *int {
	if v, ok := rowInt(row, key); ok {
		return &v
	}
	return nil
}

func floatCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func intCell(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}
