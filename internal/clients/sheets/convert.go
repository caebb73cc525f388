package sheets

import (
	"strings"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

func positionsToRows(positions []models.Position) []sheetRow {
	rows := make([]sheetRow, len(positions))
	for i, p := range positions {
		rows[i] = sheetRow{
			hdrDate:         p.Date,
			hdrTicker:       p.Ticker,
			hdrShares:       p.Shares,
			hdrBuyPrice:     p.BuyPrice,
			hdrCostBasis:    p.CostBasis,
			hdrStopLoss:     p.StopLoss,
			hdrCurrentPrice: floatCell(p.CurrentPrice),
			hdrTotalValue:   floatCell(p.TotalValue),
			hdrPnL:          floatCell(p.PnL),
			hdrAction:       p.Action,
			hdrCashBalance:  floatCell(p.CashBalance),
			hdrTotalEquity:  floatCell(p.TotalEquity),
		}
	}
	return rows
}

func rowsToPositions(rows []sheetRow) []models.Position {
	var positions []models.Position
	for _, row := range rows {
		ticker := rowString(row, hdrTicker)
		if ticker == "" {
			continue
		}
		shares, _ := rowInt(row, hdrShares)
		positions = append(positions, models.Position{
			Date:         rowString(row, hdrDate),
			Ticker:       ticker,
			Shares:       shares,
			BuyPrice:     rowFloatOrZero(row, hdrBuyPrice),
			CostBasis:    rowFloatOrZero(row, hdrCostBasis),
			StopLoss:     rowFloatOrZero(row, hdrStopLoss),
			CurrentPrice: rowFloatPtr(row, hdrCurrentPrice),
			TotalValue:   rowFloatPtr(row, hdrTotalValue),
			PnL:          rowFloatPtr(row, hdrPnL),
			Action:       rowString(row, hdrAction),
			CashBalance:  rowFloatPtr(row, hdrCashBalance),
			TotalEquity:  rowFloatPtr(row, hdrTotalEquity),
		})
	}
	return positions
}

func tradesToRows(trades []models.Trade) []sheetRow {
	rows := make([]sheetRow, len(trades))
	for i, t := range trades {
		rows[i] = sheetRow{
			hdrDate:         t.Date,
			hdrTicker:       t.Ticker,
			hdrSharesBought: intCell(t.SharesBought),
			hdrBuyPrice:     floatCell(t.BuyPrice),
			hdrCostBasis:    t.CostBasis,
			hdrPnL:          t.PnL,
			hdrReason:       t.Reason,
			hdrSharesSold:   intCell(t.SharesSold),
			hdrSellPrice:    floatCell(t.SellPrice),
		}
	}
	return rows
}

func rowsToTrades(rows []sheetRow) []models.Trade {
	var trades []models.Trade
	for _, row := range rows {
		ticker := rowString(row, hdrTicker)
		if ticker == "" {
			continue
		}
		trades = append(trades, models.Trade{
			Date:         rowString(row, hdrDate),
			Ticker:       ticker,
			SharesBought: rowIntPtr(row, hdrSharesBought),
			BuyPrice:     rowFloatPtr(row, hdrBuyPrice),
			CostBasis:    rowFloatOrZero(row, hdrCostBasis),
			PnL:          rowFloatOrZero(row, hdrPnL),
			Reason:       rowString(row, hdrReason),
			SharesSold:   rowIntPtr(row, hdrSharesSold),
			SellPrice:    rowFloatPtr(row, hdrSellPrice),
		})
	}
	return trades
}

// dailyResultsToRows writes the sheet's full header set. The analytics
// columns are blank when the local result carries no value for them.
func dailyResultsToRows(results []models.DailyResult) []sheetRow {
	rows := make([]sheetRow, len(results))
	for i, r := range results {
		rows[i] = sheetRow{
			hdrDate:        r.Date,
			hdrTotalEquity: r.TotalEquity,
			hdrCashBalance: r.CashBalance,
			hdrTotalPnL:    r.TotalPnL,
			hdrMaxDrawdown: floatCell(r.MaxDrawdown),
			hdrSharpeRatio: floatCell(r.SharpeRatio),
			hdrBenchmark:   floatCell(r.BenchmarkComparison),
		}
	}
	return rows
}

func rowsToDailyResults(rows []sheetRow) []models.DailyResult {
	var results []models.DailyResult
	for _, row := range rows {
		date := rowString(row, hdrDate)
		if date == "" {
			continue
		}
		results = append(results, models.DailyResult{
			Date:                date,
			TotalEquity:         rowFloatOrZero(row, hdrTotalEquity),
			CashBalance:         rowFloatOrZero(row, hdrCashBalance),
			TotalPnL:            rowFloatOrZero(row, hdrTotalPnL),
			MaxDrawdown:         rowFloatPtr(row, hdrMaxDrawdown),
			SharpeRatio:         rowFloatPtr(row, hdrSharpeRatio),
			BenchmarkComparison: rowFloatPtr(row, hdrBenchmark),
		})
	}
	return results
}

func recommendationsToRows(recs []models.Recommendation) []sheetRow {
	rows := make([]sheetRow, len(recs))
	for i, r := range recs {
		rows[i] = sheetRow{
			hdrID:             r.ID,
			hdrDate:           r.Date,
			hdrTicker:         r.Ticker,
			hdrAction:         r.Action,
			hdrShares:         r.Shares,
			hdrTargetPrice:    floatCell(r.TargetPrice),
			hdrStopLoss:       floatCell(r.StopLoss),
			hdrReasoning:      r.Reasoning,
			hdrExecuted:       yesNo(r.Executed),
			hdrExecutionPrice: floatCell(r.ExecutionPrice),
			hdrExecutionDate:  r.ExecutionDate,
			hdrExecutionNotes: r.ExecutionNotes,
		}
	}
	return rows
}

func rowsToRecommendations(rows []sheetRow) []models.Recommendation {
	var recs []models.Recommendation
	for _, row := range rows {
		ticker := rowString(row, hdrTicker)
		if ticker == "" {
			continue
		}
		shares, _ := rowInt(row, hdrShares)
		recs = append(recs, models.Recommendation{
			ID:             rowString(row, hdrID),
			Date:           rowString(row, hdrDate),
			Ticker:         ticker,
			Action:         strings.ToUpper(rowString(row, hdrAction)),
			Shares:         shares,
			TargetPrice:    rowFloatPtr(row, hdrTargetPrice),
			StopLoss:       rowFloatPtr(row, hdrStopLoss),
			Reasoning:      rowString(row, hdrReasoning),
			Executed:       strings.EqualFold(rowString(row, hdrExecuted), "YES"),
			ExecutionPrice: rowFloatPtr(row, hdrExecutionPrice),
			ExecutionDate:  rowString(row, hdrExecutionDate),
			ExecutionNotes: rowString(row, hdrExecutionNotes),
		})
	}
	return recs
}

func interactionsToRows(interactions []models.Interaction) []sheetRow {
	rows := make([]sheetRow, len(interactions))
	for i, it := range interactions {
		rows[i] = sheetRow{
			hdrID:             it.ID,
			hdrDate:           it.Date,
			hdrType:           it.Type,
			hdrPrompt:         it.Prompt,
			hdrResponse:       it.Response,
			hdrPortfolioValue: floatCell(it.PortfolioValue),
			hdrCashBalance:    floatCell(it.CashBalance),
		}
	}
	return rows
}

func rowsToInteractions(rows []sheetRow) []models.Interaction {
	var interactions []models.Interaction
	for _, row := range rows {
		id := rowString(row, hdrID)
		date := rowString(row, hdrDate)
		if id == "" && date == "" {
			continue
		}
		interactions = append(interactions, models.Interaction{
			ID:             id,
			Date:           date,
			Type:           rowString(row, hdrType),
			Prompt:         rowString(row, hdrPrompt),
			Response:       rowString(row, hdrResponse),
			PortfolioValue: rowFloatPtr(row, hdrPortfolioValue),
			CashBalance:    rowFloatPtr(row, hdrCashBalance),
		})
	}
	return interactions
}
