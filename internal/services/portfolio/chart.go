package portfolio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// RenderEquityChart renders a PNG line chart from daily results.
// Two series: Total Equity (blue solid) and Cash Balance (gray dashed).
// Returns raw PNG bytes.
func RenderEquityChart(results []models.DailyResult) ([]byte, error) {
	if len(results) < 2 {
		return nil, fmt.Errorf("need at least 2 daily results, got %d", len(results))
	}

	xValues := make([]time.Time, 0, len(results))
	equityY := make([]float64, 0, len(results))
	cashY := make([]float64, 0, len(results))

	for _, r := range results {
		t, err := time.Parse(models.DateFormat, r.Date)
		if err != nil {
			continue
		}
		xValues = append(xValues, t)
		equityY = append(equityY, r.TotalEquity)
		cashY = append(cashY, r.CashBalance)
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 dated results to chart")
	}

	equitySeries := chart.TimeSeries{
		Name: "Total Equity",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: equityY,
	}

	cashSeries := chart.TimeSeries{
		Name: "Cash Balance",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: cashY,
	}

	graph := chart.Chart{
		Title:  "Portfolio Equity",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			equitySeries,
			cashSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
