// Package advisor manages recommendations, interaction logs, and position
// extraction from free-form advisor text.
package advisor

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
)

// ErrNoMatches is returned when no candidate stocks are found in the text.
var ErrNoMatches = errors.New("could not parse any stocks from the response, add positions manually")

// stockPattern matches "TICKER ... N shares ... $PRICE" in prose. It is a
// best-effort heuristic over unstructured advisor text: no deduplication,
// no ticker validation, and phrasing it doesn't anticipate is simply missed.
var stockPattern = regexp.MustCompile(`(?i)([A-Z]{2,5})[^\d]*(\d+)\s*shares?[^\d]*\$?(\d+\.?\d*)`)

// ExtractPositions scans advisor text for stock mentions and builds
// candidate positions dated today. The stop loss defaults to 80% of the
// mentioned price. Zero usable matches is an error, not an empty result.
func ExtractPositions(text string) ([]models.Position, error) {
	var positions []models.Position

	for _, m := range stockPattern.FindAllStringSubmatch(text, -1) {
		shares, err := strconv.Atoi(m[2])
		if err != nil || shares <= 0 {
			continue
		}
		price, err := strconv.ParseFloat(m[3], 64)
		if err != nil || price <= 0 {
			continue
		}

		positions = append(positions, models.Position{
			Date:      models.Today(),
			Ticker:    strings.ToUpper(m[1]),
			Shares:    shares,
			BuyPrice:  price,
			CostBasis: float64(shares) * price,
			StopLoss:  price * 0.8,
		})
	}

	if len(positions) == 0 {
		return nil, ErrNoMatches
	}

	return positions, nil
}
