package models

// ImportResult summarizes an accepted CSV import. Short rows are dropped
// silently, so counts may be lower than the source line count.
type ImportResult struct {
	Positions    int `json:"positions"`
	Trades       int `json:"trades"`
	DailyResults int `json:"dailyResults"`
}
