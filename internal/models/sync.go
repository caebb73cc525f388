package models

// Snapshot bundles all five collections for full push/pull against the
// remote spreadsheet.
type Snapshot struct {
	Positions       []Position       `json:"positions"`
	Trades          []Trade          `json:"trades"`
	DailyResults    []DailyResult    `json:"dailyResults"`
	Recommendations []Recommendation `json:"recommendations"`
	Interactions    []Interaction    `json:"interactions"`
}

// SyncStatus describes the current remote connection state.
type SyncStatus struct {
	Connected  bool   `json:"connected"`
	WebAppURL  string `json:"webAppUrl,omitempty"`
	LastSync   string `json:"lastSync,omitempty"`
	LastError  string `json:"lastError,omitempty"`
	LastAction string `json:"lastAction,omitempty"`
}

// DashboardSummary holds the computed aggregates for the dashboard view.
type DashboardSummary struct {
	TotalEquity     float64  `json:"totalEquity"`
	CashBalance     float64  `json:"cashBalance"`
	TotalPnL        float64  `json:"totalPnL"`
	TotalReturnPct  *float64 `json:"totalReturnPct,omitempty"`
	ActivePositions int      `json:"activePositions"`
	HoldingsValue   float64  `json:"holdingsValue"`
	HoldingsPnL     float64  `json:"holdingsPnL"`
	NearStopLoss    []string `json:"nearStopLoss,omitempty"`
	AsOf            string   `json:"asOf,omitempty"`
}
