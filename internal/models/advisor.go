package models

// Interaction types recorded against advisor conversations.
const (
	InteractionInitialPortfolio = "INITIAL_PORTFOLIO"
	InteractionDailyUpdate      = "DAILY_UPDATE"
	InteractionDeepResearch     = "DEEP_RESEARCH"
	InteractionOther            = "OTHER"
)

// ValidInteractionTypes is the set of accepted interaction type values.
var ValidInteractionTypes = map[string]bool{
	InteractionInitialPortfolio: true,
	InteractionDailyUpdate:      true,
	InteractionDeepResearch:     true,
	InteractionOther:            true,
}

// ValidActions is the set of accepted recommendation actions.
var ValidActions = map[string]bool{
	ActionBuy:  true,
	ActionSell: true,
	ActionHold: true,
}

// Recommendation is an advisor trade suggestion. It starts pending and is
// terminally resolved exactly once: executed with a price, or skipped with
// notes explaining why.
type Recommendation struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	Ticker         string   `json:"ticker"`
	Action         string   `json:"action"`
	Shares         int      `json:"shares"`
	TargetPrice    *float64 `json:"targetPrice,omitempty"`
	StopLoss       *float64 `json:"stopLoss,omitempty"`
	Reasoning      string   `json:"reasoning"`
	Executed       bool     `json:"executed"`
	ExecutionPrice *float64 `json:"executionPrice,omitempty"`
	ExecutionDate  string   `json:"executionDate,omitempty"`
	ExecutionNotes string   `json:"executionNotes,omitempty"`
}

// Resolved reports whether the recommendation has reached a terminal state.
// Skipped recommendations keep Executed false but carry execution notes.
func (r *Recommendation) Resolved() bool {
	return r.Executed || r.ExecutionNotes != ""
}

// Interaction is a logged advisor conversation turn.
type Interaction struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	Type           string   `json:"type"`
	Prompt         string   `json:"prompt"`
	Response       string   `json:"response"`
	PortfolioValue *float64 `json:"portfolioValue,omitempty"`
	CashBalance    *float64 `json:"cashBalance,omitempty"`
}
