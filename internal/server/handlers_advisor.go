package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/models"
	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/services/advisor"
)

// handleExtract handles POST /api/extract. It previews the positions that
// would be created from advisor text without writing anything.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	positions, err := s.app.AdvisorService.ExtractPositions(body.Text)
	if err != nil {
		if errors.Is(err, advisor.ErrNoMatches) {
			WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

// handleInitializePortfolio handles POST /api/portfolio/initialize. It
// extracts positions from an advisor response, replaces the portfolio, and
// records the conversation.
func (s *Server) handleInitializePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Prompt       string  `json:"prompt"`
		Response     string  `json:"response"`
		StartingCash float64 `json:"startingCash"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Response) == "" {
		WriteError(w, http.StatusBadRequest, "response is required")
		return
	}

	positions, err := s.app.AdvisorService.InitializePortfolio(r.Context(), body.Prompt, body.Response, body.StartingCash)
	if err != nil {
		if errors.Is(err, advisor.ErrNoMatches) {
			WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to initialize portfolio: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

// handleRecommendationsRoot dispatches GET /api/recommendations (list) and
// POST /api/recommendations (add).
func (s *Server) handleRecommendationsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleRecommendationList(w, r)
	case http.MethodPost:
		s.handleRecommendationAdd(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// routeRecommendations dispatches /api/recommendations/{id}/{action}.
func (s *Server) routeRecommendations(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/recommendations/")
	if path == "" {
		s.handleRecommendationsRoot(w, r)
		return
	}

	switch {
	case strings.HasSuffix(path, "/execute"):
		s.handleRecommendationExecute(w, r, PathParam(r, "/api/recommendations/", "/execute"))
	case strings.HasSuffix(path, "/skip"):
		s.handleRecommendationSkip(w, r, PathParam(r, "/api/recommendations/", "/skip"))
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

func (s *Server) handleRecommendationList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.app.AdvisorService.Recommendations(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list recommendations: "+err.Error())
		return
	}

	// Optional pending filter
	if r.URL.Query().Get("pending") == "true" {
		pending := make([]models.Recommendation, 0, len(recs))
		for _, rec := range recs {
			if !rec.Resolved() {
				pending = append(pending, rec)
			}
		}
		recs = pending
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}

func (s *Server) handleRecommendationAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Ticker      string   `json:"ticker"`
		Action      string   `json:"action"`
		Shares      int      `json:"shares"`
		TargetPrice *float64 `json:"targetPrice"`
		StopLoss    *float64 `json:"stopLoss"`
		Reasoning   string   `json:"reasoning"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	rec, err := s.app.AdvisorService.AddRecommendation(r.Context(), models.Recommendation{
		Ticker:      body.Ticker,
		Action:      strings.ToUpper(body.Action),
		Shares:      body.Shares,
		TargetPrice: body.TargetPrice,
		StopLoss:    body.StopLoss,
		Reasoning:   body.Reasoning,
	})
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleRecommendationExecute(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Price float64 `json:"price"`
		Notes string  `json:"notes"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	rec, err := s.app.AdvisorService.ExecuteRecommendation(r.Context(), id, body.Price, body.Notes)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRecommendationSkip(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Notes string `json:"notes"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	rec, err := s.app.AdvisorService.SkipRecommendation(r.Context(), id, body.Notes)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, rec)
}

// handleInteractionsRoot dispatches GET /api/interactions (list) and
// POST /api/interactions (log).
func (s *Server) handleInteractionsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleInteractionList(w, r)
	case http.MethodPost:
		s.handleInteractionLog(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleInteractionList(w http.ResponseWriter, r *http.Request) {
	interactions, err := s.app.AdvisorService.Interactions(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list interactions: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"interactions": interactions,
		"count":        len(interactions),
	})
}

func (s *Server) handleInteractionLog(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type           string   `json:"type"`
		Prompt         string   `json:"prompt"`
		Response       string   `json:"response"`
		PortfolioValue *float64 `json:"portfolioValue"`
		CashBalance    *float64 `json:"cashBalance"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Prompt) == "" && strings.TrimSpace(body.Response) == "" {
		WriteError(w, http.StatusBadRequest, "prompt or response is required")
		return
	}

	interaction, err := s.app.AdvisorService.LogInteraction(r.Context(), models.Interaction{
		Type:           strings.ToUpper(body.Type),
		Prompt:         body.Prompt,
		Response:       body.Response,
		PortfolioValue: body.PortfolioValue,
		CashBalance:    body.CashBalance,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to log interaction: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, interaction)
}
