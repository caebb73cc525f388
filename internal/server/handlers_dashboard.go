package server

import "net/http"

// handleDashboardSummary handles GET /api/dashboard/summary.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary, err := s.app.PortfolioService.Summary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to compute summary: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// handleDashboardChart handles GET /api/dashboard/chart, returning the
// equity curve as a PNG.
func (s *Server) handleDashboardChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	data, err := s.app.PortfolioService.RenderEquityChart(r.Context())
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to render chart: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
