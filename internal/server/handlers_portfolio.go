package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/services/impexp"
)

// maxCSVBytes caps uploaded CSV bodies.
const maxCSVBytes = 5 << 20 // 5MB

// handlePositions handles GET /api/positions.
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	positions, err := s.app.PortfolioService.Positions(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load positions: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

// handleTrades handles GET /api/trades.
func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	trades, err := s.app.PortfolioService.Trades(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load trades: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"trades": trades,
		"count":  len(trades),
	})
}

// handleDailyResults handles GET /api/results.
func (s *Server) handleDailyResults(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	results, err := s.app.PortfolioService.DailyResults(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load daily results: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"dailyResults": results,
		"count":        len(results),
	})
}

// readCSVBody reads a raw CSV request body.
func readCSVBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Body == nil {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return "", false
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCSVBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read request body: "+err.Error())
		return "", false
	}
	if len(body) == 0 {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return "", false
	}
	return string(body), true
}

// handleImportPortfolio handles POST /api/import/portfolio with a raw CSV body.
func (s *Server) handleImportPortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	content, ok := readCSVBody(w, r)
	if !ok {
		return
	}

	result, err := s.app.PortfolioService.ImportPortfolioCSV(r.Context(), content)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleImportTrades handles POST /api/import/trades with a raw CSV body.
func (s *Server) handleImportTrades(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	content, ok := readCSVBody(w, r)
	if !ok {
		return
	}

	result, err := s.app.PortfolioService.ImportTradesCSV(r.Context(), content)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// writeCSV writes a CSV download response.
func writeCSV(w http.ResponseWriter, filename, content string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}

// handleExportPortfolio handles GET /api/export/portfolio.
func (s *Server) handleExportPortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	content, err := s.app.PortfolioService.ExportPortfolioCSV(r.Context())
	if err != nil {
		if errors.Is(err, impexp.ErrNoData) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to export portfolio: "+err.Error())
		return
	}

	writeCSV(w, "portfolio.csv", content)
}

// handleExportTrades handles GET /api/export/trades.
func (s *Server) handleExportTrades(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	content, err := s.app.PortfolioService.ExportTradesCSV(r.Context())
	if err != nil {
		if errors.Is(err, impexp.ErrNoData) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to export trades: "+err.Error())
		return
	}

	writeCSV(w, "trades.csv", content)
}
