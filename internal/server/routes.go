package server

import (
	"net/http"
	"time"

	"github.com/bigdaddyluke/ChatGPT-Micro-Cap-Experiment-LT/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Portfolio collections
	mux.HandleFunc("/api/positions", s.handlePositions)
	mux.HandleFunc("/api/trades", s.handleTrades)
	mux.HandleFunc("/api/results", s.handleDailyResults)

	// CSV import/export
	mux.HandleFunc("/api/import/portfolio", s.handleImportPortfolio)
	mux.HandleFunc("/api/import/trades", s.handleImportTrades)
	mux.HandleFunc("/api/export/portfolio", s.handleExportPortfolio)
	mux.HandleFunc("/api/export/trades", s.handleExportTrades)

	// Advisor
	mux.HandleFunc("/api/extract", s.handleExtract)
	mux.HandleFunc("/api/portfolio/initialize", s.handleInitializePortfolio)
	mux.HandleFunc("/api/recommendations/", s.routeRecommendations)
	mux.HandleFunc("/api/recommendations", s.handleRecommendationsRoot)
	mux.HandleFunc("/api/interactions", s.handleInteractionsRoot)

	// Sheet sync
	mux.HandleFunc("/api/sync/connect", s.handleSyncConnect)
	mux.HandleFunc("/api/sync/disconnect", s.handleSyncDisconnect)
	mux.HandleFunc("/api/sync/status", s.handleSyncStatus)
	mux.HandleFunc("/api/sync/push", s.handleSyncPush)
	mux.HandleFunc("/api/sync/pull", s.handleSyncPull)

	// Dashboard
	mux.HandleFunc("/api/dashboard/summary", s.handleDashboardSummary)
	mux.HandleFunc("/api/dashboard/chart", s.handleDashboardChart)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":       s.app.Config.Environment,
		"storage_data_path": s.app.Config.Storage.Path,
		"logging_level":     s.app.Config.Logging.Level,
		"sheets_configured": s.app.Config.Sheets.WebAppURL != "",
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
