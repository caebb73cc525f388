package server

import (
	"net/http"
	"strings"
)

// handleSyncConnect handles POST /api/sync/connect. The body URL is
// optional; an empty one re-probes the stored URL.
func (s *Server) handleSyncConnect(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		URL string `json:"url"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	status, err := s.app.SyncService.Connect(r.Context(), body.URL)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, status)
}

// handleSyncDisconnect handles POST /api/sync/disconnect.
func (s *Server) handleSyncDisconnect(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := s.app.SyncService.Disconnect(r.Context()); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to disconnect: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleSyncStatus handles GET /api/sync/status.
func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	status, err := s.app.SyncService.Status(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to get sync status: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, status)
}

// handleSyncPush handles POST /api/sync/push. The target defaults to "all".
func (s *Server) handleSyncPush(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Target string `json:"target"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	target := strings.TrimSpace(body.Target)
	if target == "" {
		target = "all"
	}

	status, err := s.app.SyncService.Push(r.Context(), target)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, status)
}

// handleSyncPull handles POST /api/sync/pull. The pulled snapshot replaces
// every local collection.
func (s *Server) handleSyncPull(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	snapshot, err := s.app.SyncService.Pull(r.Context())
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Sheet pull failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}
