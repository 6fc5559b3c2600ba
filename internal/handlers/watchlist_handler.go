package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
)

// WatchlistService toggles and lists watched symbols.
type WatchlistService interface {
	List(ctx context.Context) ([]string, error)
	Toggle(ctx context.Context, symbol string) ([]string, bool, error)
}

// WatchlistHandler handles watchlist requests
type WatchlistHandler struct {
	service WatchlistService
	logger  arbor.ILogger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(service WatchlistService, logger arbor.ILogger) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
		logger:  logger,
	}
}

type toggleRequest struct {
	Symbol string `json:"symbol"`
}

// ListHandler handles GET /api/watchlist.
func (h *WatchlistHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	symbols, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Watchlist load failed")
		WriteError(w, http.StatusInternalServerError, "Failed to load watchlist")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": symbols,
	})
}

// ToggleHandler handles POST /api/watchlist. The symbol is added when absent
// and removed when present.
func (h *WatchlistHandler) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	symbols, added, err := h.service.Toggle(r.Context(), req.Symbol)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": symbols,
		"added":   added,
	})
}

// Handle routes /api/watchlist by method.
func (h *WatchlistHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.ListHandler(w, r)
	case http.MethodPost:
		h.ToggleHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
