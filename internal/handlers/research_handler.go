package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/common"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/render"
)

// ResearchRunner runs a deep dive for one ticker.
type ResearchRunner interface {
	DeepDive(ctx context.Context, ticker string) (*models.SearchResult, error)
}

// ReportSaver persists completed deep dives.
type ReportSaver interface {
	Save(ctx context.Context, ticker string, result *models.SearchResult) (*models.StoredReport, error)
}

// WatchlistChecker reports watchlist membership for a symbol.
type WatchlistChecker interface {
	Contains(ctx context.Context, symbol string) bool
}

// ResearchHandler handles deep dive research requests
type ResearchHandler struct {
	research  ResearchRunner
	reports   ReportSaver
	watchlist WatchlistChecker
	renderer  *render.Reports
	logger    arbor.ILogger
}

// NewResearchHandler creates a new research handler
func NewResearchHandler(research ResearchRunner, reports ReportSaver, watchlist WatchlistChecker, renderer *render.Reports, logger arbor.ILogger) *ResearchHandler {
	return &ResearchHandler{
		research:  research,
		reports:   reports,
		watchlist: watchlist,
		renderer:  renderer,
		logger:    logger,
	}
}

type researchRequest struct {
	Ticker string `json:"ticker"`
}

type researchResponse struct {
	ReportID string             `json:"report_id,omitempty"`
	Report   *render.ReportView `json:"report"`
}

// DeepDiveHandler handles POST /api/research. A transport failure surfaces as
// 502; a history write failure is logged and the fresh report is served
// anyway.
func (h *ResearchHandler) DeepDiveHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req researchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Ticker) == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	result, err := h.research.DeepDive(r.Context(), req.Ticker)
	if err != nil {
		var transportErr *models.TransportError
		if errors.As(err, &transportErr) {
			// The transport message is the slot's error message, not a
			// canned substitute.
			h.logger.Error().Err(err).Str("ticker", req.Ticker).Msg("Research request failed")
			WriteError(w, http.StatusBadGateway, transportErr.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ticker := common.NormalizeTicker(req.Ticker)

	var reportID string
	stored, err := h.reports.Save(r.Context(), ticker, result)
	if err != nil {
		// History is best effort; the report still renders.
		h.logger.Warn().Err(err).Str("ticker", ticker).Msg("Report not saved to history")
	}
	if stored != nil {
		reportID = stored.ID
	}

	view, err := h.renderer.Render(ticker, result, h.watchlist.Contains(r.Context(), ticker))
	if err != nil {
		h.logger.Error().Err(err).Str("ticker", ticker).Msg("Report rendering failed")
		WriteError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	WriteJSON(w, http.StatusOK, researchResponse{
		ReportID: reportID,
		Report:   view,
	})
}
