package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/render"
)

// ReportHistory reads and deletes stored deep dives.
type ReportHistory interface {
	Get(ctx context.Context, id string) (*models.StoredReport, error)
	ListRecent(ctx context.Context, limit int) ([]*models.StoredReport, error)
	ListByTicker(ctx context.Context, ticker string) ([]*models.StoredReport, error)
	Delete(ctx context.Context, id string) error
}

// ReportsHandler handles report history requests
type ReportsHandler struct {
	history   ReportHistory
	watchlist WatchlistChecker
	renderer  *render.Reports
	logger    arbor.ILogger
}

// NewReportsHandler creates a new report history handler
func NewReportsHandler(history ReportHistory, watchlist WatchlistChecker, renderer *render.Reports, logger arbor.ILogger) *ReportsHandler {
	return &ReportsHandler{
		history:   history,
		watchlist: watchlist,
		renderer:  renderer,
		logger:    logger,
	}
}

// reportSummary is the listing row: metadata plus the report title, without
// the full rendered body.
type reportSummary struct {
	ID        string `json:"id"`
	Ticker    string `json:"ticker"`
	Timestamp string `json:"timestamp"`
	Title     string `json:"title,omitempty"`
}

// ListHandler handles GET /api/reports. ?ticker= narrows to one symbol's
// history; ?limit= caps the recent listing.
func (h *ReportsHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	var (
		reports []*models.StoredReport
		err     error
	)
	if ticker := r.URL.Query().Get("ticker"); ticker != "" {
		reports, err = h.history.ListByTicker(r.Context(), ticker)
	} else {
		limit := 0
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, parseErr := strconv.Atoi(s); parseErr == nil && n > 0 {
				limit = n
			}
		}
		reports, err = h.history.ListRecent(r.Context(), limit)
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Report listing failed")
		WriteError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	summaries := make([]reportSummary, 0, len(reports))
	for _, report := range reports {
		row := reportSummary{
			ID:        report.ID,
			Ticker:    report.Ticker,
			Timestamp: report.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		}
		if report.Result.Summary != nil {
			row.Title = report.Result.Summary.Title
		}
		summaries = append(summaries, row)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reports": summaries,
	})
}

// ItemHandler handles GET and DELETE on /api/reports/{id}. A fetched report
// re-renders from the stored result, so markdown and gauge changes apply to
// history as well.
func (h *ReportsHandler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getReport(w, r, id)
	case http.MethodDelete:
		h.deleteReport(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ReportsHandler) getReport(w http.ResponseWriter, r *http.Request, id string) {
	report, err := h.history.Get(r.Context(), id)
	if err != nil {
		// An unreadable store is not an absent report.
		var persistErr *models.PersistenceError
		if errors.As(err, &persistErr) {
			h.logger.Error().Err(err).Str("id", id).Msg("Report load failed")
			WriteError(w, http.StatusInternalServerError, "Failed to load report")
			return
		}
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}

	view, err := h.renderer.Render(report.Ticker, &report.Result, h.watchlist.Contains(r.Context(), report.Ticker))
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("Stored report rendering failed")
		WriteError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":        report.ID,
		"ticker":    report.Ticker,
		"timestamp": report.Timestamp,
		"report":    view,
	})
}

func (h *ReportsHandler) deleteReport(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.history.Delete(r.Context(), id); err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("Report deletion failed")
		WriteError(w, http.StatusInternalServerError, "Failed to delete report")
		return
	}
	WriteSuccess(w, "Report deleted")
}
