package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/render"
)

// MarketScanner runs the trending and calendar market queries.
type MarketScanner interface {
	Trending(ctx context.Context, filter models.TrendingFilter) ([]models.TrendingStock, error)
	Calendar(ctx context.Context) ([]models.EarningsEvent, error)
}

// MarketsHandler handles trending stocks and earnings calendar requests
type MarketsHandler struct {
	scanner MarketScanner
	logger  arbor.ILogger
}

// NewMarketsHandler creates a new markets handler
func NewMarketsHandler(scanner MarketScanner, logger arbor.ILogger) *MarketsHandler {
	return &MarketsHandler{
		scanner: scanner,
		logger:  logger,
	}
}

// TrendingHandler handles GET /api/trending?filter=general|volume|price.
// Unknown filter values fall back to general.
func (h *MarketsHandler) TrendingHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	filter := models.ParseTrendingFilter(r.URL.Query().Get("filter"))

	stocks, err := h.scanner.Trending(r.Context(), filter)
	if err != nil {
		h.writeScanError(w, err, "trending")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"filter":  filter,
		"sectors": render.GroupTrending(stocks),
	})
}

// CalendarHandler handles GET /api/calendar.
func (h *MarketsHandler) CalendarHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	events, err := h.scanner.Calendar(r.Context())
	if err != nil {
		h.writeScanError(w, err, "calendar")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"days": render.GroupCalendar(events),
	})
}

// writeScanError maps scan failures onto status codes. Malformed model output
// and transport failures both surface as 502 so the client offers a retry;
// the transport message itself is the slot's error message.
func (h *MarketsHandler) writeScanError(w http.ResponseWriter, err error, slot string) {
	var malformedErr *models.MalformedListError
	if errors.As(err, &malformedErr) {
		h.logger.Warn().Err(err).Str("slot", slot).Msg("Model returned malformed list data")
		WriteError(w, http.StatusBadGateway, "Model returned malformed data, try again")
		return
	}

	h.logger.Error().Err(err).Str("slot", slot).Msg("Market scan failed")
	WriteError(w, http.StatusBadGateway, err.Error())
}
