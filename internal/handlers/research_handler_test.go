package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/render"
)

// mockResearch implements ResearchRunner for testing
type mockResearch struct {
	deepDiveFunc func(ctx context.Context, ticker string) (*models.SearchResult, error)
}

func (m *mockResearch) DeepDive(ctx context.Context, ticker string) (*models.SearchResult, error) {
	return m.deepDiveFunc(ctx, ticker)
}

// mockReportSaver implements ReportSaver for testing
type mockReportSaver struct {
	saveFunc func(ctx context.Context, ticker string, result *models.SearchResult) (*models.StoredReport, error)
}

func (m *mockReportSaver) Save(ctx context.Context, ticker string, result *models.SearchResult) (*models.StoredReport, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, ticker, result)
	}
	return &models.StoredReport{ID: ticker + "_1", Ticker: ticker, Result: *result}, nil
}

// mockWatchlistChecker implements WatchlistChecker for testing
type mockWatchlistChecker struct {
	watched map[string]bool
}

func (m *mockWatchlistChecker) Contains(ctx context.Context, symbol string) bool {
	return m.watched[symbol]
}

func newResearchHandler(research *mockResearch, saver *mockReportSaver) *ResearchHandler {
	return NewResearchHandler(
		research,
		saver,
		&mockWatchlistChecker{watched: map[string]bool{"NVDA": true}},
		render.NewReports(),
		arbor.NewLogger(),
	)
}

func TestDeepDiveHandler_Success(t *testing.T) {
	research := &mockResearch{
		deepDiveFunc: func(ctx context.Context, ticker string) (*models.SearchResult, error) {
			return &models.SearchResult{Text: "# Report\n\nSolid quarter."}, nil
		},
	}
	handler := newResearchHandler(research, &mockReportSaver{})

	req := httptest.NewRequest("POST", "/api/research", strings.NewReader(`{"ticker": "  nvda "}`))
	rec := httptest.NewRecorder()
	handler.DeepDiveHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ReportID string             `json:"report_id"`
		Report   *render.ReportView `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "NVDA_1", resp.ReportID)
	require.NotNil(t, resp.Report)
	assert.Equal(t, "NVDA", resp.Report.Ticker)
	assert.True(t, resp.Report.InWatchlist)
	assert.Contains(t, resp.Report.AnalysisHTML, "Solid quarter")
}

func TestDeepDiveHandler_TransportFailure(t *testing.T) {
	research := &mockResearch{
		deepDiveFunc: func(ctx context.Context, ticker string) (*models.SearchResult, error) {
			return nil, &models.TransportError{Err: errors.New("quota exceeded for gemini-2.0-flash")}
		},
	}
	handler := newResearchHandler(research, &mockReportSaver{})

	req := httptest.NewRequest("POST", "/api/research", strings.NewReader(`{"ticker": "NVDA"}`))
	rec := httptest.NewRecorder()
	handler.DeepDiveHandler(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// The transport message itself reaches the client, not a canned string.
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "quota exceeded for gemini-2.0-flash")
}

func TestDeepDiveHandler_SaveFailureStillServesReport(t *testing.T) {
	research := &mockResearch{
		deepDiveFunc: func(ctx context.Context, ticker string) (*models.SearchResult, error) {
			return &models.SearchResult{Text: "Report body."}, nil
		},
	}
	saver := &mockReportSaver{
		saveFunc: func(ctx context.Context, ticker string, result *models.SearchResult) (*models.StoredReport, error) {
			return nil, &models.PersistenceError{Op: "report save", Err: errors.New("disk full")}
		},
	}
	handler := newResearchHandler(research, saver)

	req := httptest.NewRequest("POST", "/api/research", strings.NewReader(`{"ticker": "NVDA"}`))
	rec := httptest.NewRecorder()
	handler.DeepDiveHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp["report"])
}

func TestDeepDiveHandler_BadRequests(t *testing.T) {
	handler := newResearchHandler(&mockResearch{}, &mockReportSaver{})

	req := httptest.NewRequest("POST", "/api/research", strings.NewReader(`{"ticker": ""}`))
	rec := httptest.NewRecorder()
	handler.DeepDiveHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest("POST", "/api/research", strings.NewReader(`not json`))
	rec = httptest.NewRecorder()
	handler.DeepDiveHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest("GET", "/api/research", nil)
	rec = httptest.NewRecorder()
	handler.DeepDiveHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
