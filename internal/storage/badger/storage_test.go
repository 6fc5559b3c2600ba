package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/common"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	db, err := NewBadgerDB(arbor.NewLogger(), &common.BadgerConfig{
		Path: t.TempDir() + "/scout",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestWatchlistStorage_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	storage := NewWatchlistStorage(db, arbor.NewLogger())
	ctx := context.Background()

	// Missing record reads as empty, not as an error.
	symbols, err := storage.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, symbols)

	require.NoError(t, storage.Put(ctx, []string{"NVDA", "AAPL", "TSM"}))

	symbols, err = storage.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "AAPL", "TSM"}, symbols)

	// Put replaces, preserving the new order.
	require.NoError(t, storage.Put(ctx, []string{"TSM"}))
	symbols, err = storage.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"TSM"}, symbols)
}

func storedReport(ticker string, at time.Time) *models.StoredReport {
	return &models.StoredReport{
		ID:        models.ReportID(ticker, at),
		Ticker:    ticker,
		Timestamp: at,
		Result:    models.SearchResult{Text: "report for " + ticker},
	}
}

func TestReportStorage_SaveAndGet(t *testing.T) {
	db := newTestDB(t)
	storage := NewReportStorage(db, arbor.NewLogger())
	ctx := context.Background()

	report := storedReport("NVDA", time.Now())
	require.NoError(t, storage.Save(ctx, report))

	got, err := storage.Get(ctx, report.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, report.Ticker, got.Ticker)
	assert.Equal(t, report.Result.Text, got.Result.Text)

	missing, err := storage.Get(ctx, "GONE_1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReportStorage_SaveRequiresID(t *testing.T) {
	db := newTestDB(t)
	storage := NewReportStorage(db, arbor.NewLogger())

	err := storage.Save(context.Background(), &models.StoredReport{Ticker: "NVDA"})
	require.Error(t, err)
}

func TestReportStorage_ListRecentNewestFirst(t *testing.T) {
	db := newTestDB(t)
	storage := NewReportStorage(db, arbor.NewLogger())
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, ticker := range []string{"NVDA", "AAPL", "TSLA", "AMD"} {
		require.NoError(t, storage.Save(ctx, storedReport(ticker, base.Add(time.Duration(i)*time.Minute))))
	}

	reports, err := storage.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "AMD", reports[0].Ticker)
	assert.Equal(t, "TSLA", reports[1].Ticker)
	assert.Equal(t, "AAPL", reports[2].Ticker)
}

func TestReportStorage_ListByTicker(t *testing.T) {
	db := newTestDB(t)
	storage := NewReportStorage(db, arbor.NewLogger())
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, storage.Save(ctx, storedReport("NVDA", base)))
	require.NoError(t, storage.Save(ctx, storedReport("AAPL", base.Add(time.Minute))))
	require.NoError(t, storage.Save(ctx, storedReport("NVDA", base.Add(2*time.Minute))))

	reports, err := storage.ListByTicker(ctx, "nvda")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Timestamp.After(reports[1].Timestamp))
}

func TestReportStorage_Delete(t *testing.T) {
	db := newTestDB(t)
	storage := NewReportStorage(db, arbor.NewLogger())
	ctx := context.Background()

	report := storedReport("NVDA", time.Now())
	require.NoError(t, storage.Save(ctx, report))
	require.NoError(t, storage.Delete(ctx, report.ID))

	got, err := storage.Get(ctx, report.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent report is not an error.
	require.NoError(t, storage.Delete(ctx, report.ID))
}

func TestManager_WiresStores(t *testing.T) {
	manager, err := NewManager(arbor.NewLogger(), &common.BadgerConfig{Path: t.TempDir() + "/scout"})
	require.NoError(t, err)
	defer manager.Close()

	assert.NotNil(t, manager.Watchlist())
	assert.NotNil(t, manager.Reports())
}
