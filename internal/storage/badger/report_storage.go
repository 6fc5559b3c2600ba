package badger

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

// ReportStorage implements the ReportStorage interface for Badger
type ReportStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewReportStorage creates a new ReportStorage instance
func NewReportStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ReportStorage {
	return &ReportStorage{
		db:     db,
		logger: logger,
	}
}

// Save persists a report. IDs embed the creation instant, so Upsert never
// overwrites a prior report in practice.
func (s *ReportStorage) Save(ctx context.Context, report *models.StoredReport) error {
	if report.ID == "" {
		return fmt.Errorf("report ID is required")
	}
	if err := s.db.Store().Upsert(report.ID, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	s.logger.Debug().Str("id", report.ID).Str("ticker", report.Ticker).Msg("Report saved")
	return nil
}

// Get retrieves a report by ID. Returns nil without error when not found.
func (s *ReportStorage) Get(ctx context.Context, id string) (*models.StoredReport, error) {
	var report models.StoredReport
	err := s.db.Store().Get(id, &report)
	if err == badgerhold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// ListRecent returns the newest reports across all tickers, newest first.
func (s *ReportStorage) ListRecent(ctx context.Context, limit int) ([]*models.StoredReport, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("Timestamp").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reports []*models.StoredReport
	if err := s.db.Store().Find(&reports, query); err != nil {
		return nil, fmt.Errorf("failed to list recent reports: %w", err)
	}
	return reports, nil
}

// ListByTicker returns one ticker's report history, newest first.
func (s *ReportStorage) ListByTicker(ctx context.Context, ticker string) ([]*models.StoredReport, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	var reports []*models.StoredReport
	query := badgerhold.Where("Ticker").Eq(ticker).SortBy("Timestamp").Reverse()
	if err := s.db.Store().Find(&reports, query); err != nil {
		return nil, fmt.Errorf("failed to list reports for ticker: %w", err)
	}
	return reports, nil
}

// Delete removes a report by ID. Deleting an absent report is not an error.
func (s *ReportStorage) Delete(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.StoredReport{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	s.logger.Debug().Str("id", id).Msg("Report deleted")
	return nil
}
