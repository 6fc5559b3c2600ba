// Package reports maintains the persisted deep dive history.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/common"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

// Service reads and writes the report history.
type Service struct {
	storage     interfaces.ReportStorage
	recentLimit int
	logger      arbor.ILogger
	now         func() time.Time
}

// NewService creates a report history service. recentLimit caps the default
// recent listing; zero falls back to the built-in default.
func NewService(storage interfaces.ReportStorage, recentLimit int, logger arbor.ILogger) *Service {
	if recentLimit <= 0 {
		recentLimit = 6
	}
	return &Service{
		storage:     storage,
		recentLimit: recentLimit,
		logger:      logger,
		now:         time.Now,
	}
}

// Save stores a completed deep dive under a fresh {TICKER}_{millis} ID. A
// storage failure is logged and returned as a PersistenceError so the caller
// can keep serving the in-memory result.
func (s *Service) Save(ctx context.Context, ticker string, result *models.SearchResult) (*models.StoredReport, error) {
	ticker = common.NormalizeTicker(ticker)
	at := s.now()

	report := &models.StoredReport{
		ID:        models.ReportID(ticker, at),
		Ticker:    ticker,
		Timestamp: at,
		Result:    *result,
	}

	if err := s.storage.Save(ctx, report); err != nil {
		s.logger.Warn().Err(err).Str("id", report.ID).Msg("Report save failed")
		return report, &models.PersistenceError{Op: "report save", Err: err}
	}

	return report, nil
}

// Get returns one stored report, or an error when the ID is unknown.
func (s *Service) Get(ctx context.Context, id string) (*models.StoredReport, error) {
	report, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, &models.PersistenceError{Op: "report load", Err: err}
	}
	if report == nil {
		return nil, fmt.Errorf("report %q not found", id)
	}
	return report, nil
}

// ListRecent returns the newest reports across all tickers. limit <= 0 uses
// the configured default.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*models.StoredReport, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	reports, err := s.storage.ListRecent(ctx, limit)
	if err != nil {
		return nil, &models.PersistenceError{Op: "report list", Err: err}
	}
	return reports, nil
}

// ListByTicker returns one ticker's history, newest first.
func (s *Service) ListByTicker(ctx context.Context, ticker string) ([]*models.StoredReport, error) {
	reports, err := s.storage.ListByTicker(ctx, common.NormalizeTicker(ticker))
	if err != nil {
		return nil, &models.PersistenceError{Op: "report list", Err: err}
	}
	return reports, nil
}

// Delete removes one report from the history.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return &models.PersistenceError{Op: "report delete", Err: err}
	}
	s.logger.Info().Str("id", id).Msg("Report deleted from history")
	return nil
}
