package interfaces

import (
	"context"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

// WatchlistStorage persists the ordered set of watched ticker symbols as a
// single record. Symbols are stored upper-cased; order is insertion order.
type WatchlistStorage interface {
	Get(ctx context.Context) ([]string, error)
	Put(ctx context.Context, symbols []string) error
}

// ReportStorage is the append-only report history keyed by
// {TICKER}_{timestamp}. Records are immutable; deletion is the only mutation.
type ReportStorage interface {
	Save(ctx context.Context, report *models.StoredReport) error
	Get(ctx context.Context, id string) (*models.StoredReport, error)
	ListRecent(ctx context.Context, limit int) ([]*models.StoredReport, error)
	ListByTicker(ctx context.Context, ticker string) ([]*models.StoredReport, error)
	Delete(ctx context.Context, id string) error
}

// StorageManager provides access to the embedded stores and owns the
// underlying database connection.
type StorageManager interface {
	Watchlist() WatchlistStorage
	Reports() ReportStorage
	Close() error
}
