package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
)

// watchlistKey is the single record key; the watchlist is one document, not a
// row per symbol, so ordering survives round trips without an index.
const watchlistKey = "watchlist"

// watchlistRecord is the persisted form of the watchlist.
type watchlistRecord struct {
	Key     string   `badgerhold:"key"`
	Symbols []string `json:"symbols"`
}

// WatchlistStorage implements the WatchlistStorage interface for Badger
type WatchlistStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewWatchlistStorage creates a new WatchlistStorage instance
func NewWatchlistStorage(db *BadgerDB, logger arbor.ILogger) interfaces.WatchlistStorage {
	return &WatchlistStorage{
		db:     db,
		logger: logger,
	}
}

// Get returns the watched symbols in insertion order. A missing record is an
// empty watchlist, not an error.
func (s *WatchlistStorage) Get(ctx context.Context) ([]string, error) {
	var record watchlistRecord
	err := s.db.Store().Get(watchlistKey, &record)
	if err == badgerhold.ErrNotFound {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}
	return record.Symbols, nil
}

// Put replaces the stored watchlist.
func (s *WatchlistStorage) Put(ctx context.Context, symbols []string) error {
	record := watchlistRecord{
		Key:     watchlistKey,
		Symbols: symbols,
	}
	if err := s.db.Store().Upsert(watchlistKey, &record); err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}
	s.logger.Debug().Int("symbols", len(symbols)).Msg("Watchlist saved")
	return nil
}
