// Package watchlist manages the set of tickers the user follows.
package watchlist

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/common"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

// Service toggles and lists watched symbols.
type Service struct {
	storage interfaces.WatchlistStorage
	logger  arbor.ILogger
}

// NewService creates a watchlist service backed by the given storage.
func NewService(storage interfaces.WatchlistStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// List returns the watched symbols in insertion order.
func (s *Service) List(ctx context.Context) ([]string, error) {
	symbols, err := s.storage.Get(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "watchlist load", Err: err}
	}
	return symbols, nil
}

// Contains reports whether a symbol is currently watched.
func (s *Service) Contains(ctx context.Context, symbol string) bool {
	symbol = common.NormalizeTicker(symbol)
	symbols, err := s.storage.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Watchlist load failed")
		return false
	}
	for _, existing := range symbols {
		if existing == symbol {
			return true
		}
	}
	return false
}

// Toggle adds the symbol when absent and removes it when present, returning
// the updated list and whether the symbol is now watched. A write failure is
// logged but does not fail the toggle; the returned list reflects the new
// state and the next successful write persists it.
func (s *Service) Toggle(ctx context.Context, symbol string) ([]string, bool, error) {
	symbol = common.NormalizeTicker(symbol)
	if !common.IsValidTicker(symbol) {
		return nil, false, fmt.Errorf("invalid ticker symbol %q", symbol)
	}

	symbols, err := s.storage.Get(ctx)
	if err != nil {
		return nil, false, &models.PersistenceError{Op: "watchlist load", Err: err}
	}

	added := true
	updated := make([]string, 0, len(symbols)+1)
	for _, existing := range symbols {
		if existing == symbol {
			added = false
			continue
		}
		updated = append(updated, existing)
	}
	if added {
		updated = append(updated, symbol)
	}

	if err := s.storage.Put(ctx, updated); err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Watchlist save failed, state not persisted")
	} else {
		s.logger.Info().Str("symbol", symbol).Bool("added", added).Int("size", len(updated)).Msg("Watchlist updated")
	}

	return updated, added, nil
}
