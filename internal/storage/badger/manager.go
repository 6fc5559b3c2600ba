package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/common"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db        *BadgerDB
	watchlist interfaces.WatchlistStorage
	reports   interfaces.ReportStorage
	logger    arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:        db,
		watchlist: NewWatchlistStorage(db, logger),
		reports:   NewReportStorage(db, logger),
		logger:    logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// Watchlist returns the watchlist storage interface
func (m *Manager) Watchlist() interfaces.WatchlistStorage {
	return m.watchlist
}

// Reports returns the report history storage interface
func (m *Manager) Reports() interfaces.ReportStorage {
	return m.reports
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
