package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// TransferHistory records finished uploads and downloads.
	TransferHistory TransferHistoryRepository

	db *DB
}

// NewClientStorages opens the SQLite database named by cfg.DB.DSN, creating
// the file when needed, applies pending migrations and wires the
// repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Debug().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		TransferHistory: NewTransferHistoryRepository(db, logger),
		db:              db,
	}, nil
}

// Close closes the underlying database.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
