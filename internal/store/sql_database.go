package store

import (
	"database/sql"

	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
