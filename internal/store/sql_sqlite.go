package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
)

const inMemoryDSN = ":memory:"

func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = inMemoryDSN
	}

	// db will be in file
	if err := createLocalDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// every connection to :memory: is a separate database
	if dsn == inMemoryDSN {
		conn.SetMaxOpenConns(1)
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("dsn", dsn).Msg("connected to database successfully")

	return &DB{DB: conn, logger: log}, nil
}

// createLocalDBFileIfNotExists creates the database file and its directory
// for plain file DSNs. URI and in-memory DSNs are left to the driver.
func createLocalDBFileIfNotExists(dsn string) error {
	if dsn == inMemoryDSN || strings.HasPrefix(dsn, "file:") {
		return nil
	}

	if _, err := os.Stat(dsn); os.IsNotExist(err) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return fmt.Errorf("error creating DB directory: %w", err)
			}
		}

		// if not found - create
		f, err := os.OpenFile(dsn, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
