// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies the embedded schema migrations to the local history
// database.
func Migrate(db *sql.DB) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
