// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/utils"
	"github.com/MKhiriev/go-drive-cli/models"
)

type transferHistoryRepository struct {
	*DB
	logger *logger.Logger
	ids    utils.UUIDGenerator
}

func NewTransferHistoryRepository(db *DB, logger *logger.Logger) TransferHistoryRepository {
	return &transferHistoryRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveTransfer inserts record. A missing id is taken from the operation id
// of ctx or generated; a missing timestamp is set to now.
func (r *transferHistoryRepository) SaveTransfer(ctx context.Context, record models.TransferRecord) error {
	log := logger.FromContext(ctx)

	if record.ID == "" {
		if opID, ok := utils.GetOperationIDFromContext(ctx); ok {
			record.ID = opID
		} else {
			record.ID = r.ids.Generate()
		}
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	result, err := r.DB.ExecContext(ctx, saveTransfer,
		record.ID,
		string(record.Kind),
		record.LocalPath,
		record.RemotePath,
		record.NodeID,
		record.RevisionID,
		record.Size,
		record.BlockCount,
		record.Verified,
		record.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "transferHistoryRepository.SaveTransfer").
			Str("id", record.ID).
			Str("kind", string(record.Kind)).
			Msg("failed to insert transfer record")
		return fmt.Errorf("%w: save transfer %s: %w", ErrExecutingQuery, record.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: save transfer %s: %w", ErrExecutingQuery, record.ID, err)
	}
	if affected == 0 {
		return ErrTransferNotSaved
	}

	return nil
}

func (r *transferHistoryRepository) ListTransfers(ctx context.Context, filter models.TransferFilter) ([]models.TransferRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTransfersQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "transferHistoryRepository.ListTransfers").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "transferHistoryRepository.ListTransfers").
			Msg("failed to query transfer records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.TransferRecord
	for rows.Next() {
		var (
			record models.TransferRecord
			kind   string
		)

		scanErr := rows.Scan(
			&record.ID,
			&kind,
			&record.LocalPath,
			&record.RemotePath,
			&record.NodeID,
			&record.RevisionID,
			&record.Size,
			&record.BlockCount,
			&record.Verified,
			&record.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "transferHistoryRepository.ListTransfers").
				Msg("failed to scan transfer row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		record.Kind = models.TransferKind(kind)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
