// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-drive-cli/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// TransferHistoryRepository is the local log of finished transfers.
type TransferHistoryRepository interface {
	// SaveTransfer appends one record.
	SaveTransfer(ctx context.Context, record models.TransferRecord) error
	// ListTransfers returns records newest first.
	ListTransfers(ctx context.Context, filter models.TransferFilter) ([]models.TransferRecord, error)
}
