// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"

	"github.com/MKhiriev/go-drive-cli/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/key_source_mock.go -package=mock

// KeySource fetches the armored account key material that [KeyChain]
// unlocks. It is implemented by the storage API adapter.
type KeySource interface {
	// GetKeySalts returns the per-key salts of the account.
	GetKeySalts(ctx context.Context) ([]models.KeySalt, error)

	// GetUser returns the user record with its user keys.
	GetUser(ctx context.Context) (models.User, error)

	// GetAddresses returns every address of the account with its keys.
	GetAddresses(ctx context.Context) ([]models.Address, error)
}
