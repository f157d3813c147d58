// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] and
// [ClientSession.Validate] when required configuration groups are incomplete
// or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing API URL or a negative retry count).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidTransferConfigs indicates a non-positive block size or
	// concurrency limit.
	ErrInvalidTransferConfigs = errors.New("invalid transfer configuration")
	// ErrInvalidSessionConfigs indicates a missing session UID or access token.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
)
