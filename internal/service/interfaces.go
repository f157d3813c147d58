// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the transfer engine of the drive client:
// key initialization, path resolution, folder operations and the encrypted
// upload and download pipelines.
package service

import (
	"context"

	"github.com/MKhiriev/go-drive-cli/models"
)

//go:generate mockgen -source=interfaces.go -destination=../client/transfer_service_mock_test.go -package=client

// ProgressFunc is called after each block is transferred with the number of
// finished blocks and the total block count. It may be called from several
// goroutines.
type ProgressFunc func(done, total int)

// UploadOptions tunes a single upload.
type UploadOptions struct {
	Progress ProgressFunc
}

// DownloadOptions tunes a single download.
type DownloadOptions struct {
	// SkipVerification disables the block hash check and the manifest
	// signature check. The result is reported as not verified.
	SkipVerification bool
	Progress         ProgressFunc
}

// TransferService is the operation surface of the client. Keys must be
// initialized before any other call.
type TransferService interface {
	// InitializeKeys unlocks the account keys with the mailbox password.
	// Calls after a successful one are no-ops until ClearCache.
	InitializeKeys(ctx context.Context, password []byte) error

	// ResolvePath resolves a path of the main share.
	ResolvePath(ctx context.Context, path string) (models.NodeIdentity, error)

	// UploadFile encrypts and uploads a local file. When destinationPath is
	// an existing folder the file keeps its local name, otherwise the last
	// segment of destinationPath names the new file.
	UploadFile(ctx context.Context, localPath, destinationPath string, opts UploadOptions) (models.UploadResult, error)

	// DownloadFile downloads, verifies and decrypts the active revision of
	// a file. When outputPath is an existing directory the remote name is
	// kept.
	DownloadFile(ctx context.Context, sourcePath, outputPath string, opts DownloadOptions) (models.DownloadResult, error)

	// CreateFolder creates a folder named name under parentPath.
	CreateFolder(ctx context.Context, parentPath, name string) (models.NodeIdentity, error)

	// ListFolder returns the decrypted entries of a folder, folders first.
	ListFolder(ctx context.Context, path string) ([]models.NodeEntry, error)

	// History returns recorded transfers, newest first.
	History(ctx context.Context, filter models.TransferFilter) ([]models.TransferRecord, error)

	// ClearCache wipes all decrypted keys and node contexts.
	ClearCache()
}
