// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote drive storage API.
//
// The primary abstraction is [DriveAdapter], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPDriveAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError and from transport failures by mapTransportError so that
// callers can use [errors.Is] for transport-agnostic error handling
// (e.g. [ErrRateLimited] for 429, [ErrAuthFailed] for 401). [IsRetryable]
// tells which of them are worth repeating.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-drive-cli/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/drive_adapter_mock.go -package=mock

// DriveAdapter defines transport-agnostic communication with the drive API.
// Implementations are responsible for serialisation, authentication header
// management, session refresh and mapping transport-level errors to the
// sentinel values defined in this package.
type DriveAdapter interface {
	// GetUser returns the account record with the armored user keys.
	GetUser(ctx context.Context) (models.User, error)

	// GetAddresses returns every address of the account with its keys.
	GetAddresses(ctx context.Context) ([]models.Address, error)

	// GetKeySalts returns the per-key salts of the salted passphrase scheme.
	GetKeySalts(ctx context.Context) ([]models.KeySalt, error)

	// ListVolumes returns the volumes of the account.
	ListVolumes(ctx context.Context) ([]models.Volume, error)

	// GetShare returns the share with its encrypted key and passphrase.
	GetShare(ctx context.Context, shareID string) (models.Share, error)

	// GetLink returns one node of a share.
	GetLink(ctx context.Context, shareID, linkID string) (models.Link, error)

	// ListChildren returns one page of the children of a folder. An empty
	// or short page means there are no more children.
	ListChildren(ctx context.Context, shareID, linkID string, page models.PageParams) ([]models.Link, error)

	// CreateFolder registers a new folder.
	CreateFolder(ctx context.Context, shareID string, req models.CreateFolderReq) (models.CreatedNode, error)

	// CreateFile registers a new file and its first revision, which stays
	// unfinalized until CommitRevision.
	CreateFile(ctx context.Context, shareID string, req models.CreateFileReq) (models.CreatedNode, error)

	// GetVerificationData returns the verification code of a revision.
	GetVerificationData(ctx context.Context, shareID, linkID, revisionID string) (models.VerificationData, error)

	// RequestBlockUpload returns one upload link per requested block, in
	// request order.
	RequestBlockUpload(ctx context.Context, req models.BlockUploadReq) ([]models.BlockUploadLink, error)

	// UploadBlock sends an encrypted block to its upload link.
	UploadBlock(ctx context.Context, link models.BlockUploadLink, data []byte) error

	// CommitRevision finalizes a revision with its manifest signature.
	CommitRevision(ctx context.Context, shareID, linkID, revisionID string, req models.CommitRevisionReq) error

	// GetRevision returns one window of the blocks of a revision.
	GetRevision(ctx context.Context, shareID, linkID, revisionID string, page models.RevisionPageParams) (models.Revision, error)

	// DownloadBlock fetches an encrypted block from storage.
	DownloadBlock(ctx context.Context, bareURL, token string) ([]byte, error)
}
