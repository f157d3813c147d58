// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resolver walks the encrypted folder tree of the main share.
//
// Folder children are listed page by page and their names decrypted with
// the folder's key until the wanted segment is found. Every node context is
// cached by the [NodeDecryptor], so walking the same prefix again only costs
// the listing calls.
package resolver

import (
	"context"

	"github.com/MKhiriev/go-drive-cli/internal/crypto"
	"github.com/MKhiriev/go-drive-cli/models"
)

// LinkSource fetches the encrypted tree. The drive adapter implements it.
type LinkSource interface {
	ListVolumes(ctx context.Context) ([]models.Volume, error)
	GetShare(ctx context.Context, shareID string) (models.Share, error)
	GetLink(ctx context.Context, shareID, linkID string) (models.Link, error)
	ListChildren(ctx context.Context, shareID, linkID string, page models.PageParams) ([]models.Link, error)
}

// NodeDecryptor unlocks shares and nodes. [crypto.NodeDecryptor]
// implements it.
type NodeDecryptor interface {
	DecryptShare(share models.Share) (*crypto.DecryptedContext, error)
	DecryptRootNode(shareID string, shareCtx *crypto.DecryptedContext, link models.Link) (*crypto.DecryptedContext, error)
	DecryptChildNode(shareID string, parentCtx *crypto.DecryptedContext, link models.Link) (*crypto.DecryptedContext, error)
	DecryptName(container *crypto.DecryptedContext, encryptedName string) (string, error)
}
