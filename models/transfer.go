// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// NodeIdentity identifies a resolved node.
type NodeIdentity struct {
	ShareID string   `json:"share_id"`
	LinkID  string   `json:"link_id"`
	Type    LinkType `json:"type"`
	Path    string   `json:"path"`
}

// NodeEntry is a decrypted child entry of a folder listing.
type NodeEntry struct {
	LinkID   string   `json:"link_id"`
	Name     string   `json:"name"`
	Type     LinkType `json:"type"`
	Size     int64    `json:"size"`
	MIMEType string   `json:"mime_type,omitempty"`
}

// UploadResult is returned by a finished upload.
type UploadResult struct {
	NodeID     string `json:"node_id"`
	RevisionID string `json:"revision_id"`
	Size       int64  `json:"size"`
	BlockCount int    `json:"block_count"`
}

// DownloadResult is returned by a finished download. Verified is false when
// verification was skipped or the revision was signed by another address.
type DownloadResult struct {
	OutputPath string `json:"output_path"`
	Size       int64  `json:"size"`
	BlockCount int    `json:"block_count"`
	Verified   bool   `json:"verified"`
}

// TransferKind is the direction of a recorded transfer.
type TransferKind string

const (
	TransferUpload   TransferKind = "upload"
	TransferDownload TransferKind = "download"
)

// TransferRecord is one row of the local transfer history.
type TransferRecord struct {
	ID         string       `db:"id"`
	Kind       TransferKind `db:"kind"`
	LocalPath  string       `db:"local_path"`
	RemotePath string       `db:"remote_path"`
	NodeID     string       `db:"node_id"`
	RevisionID string       `db:"revision_id"`
	Size       int64        `db:"size"`
	BlockCount int          `db:"block_count"`
	Verified   bool         `db:"verified"`
	CreatedAt  time.Time    `db:"created_at"`
}

// TransferFilter narrows a history listing. Zero values mean no filter.
type TransferFilter struct {
	Kind  TransferKind
	Limit int
}
