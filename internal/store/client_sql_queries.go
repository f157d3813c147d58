// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	saveTransfer = `
		INSERT INTO transfers (
			id,
			kind,
			local_path,
			remote_path,
			node_id,
			revision_id,
			size,
			block_count,
			verified,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
)
