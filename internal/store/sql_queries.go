package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-drive-cli/models"
)

// sqlBuilder emits SQLite "?" placeholders.
var sqlBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var transferColumns = []string{
	"id",
	"kind",
	"local_path",
	"remote_path",
	"node_id",
	"revision_id",
	"size",
	"block_count",
	"verified",
	"created_at",
}

// buildListTransfersQuery selects history records newest first, narrowed by
// filter.
func buildListTransfersQuery(filter models.TransferFilter) (string, []any, error) {
	query := sqlBuilder.
		Select(transferColumns...).
		From("transfers").
		OrderBy("created_at DESC", "id DESC")

	if filter.Kind != "" {
		query = query.Where(sq.Eq{"kind": string(filter.Kind)})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	return query.ToSql()
}
