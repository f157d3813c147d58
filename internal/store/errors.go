package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrTransferNotSaved is returned when an INSERT of a history record
	// completes without error but affects no rows.
	ErrTransferNotSaved = errors.New("transfer record was not saved")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan transfer rows")
)
