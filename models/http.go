package models

// APIError is the body of a failed API response.
type APIError struct {
	// Code is the application error code; it differs from the HTTP status.
	Code int `json:"Code"`

	// Error is a human readable description.
	Error string `json:"Error"`
}

// APICodeQuotaExceeded is returned when the drive storage quota is full.
const APICodeQuotaExceeded = 200001

// PageParams selects one page of a listing. Page is 0-based.
type PageParams struct {
	Page     int
	PageSize int
}

// RevisionPageParams selects a window of a revision's blocks.
// FromBlockIndex is 1-based.
type RevisionPageParams struct {
	FromBlockIndex int
	PageSize       int
}
