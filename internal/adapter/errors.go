package adapter

import "errors"

var (
	ErrTimeout           = errors.New("request timed out")
	ErrConnectionRefused = errors.New("connection refused")
	ErrRateLimited       = errors.New("rate limited")
	ErrQuotaExceeded     = errors.New("storage quota exceeded")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrConflict          = errors.New("conflict")
	ErrServer            = errors.New("server error")

	ErrInvalidBaseURL = errors.New("invalid api url")
	ErrNoVolume       = errors.New("no active volume")
	ErrUploadLinks    = errors.New("upload link count mismatch")
)

// IsRetryable reports whether a failed call may succeed when repeated.
// Only rate limiting and timeouts qualify.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}
