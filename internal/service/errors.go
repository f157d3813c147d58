package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned when uploading a zero-byte file.
	ErrEmptyFile = errors.New("file is empty")
	// ErrNotAFile is returned when downloading a folder.
	ErrNotAFile = errors.New("not a file")
	// ErrNoActiveRevision is returned when a file has no finalized revision
	// or no content key packet.
	ErrNoActiveRevision = errors.New("file has no active revision")
	// ErrCancelled is returned when the caller cancelled the operation.
	ErrCancelled = errors.New("operation cancelled")
	// ErrInvalidName is returned for node names that cannot be created.
	ErrInvalidName = errors.New("invalid name")
	// ErrNotARegularFile is returned when the local upload source is a
	// directory or a special file.
	ErrNotARegularFile = errors.New("not a regular file")
	// ErrFileChanged is returned when the local file changed size while it
	// was being uploaded.
	ErrFileChanged = errors.New("file changed during upload")
)

// UploadState is the last step an upload reached.
type UploadState int

const (
	UploadInit UploadState = iota
	UploadNodeRegistered
	UploadBlocksEncrypted
	UploadVerificationObtained
	UploadBlocksUploaded
	UploadFinalized
)

// String implements fmt.Stringer.
func (s UploadState) String() string {
	switch s {
	case UploadInit:
		return "init"
	case UploadNodeRegistered:
		return "node registered"
	case UploadBlocksEncrypted:
		return "blocks encrypted"
	case UploadVerificationObtained:
		return "verification obtained"
	case UploadBlocksUploaded:
		return "blocks uploaded"
	case UploadFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// UploadError reports a failed upload together with the state it reached.
// Uploads are not rolled back: from [UploadNodeRegistered] on, the node
// NodeID stays on the server as an unfinalized draft and blocks already sent
// stay in storage.
type UploadError struct {
	State      UploadState
	NodeID     string
	RevisionID string
	Err        error
}

func (e *UploadError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("upload failed at %s: %v", e.State, e.Err)
	}
	return fmt.Sprintf("upload failed at %s (node %s left unfinalized): %v", e.State, e.NodeID, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
