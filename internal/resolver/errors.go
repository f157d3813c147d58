// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"errors"
	"fmt"
)

var (
	ErrPathNotFound   = errors.New("path not found")
	ErrNotAFolder     = errors.New("not a folder")
	ErrAboveRoot      = errors.New("path goes above the share root")
	ErrNoActiveVolume = errors.New("no active volume")
	ErrInvalidName    = errors.New("invalid node name")
)

// PathError records a failed resolution together with the part of the path
// that was traversed.
type PathError struct {
	Op string
	// Path is the partial path up to and including Segment.
	Path    string
	Segment string
	Err     error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %q: %v", e.Op, e.Path, e.Segment, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }
