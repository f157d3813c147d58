// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
)

// mapContextError tells a cancelled operation from a timed out one: context
// cancellation becomes ErrCancelled and an expired deadline becomes
// adapter.ErrTimeout. Other errors are returned as is.
func mapContextError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCancelled), errors.Is(err, adapter.ErrTimeout):
		return err
	case adapter.IsCancelled(err):
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", adapter.ErrTimeout, err)
	}

	return err
}

// checkpoint returns the mapped context error, if any.
func checkpoint(ctx context.Context) error {
	return mapContextError(ctx.Err())
}
