// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the subcommand in args and blocks until it finishes.
	Run(ctx context.Context, args []string) error
}

// PasswordReader obtains the mailbox password. The caller wipes the
// returned slice.
type PasswordReader interface {
	ReadPassword(prompt string) ([]byte, error)
}
