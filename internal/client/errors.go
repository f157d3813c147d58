// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/crypto"
	"github.com/MKhiriev/go-drive-cli/internal/resolver"
	"github.com/MKhiriev/go-drive-cli/internal/service"
)

var (
	// ErrUsage is returned for malformed command lines.
	ErrUsage = errors.New("usage error")
	// ErrUnknownCommand is returned for an unrecognized subcommand.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrEmptyPassword is returned when no password was entered.
	ErrEmptyPassword = errors.New("empty password")
)

// Humanize turns err into a one-line message for the terminal.
func Humanize(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, crypto.ErrNoKeysDecrypted):
		return "Wrong password: no account key could be unlocked"
	case errors.Is(err, adapter.ErrAuthFailed):
		return "Session expired, log in again"
	case errors.Is(err, service.ErrCancelled):
		return "Cancelled"
	case errors.Is(err, adapter.ErrConnectionRefused):
		return "Network unavailable or server unreachable"
	case errors.Is(err, adapter.ErrQuotaExceeded):
		return "Storage quota exceeded"
	case errors.Is(err, adapter.ErrConflict):
		return "Already exists: " + err.Error()
	case errors.Is(err, adapter.ErrTimeout):
		return "Timed out waiting for the server"
	case errors.Is(err, crypto.ErrBlockIntegrity), errors.Is(err, crypto.ErrManifestSignature):
		return "Content failed verification, nothing was written: " + err.Error()
	case errors.Is(err, resolver.ErrPathNotFound):
		return "No such file or folder: " + err.Error()
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") {
		return "Network unavailable or server unreachable"
	}

	return err.Error()
}

// ReportError prints a humanized err to the error output.
func (a *App) ReportError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(a.stderr, errorStyle.Render("error:"), Humanize(err))
}
