// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line front end of the drive client.
//
// It parses a subcommand, unlocks the account keys with a prompted password
// and runs the matching [service.TransferService] operation, rendering
// progress and results to the terminal.
package client
