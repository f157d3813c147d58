// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/service"
)

const usage = `Usage: client [flags] <command> [arguments]

Commands:
  upload <local> <remote>                  encrypt and upload a file
  download <remote> <local> [--skip-verify] download and decrypt a file
  resolve <path>                           print the identity of a node
  ls [path]                                list a folder
  mkdir <parent> <name>                    create a folder
  history [--kind upload|download] [--limit n]
                                           list recorded transfers
`

// App runs one subcommand against a [service.TransferService].
type App struct {
	services service.TransferService
	password PasswordReader
	stdout   io.Writer
	stderr   io.Writer
	progress bool
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

// Option customizes an [App].
type Option func(*App)

// WithOutput redirects command output and progress.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithProgress enables progress bars on stderr.
func WithProgress(enabled bool) Option {
	return func(a *App) { a.progress = enabled }
}

// NewApp returns an application bound to services. Output goes to io.Discard
// until [WithOutput] is given.
func NewApp(services service.TransferService, password PasswordReader, log *logger.Logger, opts ...Option) *App {
	app := &App{
		services: services,
		password: password,
		stdout:   io.Discard,
		stderr:   io.Discard,
		logger:   log,
	}
	for _, opt := range opts {
		opt(app)
	}

	return app
}

// action is a parsed command ready to run.
type action func(ctx context.Context) error

type command struct {
	needsKeys bool
	parse     func(a *App, args []string) (action, error)
}

var commands = map[string]command{
	"upload":   {needsKeys: true, parse: (*App).upload},
	"download": {needsKeys: true, parse: (*App).download},
	"resolve":  {needsKeys: true, parse: (*App).resolve},
	"ls":       {needsKeys: true, parse: (*App).list},
	"mkdir":    {needsKeys: true, parse: (*App).mkdir},
	"history":  {parse: (*App).history},
}

// Run implements [Client]. Key material is wiped before Run returns.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(a.stdout, usage)
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprint(a.stderr, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	run, err := cmd.parse(a, rest)
	if err != nil {
		fmt.Fprint(a.stderr, usage)
		return err
	}

	a.logger.Debug().Str("command", name).Msg("running command")

	if cmd.needsKeys {
		defer a.services.ClearCache()
		if err := a.unlock(ctx); err != nil {
			return err
		}
	}

	return run(ctx)
}

func (a *App) unlock(ctx context.Context) error {
	password, err := a.password.ReadPassword("Mailbox password: ")
	if err != nil {
		return err
	}

	// InitializeKeys wipes password
	return a.services.InitializeKeys(ctx, password)
}

// NeedsSession reports whether the command in args talks to the API.
func NeedsSession(args []string) bool {
	if len(args) == 0 {
		return false
	}
	cmd, ok := commands[args[0]]
	return ok && cmd.needsKeys
}
