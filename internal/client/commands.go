// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/MKhiriev/go-drive-cli/internal/service"
	"github.com/MKhiriev/go-drive-cli/models"
)

// parseArgs parses flags placed anywhere among the positional arguments and
// checks the positional count.
func parseArgs(fs *flag.FlagSet, args []string, minArgs, maxArgs int) ([]string, error) {
	fs.SetOutput(io.Discard)

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUsage, fs.Name(), err)
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}

	if len(positional) < minArgs || len(positional) > maxArgs {
		return nil, fmt.Errorf("%w: %s: expected %s, got %d", ErrUsage, fs.Name(), argCount(minArgs, maxArgs), len(positional))
	}

	return positional, nil
}

func argCount(minArgs, maxArgs int) string {
	if minArgs == maxArgs {
		return fmt.Sprintf("%d arguments", minArgs)
	}
	return fmt.Sprintf("%d to %d arguments", minArgs, maxArgs)
}

func (a *App) upload(args []string) (action, error) {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	pos, err := parseArgs(fs, args, 2, 2)
	if err != nil {
		return nil, err
	}
	local, remote := pos[0], pos[1]

	return func(ctx context.Context) error {
		opts := service.UploadOptions{}
		bar := a.progressBar("upload")
		if bar != nil {
			opts.Progress = bar.update
		}

		result, err := a.services.UploadFile(ctx, local, remote, opts)
		if bar != nil {
			bar.finish()
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(a.stdout, "%s %s → %s (%s, %d blocks, node %s)\n",
			okStyle.Render("uploaded"), local, remote, formatSize(result.Size), result.BlockCount, result.NodeID)
		return nil
	}, nil
}

func (a *App) download(args []string) (action, error) {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	skipVerify := fs.Bool("skip-verify", false, "do not verify block hashes and the manifest signature")
	pos, err := parseArgs(fs, args, 2, 2)
	if err != nil {
		return nil, err
	}
	remote, local := pos[0], pos[1]

	return func(ctx context.Context) error {
		opts := service.DownloadOptions{SkipVerification: *skipVerify}
		bar := a.progressBar("download")
		if bar != nil {
			opts.Progress = bar.update
		}

		result, err := a.services.DownloadFile(ctx, remote, local, opts)
		if bar != nil {
			bar.finish()
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(a.stdout, "%s %s → %s (%s, %d blocks)\n",
			okStyle.Render("downloaded"), remote, result.OutputPath, formatSize(result.Size), result.BlockCount)
		if !result.Verified {
			fmt.Fprintln(a.stderr, warnStyle.Render("warning: content was not verified"))
		}
		return nil
	}, nil
}

func (a *App) resolve(args []string) (action, error) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	pos, err := parseArgs(fs, args, 1, 1)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		node, err := a.services.ResolvePath(ctx, pos[0])
		if err != nil {
			return err
		}

		fmt.Fprint(a.stdout, renderTable(
			[]string{"PATH", "TYPE", "SHARE", "LINK"},
			[][]string{{node.Path, node.Type.String(), node.ShareID, node.LinkID}},
		))
		return nil
	}, nil
}

func (a *App) list(args []string) (action, error) {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	pos, err := parseArgs(fs, args, 0, 1)
	if err != nil {
		return nil, err
	}

	p := "/"
	if len(pos) == 1 {
		p = pos[0]
	}

	return func(ctx context.Context) error {
		entries, err := a.services.ListFolder(ctx, p)
		if err != nil {
			return err
		}

		fmt.Fprint(a.stdout, renderEntries(entries))
		return nil
	}, nil
}

func (a *App) mkdir(args []string) (action, error) {
	fs := flag.NewFlagSet("mkdir", flag.ContinueOnError)
	pos, err := parseArgs(fs, args, 2, 2)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		node, err := a.services.CreateFolder(ctx, pos[0], pos[1])
		if err != nil {
			return err
		}

		fmt.Fprintf(a.stdout, "%s %s\n", okStyle.Render("created"), node.Path)
		return nil
	}, nil
}

func (a *App) history(args []string) (action, error) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	kind := fs.String("kind", "", "only list upload or download transfers")
	limit := fs.Int("limit", 20, "maximum number of transfers")
	if _, err := parseArgs(fs, args, 0, 0); err != nil {
		return nil, err
	}

	filter := models.TransferFilter{Kind: models.TransferKind(*kind), Limit: *limit}
	switch filter.Kind {
	case "", models.TransferUpload, models.TransferDownload:
	default:
		return nil, fmt.Errorf("%w: history: unknown kind %q", ErrUsage, *kind)
	}
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: history: negative limit", ErrUsage)
	}

	return func(ctx context.Context) error {
		records, err := a.services.History(ctx, filter)
		if err != nil {
			return err
		}

		fmt.Fprint(a.stdout, renderHistory(records))
		return nil
	}, nil
}

func (a *App) progressBar(label string) *progressPrinter {
	if !a.progress {
		return nil
	}
	return newProgressPrinter(a.stderr, label)
}
