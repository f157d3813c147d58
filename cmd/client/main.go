package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"
	"golang.org/x/term"

	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/client"
	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/service"
	"github.com/MKhiriev/go-drive-cli/internal/store"
	"github.com/MKhiriev/go-drive-cli/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	memguard.SafeExit(run())
}

func run() int {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		printBuildInfo()
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewClientLogger("drive-client")

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Err(err).Msg("error getting configs")
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 2
	}

	if client.NeedsSession(args) {
		if err := cfg.Session.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "config error:", err)
			return 2
		}
	}

	drive, err := adapter.NewHTTPDriveAdapter(cfg.Adapter, models.Credential{
		UID:          cfg.Session.UID,
		AccessToken:  cfg.Session.AccessToken,
		RefreshToken: cfg.Session.RefreshToken,
	}, log)
	if err != nil {
		log.Err(err).Msg("create drive adapter")
		fmt.Fprintln(os.Stderr, "adapter error:", err)
		return 1
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Err(err).Msg("create local storage")
		fmt.Fprintln(os.Stderr, "storage error:", err)
		return 1
	}
	defer storages.Close()

	services := service.NewClientServices(drive, storages, cfg.Transfer, log)

	app := client.NewApp(
		services.TransferService,
		client.NewTerminalPassword(os.Stdin, os.Stderr),
		log,
		client.WithOutput(os.Stdout, os.Stderr),
		client.WithProgress(term.IsTerminal(int(os.Stderr.Fd()))),
	)

	if err := app.Run(ctx, args); err != nil {
		log.Err(err).Strs("args", args).Msg("command failed")
		app.ReportError(err)
		return 1
	}

	return 0
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
