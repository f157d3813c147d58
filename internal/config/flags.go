// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"io"
	"net/url"
	"time"
)

// APIURL holds a validated base URL of the storage API.
// It implements the flag.Value interface.
type APIURL struct {
	URL *url.URL
}

// ParseFlags parses the global configuration flags from args and returns the
// remaining positional arguments (the subcommand and its operands).
//
// Flags:
//
//	-api-url storage API base URL
//	-d database DSN of the transfer history
//	-c/-config json file path with configs
//	-block-size plaintext block size in bytes
//	-encrypt-workers concurrently encrypted blocks
//	-download-workers concurrently downloaded blocks
//	-metadata-timeout metadata request timeout (e.g., "30s")
//	-transfer-timeout block transfer timeout (e.g., "10m")
//	-retry-count retries for rate-limited or timed out calls
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var apiURL APIURL
	var databaseDSN string
	var jsonConfigPath string
	var blockSize, encryptWorkers, downloadWorkers int
	var metadataTimeout, transferTimeout time.Duration
	var retryCount int

	fs := flag.NewFlagSet("drive", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&apiURL, "api-url", "Storage API base URL")
	fs.StringVar(&databaseDSN, "d", "", "Transfer history database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.IntVar(&blockSize, "block-size", 0, "Block size in bytes")
	fs.IntVar(&encryptWorkers, "encrypt-workers", 0, "Concurrently encrypted blocks")
	fs.IntVar(&downloadWorkers, "download-workers", 0, "Concurrently downloaded blocks")
	fs.DurationVar(&metadataTimeout, "metadata-timeout", 0, "Metadata request timeout (e.g., 30s)")
	fs.DurationVar(&transferTimeout, "transfer-timeout", 0, "Block transfer timeout (e.g., 10m)")
	fs.IntVar(&retryCount, "retry-count", 0, "Retries for rate-limited or timed out calls")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return &StructuredConfig{
		Adapter: Adapter{
			APIURL:          apiURL.String(),
			MetadataTimeout: metadataTimeout,
			TransferTimeout: transferTimeout,
			RetryCount:      retryCount,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Transfer: Transfer{
			BlockSize:           blockSize,
			EncryptConcurrency:  encryptWorkers,
			DownloadConcurrency: downloadWorkers,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}

// String returns the URL as given, or an empty string when unset.
func (a *APIURL) String() string {
	if a.URL == nil {
		return ""
	}

	return a.URL.String()
}

// Set parses s as an absolute http(s) URL.
func (a *APIURL) Set(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("api url scheme must be http or https")
	}

	if u.Host == "" {
		return errors.New("api url must contain a host")
	}

	a.URL = u
	return nil
}
