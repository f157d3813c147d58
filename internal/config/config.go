// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// EnvPrefix is prepended to every environment variable read by [parseEnv].
const EnvPrefix = "DRIVE_"

// StructuredConfig is the top-level configuration container for the
// go-drive-cli application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//
// All variables are additionally prefixed with [EnvPrefix].
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote storage API endpoint, timeouts and retries.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Session holds the credential of an already authenticated session.
	Session Session `envPrefix:"SESSION_"`

	// Storage holds configuration of the local transfer history database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Transfer holds block size and concurrency limits of the pipeline.
	Transfer Transfer `envPrefix:"TRANSFER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the DRIVE_CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running client. It is
	// sent to the API in the x-pm-appversion header.
	// Env: DRIVE_APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds settings of the remote storage API client.
type Adapter struct {
	// APIURL is the base URL of the storage API (e.g. "https://drive.example.com/api").
	// Env: DRIVE_ADAPTER_API_URL
	APIURL string `env:"API_URL"`

	// MetadataTimeout bounds every metadata API call.
	// Env: DRIVE_ADAPTER_METADATA_TIMEOUT
	MetadataTimeout time.Duration `env:"METADATA_TIMEOUT"`

	// TransferTimeout bounds every block upload or download.
	// Env: DRIVE_ADAPTER_TRANSFER_TIMEOUT
	TransferTimeout time.Duration `env:"TRANSFER_TIMEOUT"`

	// RetryCount is the number of retries for rate-limited or timed out calls.
	// Env: DRIVE_ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`
}

// Session holds the bearer credential produced by the login handshake.
type Session struct {
	// Env: DRIVE_SESSION_UID
	UID string `env:"UID"`
	// Env: DRIVE_SESSION_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`
	// Env: DRIVE_SESSION_REFRESH_TOKEN
	RefreshToken string `env:"REFRESH_TOKEN"`
}

// Storage groups the configuration for local storage backends.
type Storage struct {
	// DB holds the SQLite database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite Data Source Name (e.g. "file:drive.db?_busy_timeout=5000").
	// Env: DRIVE_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Transfer holds tuning knobs of the upload/download pipeline.
type Transfer struct {
	// BlockSize is the plaintext size of every block but the last, in bytes.
	// Env: DRIVE_TRANSFER_BLOCK_SIZE
	BlockSize int `env:"BLOCK_SIZE"`

	// EncryptConcurrency limits concurrently encrypted blocks on upload.
	// Env: DRIVE_TRANSFER_ENCRYPT_CONCURRENCY
	EncryptConcurrency int `env:"ENCRYPT_CONCURRENCY"`

	// DownloadConcurrency limits concurrently fetched blocks on download.
	// Env: DRIVE_TRANSFER_DOWNLOAD_CONCURRENCY
	DownloadConcurrency int `env:"DOWNLOAD_CONCURRENCY"`
}

// GetStructuredConfig loads and merges the application configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//
// The positional arguments left after flag parsing are returned alongside
// the config.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON()

	cfg, err := b.build()
	return cfg, b.rest, err
}
