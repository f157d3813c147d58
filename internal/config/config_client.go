// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied by [ClientConfig.applyDefaults] to zero-valued settings.
const (
	DefaultBlockSize           = 4 << 20
	DefaultEncryptConcurrency  = 4
	DefaultDownloadConcurrency = 10
	DefaultMetadataTimeout     = 30 * time.Second
	DefaultTransferTimeout     = 10 * time.Minute
	DefaultRetryCount          = 3
	DefaultDSN                 = "drive_history.db"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Version is reported to the API with every request.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// APIURL is the base URL of the storage API.
	APIURL string
	// MetadataTimeout bounds every metadata call.
	MetadataTimeout time.Duration
	// TransferTimeout bounds every block upload or download.
	TransferTimeout time.Duration
	// RetryCount is the number of retries of retryable failures.
	RetryCount int
	// AppVersion is sent in the x-pm-appversion header.
	AppVersion string
}

// ClientSession is the credential of an authenticated session.
type ClientSession struct {
	UID          string
	AccessToken  string
	RefreshToken string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string of the transfer history.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientTransfer contains block size and concurrency limits.
type ClientTransfer struct {
	BlockSize           int
	EncryptConcurrency  int
	DownloadConcurrency int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the API endpoint, timeouts and retries.
	Adapter ClientAdapter
	// Session contains the bearer credential.
	Session ClientSession
	// Storage contains client storage settings.
	Storage ClientStorage
	// Transfer contains pipeline tuning.
	Transfer ClientTransfer
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig] from args, maps only the
// fields relevant to the client runtime, fills defaults and validates the
// resulting [ClientConfig]. The positional arguments left after the global
// flags are returned as well.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, rest, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			APIURL:          cfg.Adapter.APIURL,
			MetadataTimeout: cfg.Adapter.MetadataTimeout,
			TransferTimeout: cfg.Adapter.TransferTimeout,
			RetryCount:      cfg.Adapter.RetryCount,
			AppVersion:      cfg.App.Version,
		},
		Session: ClientSession{
			UID:          cfg.Session.UID,
			AccessToken:  cfg.Session.AccessToken,
			RefreshToken: cfg.Session.RefreshToken,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Transfer: ClientTransfer{
			BlockSize:           cfg.Transfer.BlockSize,
			EncryptConcurrency:  cfg.Transfer.EncryptConcurrency,
			DownloadConcurrency: cfg.Transfer.DownloadConcurrency,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.MetadataTimeout == 0 {
		cfg.Adapter.MetadataTimeout = DefaultMetadataTimeout
	}
	if cfg.Adapter.TransferTimeout == 0 {
		cfg.Adapter.TransferTimeout = DefaultTransferTimeout
	}
	if cfg.Adapter.RetryCount == 0 {
		cfg.Adapter.RetryCount = DefaultRetryCount
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Transfer.BlockSize == 0 {
		cfg.Transfer.BlockSize = DefaultBlockSize
	}
	if cfg.Transfer.EncryptConcurrency == 0 {
		cfg.Transfer.EncryptConcurrency = DefaultEncryptConcurrency
	}
	if cfg.Transfer.DownloadConcurrency == 0 {
		cfg.Transfer.DownloadConcurrency = DefaultDownloadConcurrency
	}
}
