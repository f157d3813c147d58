// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] is usable before
// it is mapped to the client view. Every field is optional at this stage;
// defaults are filled in by [ClientConfig].
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.APIURL == "" || cfg.Adapter.RetryCount < 0 ||
		cfg.Adapter.MetadataTimeout < 0 || cfg.Adapter.TransferTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Transfer.BlockSize <= 0 || cfg.Transfer.EncryptConcurrency <= 0 ||
		cfg.Transfer.DownloadConcurrency <= 0 {
		return ErrInvalidTransferConfigs
	}

	return nil
}

// Validate reports whether the session can authenticate API calls. It is
// checked only by commands that talk to the API.
func (s ClientSession) Validate() error {
	if s.UID == "" || s.AccessToken == "" {
		return ErrInvalidSessionConfigs
	}

	return nil
}
