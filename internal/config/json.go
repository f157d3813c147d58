// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags. Durations
// are accepted either as strings ("30s") or as nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Adapter struct {
		APIURL          string   `json:"api_url"`
		MetadataTimeout Duration `json:"metadata_timeout"`
		TransferTimeout Duration `json:"transfer_timeout"`
		RetryCount      int      `json:"retry_count"`
	} `json:"adapter,omitempty"`

	Session struct {
		UID          string `json:"uid"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	} `json:"session,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Transfer struct {
		BlockSize           int `json:"block_size"`
		EncryptConcurrency  int `json:"encrypt_concurrency"`
		DownloadConcurrency int `json:"download_concurrency"`
	} `json:"transfer,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Adapter: Adapter{
			APIURL:          jsonCfg.Adapter.APIURL,
			MetadataTimeout: time.Duration(jsonCfg.Adapter.MetadataTimeout),
			TransferTimeout: time.Duration(jsonCfg.Adapter.TransferTimeout),
			RetryCount:      jsonCfg.Adapter.RetryCount,
		},
		Session: Session{
			UID:          jsonCfg.Session.UID,
			AccessToken:  jsonCfg.Session.AccessToken,
			RefreshToken: jsonCfg.Session.RefreshToken,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Transfer: Transfer{
			BlockSize:           jsonCfg.Transfer.BlockSize,
			EncryptConcurrency:  jsonCfg.Transfer.EncryptConcurrency,
			DownloadConcurrency: jsonCfg.Transfer.DownloadConcurrency,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
