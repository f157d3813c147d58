package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": { "version": "cli@2.0.0" },
		"adapter": {
			"api_url": "https://drive.example.com/api",
			"metadata_timeout": "20s",
			"transfer_timeout": "2m",
			"retry_count": 4
		},
		"session": {
			"uid": "uid-9",
			"access_token": "acc",
			"refresh_token": "ref"
		},
		"storage": {
			"db": { "dsn": "file:drive.db" }
		},
		"transfer": {
			"block_size": 2097152,
			"encrypt_concurrency": 3,
			"download_concurrency": 12
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "cli@2.0.0", cfg.App.Version)

	assert.Equal(t, "https://drive.example.com/api", cfg.Adapter.APIURL)
	assert.Equal(t, 20*time.Second, cfg.Adapter.MetadataTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Adapter.TransferTimeout)
	assert.Equal(t, 4, cfg.Adapter.RetryCount)

	assert.Equal(t, "uid-9", cfg.Session.UID)
	assert.Equal(t, "acc", cfg.Session.AccessToken)
	assert.Equal(t, "ref", cfg.Session.RefreshToken)

	assert.Equal(t, "file:drive.db", cfg.Storage.DB.DSN)

	assert.Equal(t, 2<<20, cfg.Transfer.BlockSize)
	assert.Equal(t, 3, cfg.Transfer.EncryptConcurrency)
	assert.Equal(t, 12, cfg.Transfer.DownloadConcurrency)

	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"adapter":{"metadata_timeout":"never"}}`), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))

	out, err := json.Marshal(Duration(2 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"2s"`, string(out))
}
