package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{Adapter: Adapter{APIURL: "https://api.example.com"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.APIURL)
}

// TestBuild_LaterSourceWins verifies that a non-zero field of a later source
// overrides the same field of an earlier one.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Transfer: Transfer{BlockSize: 1024, EncryptConcurrency: 2}},
		&StructuredConfig{Transfer: Transfer{BlockSize: 2048}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Transfer.BlockSize)
	assert.Equal(t, 2, cfg.Transfer.EncryptConcurrency)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that prefixed environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("DRIVE_APP_VERSION", "env-version")
	t.Setenv("DRIVE_SESSION_UID", "env-uid")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-uid", b.configs[0].Session.UID)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("DRIVE_TRANSFER_BLOCK_SIZE", "four megabytes")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_KeepsPositionalArgs(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-block-size", "1024", "upload", "a.txt", "/docs"})

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, 1024, b.configs[0].Transfer.BlockSize)
	assert.Equal(t, []string{"upload", "a.txt", "/docs"}, b.rest)
}

func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-no-such-flag"})

	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Adapter.APIURL = "https://json.example.com"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "https://json.example.com", b.configs[1].Adapter.APIURL)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first"
	last := StructuredJSONConfig{}
	last.App.Version = "last-wins"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, last)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_EnvFlagsJSON(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Session.AccessToken = "json-token"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("DRIVE_ADAPTER_API_URL", "https://env.example.com")
	t.Setenv("DRIVE_TRANSFER_BLOCK_SIZE", "1024")

	cfg, rest, err := GetStructuredConfig([]string{"-block-size", "2048", "-c", path, "ls", "/"})
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Adapter.APIURL)
	assert.Equal(t, 2048, cfg.Transfer.BlockSize)
	assert.Equal(t, "json-token", cfg.Session.AccessToken)
	assert.Equal(t, []string{"ls", "/"}, rest)
}
