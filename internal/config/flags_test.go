package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAPIURL_Set tests the Set method of APIURL
func TestAPIURL_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "https url",
			input: "https://drive.example.com/api",
			want:  "https://drive.example.com/api",
		},
		{
			name:  "http url with port",
			input: "http://localhost:8080",
			want:  "http://localhost:8080",
		},
		{
			name:    "missing scheme",
			input:   "drive.example.com",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			input:   "ftp://drive.example.com",
			wantErr: true,
		},
		{
			name:    "missing host",
			input:   "https://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u APIURL
			err := u.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, u.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *StructuredConfig
		rest     []string
	}{
		{
			name:     "no flags",
			args:     []string{},
			expected: &StructuredConfig{},
			rest:     []string{},
		},
		{
			name: "all flags",
			args: []string{
				"-api-url", "https://drive.example.com",
				"-d", "file:h.db",
				"-c", "cfg.json",
				"-block-size", "1024",
				"-encrypt-workers", "2",
				"-download-workers", "6",
				"-metadata-timeout", "10s",
				"-transfer-timeout", "1m",
				"-retry-count", "7",
			},
			expected: &StructuredConfig{
				Adapter: Adapter{
					APIURL:          "https://drive.example.com",
					MetadataTimeout: 10 * time.Second,
					TransferTimeout: time.Minute,
					RetryCount:      7,
				},
				Storage:      Storage{DB: DB{DSN: "file:h.db"}},
				Transfer:     Transfer{BlockSize: 1024, EncryptConcurrency: 2, DownloadConcurrency: 6},
				JSONFilePath: "cfg.json",
			},
			rest: []string{},
		},
		{
			name:     "config alias and subcommand",
			args:     []string{"-config", "alias.json", "download", "/a.txt", "out.txt"},
			expected: &StructuredConfig{JSONFilePath: "alias.json"},
			rest:     []string{"download", "/a.txt", "out.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, rest, err := ParseFlags(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParseFlags_InvalidURL(t *testing.T) {
	_, _, err := ParseFlags([]string{"-api-url", "not a url"})
	assert.Error(t, err)
}
