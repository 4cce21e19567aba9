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

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", input: `"2s"`, want: 2 * time.Second},
		{name: "compound duration string", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "nanosecond number", input: `2000000000`, want: 2 * time.Second},
		{name: "bad string", input: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestParseJSON(t *testing.T) {
	raw := `{
		"app": {"token_sign_key": "k", "token_issuer": "sync-suite", "token_duration": "24h"},
		"storage": {"db": {"dsn": "postgres://localhost/sync"}, "local": {"path": "/tmp/local.db"}},
		"server": {"http_address": "localhost:8080", "request_timeout": "30s"},
		"client": {"server_url": "http://localhost:8080", "request_timeout": "15s", "debounce_window": "2s"}
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.App.TokenSignKey)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "postgres://localhost/sync", cfg.Storage.DB.DSN)
	assert.Equal(t, "/tmp/local.db", cfg.Storage.Local.Path)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Client.DebounceWindow)
}

func TestParseJSONMissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestClientConfigValidate(t *testing.T) {
	valid := ClientConfig{
		ServerURL:      "http://localhost:8080",
		RequestTimeout: 15 * time.Second,
		DebounceWindow: 2 * time.Second,
		Storage:        Local{Path: "/tmp/local.db"},
	}
	assert.NoError(t, valid.validate())

	noPath := valid
	noPath.Storage.Path = ""
	assert.ErrorIs(t, noPath.validate(), ErrInvalidStorageConfigs)

	noURL := valid
	noURL.ServerURL = ""
	assert.ErrorIs(t, noURL.validate(), ErrInvalidClientConfigs)

	noWindow := valid
	noWindow.DebounceWindow = 0
	assert.ErrorIs(t, noWindow.validate(), ErrInvalidClientConfigs)
}
