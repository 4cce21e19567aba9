package config

import (
	"fmt"
	"time"
)

// DefaultDebounceWindow is the quiet period applied when no debounce window
// is configured. It matches the product's observed remote-write coalescing
// behavior.
const DefaultDebounceWindow = 2 * time.Second

// ClientConfig is the client-specific configuration view assembled from
// [StructuredConfig].
type ClientConfig struct {
	// ServerURL is the sync server base URL.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// DebounceWindow is the quiet period before a debounced remote write.
	DebounceWindow time.Duration
	// Storage contains the local store settings.
	Storage Local
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills in defaults for the request timeout
// and debounce window, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		ServerURL:      cfg.Client.ServerURL,
		RequestTimeout: cfg.Client.RequestTimeout,
		DebounceWindow: cfg.Client.DebounceWindow,
		Storage:        cfg.Storage.Local,
	}

	if clientCfg.RequestTimeout == 0 {
		clientCfg.RequestTimeout = 15 * time.Second
	}
	if clientCfg.DebounceWindow == 0 {
		clientCfg.DebounceWindow = DefaultDebounceWindow
	}

	return clientCfg, clientCfg.validate()
}
