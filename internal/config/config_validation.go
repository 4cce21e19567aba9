// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Validation is intentionally light here; binary-specific invariants are
// enforced by the [ClientConfig] and server startup paths, which know which
// subset of the config they actually need.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.ServerURL == "" || cfg.RequestTimeout == 0 {
		return ErrInvalidClientConfigs
	}

	if cfg.DebounceWindow <= 0 {
		return ErrInvalidClientConfigs
	}

	return nil
}
