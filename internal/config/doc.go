// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for biblioteka.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Library server URL, timeouts, retries and rate limit
//   - SessionConfig: Fallback inactivity timeout and warning lead time
//   - UIConfig, LogConfig, StorageConfig: Presentation and local state
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (BIBLIOTEKA_*)
//   - ~/.biblioteka/config.toml
//   - ~/.biblioteka/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	client := api.New(cfg.API.BaseURL, api.WithTimeout(cfg.RequestTimeout()))
package config
