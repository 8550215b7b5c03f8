// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for omnichat.
//
// Configuration lives in ~/.omnichat/config.toml. Values resolve in
// order of precedence: environment variables, then the file, then
// built-in defaults. A missing file is normal and yields the defaults.
//
// # Environment Variables
//
//   - OMNICHAT_BASE_URL: backend base URL
//   - OMNICHAT_TIMEOUT_SECS: non-streaming request timeout
//
// # Display Toggles
//
// The /config chat command mutates the UI section at runtime through
// UIConfig.Set; those changes are in-memory only unless saved.
package config
