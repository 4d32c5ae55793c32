// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and saves the threadline configuration.
//
// Configuration lives in ~/.threadline/config.toml, with built-in defaults
// and environment variable overrides applied on top. The file holds the
// backend connection settings and a handful of UI options; per-user
// preferences (theme, identity) are managed separately by internal/prefs.
package config
