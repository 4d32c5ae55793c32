// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across threadline:
// crash-safe file writes for local preference storage and rune-aware
// string truncation for list rows and previews.
package util
