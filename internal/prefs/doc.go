// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs persists per-user preferences across sessions.
//
// Preferences cover the visual theme, the accent color, and the signed-in
// user identity. They live in ~/.threadline/prefs.json and are written
// atomically so a crash mid-save never corrupts them. A missing or
// malformed file degrades to logged-out defaults rather than failing.
package prefs
