// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings provides the preferences editor.
//
// The editor works on a copy of the user's preferences and emits the edited
// copy in a SavedMsg; persistence and theme rebuilds belong to the parent.
// Escape discards every pending edit.
package settings
