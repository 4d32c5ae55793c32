// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the root Bubble Tea model.
//
// It owns the session, the preferences, and the theme, and routes between
// the login form, the conversation list, the chat thread, and the settings
// screen. On wide terminals the list and the thread render side by side
// with a movable focus; on narrow terminals they swap in place.
package app
