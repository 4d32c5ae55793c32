// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the threadline TUI:
// the typing indicator, non-blocking toast notifications, and the status
// bar with key hints.
package components
