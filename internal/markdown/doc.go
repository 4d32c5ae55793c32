// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown cleans up and renders assistant message bodies.
//
// Upstream automation engines have formatting quirks: escaped newlines,
// whole replies wrapped in a code fence, or bodies indented as if they were
// code blocks. Normalize undoes those deterministically before the glamour
// renderer turns the Markdown into styled terminal output.
package markdown
