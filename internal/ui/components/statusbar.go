// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

// Shortcut is a key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// RenderStatusBar renders a full-width status bar: key hints on the left,
// free text (user identity, connection state) on the right.
func RenderStatusBar(theme *styles.Theme, shortcuts []Shortcut, right string, width int) string {
	parts := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		parts = append(parts, theme.ShortcutKey.Render(s.Key)+" "+theme.ShortcutDesc.Render(s.Desc))
	}
	left := strings.Join(parts, "  ")

	if width <= 0 {
		return theme.StatusBar.Render(left)
	}

	rightRendered := theme.ShortcutDesc.Render(right)
	gap := width - lipgloss.Width(left) - lipgloss.Width(rightRendered) - 2
	if gap < 1 {
		// Narrow terminal: drop the right side rather than wrapping.
		return theme.StatusBar.Width(width).Render(truncate.String(left, uint(width-2)))
	}

	return theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + rightRendered)
}
