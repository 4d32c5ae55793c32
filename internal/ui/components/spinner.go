// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator shows that the assistant is composing a reply. It wraps
// the bubbles spinner with the message text threadline renders next to it.
type TypingIndicator struct {
	spinner spinner.Model
	label   string
	active  bool
}

// NewTypingIndicator creates an indicator labeled with the assistant's name.
func NewTypingIndicator(assistantName string) TypingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
		FPS:    time.Second / 5,
	}

	if assistantName == "" {
		assistantName = "Assistant"
	}
	return TypingIndicator{
		spinner: s,
		label:   assistantName + " is typing",
	}
}

// Start activates the indicator and returns the tick command that drives it.
func (t *TypingIndicator) Start() tea.Cmd {
	t.active = true
	return t.spinner.Tick
}

// Stop deactivates the indicator.
func (t *TypingIndicator) Stop() {
	t.active = false
}

// Active reports whether the indicator is showing.
func (t *TypingIndicator) Active() bool {
	return t.active
}

// SetLabel replaces the indicator text, e.g. after the assistant is renamed.
func (t *TypingIndicator) SetLabel(assistantName string) {
	if assistantName == "" {
		assistantName = "Assistant"
	}
	t.label = assistantName + " is typing"
}

// Update advances the spinner animation while active.
func (t *TypingIndicator) Update(msg tea.Msg) tea.Cmd {
	if !t.active {
		return nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return cmd
}

// View renders the indicator, or nothing when inactive.
func (t *TypingIndicator) View(theme *styles.Theme) string {
	if !t.active {
		return ""
	}
	return theme.ThinkingText.Render(t.label) + " " + theme.Spinner.Render(t.spinner.View())
}
