// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings provides the preferences screen: display name, assistant
// name, theme, and accent color. Changes only take effect when saved; the
// parent persists them and rebuilds the theme.
package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/threadline-tui/internal/prefs"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SavedMsg tells the parent to persist the edited preferences.
type SavedMsg struct {
	Preferences *prefs.Preferences
}

// ClosedMsg tells the parent the screen was dismissed without saving.
type ClosedMsg struct{}

// =============================================================================
// SETTINGS MODEL
// =============================================================================

// Row indices, in tab order.
const (
	rowDisplayName = iota
	rowAssistantName
	rowTheme
	rowAccent
	rowCount
)

// Model is the Bubble Tea model for the settings screen. It edits a copy
// of the preferences; nothing sticks until saved.
type Model struct {
	theme *styles.Theme

	displayName   textinput.Model
	assistantName textinput.Model
	dark          bool
	accentIdx     int

	row    int
	width  int
	height int
}

// New creates a settings model editing the given preferences.
func New(theme *styles.Theme, p *prefs.Preferences) Model {
	displayName := textinput.New()
	displayName.Placeholder = "Display name"
	displayName.CharLimit = 80
	displayName.Focus()

	assistantName := textinput.New()
	assistantName.Placeholder = "Assistant"
	assistantName.CharLimit = 80

	if p.User != nil {
		displayName.SetValue(p.User.DisplayName)
		assistantName.SetValue(p.User.AssistantName)
	}

	accentIdx := 0
	for i, preset := range styles.AccentPresets {
		if strings.EqualFold(preset.Hex, p.AccentColor) {
			accentIdx = i
			break
		}
	}

	return Model{
		theme:         theme,
		displayName:   displayName,
		assistantName: assistantName,
		dark:          p.Theme == prefs.ThemeDark,
		accentIdx:     accentIdx,
	}
}

// SetTheme swaps styling after a preferences change.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// SetSize resizes the settings area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.displayName.Width = 36
	m.assistantName.Width = 36
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages for the settings screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		return m, func() tea.Msg { return ClosedMsg{} }

	case "tab", "down":
		m.setRow((m.row + 1) % rowCount)
		return m, nil

	case "shift+tab", "up":
		m.setRow((m.row - 1 + rowCount) % rowCount)
		return m, nil

	case "left", "right":
		switch m.row {
		case rowTheme:
			m.dark = !m.dark
		case rowAccent:
			dir := 1
			if msg.String() == "left" {
				dir = -1
			}
			n := len(styles.AccentPresets)
			m.accentIdx = (m.accentIdx + dir + n) % n
		default:
			return m.updateFocusedInput(msg)
		}
		return m, nil

	case "enter":
		return m.save()
	}

	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.row {
	case rowDisplayName:
		m.displayName, cmd = m.displayName.Update(msg)
	case rowAssistantName:
		m.assistantName, cmd = m.assistantName.Update(msg)
	}
	return m, cmd
}

func (m *Model) setRow(row int) {
	m.row = row
	m.displayName.Blur()
	m.assistantName.Blur()
	switch row {
	case rowDisplayName:
		m.displayName.Focus()
	case rowAssistantName:
		m.assistantName.Focus()
	}
}

// save builds the edited preferences and hands them to the parent. The
// user identity (email) is the parent's to fill in; settings only edits
// the presentation fields.
func (m Model) save() (Model, tea.Cmd) {
	theme := prefs.ThemeLight
	if m.dark {
		theme = prefs.ThemeDark
	}

	edited := &prefs.Preferences{
		Theme:       theme,
		AccentColor: styles.AccentPresets[m.accentIdx].Hex,
		User: &prefs.User{
			DisplayName:   strings.TrimSpace(m.displayName.Value()),
			AssistantName: strings.TrimSpace(m.assistantName.Value()),
		},
	}
	return m, func() tea.Msg { return SavedMsg{Preferences: edited} }
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the settings form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render("Settings"))
	b.WriteString("\n")

	b.WriteString(m.renderRow(rowDisplayName, "Your name", m.displayName.View()))
	b.WriteString(m.renderRow(rowAssistantName, "Assistant name", m.assistantName.View()))

	themeValue := "Light"
	if m.dark {
		themeValue = "Dark"
	}
	b.WriteString(m.renderRow(rowTheme, "Theme", themeValue+"  (left/right)"))

	preset := styles.AccentPresets[m.accentIdx]
	accent := m.theme.SwatchSelected.Render(preset.Name) + "  " + preset.Hex
	b.WriteString(m.renderRow(rowAccent, "Accent", accent))

	b.WriteString("\n")
	b.WriteString(m.theme.FormButton.Render("enter to save"))
	b.WriteString("  ")
	b.WriteString(m.theme.FormHint.Render("esc to cancel"))

	box := m.theme.FormBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) renderRow(row int, label, value string) string {
	line := m.theme.FormLabel.Width(16).Render(label) + value
	if row == m.row {
		return m.theme.FormFieldFocus.Render(line) + "\n"
	}
	return m.theme.FormField.PaddingLeft(2).Render(line) + "\n"
}
