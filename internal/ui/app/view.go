// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/threadline-tui/internal/ui/components"
)

// View renders the active screen between the header and the status bar.
func (m Model) View() string {
	if m.width == 0 {
		return "starting..."
	}

	var body string
	switch m.view {
	case viewLogin:
		body = m.login.View()
	case viewSettings:
		body = m.settings.View()
	default:
		body = m.renderMain()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(body)

	if m.toasts.HasToasts() {
		b.WriteString("\n")
		b.WriteString(components.RenderToastStack(m.theme, m.toasts.Toasts(), m.width, 0))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderMain renders the list and the thread, side by side when wide.
func (m Model) renderMain() string {
	if !m.wide() {
		if m.focusHistory {
			return m.history.View()
		}
		return m.chat.View()
	}

	divider := lipgloss.NewStyle().
		Foreground(m.theme.Accent.Muted).
		Render(strings.Repeat("|\n", m.contentHeight()))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.history.View(),
		divider,
		m.chat.View(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("threadline")

	var sub string
	if m.session != nil {
		sub = m.theme.HeaderSubtitle.Render("  " + m.session.Email)
	}
	return m.theme.Header.Width(m.width).Render(title + sub)
}

func (m Model) renderStatusBar() string {
	var shortcuts []components.Shortcut

	switch m.view {
	case viewLogin:
		shortcuts = []components.Shortcut{
			{Key: "tab", Desc: "next field"},
			{Key: "enter", Desc: "submit"},
			{Key: "C-t", Desc: "sign in/up"},
			{Key: "C-c", Desc: "quit"},
		}
	case viewSettings:
		shortcuts = []components.Shortcut{
			{Key: "tab", Desc: "next"},
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	default:
		if m.focusHistory {
			for _, s := range m.history.Shortcuts() {
				shortcuts = append(shortcuts, components.Shortcut{Key: s[0], Desc: s[1]})
			}
		} else {
			for _, s := range m.chat.Shortcuts() {
				shortcuts = append(shortcuts, components.Shortcut{Key: s[0], Desc: s[1]})
			}
		}
		shortcuts = append(shortcuts,
			components.Shortcut{Key: "C-p", Desc: "settings"},
			components.Shortcut{Key: "C-l", Desc: "logout"},
		)
	}

	right := ""
	if m.prefsData.User != nil && m.prefsData.User.DisplayName != "" {
		right = m.prefsData.User.DisplayName
	}
	return components.RenderStatusBar(m.theme, shortcuts, right, m.width)
}
