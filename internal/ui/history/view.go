// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/util"
)

// View renders the history view: the filter line above the scrolling list.
func (m Model) View() string {
	var b strings.Builder

	switch m.mode {
	case modeFilter:
		b.WriteString(m.theme.SearchBox.Width(m.width - 2).Render(m.filter.View()))
	case modeRename:
		b.WriteString(m.theme.SearchBox.Width(m.width - 2).Render("Rename: " + m.rename.View()))
	case modeConfirmDelete:
		prompt := m.theme.DangerAction.Render("Delete this conversation?") +
			m.theme.ListMeta.Render("  y to confirm, any other key to cancel")
		b.WriteString(prompt)
	default:
		if q := m.filter.Value(); q != "" {
			b.WriteString(m.theme.ListMeta.Render("Filter: " + q + "  (esc clears)"))
		} else {
			header := "Conversations"
			if m.state == StateLoaded {
				header = fmt.Sprintf("Conversations (%d)", len(m.items))
			}
			b.WriteString(m.theme.HeaderSubtitle.Render(header))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())

	return b.String()
}

// refreshViewport re-renders the list into the viewport buffer.
func (m *Model) refreshViewport() {
	switch m.state {
	case StateIdle, StateLoading:
		m.viewport.SetContent(m.theme.InfoNotice.Render("Loading conversations..."))
		return
	case StateErrored:
		msg := "Could not load conversations."
		if m.loadErr != nil {
			msg += " " + m.loadErr.Error()
		}
		m.viewport.SetContent(m.theme.ErrorNotice.Render(msg))
		return
	}

	visible := m.visibleItems()
	if len(visible) == 0 {
		if m.filter.Value() != "" {
			m.viewport.SetContent(m.theme.InfoNotice.Render("No conversations match the filter."))
		} else {
			m.viewport.SetContent(m.theme.InfoNotice.Render("No conversations yet. Press n to start one."))
		}
		return
	}

	now := time.Now()
	rows := make([]string, 0, len(visible))
	for i, item := range visible {
		rows = append(rows, m.renderItem(item, i == m.selected, now))
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))
}

// renderItem renders one conversation row.
func (m *Model) renderItem(item model.ChatListItem, selected bool, now time.Time) string {
	width := m.width - 4
	if width < 24 {
		width = 24
	}

	title := util.TruncateWidth(item.Title, width-14)
	meta := FormatRelativeTime(item.LastTimestamp, now)
	if item.ConversationID == m.activeID {
		meta = "active " + meta
	}

	top := m.theme.ListTitle.Render(title)
	if meta != "" {
		gap := width - lipgloss.Width(top) - lipgloss.Width(meta)
		if gap < 1 {
			gap = 1
		}
		top += strings.Repeat(" ", gap) + m.theme.ListMeta.Render(meta)
	}

	preview := util.TruncateWidth(util.CollapseWhitespace(item.LastMessage), width-8)
	bottom := m.theme.ListPreview.Render(preview)
	if item.MessageCount > 0 {
		bottom += m.theme.ListCount.Render(fmt.Sprintf("  (%d)", item.MessageCount))
	}

	row := top + "\n" + bottom
	if selected {
		return m.theme.ListItemSelected.Width(width).Render(row)
	}
	return m.theme.ListItem.Width(width).Render(row)
}
