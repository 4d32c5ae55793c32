// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/threadline-tui/internal/model"
)

// View renders the chat view: the thread viewport, the typing indicator
// line, and the input area.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.typing.Active() {
		b.WriteString(" " + m.typing.View(m.theme))
	}
	b.WriteString("\n")

	prompt := m.theme.InputPrompt.Render("> ")
	b.WriteString(m.theme.InputContainer.Width(m.width).Render(prompt + m.input.View()))

	return b.String()
}

// refreshViewport re-renders the thread into the viewport buffer.
func (m *Model) refreshViewport() {
	switch {
	case m.state == StateLoading:
		m.viewport.SetContent(m.theme.InfoNotice.Render("Loading conversation..."))
	case m.state == StateErrored:
		msg := "Could not load this conversation."
		if m.loadErr != nil {
			msg += " " + m.loadErr.Error()
		}
		m.viewport.SetContent(m.theme.ErrorNotice.Render(msg))
	case len(m.messages) == 0:
		m.viewport.SetContent(m.renderEmptyState())
	default:
		m.viewport.SetContent(m.renderThread())
	}
}

// renderThread renders all messages newest-first, so the top of the buffer
// is the latest exchange.
func (m *Model) renderThread() string {
	blocks := make([]string, 0, len(m.messages))
	for i := len(m.messages) - 1; i >= 0; i-- {
		blocks = append(blocks, m.renderMessage(m.messages[i]))
	}
	return strings.Join(blocks, "\n")
}

// renderMessage renders one message bubble.
func (m *Model) renderMessage(msg model.Message) string {
	bubbleWidth := m.width - 8
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	if !m.isRevealed(msg.ID) {
		placeholder := m.theme.RevealDim.Render("...")
		if msg.Role == model.RoleUser {
			return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, placeholder)
		}
		return placeholder
	}

	if msg.Role == model.RoleUser {
		content := msg.Content
		if msg.HasAttachment {
			content = m.theme.AttachmentChip.Render("["+msg.AttachmentName+"]") + " " + content
		}
		bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(content)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
	}

	rendered := m.renderer.Render(msg.Content)
	return m.theme.AssistantBubble.MaxWidth(bubbleWidth).Render(rendered)
}

// renderEmptyState shows the new-chat greeting with starter suggestions.
func (m *Model) renderEmptyState() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.theme.EmptyTitle.Width(m.width).Render("What can " + m.assistantName + " help with?"))
	b.WriteString("\n")
	b.WriteString(m.theme.EmptySubtitle.Width(m.width).Render("Type a message below, or try one of these:"))
	b.WriteString("\n\n")

	cards := make([]string, 0, len(m.suggestions))
	for _, s := range m.suggestions {
		cards = append(cards, m.theme.SuggestionCard.Render(s))
	}
	row := lipgloss.JoinVertical(lipgloss.Center, cards...)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, row))

	return b.String()
}
