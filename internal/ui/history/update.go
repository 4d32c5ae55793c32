// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/remote"
)

// =============================================================================
// LOADING
// =============================================================================

// Load fetches the conversation list with previews.
func (m *Model) Load() tea.Cmd {
	m.generation++
	m.state = StateLoading
	m.loadErr = nil
	m.refreshViewport()
	return loadItemsCmd(m.svc, m.generation)
}

// loadItemsCmd lists conversations and folds each one's messages into a
// list item with preview and count.
func loadItemsCmd(svc remote.Service, generation int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		convs, err := svc.ListConversations(ctx)
		if err != nil {
			return itemsLoadedMsg{Generation: generation, Err: err}
		}

		items := make([]model.ChatListItem, 0, len(convs))
		for _, conv := range convs {
			msgs, err := svc.GetMessages(ctx, conv.ID)
			if err != nil {
				// A conversation whose messages cannot be read still
				// shows up, just without a preview.
				msgs = nil
			}
			items = append(items, model.BuildListItem(conv, msgs))
		}
		return itemsLoadedMsg{Generation: generation, Items: items}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages for the history view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case itemsLoadedMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateErrored
			m.loadErr = msg.Err
			m.refreshViewport()
			return m, nil
		}
		m.state = StateLoaded
		m.items = msg.Items
		m.clampSelection()
		m.refreshViewport()
		return m, nil

	case deleteResultMsg:
		return m.handleDeleteResult(msg)

	case renameResultMsg:
		return m.handleRenameResult(msg)
	}

	return m, nil
}

// handleKey processes keyboard input per interaction mode.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	case modeRename:
		return m.handleRenameKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Up):
		if m.selected > 0 {
			m.selected--
		}
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.selected < len(m.visibleItems())-1 {
			m.selected++
		}
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Open):
		if item := m.selectedItem(); item != nil {
			id := item.ConversationID
			return m, func() tea.Msg { return ConversationSelectedMsg{ConversationID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		return m, func() tea.Msg {
			return ConversationSelectedMsg{ConversationID: model.SentinelNewChat}
		}

	case key.Matches(msg, m.keyMap.Delete):
		if m.selectedItem() != nil {
			m.mode = modeConfirmDelete
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Rename):
		if item := m.selectedItem(); item != nil {
			m.mode = modeRename
			m.rename.SetValue(item.Title)
			m.rename.Focus()
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Filter):
		m.mode = modeFilter
		m.filter.Focus()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Refresh):
		return m, m.Load()

	case key.Matches(msg, m.keyMap.Cancel):
		if m.filter.Value() != "" {
			m.filter.Reset()
			m.clampSelection()
			m.refreshViewport()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.mode = modeBrowse
		m.filter.Blur()
		m.filter.Reset()
		m.clampSelection()
		m.refreshViewport()
		return m, nil
	case key.Matches(msg, m.keyMap.Open):
		m.mode = modeBrowse
		m.filter.Blur()
		m.clampSelection()
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.clampSelection()
	m.refreshViewport()
	return m, cmd
}

// =============================================================================
// DELETE PROTOCOL
// =============================================================================

// handleConfirmKey resolves the delete confirmation prompt.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		item := m.selectedItem()
		m.mode = modeBrowse
		if item == nil {
			return m, nil
		}
		return m.deleteConversation(item.ConversationID)
	default:
		m.mode = modeBrowse
		m.refreshViewport()
		return m, nil
	}
}

// deleteConversation removes the row optimistically and starts the backend
// delete. The pre-delete list is kept for rollback.
func (m Model) deleteConversation(id string) (Model, tea.Cmd) {
	m.snapshotItems()
	m.removeItem(id)
	m.clampSelection()
	m.refreshViewport()
	return m, deleteCmd(m.svc, id)
}

// deleteCmd clears the conversation's messages, then the conversation.
// Backends that cascade message deletes do not expose the messages
// collection; that specific failure is not a failure.
func deleteCmd(svc remote.Service, id string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if err := svc.DeleteMessages(ctx, id); err != nil && !errors.Is(err, remote.ErrRelationMissing) {
			return deleteResultMsg{ConversationID: id, Err: err}
		}
		if err := svc.DeleteConversation(ctx, id); err != nil {
			return deleteResultMsg{ConversationID: id, Err: err}
		}
		return deleteResultMsg{ConversationID: id}
	}
}

// handleDeleteResult commits or rolls back the optimistic delete.
func (m Model) handleDeleteResult(msg deleteResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.restoreSnapshot()
		id := msg.ConversationID
		return m, func() tea.Msg { return DeleteFailedMsg{ConversationID: id} }
	}

	m.snapshot = nil

	// Deleting the open conversation sends the chat view back to the
	// new-chat placeholder.
	if msg.ConversationID == m.activeID {
		m.activeID = ""
		id := msg.ConversationID
		return m, func() tea.Msg { return ActiveConversationDeletedMsg{ConversationID: id} }
	}
	return m, nil
}

// =============================================================================
// RENAME PROTOCOL
// =============================================================================

func (m Model) handleRenameKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.mode = modeBrowse
		m.rename.Blur()
		m.rename.Reset()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Open):
		title := strings.TrimSpace(m.rename.Value())
		m.mode = modeBrowse
		m.rename.Blur()
		m.rename.Reset()

		item := m.selectedItem()
		if item == nil || title == "" || title == item.Title {
			// An empty or unchanged title is a no-op, not an error.
			m.refreshViewport()
			return m, nil
		}
		return m, renameCmd(m.svc, item.ConversationID, title)
	}

	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

func renameCmd(svc remote.Service, id, newTitle string) tea.Cmd {
	return func() tea.Msg {
		err := svc.RenameConversation(context.Background(), id, newTitle)
		return renameResultMsg{ConversationID: id, NewTitle: newTitle, Err: err}
	}
}

// handleRenameResult applies the new title once the backend accepted it.
// The row never shows a title the backend has not stored.
func (m Model) handleRenameResult(msg renameResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		id := msg.ConversationID
		return m, func() tea.Msg { return RenameFailedMsg{ConversationID: id} }
	}
	for i := range m.items {
		if m.items[i].ConversationID == msg.ConversationID {
			m.items[i].Title = msg.NewTitle
			break
		}
	}
	m.refreshViewport()
	return m, nil
}
