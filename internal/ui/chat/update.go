// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/util"
)

// =============================================================================
// CONVERSATION SWITCHING
// =============================================================================

// SetConversation switches the thread to another conversation. The request
// generation is bumped first, so anything still in flight for the previous
// thread lands stale and gets dropped.
func (m *Model) SetConversation(id string) tea.Cmd {
	m.generation++
	m.conversationID = id
	m.messages = nil
	m.revealed = make(map[string]bool)
	m.awaitingReply = false
	m.typing.Stop()
	m.nearNewest = true
	m.loadErr = nil
	m.attachMode = false
	m.input.Reset()
	m.input.Focus()

	if model.IsSentinel(id) {
		m.conversationID = model.SentinelNewChat
		m.state = StateReady
		m.refreshViewport()
		return nil
	}

	m.state = StateLoading
	m.refreshViewport()
	return loadHistoryCmd(m.svc, m.generation, id)
}

// Reload refetches the current thread, keeping what is shown until the
// fresh copy arrives.
func (m *Model) Reload() tea.Cmd {
	if model.IsSentinel(m.conversationID) {
		return nil
	}
	m.generation++
	return loadHistoryCmd(m.svc, m.generation, m.conversationID)
}

func loadHistoryCmd(svc remote.Service, generation int, conversationID string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := svc.GetMessages(context.Background(), conversationID)
		return historyLoadedMsg{Generation: generation, Messages: msgs, Err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// SetSize resizes the thread area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := 3
	m.viewport.Width = width
	m.viewport.Height = height - inputHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = width - 6
	m.refreshViewport()
}

// Update handles Bubble Tea messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case historyLoadedMsg:
		if m.isStale(msg.Generation) {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateErrored
			m.loadErr = msg.Err
			m.refreshViewport()
			return m, nil
		}
		m.state = StateReady
		m.messages = msg.Messages
		m.nearNewest = true
		m.refreshViewport()
		m.viewport.GotoTop()
		return m, m.scheduleLoadReveals()

	case sendResultMsg:
		if m.isStale(msg.Generation) {
			return m, nil
		}
		return m.handleSendResult(msg)

	case revealTickMsg:
		if m.isStale(msg.Generation) {
			return m, nil
		}
		m.revealed[msg.MessageID] = true
		m.refreshViewport()
		if m.nearNewest {
			m.viewport.GotoTop()
		}
		return m, nil

	default:
		if cmd := m.typing.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Back):
		if m.attachMode {
			m.attachMode = false
			m.input.Placeholder = "Send a message..."
			m.input.Reset()
			return m, nil
		}
		return m, func() tea.Msg { return BackRequestedMsg{} }

	case key.Matches(msg, m.keyMap.Attach):
		m.attachMode = !m.attachMode
		if m.attachMode {
			m.input.Placeholder = "File name to attach..."
		} else {
			m.input.Placeholder = "Send a message..."
		}
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keyMap.Send):
		if m.attachMode {
			return m.attach()
		}
		return m.send()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewDown() // down in the buffer is older, we render newest-first
		m.syncAnchor()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewUp()
		m.syncAnchor()
		return m, nil

	case key.Matches(msg, m.keyMap.Newest):
		m.viewport.GotoTop()
		m.nearNewest = true
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// syncAnchor re-evaluates whether the view is pinned to the newest message.
func (m *Model) syncAnchor() {
	m.nearNewest = m.viewport.YOffset <= nearNewestLines
}

// =============================================================================
// SENDING
// =============================================================================

// send performs an optimistic send: the user's message appears immediately
// with a local id, then one relay round trip resolves it. The draft is only
// trimmed; interior whitespace is the user's to keep.
func (m Model) send() (Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" || m.awaitingReply || m.state == StateLoading {
		return m, nil
	}

	optimistic := model.NewLocalMessage(model.RoleUser, content)
	m.messages = append(m.messages, optimistic)
	m.input.Reset()
	m.awaitingReply = true
	m.refreshViewport()
	if m.nearNewest {
		m.viewport.GotoTop()
	}

	wireID := m.conversationID
	if model.IsSentinel(wireID) {
		wireID = ""
	}

	return m, tea.Batch(
		m.typing.Start(),
		m.scheduleReveal(optimistic.ID, revealDelaySend),
		sendCmd(m.svc, m.generation, content, wireID),
	)
}

func sendCmd(svc remote.Service, generation int, content, conversationID string) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.SendMessage(context.Background(), content, conversationID)
		return sendResultMsg{Generation: generation, Result: result, Err: err}
	}
}

// handleSendResult reconciles the relay's answer with the optimistic state.
func (m Model) handleSendResult(msg sendResultMsg) (Model, tea.Cmd) {
	m.awaitingReply = false
	m.typing.Stop()

	if msg.Err != nil {
		apology := model.NewLocalMessage(model.RoleAssistant, apologyText)
		m.messages = append(m.messages, apology)
		m.refreshViewport()
		if m.nearNewest {
			m.viewport.GotoTop()
		}
		return m, m.scheduleReveal(apology.ID, revealDelayReply)
	}

	var cmds []tea.Cmd

	// First send from the placeholder: adopt the conversation the backend
	// just created and tell the parent so the list can refresh.
	if model.IsSentinel(m.conversationID) && msg.Result.ConversationID != "" {
		m.conversationID = msg.Result.ConversationID
		createdID := msg.Result.ConversationID
		cmds = append(cmds, func() tea.Msg {
			return ConversationCreatedMsg{ConversationID: createdID}
		})
	}

	reply := msg.Result.Message
	m.messages = append(m.messages, reply)
	m.refreshViewport()
	if m.nearNewest {
		m.viewport.GotoTop()
	}
	cmds = append(cmds, m.scheduleReveal(reply.ID, revealDelayReply))

	return m, tea.Batch(cmds...)
}

// =============================================================================
// ATTACHMENTS
// =============================================================================

// attach adds a local attachment marker message. Uploads never leave the
// client; the marker only records that a file was shared.
func (m Model) attach() (Model, tea.Cmd) {
	name := util.CollapseWhitespace(m.input.Value())
	m.attachMode = false
	m.input.Placeholder = "Send a message..."
	m.input.Reset()
	if name == "" {
		return m, nil
	}

	marker := model.NewAttachmentMessage(name)
	m.messages = append(m.messages, marker)
	m.refreshViewport()
	if m.nearNewest {
		m.viewport.GotoTop()
	}
	return m, m.scheduleReveal(marker.ID, revealDelaySend)
}

// =============================================================================
// REVEAL SCHEDULING
// =============================================================================

// scheduleReveal delivers one reveal tick after the given delay.
func (m *Model) scheduleReveal(id string, delay time.Duration) tea.Cmd {
	if !m.animations {
		m.revealed[id] = true
		return nil
	}
	generation := m.generation
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return revealTickMsg{Generation: generation, MessageID: id}
	})
}

// scheduleLoadReveals staggers the reveal of a freshly loaded thread. The
// oldest message shows at once; each later one follows a step behind.
func (m *Model) scheduleLoadReveals() tea.Cmd {
	if !m.animations {
		for _, msg := range m.messages {
			m.revealed[msg.ID] = true
		}
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(m.messages))
	for i, msg := range m.messages {
		if i == 0 {
			m.revealed[msg.ID] = true
			m.refreshViewport()
			continue
		}
		cmds = append(cmds, m.scheduleReveal(msg.ID, time.Duration(i)*revealStepLoad))
	}
	return tea.Batch(cmds...)
}
