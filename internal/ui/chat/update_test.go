// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/threadline-tui/internal/markdown"
	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

// stubService lets each test script the backend's behavior.
type stubService struct {
	getMessages func(ctx context.Context, conversationID string) ([]model.Message, error)
	sendMessage func(ctx context.Context, content, conversationID string) (*remote.SendResult, error)
}

func (s *stubService) SignIn(context.Context, string, string) (*remote.Session, error) {
	return nil, nil
}
func (s *stubService) SignUp(context.Context, string, string, string) (*remote.Session, error) {
	return nil, nil
}
func (s *stubService) SignOut(context.Context) error                      { return nil }
func (s *stubService) ListConversations(context.Context) ([]model.Conversation, error) {
	return nil, nil
}
func (s *stubService) GetMessages(ctx context.Context, id string) ([]model.Message, error) {
	if s.getMessages != nil {
		return s.getMessages(ctx, id)
	}
	return nil, nil
}
func (s *stubService) DeleteMessages(context.Context, string) error       { return nil }
func (s *stubService) DeleteConversation(context.Context, string) error   { return nil }
func (s *stubService) RenameConversation(context.Context, string, string) error { return nil }
func (s *stubService) SendMessage(ctx context.Context, content, conversationID string) (*remote.SendResult, error) {
	if s.sendMessage != nil {
		return s.sendMessage(ctx, content, conversationID)
	}
	return nil, errors.New("sendMessage not scripted")
}

func newTestModel(t *testing.T, svc remote.Service) Model {
	t.Helper()
	renderer, err := markdown.NewRenderer("light", 60)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	m := New(Options{
		Service:    svc,
		Theme:      styles.NewTheme(false, "#f97316", "#f97316"),
		Renderer:   renderer,
		Animations: false,
	})
	m.SetSize(80, 24)
	return m
}

// collectMsgs runs a command tree and flattens the messages it produces.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestSendAppendsOptimisticMessage(t *testing.T) {
	m := newTestModel(t, &stubService{})

	m.input.SetValue("  hello   world  ")
	m, cmd := m.send()

	if len(m.messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(m.messages))
	}
	got := m.messages[0]
	if got.Role != model.RoleUser || !got.Local {
		t.Errorf("optimistic message = %+v, want local user message", got)
	}
	// Only the edges are trimmed; interior spacing is the user's text.
	if got.Content != "hello   world" {
		t.Errorf("content = %q, want trimmed input", got.Content)
	}
	if !m.awaitingReply {
		t.Error("send should mark a reply as pending")
	}
	if m.input.Value() != "" {
		t.Error("input should clear on send")
	}
	if cmd == nil {
		t.Error("send should issue commands")
	}
}

func TestSendEmptyInputIsNoOp(t *testing.T) {
	m := newTestModel(t, &stubService{})

	m.input.SetValue("   ")
	m, cmd := m.send()

	if len(m.messages) != 0 || m.awaitingReply || cmd != nil {
		t.Error("whitespace-only input should not send")
	}
}

func TestSendBlockedWhileAwaitingReply(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.awaitingReply = true

	m.input.SetValue("second message")
	m, _ = m.send()

	if len(m.messages) != 0 {
		t.Error("sending while a reply is pending should be blocked")
	}
}

func TestSendResultAdoptsCreatedConversation(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.awaitingReply = true

	reply := model.Message{ID: "m2", ConversationID: "c9", Role: model.RoleAssistant, Content: "hi"}
	m, cmd := m.handleSendResult(sendResultMsg{
		Generation: m.generation,
		Result:     &remote.SendResult{ConversationID: "c9", Message: reply},
	})

	if m.conversationID != "c9" {
		t.Errorf("conversationID = %q, want adopted c9", m.conversationID)
	}
	if m.awaitingReply {
		t.Error("reply should clear the pending flag")
	}
	if len(m.messages) != 1 || m.messages[0].ID != "m2" {
		t.Errorf("reply not appended: %+v", m.messages)
	}

	var created bool
	for _, msg := range collectMsgs(cmd) {
		if c, ok := msg.(ConversationCreatedMsg); ok {
			created = true
			if c.ConversationID != "c9" {
				t.Errorf("ConversationCreatedMsg id = %q", c.ConversationID)
			}
		}
	}
	if !created {
		t.Error("parent should be told about the created conversation")
	}
}

func TestSendResultKeepsExistingConversation(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.conversationID = "c1"
	m.awaitingReply = true

	reply := model.Message{ID: "m2", ConversationID: "c1", Role: model.RoleAssistant, Content: "hi"}
	m, cmd := m.handleSendResult(sendResultMsg{
		Generation: m.generation,
		Result:     &remote.SendResult{ConversationID: "c1", Message: reply},
	})

	for _, msg := range collectMsgs(cmd) {
		if _, ok := msg.(ConversationCreatedMsg); ok {
			t.Error("existing conversation must not announce creation")
		}
	}
	if m.conversationID != "c1" {
		t.Errorf("conversationID = %q", m.conversationID)
	}
}

func TestSendFailureShowsApologyReply(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.conversationID = "c1"
	m.messages = []model.Message{{ID: "m1", Role: model.RoleUser, Content: "hello"}}
	m.awaitingReply = true

	m, _ = m.handleSendResult(sendResultMsg{
		Generation: m.generation,
		Err:        errors.New("connection refused"),
	})

	if len(m.messages) != 2 {
		t.Fatalf("messages = %d, want user message plus apology", len(m.messages))
	}
	apology := m.messages[1]
	if apology.Role != model.RoleAssistant || !apology.Local {
		t.Errorf("apology should be a local assistant message: %+v", apology)
	}
	if apology.Content != apologyText {
		t.Errorf("apology content = %q", apology.Content)
	}
	if m.awaitingReply {
		t.Error("failure should clear the pending flag")
	}
}

func TestStaleSendResultDropped(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.conversationID = "c1"
	staleGen := m.generation

	// A switch lands while the send is in flight.
	m.SetConversation(model.SentinelNewChat)

	reply := model.Message{ID: "m9", Role: model.RoleAssistant, Content: "late"}
	updated, _ := m.Update(sendResultMsg{
		Generation: staleGen,
		Result:     &remote.SendResult{ConversationID: "c1", Message: reply},
	})

	if len(updated.messages) != 0 {
		t.Error("stale reply leaked into the new thread")
	}
	if updated.conversationID != model.SentinelNewChat {
		t.Errorf("conversationID = %q, want sentinel", updated.conversationID)
	}
}

func TestStaleHistoryDropped(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.conversationID = "c1"
	staleGen := m.generation

	m.SetConversation("c2")

	updated, _ := m.Update(historyLoadedMsg{
		Generation: staleGen,
		Messages:   []model.Message{{ID: "old", Role: model.RoleUser, Content: "from c1"}},
	})

	if len(updated.messages) != 0 {
		t.Error("history for the abandoned conversation leaked in")
	}
}

func TestHistoryLoadedPopulatesThread(t *testing.T) {
	m := newTestModel(t, &stubService{})
	cmd := m.SetConversation("c1")
	if cmd == nil {
		t.Fatal("switching to a real conversation should load history")
	}

	msgs := []model.Message{
		{ID: "m1", Role: model.RoleUser, Content: "hello"},
		{ID: "m2", Role: model.RoleAssistant, Content: "hi"},
	}
	m, _ = m.Update(historyLoadedMsg{Generation: m.generation, Messages: msgs})

	if m.state != StateReady {
		t.Errorf("state = %v, want ready", m.state)
	}
	if len(m.messages) != 2 {
		t.Errorf("messages = %d, want 2", len(m.messages))
	}
}

func TestHistoryLoadErrorShowsErroredState(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.SetConversation("c1")

	m, _ = m.Update(historyLoadedMsg{Generation: m.generation, Err: errors.New("boom")})
	if m.state != StateErrored {
		t.Errorf("state = %v, want errored", m.state)
	}
}

func TestSetConversationSentinelNeedsNoLoad(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.conversationID = "c1"
	m.messages = []model.Message{{ID: "m1", Role: model.RoleUser, Content: "old"}}

	cmd := m.SetConversation("")

	if cmd != nil {
		t.Error("sentinel switch must not hit the backend")
	}
	if m.conversationID != model.SentinelNewChat {
		t.Errorf("conversationID = %q, want sentinel", m.conversationID)
	}
	if len(m.messages) != 0 {
		t.Error("sentinel switch should clear the thread")
	}
}

func TestAttachAddsLocalMarker(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.attachMode = true
	m.input.SetValue("report.pdf")

	m, _ = m.attach()

	if len(m.messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(m.messages))
	}
	marker := m.messages[0]
	if !marker.HasAttachment || marker.AttachmentName != "report.pdf" {
		t.Errorf("marker = %+v", marker)
	}
	if !marker.Local {
		t.Error("attachment markers never leave the client")
	}
	if m.attachMode {
		t.Error("attach mode should end after adding the marker")
	}
}

func TestLoadRevealsOldestMessageImmediately(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.animations = true
	m.SetConversation("c1")

	msgs := []model.Message{
		{ID: "m1", Role: model.RoleUser, Content: "hello"},
		{ID: "m2", Role: model.RoleAssistant, Content: "hi"},
	}
	m, cmd := m.Update(historyLoadedMsg{Generation: m.generation, Messages: msgs})

	if !m.isRevealed("m1") {
		t.Error("oldest message should be visible as soon as the thread loads")
	}
	if m.isRevealed("m2") {
		t.Error("later messages wait for their reveal tick")
	}
	if cmd == nil {
		t.Fatal("a reveal should be scheduled for the second message")
	}
}

func TestRevealGating(t *testing.T) {
	m := newTestModel(t, &stubService{})
	m.animations = true

	if m.isRevealed("m1") {
		t.Error("message should start hidden with animations on")
	}

	m, _ = m.Update(revealTickMsg{Generation: m.generation, MessageID: "m1"})
	if !m.isRevealed("m1") {
		t.Error("reveal tick should mark the message visible")
	}

	// Ticks from a previous thread are ignored.
	m.SetConversation("c2")
	m, _ = m.Update(revealTickMsg{Generation: m.generation - 1, MessageID: "m2"})
	if m.isRevealed("m2") {
		t.Error("stale reveal tick applied")
	}
}
