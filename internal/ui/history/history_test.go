// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

type stubService struct {
	listConversations  func(ctx context.Context) ([]model.Conversation, error)
	getMessages        func(ctx context.Context, id string) ([]model.Message, error)
	deleteMessages     func(ctx context.Context, id string) error
	deleteConversation func(ctx context.Context, id string) error
	renameConversation func(ctx context.Context, id, title string) error
}

func (s *stubService) SignIn(context.Context, string, string) (*remote.Session, error) {
	return nil, nil
}
func (s *stubService) SignUp(context.Context, string, string, string) (*remote.Session, error) {
	return nil, nil
}
func (s *stubService) SignOut(context.Context) error { return nil }
func (s *stubService) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	if s.listConversations != nil {
		return s.listConversations(ctx)
	}
	return nil, nil
}
func (s *stubService) GetMessages(ctx context.Context, id string) ([]model.Message, error) {
	if s.getMessages != nil {
		return s.getMessages(ctx, id)
	}
	return nil, nil
}
func (s *stubService) DeleteMessages(ctx context.Context, id string) error {
	if s.deleteMessages != nil {
		return s.deleteMessages(ctx, id)
	}
	return nil
}
func (s *stubService) DeleteConversation(ctx context.Context, id string) error {
	if s.deleteConversation != nil {
		return s.deleteConversation(ctx, id)
	}
	return nil
}
func (s *stubService) RenameConversation(ctx context.Context, id, title string) error {
	if s.renameConversation != nil {
		return s.renameConversation(ctx, id, title)
	}
	return nil
}
func (s *stubService) SendMessage(context.Context, string, string) (*remote.SendResult, error) {
	return nil, errors.New("not scripted")
}

func itemIDs(items []model.ChatListItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ConversationID
	}
	return ids
}

func newLoadedModel(svc remote.Service) Model {
	m := New(svc, styles.NewTheme(false, "#f97316", "#f97316"))
	m.SetSize(80, 24)
	m.state = StateLoaded
	m.items = []model.ChatListItem{
		{ConversationID: "a", Title: "Alpha", LastMessage: "first one"},
		{ConversationID: "b", Title: "Beta", LastMessage: "about markdown"},
		{ConversationID: "c", Title: "Gamma", LastMessage: "closing thoughts"},
	}
	return m
}

// =============================================================================
// FILTERING AND FORMATTING
// =============================================================================

func TestFilterItems(t *testing.T) {
	items := []model.ChatListItem{
		{ConversationID: "a", Title: "Travel plans", LastMessage: "book the flight"},
		{ConversationID: "b", Title: "Recipes", LastMessage: "TRAVEL snacks"},
		{ConversationID: "c", Title: "Work notes", LastMessage: "quarterly review"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"a", "b", "c"}},
		{"  ", []string{"a", "b", "c"}},
		{"travel", []string{"a", "b"}},
		{"QUARTERLY", []string{"c"}},
		{"nothing matches this", nil},
	}

	for _, tt := range tests {
		got := itemIDs(FilterItems(items, tt.query))
		if len(got) != len(tt.want) {
			t.Errorf("FilterItems(%q) = %v, want %v", tt.query, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("FilterItems(%q) = %v, want %v", tt.query, got, tt.want)
				break
			}
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, ""},
		{"seconds ago", now.Add(-30 * time.Second), "now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m"},
		{"hours ago", now.Add(-3 * time.Hour), "3h"},
		{"days ago", now.Add(-2 * 24 * time.Hour), "2d"},
		{"older", now.Add(-30 * 24 * time.Hour), "May 16, 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeTime(tt.t, now); got != tt.want {
				t.Errorf("FormatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

// =============================================================================
// DELETE PROTOCOL
// =============================================================================

func TestDeleteRemovesRowOptimistically(t *testing.T) {
	m := newLoadedModel(&stubService{})
	m.selected = 1 // Beta

	m, cmd := m.deleteConversation("b")

	got := itemIDs(m.items)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("items after optimistic delete = %v, want [a c]", got)
	}
	if cmd == nil {
		t.Fatal("delete should start a backend command")
	}
}

func TestDeleteFailureRestoresExactOrder(t *testing.T) {
	m := newLoadedModel(&stubService{})

	m, _ = m.deleteConversation("b")
	m, cmd := m.handleDeleteResult(deleteResultMsg{ConversationID: "b", Err: errors.New("500")})

	got := itemIDs(m.items)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rollback order = %v, want exactly %v", got, want)
		}
	}

	if cmd == nil {
		t.Fatal("a refused delete should be reported upward")
	}
	if _, ok := cmd().(DeleteFailedMsg); !ok {
		t.Errorf("msg = %T, want DeleteFailedMsg", cmd())
	}
}

func TestDeleteSucceedsWithMissingMessagesRelation(t *testing.T) {
	var conversationDeleted bool
	svc := &stubService{
		deleteMessages: func(context.Context, string) error {
			return remote.ErrRelationMissing
		},
		deleteConversation: func(context.Context, string) error {
			conversationDeleted = true
			return nil
		},
	}

	msg := deleteCmd(svc, "b")()
	result, ok := msg.(deleteResultMsg)
	if !ok {
		t.Fatalf("msg = %T, want deleteResultMsg", msg)
	}
	if result.Err != nil {
		t.Errorf("missing messages relation should not fail the delete: %v", result.Err)
	}
	if !conversationDeleted {
		t.Error("conversation delete should still run")
	}
}

func TestDeleteMessagesHardFailureAborts(t *testing.T) {
	var conversationDeleted bool
	svc := &stubService{
		deleteMessages: func(context.Context, string) error {
			return errors.New("500")
		},
		deleteConversation: func(context.Context, string) error {
			conversationDeleted = true
			return nil
		},
	}

	msg := deleteCmd(svc, "b")()
	if msg.(deleteResultMsg).Err == nil {
		t.Error("hard failure should surface")
	}
	if conversationDeleted {
		t.Error("conversation delete must not run after a hard message-delete failure")
	}
}

func TestDeletingActiveConversationNotifiesParent(t *testing.T) {
	m := newLoadedModel(&stubService{})
	m.SetActive("b")

	m, _ = m.deleteConversation("b")
	m, cmd := m.handleDeleteResult(deleteResultMsg{ConversationID: "b"})

	if cmd == nil {
		t.Fatal("deleting the active conversation should notify the parent")
	}
	msg := cmd()
	notice, ok := msg.(ActiveConversationDeletedMsg)
	if !ok {
		t.Fatalf("msg = %T, want ActiveConversationDeletedMsg", msg)
	}
	if notice.ConversationID != "b" {
		t.Errorf("id = %q", notice.ConversationID)
	}
}

func TestDeletingInactiveConversationIsSilent(t *testing.T) {
	m := newLoadedModel(&stubService{})
	m.SetActive("a")

	m, _ = m.deleteConversation("b")
	_, cmd := m.handleDeleteResult(deleteResultMsg{ConversationID: "b"})

	if cmd != nil {
		t.Error("inactive delete should not notify the parent")
	}
}

// =============================================================================
// RENAME PROTOCOL
// =============================================================================

func TestRenameWaitsForBackendBeforeChangingTitle(t *testing.T) {
	m := newLoadedModel(&stubService{})
	m.selected = 1 // Beta
	m.mode = modeRename
	m.rename.SetValue("Better title")

	m, cmd := m.handleRenameKey(tea.KeyMsg{Type: tea.KeyEnter})

	if m.items[1].Title != "Beta" {
		t.Errorf("title = %q, must stay Beta while the rename is in flight", m.items[1].Title)
	}
	if cmd == nil {
		t.Fatal("rename should start a backend command")
	}
}

func TestRenameSuccessAppliesTitle(t *testing.T) {
	m := newLoadedModel(&stubService{})

	m, _ = m.handleRenameResult(renameResultMsg{ConversationID: "b", NewTitle: "Better title"})

	if m.items[1].Title != "Better title" {
		t.Errorf("title = %q, want Better title after backend success", m.items[1].Title)
	}
}

func TestRenameFailureLeavesTitleAndNotifies(t *testing.T) {
	m := newLoadedModel(&stubService{})

	m, cmd := m.handleRenameResult(renameResultMsg{ConversationID: "b", NewTitle: "Better title", Err: errors.New("500")})

	if m.items[1].Title != "Beta" {
		t.Errorf("title = %q, want untouched Beta", m.items[1].Title)
	}
	if cmd == nil {
		t.Fatal("a refused rename should be reported upward")
	}
	if _, ok := cmd().(RenameFailedMsg); !ok {
		t.Errorf("msg = %T, want RenameFailedMsg", cmd())
	}
}

func TestRenameBlankOrUnchangedTitleIsNoOp(t *testing.T) {
	for _, input := range []string{"", "   ", "\t", "Beta"} {
		var called bool
		svc := &stubService{
			renameConversation: func(context.Context, string, string) error {
				called = true
				return nil
			},
		}
		m := newLoadedModel(svc)
		m.selected = 1 // Beta
		m.mode = modeRename
		m.rename.SetValue(input)

		m, cmd := m.handleRenameKey(tea.KeyMsg{Type: tea.KeyEnter})

		if m.items[1].Title != "Beta" {
			t.Errorf("input %q: title = %q, want Beta", input, m.items[1].Title)
		}
		if cmd != nil {
			cmd()
		}
		if called {
			t.Errorf("input %q: no backend call expected", input)
		}
		if m.mode != modeBrowse {
			t.Errorf("input %q: mode should return to browse", input)
		}
	}
}

// =============================================================================
// LOADING
// =============================================================================

func TestStaleListLoadDropped(t *testing.T) {
	m := newLoadedModel(&stubService{})
	staleGen := m.generation
	m.Load() // bumps the generation

	updated, _ := m.Update(itemsLoadedMsg{
		Generation: staleGen,
		Items:      []model.ChatListItem{{ConversationID: "z", Title: "stale"}},
	})

	for _, item := range updated.items {
		if item.ConversationID == "z" {
			t.Error("stale list load applied")
		}
	}
}

func TestLoadFoldsPreviews(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := &stubService{
		listConversations: func(context.Context) ([]model.Conversation, error) {
			return []model.Conversation{{ID: "a", Title: "Alpha", CreatedAt: now}}, nil
		},
		getMessages: func(_ context.Context, id string) ([]model.Message, error) {
			return []model.Message{
				{ID: "m1", ConversationID: id, Role: model.RoleUser, Content: "hello", CreatedAt: now},
				{ID: "m2", ConversationID: id, Role: model.RoleAssistant, Content: "hi there", CreatedAt: now.Add(time.Second)},
			}, nil
		},
	}

	msg := loadItemsCmd(svc, 1)()
	loaded, ok := msg.(itemsLoadedMsg)
	if !ok || loaded.Err != nil {
		t.Fatalf("msg = %#v", msg)
	}
	if len(loaded.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(loaded.Items))
	}
	item := loaded.Items[0]
	if item.MessageCount != 2 || item.LastMessage != "hi there" {
		t.Errorf("item = %+v", item)
	}
}
