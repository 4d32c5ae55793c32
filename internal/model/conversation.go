// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// SentinelNewChat is the reserved conversation id meaning "no conversation
// yet / start fresh". The backend never assigns it; selecting it clears the
// thread and the next send creates a real conversation server-side.
const SentinelNewChat = "new"

// DefaultTitle is used when a conversation has no title yet.
const DefaultTitle = "New conversation"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the remote conversation record. Messages live in their own
// collection and are joined on demand; the client never caches them across
// list reloads.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// GetTitle returns the conversation title or the default.
func (c Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return DefaultTitle
}

// IsSentinel reports whether an id denotes the "new chat" slot rather than a
// backend conversation. The empty string counts: it is what an unset
// selection decays to.
func IsSentinel(id string) bool {
	return id == "" || id == SentinelNewChat
}

// =============================================================================
// CHAT LIST ITEM (DERIVED)
// =============================================================================

// ChatListItem is the derived per-conversation summary shown in the history
// list. It is recomputed on every list load and never persisted, so the
// displayed message count can not drift from the actual message set.
type ChatListItem struct {
	ConversationID string
	Title          string
	LastMessage    string
	LastTimestamp  time.Time
	MessageCount   int
}

// BuildListItem folds a conversation and its messages (oldest-first) into a
// list entry. The timestamp falls back to the conversation's creation time
// when there are no messages yet.
func BuildListItem(conv Conversation, msgs []Message) ChatListItem {
	item := ChatListItem{
		ConversationID: conv.ID,
		Title:          conv.GetTitle(),
		LastTimestamp:  conv.CreatedAt,
		MessageCount:   len(msgs),
	}
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		item.LastMessage = last.Content
		if !last.CreatedAt.IsZero() {
			item.LastTimestamp = last.CreatedAt
		}
	}
	return item
}
