// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the chat view:
//   - History: conversation load results
//   - Sending: relay results for optimistic sends
//   - Reveal: staggered message reveal ticks
//   - Conversation: notifications for the parent view
package chat

import (
	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/remote"
)

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// historyLoadedMsg delivers the messages of a conversation. Generation is
// the request generation at the time the load started.
type historyLoadedMsg struct {
	Generation int
	Messages   []model.Message
	Err        error
}

// =============================================================================
// SEND MESSAGES
// =============================================================================

// sendResultMsg delivers the relay's answer to an optimistic send.
type sendResultMsg struct {
	Generation int
	Result     *remote.SendResult
	Err        error
}

// =============================================================================
// REVEAL MESSAGES
// =============================================================================

// revealTickMsg marks a single message as revealed.
type revealTickMsg struct {
	Generation int
	MessageID  string
}

// =============================================================================
// CONVERSATION NOTIFICATIONS
// =============================================================================

// ConversationCreatedMsg tells the parent that sending into the new-chat
// placeholder produced a real conversation.
type ConversationCreatedMsg struct {
	ConversationID string
}

// BackRequestedMsg tells the parent to return to the conversation list.
type BackRequestedMsg struct{}
