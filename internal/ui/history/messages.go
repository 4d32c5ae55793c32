// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the history view.
package history

import (
	"github.com/jeranaias/threadline-tui/internal/model"
)

// =============================================================================
// LOAD MESSAGES
// =============================================================================

// itemsLoadedMsg delivers the conversation list with previews folded in.
type itemsLoadedMsg struct {
	Generation int
	Items      []model.ChatListItem
	Err        error
}

// =============================================================================
// MUTATION RESULTS
// =============================================================================

// deleteResultMsg reports whether a backend delete went through.
type deleteResultMsg struct {
	ConversationID string
	Err            error
}

// renameResultMsg reports whether a backend rename went through. The new
// title is only applied to the row once this arrives without an error.
type renameResultMsg struct {
	ConversationID string
	NewTitle       string
	Err            error
}

// =============================================================================
// PARENT NOTIFICATIONS
// =============================================================================

// ConversationSelectedMsg tells the parent to open a conversation. The id
// may be the new-chat sentinel.
type ConversationSelectedMsg struct {
	ConversationID string
}

// ActiveConversationDeletedMsg tells the parent that the conversation it is
// showing no longer exists.
type ActiveConversationDeletedMsg struct {
	ConversationID string
}

// DeleteFailedMsg tells the parent a backend delete was refused. The row has
// already been restored; the parent owns the user-facing notice.
type DeleteFailedMsg struct {
	ConversationID string
}

// RenameFailedMsg tells the parent a backend rename was refused.
type RenameFailedMsg struct {
	ConversationID string
}
