// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole maps a backend role string onto a Role. The backend only
// guarantees "assistant" for bot replies; anything else is the user side.
func ParseRole(s string) Role {
	if s == string(RoleAssistant) {
		return RoleAssistant
	}
	return RoleUser
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
//
// Messages are kept oldest-first in memory. Persisted messages carry the
// backend-assigned ID; optimistic messages carry a locally generated UUID
// and Local=true until the conversation is reloaded from the backend.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`

	// Attachment affordance (local-only, no upload transport)
	HasAttachment  bool   `json:"has_attachment,omitempty"`
	AttachmentName string `json:"attachment_name,omitempty"`

	// Local marks an optimistic message that has not been confirmed
	// by the backend.
	Local bool `json:"-"`
}

// NewLocalMessage creates an optimistic message with a generated ID and the
// current time. Used for user sends and local attachment entries.
func NewLocalMessage(role Role, content string) Message {
	return Message{
		ID:        "local_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
		Local:     true,
	}
}

// NewAttachmentMessage creates a local user message flagging an attached file.
func NewAttachmentMessage(name string) Message {
	msg := NewLocalMessage(RoleUser, "Uploaded file: "+name)
	msg.HasAttachment = true
	msg.AttachmentName = name
	return msg
}

// IsAssistant reports whether the message came from the assistant side.
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// Preview returns a single-line truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
