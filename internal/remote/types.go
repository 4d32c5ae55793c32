// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package remote

import (
	"time"

	"github.com/jeranaias/threadline-tui/internal/model"
)

// =============================================================================
// PUBLIC RESULT TYPES
// =============================================================================

// Session is the authenticated session returned by sign-in/sign-up.
type Session struct {
	AccessToken string
	Email       string
	Name        string
}

// SendResult is the relay's answer to a sent message. When the request
// carried no conversation id the backend creates the conversation and
// returns its id here.
type SendResult struct {
	ConversationID string
	Message        model.Message
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// authRequest is the body for password sign-in and sign-up.
type authRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

// authResponse covers both token and signup endpoints; signup responses
// nest the same user object without a token until email confirmation.
type authResponse struct {
	AccessToken string   `json:"access_token"`
	User        authUser `json:"user"`
}

type authUser struct {
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// displayName extracts the metadata name, falling back to the email.
func (u authUser) displayName() string {
	if n, ok := u.UserMetadata["name"].(string); ok && n != "" {
		return n
	}
	return u.Email
}

// conversationRecord mirrors a row of the conversations collection.
type conversationRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func (r conversationRecord) toModel() model.Conversation {
	return model.Conversation{
		ID:        r.ID,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
	}
}

// messageRecord mirrors a row of the messages collection.
type messageRecord struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r messageRecord) toModel() model.Message {
	return model.Message{
		ID:             r.ID,
		ConversationID: r.ConversationID,
		Role:           model.ParseRole(r.Role),
		Content:        r.Content,
		CreatedAt:      r.CreatedAt,
	}
}

// sendRequest is the relay function's input.
type sendRequest struct {
	Content        string `json:"content"`
	ConversationID string `json:"conversationId,omitempty"`
}

// sendResponse is the relay function's output.
type sendResponse struct {
	ConversationID string        `json:"conversationId"`
	Message        messageRecord `json:"message"`
}

// restError is the error body the filter API returns.
type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
