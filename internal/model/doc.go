// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// Conversations and messages are owned by the remote backend; this package
// holds the client-side representations plus the derived chat-list summary
// that the history view folds from a conversation and its message set.
package model
