// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the message thread view.
//
// The thread renders newest-first: the viewport's top line is the latest
// message, matching how the conversation reads while replies stream in.
// Sending is optimistic. The user's message appears immediately with a
// local id, the assistant relay is called once, and on success the reply
// is appended while the optimistic message stays as-is. On failure a
// synthetic apology reply is shown instead of an error dialog.
//
// Every backend round trip carries the request generation current when it
// started. Results tagged with a stale generation are dropped, so switching
// conversations mid-flight can never interleave threads.
package chat
