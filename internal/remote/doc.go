// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package remote provides the HTTP client for the managed chat backend.
//
// The backend exposes three surfaces, all behind one base URL:
//
//   - /auth/v1/...      password sign-in, sign-up, sign-out
//   - /rest/v1/...      conversation and message collections (filter API)
//   - /functions/v1/... the assistant relay that generates replies
//
// The client issues a single attempt per operation and never retries;
// callers own optimistic-update rollback. All failures surface as
// *RemoteError values carrying a human-readable message.
package remote
