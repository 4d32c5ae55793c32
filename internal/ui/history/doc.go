// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides the conversation list view.
//
// Deletes are optimistic with rollback: the row disappears immediately, a
// snapshot of the list is kept, and if the backend refuses the delete the
// snapshot is restored in its exact previous order. Renames are not
// optimistic; the row keeps its title until the backend accepts the new
// one. Refused mutations are reported to the parent, which owns the
// user-facing notice. Filtering is a pure function over the loaded items
// and never touches the backend.
package history
