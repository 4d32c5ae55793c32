// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login provides the sign-in and sign-up form.
//
// The form never validates credentials itself; it only enforces the local
// checks (required fields, matching password confirmation on sign-up) and
// hands everything else to the backend. Auth failures come back as inline
// notices, and the form stays filled so the user can correct and retry.
package login
