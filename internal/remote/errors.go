// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package remote

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes client errors for handling.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConnection
	KindAuth
	KindBadStatus
	KindInvalidResponse
	KindRelationMissing
)

// RemoteError represents a failure talking to the backend.
type RemoteError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by kind, so callers can write
// errors.Is(err, ErrRelationMissing) regardless of the wrapped detail.
func (e *RemoteError) Is(target error) bool {
	t, ok := target.(*RemoteError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for easy checking.
var (
	// ErrUnauthorized means the backend rejected the credentials or the
	// session token expired.
	ErrUnauthorized = &RemoteError{Kind: KindAuth, Message: "backend rejected credentials"}

	// ErrRelationMissing means the targeted collection is not exposed by
	// this backend schema. Callers treat it as a capability gap, not a
	// failure: some deployments cascade message deletes through the
	// conversation foreign key and never expose the messages relation.
	ErrRelationMissing = &RemoteError{Kind: KindRelationMissing, Message: "collection not exposed by backend"}
)
