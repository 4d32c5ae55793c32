// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/threadline-tui/internal/model"
)

// FormatRelativeTime renders a timestamp the way the list shows it:
// minutes, then hours, then days, then an absolute date.
func FormatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FilterItems returns the items whose title or last message contains the
// query, case-insensitively. An empty query returns the input as-is.
func FilterItems(items []model.ChatListItem, query string) []model.ChatListItem {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return items
	}

	filtered := make([]model.ChatListItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.LastMessage), query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
