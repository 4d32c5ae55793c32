// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

// =============================================================================
// LIST STATE
// =============================================================================

// State represents the loading state of the conversation list.
type State int

const (
	StateIdle    State = iota // Nothing loaded yet
	StateLoading              // Fetch in flight
	StateLoaded               // List available
	StateErrored              // Fetch failed
)

// mode is the interaction mode within the view.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeConfirmDelete
	modeRename
)

// =============================================================================
// HISTORY MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation list.
type Model struct {
	state State
	mode  mode

	svc     remote.Service
	theme   *styles.Theme
	loadErr error

	// Request generation for list loads; stale results are dropped.
	generation int

	// The full list and the cursor over the filtered view of it.
	items    []model.ChatListItem
	selected int

	// Snapshot taken before an optimistic mutation, restored verbatim if
	// the backend refuses it.
	snapshot []model.ChatListItem

	// The conversation currently open in the chat view, highlighted here.
	activeID string

	filter textinput.Model
	rename textinput.Model

	viewport viewport.Model
	keyMap   KeyMap

	width  int
	height int
}

// New creates a history model. Call Load to fetch the list.
func New(svc remote.Service, theme *styles.Theme) Model {
	filter := textinput.New()
	filter.Placeholder = "Filter conversations..."
	filter.CharLimit = 120

	rename := textinput.New()
	rename.Placeholder = "New title..."
	rename.CharLimit = 200

	return Model{
		state:    StateIdle,
		svc:      svc,
		theme:    theme,
		filter:   filter,
		rename:   rename,
		viewport: viewport.New(0, 0),
		keyMap:   DefaultKeyMap(),
	}
}

// SetTheme swaps styling after a preferences change.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.refreshViewport()
}

// Shortcuts returns the status bar hints for this view.
func (m *Model) Shortcuts() [][2]string {
	return m.keyMap.Shortcuts()
}

// SetActive marks the conversation open in the chat view.
func (m *Model) SetActive(id string) {
	m.activeID = id
	m.refreshViewport()
}

// SetSize resizes the list area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	chrome := 3 // filter line and padding
	m.viewport.Width = width
	m.viewport.Height = height - chrome
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.filter.Width = width - 8
	m.rename.Width = width - 8
	m.refreshViewport()
}

// visibleItems returns the items after filtering.
func (m *Model) visibleItems() []model.ChatListItem {
	return FilterItems(m.items, m.filter.Value())
}

// selectedItem returns the item under the cursor, or nil.
func (m *Model) selectedItem() *model.ChatListItem {
	visible := m.visibleItems()
	if m.selected < 0 || m.selected >= len(visible) {
		return nil
	}
	return &visible[m.selected]
}

// clampSelection keeps the cursor inside the filtered list.
func (m *Model) clampSelection() {
	n := len(m.visibleItems())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// removeItem drops the row with the given conversation id.
func (m *Model) removeItem(id string) {
	for i, item := range m.items {
		if item.ConversationID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// snapshotItems copies the current list for rollback.
func (m *Model) snapshotItems() {
	m.snapshot = make([]model.ChatListItem, len(m.items))
	copy(m.snapshot, m.items)
}

// restoreSnapshot puts the list back exactly as it was.
func (m *Model) restoreSnapshot() {
	if m.snapshot == nil {
		return
	}
	m.items = m.snapshot
	m.snapshot = nil
	m.clampSelection()
	m.refreshViewport()
}
