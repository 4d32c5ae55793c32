// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jeranaias/threadline-tui/internal/markdown"
	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/ui/components"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

// =============================================================================
// REVEAL TIMING
// =============================================================================

// Reveal delays for the staggered message animation.
const (
	revealStepLoad   = 100 * time.Millisecond // per message on history load
	revealDelaySend  = 60 * time.Millisecond  // after an optimistic send
	revealDelayReply = 120 * time.Millisecond // after an assistant reply
)

// apologyText is the synthetic assistant reply shown when the relay cannot
// be reached. It renders as a normal message, not an error dialog.
const apologyText = "Sorry, I can't reach the server right now. Check your connection and try again."

// nearNewestLines is how close to the newest message the view must be for
// incoming messages to pull the view along.
const nearNewestLines = 1

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the loading state of the thread.
type State int

const (
	StateReady   State = iota // Thread loaded, ready for input
	StateLoading              // History fetch in flight
	StateErrored              // History fetch failed
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the message thread.
type Model struct {
	// State
	state    State
	loadErr  error
	svc      remote.Service
	theme    *styles.Theme
	renderer *markdown.Renderer

	// Dimensions
	width  int
	height int

	// Thread
	conversationID string // sentinel until the backend creates one
	messages       []model.Message
	awaitingReply  bool

	// Request generation. Bumped on every conversation switch; async
	// results carrying an older generation are dropped.
	generation int

	// Reveal animation
	animations bool
	revealed   map[string]bool

	// Anchored to the newest message unless the user scrolled away.
	nearNewest bool

	// UI components
	viewport viewport.Model
	input    textinput.Model
	typing   components.TypingIndicator
	keyMap   KeyMap

	// Attach mode repurposes the input line for a file name.
	attachMode bool

	assistantName string
	suggestions   []string
}

// Options configure the chat view.
type Options struct {
	Service       remote.Service
	Theme         *styles.Theme
	Renderer      *markdown.Renderer
	AssistantName string
	Animations    bool
}

// New creates a chat model showing the new-chat placeholder.
func New(opts Options) Model {
	input := textinput.New()
	input.Placeholder = "Send a message..."
	input.CharLimit = 4000
	input.Focus()

	name := opts.AssistantName
	if name == "" {
		name = "Assistant"
	}

	return Model{
		state:          StateReady,
		svc:            opts.Service,
		theme:          opts.Theme,
		renderer:       opts.Renderer,
		conversationID: model.SentinelNewChat,
		animations:     opts.Animations,
		revealed:       make(map[string]bool),
		nearNewest:     true,
		viewport:       viewport.New(0, 0),
		input:          input,
		typing:         components.NewTypingIndicator(name),
		keyMap:         DefaultKeyMap(),
		assistantName:  name,
		suggestions: []string{
			"Summarize an article for me",
			"Help me draft an email",
			"Explain a concept simply",
		},
	}
}

// ConversationID returns the id of the thread being shown. It is the
// new-chat sentinel until the first send creates a conversation.
func (m *Model) ConversationID() string {
	return m.conversationID
}

// AwaitingReply reports whether a relay round trip is in flight.
func (m *Model) AwaitingReply() bool {
	return m.awaitingReply
}

// Shortcuts returns the status bar hints for this view.
func (m *Model) Shortcuts() [][2]string {
	return m.keyMap.Shortcuts()
}

// SetTheme swaps styling after a preferences change.
func (m *Model) SetTheme(theme *styles.Theme, renderer *markdown.Renderer) {
	m.theme = theme
	m.renderer = renderer
	m.refreshViewport()
}

// SetAssistantName renames the assistant in the typing indicator.
func (m *Model) SetAssistantName(name string) {
	if name == "" {
		name = "Assistant"
	}
	m.assistantName = name
	m.typing.SetLabel(name)
}

// isStale reports whether an async result belongs to a superseded
// conversation switch.
func (m *Model) isStale(generation int) bool {
	return generation != m.generation
}

// isRevealed reports whether a message has finished its reveal delay.
// With animations off everything is visible immediately.
func (m *Model) isRevealed(id string) bool {
	if !m.animations {
		return true
	}
	return m.revealed[id]
}
