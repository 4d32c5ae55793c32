// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/threadline-tui/internal/config"
	"github.com/jeranaias/threadline-tui/internal/markdown"
	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/prefs"
	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/ui/chat"
	"github.com/jeranaias/threadline-tui/internal/ui/components"
	"github.com/jeranaias/threadline-tui/internal/ui/history"
	"github.com/jeranaias/threadline-tui/internal/ui/login"
	"github.com/jeranaias/threadline-tui/internal/ui/settings"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

// =============================================================================
// VIEW STATE
// =============================================================================

// view is the screen currently shown.
type view int

const (
	viewLogin view = iota
	viewMain
	viewSettings
)

// wideBreakpoint is the terminal width at which the conversation list and
// the thread render side by side.
const wideBreakpoint = 100

// sidebarWidth is the conversation list width in the wide layout.
const sidebarWidth = 36

// =============================================================================
// APP MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	cfg        *config.Config
	svc        remote.Service
	prefsStore *prefs.Store
	prefsData  *prefs.Preferences

	theme    *styles.Theme
	renderer *markdown.Renderer

	view view
	// In the narrow layout only one of list/thread is visible; in the wide
	// layout this decides which pane receives keys.
	focusHistory bool

	login    login.Model
	history  history.Model
	chat     chat.Model
	settings settings.Model

	session *remote.Session
	toasts  *components.ToastManager

	width  int
	height int
	err    error
}

// Options configure the root model.
type Options struct {
	Config     *config.Config
	Service    remote.Service
	PrefsStore *prefs.Store
}

// New creates the root model. Preferences are loaded immediately; the view
// always starts at login because session tokens are never persisted.
func New(opts Options) (Model, error) {
	p := opts.PrefsStore.Load()

	styles.Apply(p.Theme == prefs.ThemeDark)
	theme := styles.NewTheme(p.Theme == prefs.ThemeDark, p.AccentColor, prefs.DefaultAccent)

	renderer, err := markdown.NewRenderer(theme.GlamourStyle(), opts.Config.UI.MessageWidth)
	if err != nil {
		return Model{}, err
	}

	assistantName := ""
	if p.User != nil {
		assistantName = p.User.AssistantName
	}

	m := Model{
		cfg:        opts.Config,
		svc:        opts.Service,
		prefsStore: opts.PrefsStore,
		prefsData:  p,
		theme:      theme,
		renderer:   renderer,
		view:       viewLogin,
		login:      login.New(opts.Service, theme),
		history:    history.New(opts.Service, theme),
		chat: chat.New(chat.Options{
			Service:       opts.Service,
			Theme:         theme,
			Renderer:      renderer,
			AssistantName: assistantName,
			Animations:    opts.Config.UI.Animations,
		}),
		toasts: components.NewToastManager(),
	}
	return m, nil
}

// Init starts the toast ticker.
func (m Model) Init() tea.Cmd {
	return components.ToastTickCmd()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes Bubble Tea messages to the active screen and handles the
// cross-screen notifications.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case login.SignedInMsg:
		return m.handleSignedIn(msg)

	case history.ConversationSelectedMsg:
		m.history.SetActive(msg.ConversationID)
		m.focusHistory = false
		return m, m.chat.SetConversation(msg.ConversationID)

	case history.ActiveConversationDeletedMsg:
		m.toasts.AddStatus("Conversation deleted")
		return m, m.chat.SetConversation(model.SentinelNewChat)

	case history.DeleteFailedMsg:
		m.toasts.AddError("Unable to delete this conversation.")
		return m, nil

	case history.RenameFailedMsg:
		m.toasts.AddError("Unable to rename this conversation.")
		return m, nil

	case chat.ConversationCreatedMsg:
		m.history.SetActive(msg.ConversationID)
		return m, m.history.Load()

	case chat.BackRequestedMsg:
		m.focusHistory = true
		return m, nil

	case settings.SavedMsg:
		return m.handleSettingsSaved(msg)

	case settings.ClosedMsg:
		m.view = viewMain
		return m, nil

	case tea.KeyMsg:
		if handled, next, cmd := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	// Route to the active screen. Non-key messages reach every live screen
	// so in-flight commands resolve no matter what is focused.
	switch m.view {
	case viewLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd

	case viewSettings:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	case viewMain:
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			if m.focusHistory {
				m.history, cmd = m.history.Update(msg)
			} else {
				m.chat, cmd = m.chat.Update(msg)
			}
			return m, cmd
		}

		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		cmds = append(cmds, cmd)
		m.chat, cmd = m.chat.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKey intercepts the shortcuts that work on any signed-in
// screen.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.view != viewMain {
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+p":
		m.settings = settings.New(m.theme, m.currentPrefs())
		m.settings.SetSize(m.width, m.contentHeight())
		m.view = viewSettings
		return true, m, nil

	case "ctrl+l":
		next, cmd := m.logout()
		return true, next, cmd
	}
	return false, m, nil
}

// handleSignedIn merges the session into the remembered identity and moves
// to the main layout.
func (m Model) handleSignedIn(msg login.SignedInMsg) (Model, tea.Cmd) {
	m.session = msg.Session

	user := m.prefsData.User
	if user == nil || user.Email != msg.Session.Email {
		user = &prefs.User{Email: msg.Session.Email}
	}
	if user.DisplayName == "" {
		user.DisplayName = msg.Session.Name
	}
	m.prefsData.User = user
	if err := m.prefsStore.Save(m.prefsData); err != nil {
		m.toasts.AddError("Could not save preferences: " + err.Error())
	}

	m.chat.SetAssistantName(user.AssistantName)
	m.view = viewMain
	m.focusHistory = true
	m.layout()

	return m, tea.Batch(
		m.history.Load(),
		m.chat.SetConversation(model.SentinelNewChat),
	)
}

// handleSettingsSaved persists the edited preferences and rebuilds the
// theme everywhere.
func (m Model) handleSettingsSaved(msg settings.SavedMsg) (Model, tea.Cmd) {
	edited := msg.Preferences

	// Settings edits presentation only; identity fields stay.
	if m.prefsData.User != nil && edited.User != nil {
		edited.User.Email = m.prefsData.User.Email
		edited.User.AvatarRef = m.prefsData.User.AvatarRef
	}
	edited.Normalize()
	m.prefsData = edited

	if err := m.prefsStore.Save(m.prefsData); err != nil {
		m.toasts.AddError("Could not save preferences: " + err.Error())
	} else {
		m.toasts.AddSuccess("Settings saved")
	}

	styles.Apply(m.prefsData.Theme == prefs.ThemeDark)
	m.theme = styles.NewTheme(m.prefsData.Theme == prefs.ThemeDark, m.prefsData.AccentColor, prefs.DefaultAccent)

	renderer, err := markdown.NewRenderer(m.theme.GlamourStyle(), m.cfg.UI.MessageWidth)
	if err == nil {
		m.renderer = renderer
	}

	m.login.SetTheme(m.theme)
	m.history.SetTheme(m.theme)
	m.chat.SetTheme(m.theme, m.renderer)
	if m.prefsData.User != nil {
		m.chat.SetAssistantName(m.prefsData.User.AssistantName)
	}

	m.view = viewMain
	return m, nil
}

// logout invalidates the session and returns to the login form. The
// remembered look survives; the identity does not.
func (m Model) logout() (Model, tea.Cmd) {
	svc := m.svc
	signOut := func() tea.Msg {
		// Best effort; the local session is gone either way.
		_ = svc.SignOut(context.Background())
		return nil
	}

	m.session = nil
	m.prefsData.User = nil
	if err := m.prefsStore.Save(m.prefsData); err != nil {
		m.toasts.AddError("Could not save preferences: " + err.Error())
	}

	m.login = login.New(m.svc, m.theme)
	m.view = viewLogin
	m.layout()
	return m, signOut
}

// currentPrefs returns the preferences as they stand now.
func (m *Model) currentPrefs() *prefs.Preferences {
	return m.prefsData
}

// =============================================================================
// LAYOUT
// =============================================================================

// wide reports whether both panes fit side by side.
func (m *Model) wide() bool {
	return m.width >= wideBreakpoint
}

// contentHeight is the vertical space left for the active screen.
func (m *Model) contentHeight() int {
	chrome := 3 // header and status bar
	h := m.height - chrome
	if h < 4 {
		h = 4
	}
	return h
}

// layout pushes the current dimensions into the child models.
func (m *Model) layout() {
	h := m.contentHeight()

	m.login.SetSize(m.width, h)
	m.settings.SetSize(m.width, h)

	if m.wide() {
		m.history.SetSize(sidebarWidth, h)
		m.chat.SetSize(m.width-sidebarWidth-1, h)
	} else {
		m.history.SetSize(m.width, h)
		m.chat.SetSize(m.width, h)
	}
}
