// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

// =============================================================================
// FORM STATE
// =============================================================================

// formMode switches between the sign-in and sign-up variants of the form.
type formMode int

const (
	modeSignIn formMode = iota
	modeSignUp
)

// Field indices, in tab order. Name and confirm only exist on sign-up.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// =============================================================================
// MESSAGES
// =============================================================================

// authResultMsg delivers the backend's answer to a submit.
type authResultMsg struct {
	Session *remote.Session
	Err     error
}

// SignedInMsg tells the parent that authentication succeeded.
type SignedInMsg struct {
	Session *remote.Session
}

// =============================================================================
// LOGIN MODEL
// =============================================================================

// Model is the Bubble Tea model for the auth form.
type Model struct {
	mode   formMode
	svc    remote.Service
	theme  *styles.Theme
	fields [fieldCount]textinput.Model
	focus  int
	notice string
	busy   bool

	width  int
	height int
}

// New creates a login model showing the sign-in form.
func New(svc remote.Service, theme *styles.Theme) Model {
	var fields [fieldCount]textinput.Model

	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 80

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 200
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 200

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.EchoMode = textinput.EchoPassword
	confirm.CharLimit = 200

	fields[fieldName] = name
	fields[fieldEmail] = email
	fields[fieldPassword] = password
	fields[fieldConfirm] = confirm

	return Model{
		mode:   modeSignIn,
		svc:    svc,
		theme:  theme,
		fields: fields,
		focus:  fieldEmail,
	}
}

// SetTheme swaps styling after a preferences change.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// SetSize resizes the form area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	for i := range m.fields {
		m.fields[i].Width = 36
	}
}

// visibleFields returns the field indices active in the current mode.
func (m *Model) visibleFields() []int {
	if m.mode == modeSignUp {
		return []int{fieldName, fieldEmail, fieldPassword, fieldConfirm}
	}
	return []int{fieldEmail, fieldPassword}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages for the auth form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case authResultMsg:
		m.busy = false
		if msg.Err != nil {
			m.notice = msg.Err.Error()
			return m, nil
		}
		if msg.Session == nil || msg.Session.AccessToken == "" {
			// Deployments requiring email confirmation sign up without a
			// session; tell the user instead of pretending to be in.
			m.notice = "Account created. Confirm your email, then sign in."
			m.mode = modeSignIn
			m.setFocus(fieldEmail)
			return m, nil
		}
		session := msg.Session
		return m, func() tea.Msg { return SignedInMsg{Session: session} }
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "down":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil

	case "ctrl+t":
		m.toggleMode()
		return m, nil

	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

// cycleFocus moves focus through the visible fields.
func (m *Model) cycleFocus(dir int) {
	visible := m.visibleFields()
	idx := 0
	for i, f := range visible {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(visible)) % len(visible)
	m.setFocus(visible[idx])
}

func (m *Model) setFocus(field int) {
	for i := range m.fields {
		m.fields[i].Blur()
	}
	m.focus = field
	m.fields[field].Focus()
}

// toggleMode switches between sign-in and sign-up, keeping the email.
func (m *Model) toggleMode() {
	if m.mode == modeSignIn {
		m.mode = modeSignUp
		m.setFocus(fieldName)
	} else {
		m.mode = modeSignIn
		m.setFocus(fieldEmail)
	}
	m.fields[fieldPassword].Reset()
	m.fields[fieldConfirm].Reset()
	m.notice = ""
}

// =============================================================================
// SUBMIT
// =============================================================================

// submit runs the local checks, then calls the backend.
func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.fields[fieldEmail].Value())
	password := m.fields[fieldPassword].Value()

	if email == "" || password == "" {
		m.notice = "Email and password are required."
		return m, nil
	}

	if m.mode == modeSignUp {
		if m.fields[fieldConfirm].Value() != password {
			m.notice = "Passwords do not match."
			return m, nil
		}
		name := strings.TrimSpace(m.fields[fieldName].Value())
		m.busy = true
		m.notice = ""
		return m, signUpCmd(m.svc, email, password, name)
	}

	m.busy = true
	m.notice = ""
	return m, signInCmd(m.svc, email, password)
}

func signInCmd(svc remote.Service, email, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := svc.SignIn(context.Background(), email, password)
		return authResultMsg{Session: session, Err: err}
	}
}

func signUpCmd(svc remote.Service, email, password, name string) tea.Cmd {
	return func() tea.Msg {
		session, err := svc.SignUp(context.Background(), email, password, name)
		return authResultMsg{Session: session, Err: err}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the centered auth form.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in"
	action := "C-t to create an account"
	if m.mode == modeSignUp {
		title = "Create account"
		action = "C-t to sign in instead"
	}
	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n")

	for _, f := range m.visibleFields() {
		field := m.fields[f]
		if f == m.focus {
			b.WriteString(m.theme.FormFieldFocus.Render(field.View()))
		} else {
			b.WriteString(m.theme.FormField.PaddingLeft(2).Render(field.View()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.theme.InfoNotice.Render("Signing in..."))
	} else {
		b.WriteString(m.theme.FormButton.Render("enter to submit"))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.FormHint.Render(action))

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(m.theme.ErrorNotice.Render(m.notice))
	}

	box := m.theme.FormBox.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
