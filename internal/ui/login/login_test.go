// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"context"
	"errors"
	"testing"

	"github.com/jeranaias/threadline-tui/internal/model"
	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

type stubService struct {
	signIn func(ctx context.Context, email, password string) (*remote.Session, error)
	signUp func(ctx context.Context, email, password, name string) (*remote.Session, error)
}

func (s *stubService) SignIn(ctx context.Context, email, password string) (*remote.Session, error) {
	if s.signIn != nil {
		return s.signIn(ctx, email, password)
	}
	return nil, errors.New("not scripted")
}
func (s *stubService) SignUp(ctx context.Context, email, password, name string) (*remote.Session, error) {
	if s.signUp != nil {
		return s.signUp(ctx, email, password, name)
	}
	return nil, errors.New("not scripted")
}
func (s *stubService) SignOut(context.Context) error { return nil }
func (s *stubService) ListConversations(context.Context) ([]model.Conversation, error) {
	return nil, nil
}
func (s *stubService) GetMessages(context.Context, string) ([]model.Message, error) {
	return nil, nil
}
func (s *stubService) DeleteMessages(context.Context, string) error           { return nil }
func (s *stubService) DeleteConversation(context.Context, string) error       { return nil }
func (s *stubService) RenameConversation(context.Context, string, string) error { return nil }
func (s *stubService) SendMessage(context.Context, string, string) (*remote.SendResult, error) {
	return nil, errors.New("not scripted")
}

func newTestModel(svc remote.Service) Model {
	m := New(svc, styles.NewTheme(false, "#f97316", "#f97316"))
	m.SetSize(80, 24)
	return m
}

func TestSubmitRequiresCredentials(t *testing.T) {
	m := newTestModel(&stubService{})

	m, cmd := m.submit()
	if cmd != nil {
		t.Error("empty form must not hit the backend")
	}
	if m.notice == "" {
		t.Error("missing credentials should show a notice")
	}
}

func TestSignUpPasswordMismatchBlocksSubmit(t *testing.T) {
	called := false
	m := newTestModel(&stubService{
		signUp: func(context.Context, string, string, string) (*remote.Session, error) {
			called = true
			return nil, nil
		},
	})
	m.mode = modeSignUp
	m.fields[fieldEmail].SetValue("ada@example.com")
	m.fields[fieldPassword].SetValue("s3cret")
	m.fields[fieldConfirm].SetValue("different")

	m, cmd := m.submit()
	if cmd != nil {
		cmd()
	}
	if called {
		t.Error("mismatched passwords must not reach the backend")
	}
	if m.notice != "Passwords do not match." {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestSignInSuccessEmitsSignedIn(t *testing.T) {
	sess := &remote.Session{AccessToken: "tok", Email: "ada@example.com", Name: "Ada"}
	m := newTestModel(&stubService{
		signIn: func(context.Context, string, string) (*remote.Session, error) {
			return sess, nil
		},
	})
	m.fields[fieldEmail].SetValue("ada@example.com")
	m.fields[fieldPassword].SetValue("s3cret")

	m, cmd := m.submit()
	if !m.busy {
		t.Error("submit should mark the form busy")
	}
	if cmd == nil {
		t.Fatal("submit should call the backend")
	}

	m, cmd = m.Update(cmd())
	if cmd == nil {
		t.Fatal("auth success should notify the parent")
	}
	signed, ok := cmd().(SignedInMsg)
	if !ok {
		t.Fatalf("msg type = %T, want SignedInMsg", cmd())
	}
	if signed.Session.Name != "Ada" {
		t.Errorf("session = %+v", signed.Session)
	}
}

func TestSignInFailureShowsNoticeAndKeepsForm(t *testing.T) {
	m := newTestModel(&stubService{
		signIn: func(context.Context, string, string) (*remote.Session, error) {
			return nil, errors.New("backend rejected credentials")
		},
	})
	m.fields[fieldEmail].SetValue("ada@example.com")
	m.fields[fieldPassword].SetValue("wrong")

	m, cmd := m.submit()
	m, _ = m.Update(cmd())

	if m.busy {
		t.Error("failure should clear the busy state")
	}
	if m.notice == "" {
		t.Error("failure should show a notice")
	}
	if m.fields[fieldEmail].Value() != "ada@example.com" {
		t.Error("form should stay filled for retry")
	}
}

func TestSignUpWithoutSessionPromptsConfirmation(t *testing.T) {
	m := newTestModel(&stubService{
		signUp: func(context.Context, string, string, string) (*remote.Session, error) {
			return &remote.Session{Email: "grace@example.com"}, nil
		},
	})
	m.mode = modeSignUp
	m.fields[fieldName].SetValue("Grace")
	m.fields[fieldEmail].SetValue("grace@example.com")
	m.fields[fieldPassword].SetValue("s3cret")
	m.fields[fieldConfirm].SetValue("s3cret")

	m, cmd := m.submit()
	m, cmd = m.Update(cmd())

	if cmd != nil {
		t.Error("confirmation-pending signup must not emit SignedInMsg")
	}
	if m.mode != modeSignIn {
		t.Error("form should fall back to sign-in after signup")
	}
	if m.notice == "" {
		t.Error("user should be told to confirm their email")
	}
}

func TestToggleModeClearsPasswords(t *testing.T) {
	m := newTestModel(&stubService{})
	m.fields[fieldPassword].SetValue("secret")

	m.toggleMode()

	if m.mode != modeSignUp {
		t.Error("toggle should switch to sign-up")
	}
	if m.fields[fieldPassword].Value() != "" {
		t.Error("passwords should clear on mode switch")
	}
}
