// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/threadline-tui/internal/prefs"
	"github.com/jeranaias/threadline-tui/internal/ui/styles"
)

func newTestModel(p *prefs.Preferences) Model {
	m := New(styles.NewTheme(p.Theme == prefs.ThemeDark, p.AccentColor, prefs.DefaultAccent), p)
	m.SetSize(80, 24)
	return m
}

func TestNewSeedsFromPreferences(t *testing.T) {
	p := &prefs.Preferences{
		Theme:       prefs.ThemeDark,
		AccentColor: "#8b5cf6",
		User:        &prefs.User{Email: "ada@example.com", DisplayName: "Ada", AssistantName: "Hal"},
	}

	m := newTestModel(p)

	if !m.dark {
		t.Error("dark theme not seeded")
	}
	if m.displayName.Value() != "Ada" || m.assistantName.Value() != "Hal" {
		t.Errorf("names not seeded: %q, %q", m.displayName.Value(), m.assistantName.Value())
	}
	if styles.AccentPresets[m.accentIdx].Hex != "#8b5cf6" {
		t.Errorf("accent preset = %q", styles.AccentPresets[m.accentIdx].Hex)
	}
}

func TestSaveEmitsEditedPreferences(t *testing.T) {
	p := prefs.Default()
	p.User = &prefs.User{Email: "ada@example.com", DisplayName: "Ada"}
	m := newTestModel(p)
	m.dark = true
	m.displayName.SetValue("  Ada Lovelace  ")
	m.assistantName.SetValue("Hal")

	_, cmd := m.save()
	if cmd == nil {
		t.Fatal("save should emit SavedMsg")
	}
	saved, ok := cmd().(SavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want SavedMsg", cmd())
	}
	if saved.Preferences.Theme != prefs.ThemeDark {
		t.Errorf("theme = %q", saved.Preferences.Theme)
	}
	if saved.Preferences.User.DisplayName != "Ada Lovelace" {
		t.Errorf("display name = %q, want trimmed", saved.Preferences.User.DisplayName)
	}
	if saved.Preferences.User.AssistantName != "Hal" {
		t.Errorf("assistant name = %q", saved.Preferences.User.AssistantName)
	}
}

func TestAccentCyclingWraps(t *testing.T) {
	m := newTestModel(prefs.Default())
	m.setRow(rowAccent)
	n := len(styles.AccentPresets)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if m.accentIdx != n-1 {
		t.Errorf("left from 0 should wrap to %d, got %d", n-1, m.accentIdx)
	}
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	if m.accentIdx != 0 {
		t.Errorf("right should wrap back to 0, got %d", m.accentIdx)
	}
}

func TestEscapeClosesWithoutSaving(t *testing.T) {
	m := newTestModel(prefs.Default())
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should emit ClosedMsg")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Errorf("msg = %T, want ClosedMsg", cmd())
	}
}
