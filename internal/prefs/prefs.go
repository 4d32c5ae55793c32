// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jeranaias/threadline-tui/internal/util"
)

// =============================================================================
// PREFERENCE TYPES
// =============================================================================

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultAccent is the accent color used until the user picks another.
const DefaultAccent = "#f97316"

// User is the locally remembered identity of the signed-in user.
type User struct {
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	AvatarRef     string `json:"avatar_ref,omitempty"`
	AssistantName string `json:"assistant_name,omitempty"`
}

// Preferences holds everything that survives a restart. A nil User means
// logged out.
type Preferences struct {
	Theme       string `json:"theme"`
	AccentColor string `json:"accent_color"`
	User        *User  `json:"user,omitempty"`
}

// Default returns logged-out preferences with the default look.
func Default() *Preferences {
	return &Preferences{
		Theme:       ThemeLight,
		AccentColor: DefaultAccent,
	}
}

// SignedIn reports whether a user identity is remembered.
func (p *Preferences) SignedIn() bool {
	return p.User != nil && p.User.Email != ""
}

// Normalize coerces unknown values back to defaults.
func (p *Preferences) Normalize() {
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	if p.AccentColor == "" {
		p.AccentColor = DefaultAccent
	}
	if p.User != nil && p.User.Email == "" {
		p.User = nil
	}
}

// =============================================================================
// PREFS STORE
// =============================================================================

// Store handles preference persistence.
type Store struct {
	// Path is the preferences file location.
	// Default: ~/.threadline/prefs.json
	Path string
}

// NewStore creates a store at the default location.
func NewStore() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStoreWithPath(filepath.Join(homeDir, ".threadline", "prefs.json"))
}

// NewStoreWithPath creates a store at a custom location.
func NewStoreWithPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &Store{Path: path}, nil
}

// rawPreferences defers user decoding so a corrupt identity blob drops
// only the identity, not the whole preferences file.
type rawPreferences struct {
	Theme       string          `json:"theme"`
	AccentColor string          `json:"accent_color"`
	User        json.RawMessage `json:"user,omitempty"`
}

// Load reads preferences from disk. A missing or unreadable file yields
// defaults; a malformed user entry yields the stored look, logged out.
func (s *Store) Load() *Preferences {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Default()
	}

	var raw rawPreferences
	if err := json.Unmarshal(data, &raw); err != nil {
		return Default()
	}

	p := &Preferences{
		Theme:       raw.Theme,
		AccentColor: raw.AccentColor,
	}
	if len(raw.User) > 0 {
		var u User
		if err := json.Unmarshal(raw.User, &u); err == nil {
			p.User = &u
		}
	}

	p.Normalize()
	return p
}

// Save persists preferences. The write is atomic with fsync.
func (s *Store) Save(p *Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.Path, data, 0600)
}
