// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application, derived from
// the stored theme name and accent color.
type Theme struct {
	// Inputs
	IsDark bool
	Accent Accent

	// Terminal capabilities
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	BubbleMeta      lipgloss.Style
	RevealDim       lipgloss.Style
	AttachmentChip  lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// THINKING INDICATOR AND EMPTY STATE
	// ==========================================================================

	Spinner        lipgloss.Style
	ThinkingText   lipgloss.Style
	EmptyTitle     lipgloss.Style
	EmptySubtitle  lipgloss.Style
	SuggestionCard lipgloss.Style

	// ==========================================================================
	// CONVERSATION LIST STYLES
	// ==========================================================================

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListTitle        lipgloss.Style
	ListPreview      lipgloss.Style
	ListMeta         lipgloss.Style
	ListCount        lipgloss.Style
	SearchBox        lipgloss.Style
	DangerAction     lipgloss.Style

	// ==========================================================================
	// FORM STYLES (login, settings)
	// ==========================================================================

	FormBox        lipgloss.Style
	FormTitle      lipgloss.Style
	FormLabel      lipgloss.Style
	FormField      lipgloss.Style
	FormFieldFocus lipgloss.Style
	FormButton     lipgloss.Style
	FormHint       lipgloss.Style
	SwatchSelected lipgloss.Style

	// ==========================================================================
	// NOTICES
	// ==========================================================================

	ErrorNotice   lipgloss.Style
	SuccessNotice lipgloss.Style
	InfoNotice    lipgloss.Style
}

// NewTheme creates a theme for the given preferences. The dark-background
// override must already be set (see Apply) so AdaptiveColor resolves to the
// stored theme rather than the detected one.
func NewTheme(isDark bool, accentHex, fallbackAccent string) *Theme {
	t := &Theme{
		IsDark:       isDark,
		Accent:       NewAccent(accentHex, fallbackAccent),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// Apply forces Lip Gloss to render for the stored theme instead of the
// detected terminal background.
func Apply(isDark bool) {
	lipgloss.SetHasDarkBackground(isDark)
}

func (t *Theme) initStyles() {
	accent := t.Accent

	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent.Primary)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent.Primary)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Message bubbles. User messages carry the accent, assistant replies
	// stay neutral so rendered markdown keeps its own colors.
	t.UserBubble = lipgloss.NewStyle().
		Foreground(accent.TintFg).
		Background(accent.Tint).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent.Primary).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 2).
		MarginRight(4)

	t.BubbleMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.RevealDim = lipgloss.NewStyle().
		Foreground(TextMuted).
		Faint(true)

	t.AttachmentChip = lipgloss.NewStyle().
		Foreground(accent.TintFg).
		Background(accent.Tint).
		Padding(0, 1)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(accent.Primary).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Thinking indicator and empty state
	t.Spinner = lipgloss.NewStyle().
		Foreground(accent.Primary)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.EmptyTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		Align(lipgloss.Center)

	t.EmptySubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Align(lipgloss.Center)

	t.SuggestionCard = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	// Conversation list
	t.ListItem = lipgloss.NewStyle().
		Padding(0, 1)

	t.ListItemSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(accent.Tint).
		Foreground(accent.TintFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(accent.Primary)

	t.ListTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.ListPreview = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ListMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ListCount = lipgloss.NewStyle().
		Foreground(accent.Primary)

	t.SearchBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.DangerAction = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 3)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent.Primary).
		MarginBottom(1)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormField = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.FormFieldFocus = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(accent.Primary).
		PaddingLeft(1)

	t.FormButton = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(accent.Primary).
		Padding(0, 3)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SwatchSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent.Primary)

	// Notices
	t.ErrorNotice = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.SuccessNotice = lipgloss.NewStyle().
		Foreground(Emerald)

	t.InfoNotice = lipgloss.NewStyle().
		Foreground(TextSecondary)
}

// GlamourStyle returns the glamour standard style name matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}
