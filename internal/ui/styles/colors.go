// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// SurfaceBright - Slightly lighter/darker surface for highlights
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// OverlayDim - Dimmer overlay for less prominent elements
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, destructive actions
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Warnings, pending states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// ACCENT PALETTE
// =============================================================================

// AccentPreset is a named accent choice offered in settings. Any hex value
// works; these are just the curated ones.
type AccentPreset struct {
	Name string
	Hex  string
}

// AccentPresets are the accent colors offered by the settings screen.
var AccentPresets = []AccentPreset{
	{Name: "Orange", Hex: "#f97316"},
	{Name: "Violet", Hex: "#8b5cf6"},
	{Name: "Blue", Hex: "#3b82f6"},
	{Name: "Green", Hex: "#22c55e"},
	{Name: "Rose", Hex: "#f43f5e"},
	{Name: "Teal", Hex: "#14b8a6"},
}

// Accent is the palette derived from a single accent hex value.
type Accent struct {
	// Primary is the accent itself, used for borders and highlights.
	Primary lipgloss.Color
	// Tint is a washed-out accent suitable as a bubble background.
	Tint lipgloss.AdaptiveColor
	// TintFg is readable text on top of Tint.
	TintFg lipgloss.AdaptiveColor
	// Muted is the accent pulled toward the surface, for subtle emphasis.
	Muted lipgloss.AdaptiveColor
}

// NewAccent derives a full accent palette from a hex color. Invalid input
// falls back to the given default.
func NewAccent(hex, fallback string) Accent {
	r, g, b, err := parseHex(hex)
	if err != nil {
		r, g, b, err = parseHex(fallback)
		if err != nil {
			r, g, b = 0xf9, 0x73, 0x16
		}
	}

	primary := fmt.Sprintf("#%02x%02x%02x", r, g, b)
	return Accent{
		Primary: lipgloss.Color(primary),
		Tint: lipgloss.AdaptiveColor{
			Light: mix(r, g, b, 0xFF, 0xFF, 0xFF, 0.85),
			Dark:  mix(r, g, b, 0x1E, 0x1E, 0x2E, 0.72),
		},
		TintFg: lipgloss.AdaptiveColor{
			Light: mix(r, g, b, 0x00, 0x00, 0x00, 0.45),
			Dark:  mix(r, g, b, 0xFF, 0xFF, 0xFF, 0.70),
		},
		Muted: lipgloss.AdaptiveColor{
			Light: mix(r, g, b, 0xFF, 0xFF, 0xFF, 0.45),
			Dark:  mix(r, g, b, 0x1E, 0x1E, 0x2E, 0.40),
		},
	}
}

// parseHex parses "#rgb" or "#rrggbb".
func parseHex(s string) (r, g, b int, err error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	default:
		err = fmt.Errorf("invalid hex color %q", s)
	}
	return
}

// mix blends a color toward a target, t=1 meaning all target.
func mix(r, g, b, tr, tg, tb int, t float64) string {
	blend := func(a, c int) int {
		return int(float64(a) + (float64(c)-float64(a))*t)
	}
	return fmt.Sprintf("#%02x%02x%02x", blend(r, tr), blend(g, tg), blend(b, tb))
}
