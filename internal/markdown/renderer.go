// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns normalized Markdown into styled terminal output.
//
// It wraps a glamour TermRenderer configured for the active theme and
// wrap width. Rebuilt on resize and theme change rather than per message.
type Renderer struct {
	tr        *glamour.TermRenderer
	wrapWidth int
	style     string
}

// NewRenderer creates a renderer for the given theme ("light" or "dark")
// and wrap width in columns.
func NewRenderer(theme string, wrapWidth int) (*Renderer, error) {
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	style := "dark"
	if theme == "light" {
		style = "light"
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrapWidth),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}

	return &Renderer{tr: tr, wrapWidth: wrapWidth, style: style}, nil
}

// Render normalizes and renders a message body. On renderer failure the
// normalized plain text is returned so a bad reply never blanks the thread.
func (r *Renderer) Render(raw string) string {
	s := Normalize(raw)
	if r == nil || r.tr == nil {
		return s
	}
	out, err := r.tr.Render(s)
	if err != nil {
		return s
	}
	// glamour pads output with a leading and trailing newline; the thread
	// view manages its own spacing.
	return strings.Trim(out, "\n")
}

// WrapWidth returns the width the renderer was built for.
func (r *Renderer) WrapWidth() int {
	return r.wrapWidth
}
