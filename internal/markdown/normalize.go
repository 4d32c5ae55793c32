// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import "strings"

// Normalize cleans a message body before rendering. It is pure and
// idempotent: running it on its own output is a no-op.
//
// Three fixups, applied in order:
//  1. Literal two-character "\n" escape sequences become real line breaks.
//  2. A reply wrapped entirely in a ``` fence loses the fence, including any
//     language tag on the opening line.
//  3. If at least 80% of non-blank lines start with a tab or four spaces,
//     exactly one such indent unit is stripped from every line.
//
// The pipeline runs to a fixed point so that doubly-wrapped or
// doubly-indented input cannot make a second call observe further change.
func Normalize(raw string) string {
	s := raw
	// Two passes almost always suffice; the cap guards degenerate input.
	for i := 0; i < 8; i++ {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
	return s
}

func normalizeOnce(raw string) string {
	s := raw

	if strings.Contains(s, `\n`) {
		s = strings.ReplaceAll(s, `\n`, "\n")
	}

	if t := strings.TrimSpace(s); strings.HasPrefix(t, "```") && strings.HasSuffix(t, "```") {
		s = stripFence(t)
	}

	if mostlyIndented(s) {
		s = stripIndent(s)
	}

	return s
}

// stripFence removes a global code fence. The whole opening line goes,
// language tag included; the closing fence is removed from the end.
func stripFence(t string) string {
	s := t
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		// The entire text is the opening fence line.
		return ""
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// mostlyIndented reports whether >=80% of non-blank lines begin with a tab
// or four spaces. Blank lines don't count toward either side.
func mostlyIndented(s string) bool {
	lines := strings.Split(s, "\n")
	nonEmpty := 0
	indented := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		nonEmpty++
		if hasIndentUnit(l) {
			indented++
		}
	}
	return nonEmpty > 0 && indented >= nonEmpty*8/10
}

// stripIndent removes exactly one indent unit (tab or four spaces) from
// every line that has one.
func stripIndent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "\t"):
			lines[i] = l[1:]
		case strings.HasPrefix(l, "    "):
			lines[i] = l[4:]
		}
	}
	return strings.Join(lines, "\n")
}

func hasIndentUnit(l string) bool {
	return strings.HasPrefix(l, "\t") || strings.HasPrefix(l, "    ")
}
