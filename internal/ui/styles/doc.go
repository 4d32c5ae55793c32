// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for threadline.
//
// The palette has two inputs: the theme (light or dark, a user preference)
// and the accent color (any hex value, also a preference). Everything else
// derives from those. Base colors use Lip Gloss AdaptiveColor so the right
// variant is picked once the dark-background override is set from the
// stored theme.
package styles
