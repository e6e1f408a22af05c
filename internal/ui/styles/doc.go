// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the linkchat TUI.

Colors are lipgloss AdaptiveColors, so one palette serves light and dark
terminals. NewTheme either trusts the configured mode or asks termenv for
the terminal background.

# Entrance transition

The log view's entrance motion is computed in package presentation as an
offset and an opacity. This package turns those numbers into something a
terminal can show:

	lines := styles.SlideLines(height, frame.Offset)
	color := styles.FadeColor(frame.Opacity)
	view := styles.Slide(lipgloss.NewStyle().Foreground(color).Render(body), height, lines)
*/
package styles
