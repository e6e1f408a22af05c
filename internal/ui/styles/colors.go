// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Chainlink blue, the primary accent.
var Blue = lipgloss.AdaptiveColor{Light: "#2A5ADA", Dark: "#7B9DF2"}

var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT
// =============================================================================

var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// MESSAGE BUBBLES
// =============================================================================

var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

var BotBubbleFg = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#E5E7EB"}
var BotBubbleBorder = lipgloss.AdaptiveColor{Light: "#2A5ADA", Dark: "#7B9DF2"}

// =============================================================================
// FADE RAMP
// =============================================================================

// FadeRamp runs from nearly invisible to full text color. The entrance
// transition picks a step by opacity.
var FadeRamp = []lipgloss.AdaptiveColor{
	{Light: "#E5E7EB", Dark: "#313244"},
	{Light: "#D1D5DB", Dark: "#45475A"},
	{Light: "#9CA3AF", Dark: "#6C7086"},
	{Light: "#6B7280", Dark: "#A6ADC8"},
	TextPrimary,
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// StatusIndicators are ASCII shapes shown next to status colors.
var StatusIndicators = struct {
	Success string
	Warning string
	Error   string
}{
	Success: "[OK]",
	Warning: "[!]",
	Error:   "[X]",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#22C55E"}).
		Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true).
		Render(StatusIndicators.Warning + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Render(StatusIndicators.Error + " " + message)
}
