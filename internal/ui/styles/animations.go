// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// SPINNERS
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Spinner converts the config for bubbles/spinner.
func (s SpinnerConfig) Spinner() spinner.Spinner {
	return spinner.Spinner{Frames: s.Frames, FPS: s.Duration()}
}

// DotsSpinner - three-dot "typing" animation used while a reply is pending
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// =============================================================================
// ENTRANCE TRANSITION RENDERING
// =============================================================================

// FadeColor picks the FadeRamp step for opacity in [0,1].
func FadeColor(opacity float64) lipgloss.AdaptiveColor {
	if opacity <= 0 {
		return FadeRamp[0]
	}
	if opacity >= 1 {
		return FadeRamp[len(FadeRamp)-1]
	}
	i := int(opacity * float64(len(FadeRamp)))
	if i >= len(FadeRamp) {
		i = len(FadeRamp) - 1
	}
	return FadeRamp[i]
}

// SlideLines returns how many rows a view of height rows is pushed down at
// the given offset fraction.
func SlideLines(height int, offset float64) int {
	if height <= 0 || offset <= 0 {
		return 0
	}
	if offset >= 1 {
		return height
	}
	return int(math.Round(float64(height) * offset))
}

// Slide pushes content down by lines rows, keeping its total height.
// Rows pushed past the bottom are dropped.
func Slide(content string, height, lines int) string {
	if lines <= 0 {
		return content
	}
	rows := strings.Split(content, "\n")
	if lines > height {
		lines = height
	}
	out := make([]string, 0, height)
	for i := 0; i < lines; i++ {
		out = append(out, "")
	}
	for _, r := range rows {
		if len(out) >= height {
			break
		}
		out = append(out, r)
	}
	return strings.Join(out, "\n")
}
