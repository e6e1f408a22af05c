// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package presentation

import "strings"

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// EaseLinear - constant speed
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad - decelerating to zero
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseOutCubic - decelerating to zero (smoother)
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// EaseOutQuart - 1-(1-t)^4, the curve GSAP calls "power3.out"
func EaseOutQuart(t float64) float64 {
	t = 1 - t
	return 1 - t*t*t*t
}

// EaseInOutQuad - acceleration until halfway, then deceleration
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EasingByName resolves a config name. Unknown names fall back to ease-out cubic.
func EasingByName(name string) Easing {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return EaseLinear
	case "out-quad", "ease-out-quad":
		return EaseOutQuad
	case "in-out-quad", "ease-in-out-quad":
		return EaseInOutQuad
	case "out-quart", "ease-out-quart", "power3.out":
		return EaseOutQuart
	default:
		return EaseOutCubic
	}
}
