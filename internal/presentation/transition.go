// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package presentation

import "time"

// DefaultDuration is the entrance transition length.
const DefaultDuration = 1200 * time.Millisecond

// Transition is one run of the log view's entrance motion: the view slides
// from a full-height offset to rest while fading from transparent to opaque.
type Transition struct {
	Start    time.Time
	Duration time.Duration
	Easing   Easing

	// Length is the log length that started this run.
	Length int
}

// Progress returns eased progress in [0,1] at now.
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.Start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= t.Duration {
		return 1
	}
	p := float64(elapsed) / float64(t.Duration)
	if t.Easing != nil {
		p = t.Easing(p)
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Offset is the vertical displacement as a fraction of the view height.
// 1 at the start, 0 at rest.
func (t Transition) Offset(now time.Time) float64 {
	return 1 - t.Progress(now)
}

// Opacity runs 0 to 1.
func (t Transition) Opacity(now time.Time) float64 {
	return t.Progress(now)
}

// Done reports whether the transition has reached rest.
func (t Transition) Done(now time.Time) bool {
	return t.Duration <= 0 || now.Sub(t.Start) >= t.Duration
}

// Frame is a transition sampled at one instant.
type Frame struct {
	Offset  float64
	Opacity float64
	Done    bool
}

// At samples the transition.
func (t Transition) At(now time.Time) Frame {
	return Frame{
		Offset:  t.Offset(now),
		Opacity: t.Opacity(now),
		Done:    t.Done(now),
	}
}

// Rest is the frame of a view that is not animating.
var Rest = Frame{Offset: 0, Opacity: 1, Done: true}
