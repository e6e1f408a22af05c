// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package presentation replays the log view's entrance transition whenever
// the message log grows. It watches only the log length and never reads or
// writes turn content.
package presentation

import (
	"time"

	"github.com/jeranaias/linkchat-tui/internal/model"
)

// Config controls the entrance transition.
type Config struct {
	Enabled  bool
	Duration time.Duration
	Easing   Easing
}

// DefaultConfig returns the 1.2s ease-out cubic entrance.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Duration: DefaultDuration,
		Easing:   EaseOutCubic,
	}
}

// Sync observes a MessageLog and starts a Transition on mount and on every
// length change. Like the log it watches, it belongs to a single goroutine.
type Sync struct {
	cfg Config
	now func() time.Time

	current     Transition
	mounted     bool
	lastLen     int
	runs        int
	unsubscribe func()
	onStart     func(Transition)
}

// NewSync creates an unmounted observer.
func NewSync(cfg Config) *Sync {
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.Easing == nil {
		cfg.Easing = EaseOutCubic
	}
	return &Sync{cfg: cfg, now: time.Now}
}

// SetClock replaces the time source. Tests use this.
func (s *Sync) SetClock(now func() time.Time) {
	s.now = now
}

// OnStart registers a callback fired each time a transition begins.
func (s *Sync) OnStart(fn func(Transition)) {
	s.onStart = fn
}

// Mount subscribes to log and starts the initial transition. Mounting again
// moves the subscription to the new log.
func (s *Sync) Mount(log *model.MessageLog) {
	s.Unmount()
	s.mounted = true
	s.unsubscribe = log.Subscribe(s.lengthChanged)
	s.start(log.Len())
}

// Unmount stops observing. The current transition is left as is.
func (s *Sync) Unmount() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.mounted = false
}

// Mounted reports whether the observer is attached to a log.
func (s *Sync) Mounted() bool {
	return s.mounted
}

func (s *Sync) lengthChanged(n int) {
	if n == s.lastLen {
		return
	}
	s.start(n)
}

func (s *Sync) start(n int) {
	duration := s.cfg.Duration
	if !s.cfg.Enabled {
		duration = 0
	}
	s.lastLen = n
	s.runs++
	s.current = Transition{
		Start:    s.now(),
		Duration: duration,
		Easing:   s.cfg.Easing,
		Length:   n,
	}
	if s.onStart != nil {
		s.onStart(s.current)
	}
}

// Current returns the most recent transition.
func (s *Sync) Current() Transition {
	return s.current
}

// Runs counts transitions started since creation.
func (s *Sync) Runs() int {
	return s.runs
}

// Frame samples the current transition now. Before any mount it is at rest.
func (s *Sync) Frame() Frame {
	if s.runs == 0 {
		return Rest
	}
	return s.current.At(s.now())
}

// Animating reports whether a transition is still in flight.
func (s *Sync) Animating() bool {
	return s.runs > 0 && !s.current.Done(s.now())
}
