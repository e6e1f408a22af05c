// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package presentation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/linkchat-tui/internal/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSync(cfg Config) (*Sync, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewSync(cfg)
	s.SetClock(clock.Now)
	return s, clock
}

// =============================================================================
// EASING TESTS
// =============================================================================

func TestEasing_Endpoints(t *testing.T) {
	for name, fn := range map[string]Easing{
		"linear":      EaseLinear,
		"out-quad":    EaseOutQuad,
		"out-cubic":   EaseOutCubic,
		"in-out-quad": EaseInOutQuad,
		"out-quart":   EaseOutQuart,
	} {
		assert.InDelta(t, 0, fn(0), 1e-9, name)
		assert.InDelta(t, 1, fn(1), 1e-9, name)
	}
}

func TestEaseOutCubic_FrontLoaded(t *testing.T) {
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-9)
	assert.Greater(t, EaseOutCubic(0.25), 0.25)
}

func TestEasingByName(t *testing.T) {
	assert.InDelta(t, 0.5, EasingByName("linear")(0.5), 1e-9)
	assert.InDelta(t, 0.875, EasingByName("")(0.5), 1e-9)
	assert.InDelta(t, 0.875, EasingByName("bogus")(0.5), 1e-9)
	assert.InDelta(t, 0.9375, EasingByName("out-quart")(0.5), 1e-9)
	assert.InDelta(t, 0.9375, EasingByName("power3.out")(0.5), 1e-9)
}

// =============================================================================
// TRANSITION TESTS
// =============================================================================

func TestTransition_Motion(t *testing.T) {
	start := time.Now()
	tr := Transition{Start: start, Duration: time.Second, Easing: EaseLinear}

	f := tr.At(start)
	assert.Equal(t, 1.0, f.Offset)
	assert.Equal(t, 0.0, f.Opacity)
	assert.False(t, f.Done)

	f = tr.At(start.Add(250 * time.Millisecond))
	assert.InDelta(t, 0.75, f.Offset, 1e-9)
	assert.InDelta(t, 0.25, f.Opacity, 1e-9)

	f = tr.At(start.Add(2 * time.Second))
	assert.Equal(t, Rest, f)
}

func TestTransition_ZeroDurationIsInstant(t *testing.T) {
	tr := Transition{Start: time.Now()}
	assert.Equal(t, Rest, tr.At(tr.Start))
}

func TestTransition_BeforeStart(t *testing.T) {
	start := time.Now()
	tr := Transition{Start: start, Duration: time.Second, Easing: EaseOutCubic}
	assert.Equal(t, 0.0, tr.Progress(start.Add(-time.Second)))
}

// =============================================================================
// SYNC TESTS
// =============================================================================

func TestSync_StartsOnMount(t *testing.T) {
	s, _ := newTestSync(DefaultConfig())
	assert.Equal(t, Rest, s.Frame())

	log := model.NewMessageLog(model.DefaultSeed()...)
	s.Mount(log)

	assert.True(t, s.Mounted())
	assert.Equal(t, 1, s.Runs())
	assert.Equal(t, 2, s.Current().Length)
	assert.True(t, s.Animating())
	assert.Equal(t, 1.0, s.Frame().Offset)
}

func TestSync_ReplaysOnEveryAppend(t *testing.T) {
	s, clock := newTestSync(DefaultConfig())
	log := model.NewMessageLog(model.DefaultSeed()...)
	s.Mount(log)

	clock.Advance(5 * time.Second)
	assert.False(t, s.Animating())

	user, err := model.NewUserTurn("What is Chainlink?")
	require.NoError(t, err)
	log.Append(user)
	assert.Equal(t, 2, s.Runs())
	assert.Equal(t, 3, s.Current().Length)
	assert.True(t, s.Animating())

	log.Append(model.NewBotTurn("Chainlink is a decentralized oracle network."))
	assert.Equal(t, 3, s.Runs())
	assert.Equal(t, 4, s.Current().Length)
}

func TestSync_DefaultMotion(t *testing.T) {
	s, clock := newTestSync(DefaultConfig())
	s.Mount(model.NewMessageLog())

	clock.Advance(600 * time.Millisecond)
	f := s.Frame()
	assert.InDelta(t, 0.875, f.Opacity, 1e-9)
	assert.InDelta(t, 0.125, f.Offset, 1e-9)

	clock.Advance(600 * time.Millisecond)
	assert.Equal(t, Rest, s.Frame())
}

func TestSync_DisabledCompletesInstantly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	s, _ := newTestSync(cfg)
	log := model.NewMessageLog()
	s.Mount(log)
	log.Append(model.NewBotTurn("x"))

	assert.Equal(t, 2, s.Runs(), "triggers still fire")
	assert.False(t, s.Animating())
	assert.Equal(t, Rest, s.Frame())
}

func TestSync_Unmount(t *testing.T) {
	s, _ := newTestSync(DefaultConfig())
	log := model.NewMessageLog()
	s.Mount(log)
	s.Unmount()
	log.Append(model.NewBotTurn("x"))

	assert.False(t, s.Mounted())
	assert.Equal(t, 1, s.Runs())
}

func TestSync_RemountMovesSubscription(t *testing.T) {
	s, _ := newTestSync(DefaultConfig())
	first := model.NewMessageLog()
	second := model.NewMessageLog()
	s.Mount(first)
	s.Mount(second)

	first.Append(model.NewBotTurn("ignored"))
	assert.Equal(t, 2, s.Runs())

	second.Append(model.NewBotTurn("seen"))
	assert.Equal(t, 3, s.Runs())
}

func TestSync_OnStart(t *testing.T) {
	s, _ := newTestSync(DefaultConfig())
	var lengths []int
	s.OnStart(func(tr Transition) { lengths = append(lengths, tr.Length) })

	log := model.NewMessageLog(model.DefaultSeed()...)
	s.Mount(log)
	log.Append(model.NewBotTurn("x"))

	assert.Equal(t, []int{2, 3}, lengths)
}

func TestNewSync_FillsDefaults(t *testing.T) {
	s := NewSync(Config{Enabled: true})
	assert.Equal(t, DefaultDuration, s.cfg.Duration)
	require.NotNil(t, s.cfg.Easing)
	assert.False(t, math.IsNaN(s.cfg.Easing(0.5)))
}
