// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TURN TESTS
// =============================================================================

func TestNewUserTurn(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain", "What is Chainlink?", "What is Chainlink?", nil},
		{"trims surrounding space", "  hello \n", "hello", nil},
		{"keeps inner space", "a  b", "a  b", nil},
		{"empty", "", "", ErrEmptyTurn},
		{"whitespace only", "   \t\n", "", ErrEmptyTurn},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			turn, err := NewUserTurn(tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("NewUserTurn(%q) error = %v, want %v", tc.input, err, tc.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, turn.Text)
			assert.Equal(t, SenderUser, turn.Sender)
			assert.NotEmpty(t, turn.ID)
		})
	}
}

func TestNewBotTurn_AllowsEmpty(t *testing.T) {
	turn := NewBotTurn("")
	if turn.Sender != SenderBot {
		t.Errorf("Sender = %q, want bot", turn.Sender)
	}
	if turn.Text != "" {
		t.Errorf("Text = %q, want empty", turn.Text)
	}
}

func TestNewBotTurn_KeepsWhitespace(t *testing.T) {
	turn := NewBotTurn("  spaced reply  ")
	if turn.Text != "  spaced reply  " {
		t.Errorf("Text = %q, bot replies must be kept verbatim", turn.Text)
	}
}

func TestTurn_IDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		turn := NewBotTurn("x")
		if seen[turn.ID] {
			t.Fatalf("duplicate turn ID %q", turn.ID)
		}
		seen[turn.ID] = true
	}
}

func TestParseSender(t *testing.T) {
	s, err := ParseSender(" User ")
	require.NoError(t, err)
	assert.Equal(t, SenderUser, s)

	s, err = ParseSender("bot")
	require.NoError(t, err)
	assert.Equal(t, SenderBot, s)

	_, err = ParseSender("assistant")
	assert.Error(t, err)
}

func TestSender_DisplayName(t *testing.T) {
	assert.Equal(t, "You", SenderUser.DisplayName())
	assert.Equal(t, "Assistant", SenderBot.DisplayName())
	assert.Equal(t, "other", Sender("other").DisplayName())
}

// =============================================================================
// MESSAGE LOG TESTS
// =============================================================================

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	require.Len(t, seed, 2)
	assert.Equal(t, "Hi!", seed[0].Text)
	assert.Equal(t, SenderUser, seed[0].Sender)
	assert.Equal(t, "Hello! How can I help you today?", seed[1].Text)
	assert.Equal(t, SenderBot, seed[1].Sender)
}

func TestMessageLog_AppendGrowsInOrder(t *testing.T) {
	log := NewMessageLog(DefaultSeed()...)
	before := log.Turns()

	user, err := NewUserTurn("What is Chainlink?")
	require.NoError(t, err)
	n := log.Append(user)
	assert.Equal(t, 3, n)

	n = log.Append(NewBotTurn("Chainlink is a decentralized oracle network."))
	assert.Equal(t, 4, n)

	after := log.Turns()
	require.Len(t, after, 4)
	for i := range before {
		assert.Equal(t, before[i], after[i], "existing entry %d changed", i)
	}
	assert.Equal(t, "What is Chainlink?", after[2].Text)
	assert.Equal(t, SenderBot, after[3].Sender)
}

func TestMessageLog_DoesNotEnforceAlternation(t *testing.T) {
	log := NewMessageLog()
	a, _ := NewUserTurn("one")
	b, _ := NewUserTurn("two")
	log.Append(a)
	log.Append(b)
	assert.Equal(t, 2, log.Len())
}

func TestMessageLog_TurnsReturnsCopy(t *testing.T) {
	log := NewMessageLog(DefaultSeed()...)
	turns := log.Turns()
	turns[0].Text = "rewritten"

	first, ok := log.At(0)
	require.True(t, ok)
	assert.Equal(t, "Hi!", first.Text)
}

func TestMessageLog_SeedIsCopied(t *testing.T) {
	seed := DefaultSeed()
	log := NewMessageLog(seed...)
	seed[0].Text = "changed"

	first, _ := log.At(0)
	assert.Equal(t, "Hi!", first.Text)
}

func TestMessageLog_Last(t *testing.T) {
	log := NewMessageLog()
	_, ok := log.Last()
	assert.False(t, ok)

	log.Append(NewBotTurn("reply"))
	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, "reply", last.Text)
}

func TestMessageLog_At_OutOfRange(t *testing.T) {
	log := NewMessageLog(DefaultSeed()...)
	_, ok := log.At(-1)
	assert.False(t, ok)
	_, ok = log.At(2)
	assert.False(t, ok)
}

func TestMessageLog_Subscribe(t *testing.T) {
	log := NewMessageLog(DefaultSeed()...)

	var lengths []int
	unsubscribe := log.Subscribe(func(n int) {
		lengths = append(lengths, n)
	})

	log.Append(NewBotTurn("a"))
	log.Append(NewBotTurn("b"))
	unsubscribe()
	log.Append(NewBotTurn("c"))

	assert.Equal(t, []int{3, 4}, lengths)
}

func TestMessageLog_ListenerSeesAppendedTurn(t *testing.T) {
	log := NewMessageLog()
	var seen string
	log.Subscribe(func(n int) {
		turn, _ := log.At(n - 1)
		seen = turn.Text
	})
	log.Append(NewBotTurn("visible"))
	assert.Equal(t, "visible", seen)
}

// =============================================================================
// DRAFT BUFFER TESTS
// =============================================================================

func TestDraftBuffer_CommitTrimsAndClears(t *testing.T) {
	d := NewDraftBuffer()
	d.SetText("  What is Chainlink?  ")

	prompt, ok := d.Commit()
	require.True(t, ok)
	assert.Equal(t, "What is Chainlink?", prompt)
	assert.Equal(t, "", d.Text())
}

func TestDraftBuffer_BlankCommitIsNoOp(t *testing.T) {
	tests := []string{"", " ", "   ", "\t\n"}
	for _, input := range tests {
		d := NewDraftBuffer()
		d.SetText(input)

		prompt, ok := d.Commit()
		if ok {
			t.Errorf("Commit(%q) ok = true, want false", input)
		}
		if prompt != "" {
			t.Errorf("Commit(%q) prompt = %q, want empty", input, prompt)
		}
		if d.Text() != input {
			t.Errorf("Commit(%q) changed buffer to %q", input, d.Text())
		}
	}
}

func TestDraftBuffer_SetTextIsVerbatim(t *testing.T) {
	d := NewDraftBuffer()
	d.SetText("  partial ")
	assert.Equal(t, "  partial ", d.Text())
	assert.False(t, d.IsBlank())

	d.SetText("   ")
	assert.True(t, d.IsBlank())
}
