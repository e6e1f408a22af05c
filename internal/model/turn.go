// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable label for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// ParseSender converts a config or wire value into a Sender.
func ParseSender(v string) (Sender, error) {
	s := Sender(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown sender %q", v)
	}
	return s, nil
}

// =============================================================================
// TURN TYPE
// =============================================================================

// ErrEmptyTurn is returned when a user turn would carry no text after trimming.
var ErrEmptyTurn = errors.New("turn text is empty")

// Turn is one entry in the conversation. Turns are values: once appended to a
// MessageLog they are never changed.
type Turn struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserTurn creates a user turn. The text is trimmed and must not be empty.
func NewUserTurn(text string) (Turn, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Turn{}, ErrEmptyTurn
	}
	return newTurn(SenderUser, trimmed), nil
}

// NewBotTurn creates a bot turn. The reply is kept verbatim; the backend is
// allowed to answer with an empty string.
func NewBotTurn(reply string) Turn {
	return newTurn(SenderBot, reply)
}

func newTurn(sender Sender, text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		CreatedAt: time.Now(),
	}
}

// IsUser returns true for turns the user committed.
func (t Turn) IsUser() bool {
	return t.Sender == SenderUser
}

// =============================================================================
// SEED
// =============================================================================

// SeedEntry is a text/sender pair used to pre-populate a log at mount time.
type SeedEntry struct {
	Text   string
	Sender Sender
}

// DefaultSeed is the greeting pair every conversation starts with.
func DefaultSeed() []Turn {
	return SeedTurns([]SeedEntry{
		{Text: "Hi!", Sender: SenderUser},
		{Text: "Hello! How can I help you today?", Sender: SenderBot},
	})
}

// SeedTurns turns seed entries into turns. Seed text is taken as-is.
func SeedTurns(entries []SeedEntry) []Turn {
	turns := make([]Turn, 0, len(entries))
	for _, e := range entries {
		turns = append(turns, newTurn(e.Sender, e.Text))
	}
	return turns
}
