// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// MESSAGE LOG
// =============================================================================

// LengthListener is notified with the new log length after every append.
type LengthListener func(length int)

// MessageLog is the ordered, append-only record of a conversation.
//
// There is no remove, update or reorder operation. Turns are stored by value
// and Turns() returns a copy.
type MessageLog struct {
	turns     []Turn
	listeners map[int]LengthListener
	nextID    int
}

// NewMessageLog creates a log holding the given seed turns in order.
func NewMessageLog(seed ...Turn) *MessageLog {
	turns := make([]Turn, len(seed), len(seed)+16)
	copy(turns, seed)
	return &MessageLog{
		turns:     turns,
		listeners: make(map[int]LengthListener),
	}
}

// Append adds a turn to the end of the log and returns the new length.
// Listeners run synchronously before Append returns.
func (l *MessageLog) Append(turn Turn) int {
	l.turns = append(l.turns, turn)
	n := len(l.turns)
	for _, fn := range l.listeners {
		fn(n)
	}
	return n
}

// Turns returns a copy of the full ordered sequence.
func (l *MessageLog) Turns() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns in the log.
func (l *MessageLog) Len() int {
	return len(l.turns)
}

// At returns the turn at index i.
func (l *MessageLog) At(i int) (Turn, bool) {
	if i < 0 || i >= len(l.turns) {
		return Turn{}, false
	}
	return l.turns[i], true
}

// Last returns the most recent turn, or false if the log is empty.
func (l *MessageLog) Last() (Turn, bool) {
	return l.At(len(l.turns) - 1)
}

// Subscribe registers fn to be called after each append. The returned
// function removes the subscription.
func (l *MessageLog) Subscribe(fn LengthListener) (unsubscribe func()) {
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	return func() {
		delete(l.listeners, id)
	}
}
