// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// DraftBuffer holds the text the user is composing. It is never historized.
type DraftBuffer struct {
	text string
}

// NewDraftBuffer returns an empty draft.
func NewDraftBuffer() *DraftBuffer {
	return &DraftBuffer{}
}

// SetText replaces the draft verbatim. No validation happens while typing.
func (d *DraftBuffer) SetText(s string) {
	d.text = s
}

// Text returns the current draft.
func (d *DraftBuffer) Text() string {
	return d.text
}

// IsBlank reports whether committing now would be a no-op.
func (d *DraftBuffer) IsBlank() bool {
	return strings.TrimSpace(d.text) == ""
}

// Commit trims the draft. A blank draft is left untouched and ok is false.
// Otherwise the trimmed prompt is returned and the buffer is reset.
func (d *DraftBuffer) Commit() (prompt string, ok bool) {
	trimmed := strings.TrimSpace(d.text)
	if trimmed == "" {
		return "", false
	}
	d.text = ""
	return trimmed, true
}
