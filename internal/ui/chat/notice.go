// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrorNoticeDuration is how long a failed exchange stays in the status bar.
const ErrorNoticeDuration = 8 * time.Second

// notice is a non-blocking status bar message that dismisses itself.
type notice struct {
	ID        int
	Text      string
	CreatedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the notice should no longer be shown.
func (n notice) Expired(now time.Time) bool {
	return now.Sub(n.CreatedAt) >= n.Duration
}

// noticeExpiredMsg dismisses the notice with the matching ID. Later notices
// are left alone.
type noticeExpiredMsg struct {
	ID int
}

func expireNotice(n notice) tea.Cmd {
	return tea.Tick(n.Duration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{ID: n.ID}
	})
}
