// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/linkchat-tui/internal/conversation"
)

// frameInterval paces the entrance transition.
const frameInterval = time.Second / 60

// ReplyMsg carries a finished exchange back to the Update loop.
type ReplyMsg struct {
	Completion conversation.Completion
}

// TransitionTickMsg asks for the next transition frame.
type TransitionTickMsg struct {
	At time.Time
}

// sendCmd runs the exchange off the Update loop.
func sendCmd(ctx context.Context, ex *conversation.Exchange) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Completion: ex.Run(ctx)}
	}
}

func transitionTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TransitionTickMsg{At: t}
	})
}
