// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen chat view.
//
// The textinput mirrors the controller's draft on every keystroke. Enter
// commits it: the user turn lands in the log at once, the exchange runs as a
// tea.Cmd, and its ReplyMsg is resolved back on the Update loop. Each log
// append replays the entrance transition, drawn from TransitionTickMsg
// frames until it comes to rest.
//
//	m := chat.New(chat.Options{Controller: ctrl, Endpoint: url})
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package chat
