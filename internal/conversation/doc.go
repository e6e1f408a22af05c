// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation implements the turn-taking state machine.
//
// A Controller moves between two states:
//
//	Idle --Commit(non-empty)--> AwaitingReply
//	AwaitingReply --Resolve(reply)--> Idle   (bot turn appended)
//	AwaitingReply --Resolve(error)--> Idle   (nothing appended, error logged)
//
// Commit and Resolve must be called from the goroutine that owns the
// MessageLog. Exchange.Run is the only blocking step and is meant to run
// elsewhere (a bubbletea Cmd, a goroutine), handing its Completion back to
// the owner:
//
//	ex, ok := ctrl.Commit()
//	if !ok {
//	    return // blank draft
//	}
//	go func() { results <- ex.Run(ctx) }()
//	...
//	ctrl.Resolve(<-results)
//
// A second Commit while a reply is outstanding is accepted. Replies are
// appended in the order they complete, which need not match the order the
// prompts were sent.
package conversation
