// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the conversation state owned by a chat view.
//
// # Key Types
//
//   - Turn: one conversational entry attributed to the user or the bot
//   - MessageLog: append-only, insertion-ordered record of turns
//   - DraftBuffer: the uncommitted text the user is composing
//
// None of the types here are safe for concurrent use. They are owned by a
// single event loop (the bubbletea Update loop or the line-mode REPL) and
// only ever mutated from it.
//
// # Usage
//
//	log := model.NewMessageLog(model.DefaultSeed()...)
//	draft := model.NewDraftBuffer()
//
//	draft.SetText("  What is Chainlink?  ")
//	if prompt, ok := draft.Commit(); ok {
//	    turn, _ := model.NewUserTurn(prompt)
//	    log.Append(turn)
//	}
package model
