// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli wires configuration, logging and the conversation core into
// the linkchat command tree.
//
// # Commands
//
//	linkchat                 TUI when stdout is a terminal, line mode otherwise
//	linkchat chat --plain    line-mode REPL
//	linkchat ask PROMPT      one-shot question (--json for machine output)
//	linkchat stub            canned-reply endpoint for demos and tests
//	linkchat config show|path|init
//	linkchat doctor          endpoint reachability
//	linkchat version
//
// # Global Flags
//
//	--endpoint URL     override endpoint.url
//	--config PATH      read this TOML file instead of ~/.linkchat/config.toml
//	--log-level LEVEL  trace, debug, info, warn, error, off
//	--log-file PATH    diagnostic log file ("-" disables it)
//	--log-format FMT   console or json
//
// The TUI and the REPL own the terminal, so diagnostics go to the log file
// only. The stub server also logs to stderr.
package cli
