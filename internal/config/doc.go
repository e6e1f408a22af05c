// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for linkchat.
//
// # Configuration Precedence
//
// Configuration is resolved from (highest first):
//   - Command-line flags (--endpoint, --log-level, ...)
//   - Environment variables (LINKCHAT_*), including ones read from ./.env
//   - ~/.linkchat/config.toml, or the file named by --config
//   - Built-in defaults
//
// # Example
//
//	[endpoint]
//	url = "http://127.0.0.1:8000/chat_gen"
//
//	[ui]
//	animation = true
//	animation_ms = 1200
//	show_errors = false
//	theme = "auto"
//
//	[log]
//	level = "info"
//	format = "console"
//	file = "/home/me/.linkchat/linkchat.log"
//
//	[[seed]]
//	text = "Hi!"
//	sender = "user"
//
//	[[seed]]
//	text = "Hello! How can I help you today?"
//	sender = "bot"
package config
