// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across linkchat.
//
// String helpers are rune- and display-width aware, so turn previews and
// the status line never split a multi-byte character or overflow a column
// budget with wide (CJK, emoji) text. AtomicWriteFile is used when saving
// the config file.
//
//	label := util.TruncateWidth(endpoint, 40)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
