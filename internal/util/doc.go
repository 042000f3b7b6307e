// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across biblioteka.
//
// String Utilities:
//   - StringWidth, TruncateWidth, PadRight, PadLeft: column-aware text
//     fitting for tables (Serbian diacritics and wide characters alike)
//   - FirstNonEmpty: display fallbacks for optional server fields
//   - DatePart: the calendar day of a server date or timestamp
//
// File Operations:
//   - AtomicWriteFileWithDir: crash-safe file writing with fsync
//
// # Usage
//
//	cell := util.PadRight(member.FullName(), 24)
//	err := util.AtomicWriteFileWithDir(path, data, 0600, 0700)
package util
