// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the biblioteka command line.
//
// Without a subcommand the interactive TUI starts. The subcommands share the
// TUI's session: a token stored by "biblioteka login" is picked up by the
// TUI and the other way round, and a 401 from any of them clears it.
//
// Usage:
//
//	biblioteka                          Start the TUI (default)
//	biblioteka login [--username NAME]  Sign in and store the session
//	biblioteka logout                   End the stored session
//	biblioteka whoami                   Show the signed-in staff member
//	biblioteka dashboard                Show the headline counters
//	biblioteka members [--query TEXT]   List members
//	biblioteka loans [--member ID]      List active loans, or one member's loans
//	biblioteka reservations [--status]  List reservations
//	biblioteka overdue                  List overdue loans
//	biblioteka config show|path|init|get|set|keys
//	biblioteka version
//
// Global flags:
//
//	--config PATH      Config file (default ~/.biblioteka/config.toml)
//	--api-url URL      Library API root
//	--lang sr|en       Interface language
//	--log-level LEVEL  debug, info, warn or error
//	--log-format FMT   text or json
//	--json             Machine-readable output
package cli
