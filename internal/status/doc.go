// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package status computes display statuses for time-bound library records.
//
// Every function here is pure: it reads a record and the current time and
// returns a label, without mutating the record or touching the network.
// Callers recompute on every render; a derived status is never stored.
//
// Dates from the server are calendar dates, so all comparisons happen at day
// granularity against the calendar date of "now" in now's location. A record
// due today is not overdue; a membership valid until today is still paid.
//
// Malformed input never panics. When a date cannot be parsed the record keeps
// its server-reported status.
package status
