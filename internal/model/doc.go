// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the records exchanged with the library API.
//
// The server is the source of truth for every type in this package. The
// New* types are request bodies; everything else is read-only on the client. Dates are kept exactly as the server sent them
// (for example "2025-03-01") so that presentation code can decide how to
// interpret them, see package status.
//
// # Key Types
//
//   - Member, Membership: registered readers and their paid membership periods
//   - Loan: a book copy lent to a member
//   - Reservation: a member's place in the queue for a title
//   - User, LoginResponse, AuthConfig: staff identity and session parameters
//   - Book, BookCopy: catalog titles and their shelf copies
//   - NewLoan, NewReservation, NewMember, NewMembership, BlockRequest: request bodies
//   - Dashboard, OverdueRow, ExpiredMembership, ActionResult: report and action payloads
package model
