// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// REPORTS
// =============================================================================

// Dashboard holds the counters shown on the start screen.
type Dashboard struct {
	ActiveLoans         int `json:"active_loans"`
	OverdueLoans        int `json:"overdue_loans"`
	ExpiredMemberships  int `json:"expired_memberships"`
	WaitingReservations int `json:"waiting_reservations"`
	TotalBooks          int `json:"total_books"`
	TotalCopies         int `json:"total_copies"`
	TotalMembers        int `json:"total_members"`
}

// OverdueRow is one line of the overdue report.
type OverdueRow struct {
	ID            int    `json:"id"`
	BookTitle     string `json:"book_title,omitempty"`
	BookAuthor    string `json:"book_author,omitempty"`
	LibraryNumber string `json:"library_number,omitempty"`
	MemberName    string `json:"member_name,omitempty"`
	MemberNumber  string `json:"member_number,omitempty"`
	MemberEmail   string `json:"member_email,omitempty"`
	DueDate       string `json:"due_date"`
	DaysLate      int    `json:"days_late"`
}

// ActionResult is the acknowledgement returned by loan and reservation
// actions. Only the fields relevant to the action are set.
type ActionResult struct {
	Message             string `json:"message"`
	ReservationNotified *int   `json:"reservation_notified,omitempty"`
	NewDueDate          string `json:"new_due_date,omitempty"`
}

// NeverPaid is the last_valid_until value for a member with no membership
// on file.
const NeverPaid = "Nikad"

// ExpiredMembership is one line of the expired-memberships report. Members
// who never paid carry NeverPaid in LastValidUntil.
type ExpiredMembership struct {
	MemberID       int    `json:"member_id"`
	MemberName     string `json:"member_name"`
	MemberNumber   string `json:"member_number"`
	MemberType     string `json:"member_type"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	LastValidUntil string `json:"last_valid_until"`
}
