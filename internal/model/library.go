// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// SERVER STATUS VALUES
// =============================================================================

// Loan status values reported by the server.
const (
	LoanActive   = "active"
	LoanOverdue  = "overdue"
	LoanReturned = "returned"
	LoanLost     = "lost"
)

// Reservation status values reported by the server.
const (
	ReservationWaiting   = "waiting"
	ReservationNotified  = "notified"
	ReservationFulfilled = "fulfilled"
	ReservationCancelled = "cancelled"
)

// ReservationStatuses lists every status the server accepts as a filter.
var ReservationStatuses = []string{
	ReservationWaiting,
	ReservationNotified,
	ReservationFulfilled,
	ReservationCancelled,
}

// IsReservationStatus reports whether s is a status the server knows.
func IsReservationStatus(s string) bool {
	for _, st := range ReservationStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// =============================================================================
// MEMBERS
// =============================================================================

// Member is a registered library reader.
type Member struct {
	ID                 int         `json:"id"`
	MemberNumber       string      `json:"member_number"`
	FirstName          string      `json:"first_name"`
	LastName           string      `json:"last_name"`
	DateOfBirth        string      `json:"date_of_birth,omitempty"`
	Email              string      `json:"email,omitempty"`
	Phone              string      `json:"phone,omitempty"`
	Address            string      `json:"address,omitempty"`
	MemberType         string      `json:"member_type"`
	IsActive           bool        `json:"is_active"`
	IsBlocked          bool        `json:"is_blocked"`
	BlockReason        string      `json:"block_reason,omitempty"`
	AllowNotifications bool        `json:"allow_notifications"`
	Notes              string      `json:"notes,omitempty"`
	RegisteredAt       string      `json:"registered_at,omitempty"`
	LastMembership     *Membership `json:"last_membership,omitempty"`
}

// FullName returns "First Last", trimmed.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Membership is one paid membership period. ValidFrom and ValidUntil are
// calendar dates (YYYY-MM-DD).
type Membership struct {
	ID         int     `json:"id"`
	MemberID   int     `json:"member_id"`
	Year       int     `json:"year"`
	AmountPaid float64 `json:"amount_paid"`
	PaidAt     string  `json:"paid_at"`
	ValidFrom  string  `json:"valid_from"`
	ValidUntil string  `json:"valid_until"`
	RecordedBy *int    `json:"recorded_by,omitempty"`
}

// =============================================================================
// CIRCULATION
// =============================================================================

// Loan is a book copy lent to a member. DueDate is a calendar date.
type Loan struct {
	ID              int    `json:"id"`
	CopyID          int    `json:"copy_id"`
	MemberID        int    `json:"member_id"`
	LoanedAt        string `json:"loaned_at,omitempty"`
	DueDate         string `json:"due_date"`
	ReturnedAt      string `json:"returned_at,omitempty"`
	Status          string `json:"status"`
	ExtensionsCount int    `json:"extensions_count"`
	IssuedBy        *int   `json:"issued_by,omitempty"`
	ReturnedTo      *int   `json:"returned_to,omitempty"`

	// Joined fields, present on list endpoints.
	BookTitle     string `json:"book_title,omitempty"`
	BookAuthor    string `json:"book_author,omitempty"`
	LibraryNumber string `json:"library_number,omitempty"`
	MemberName    string `json:"member_name,omitempty"`
	MemberNumber  string `json:"member_number,omitempty"`
}

// Reservation is a member's place in the queue for a title.
type Reservation struct {
	ID            int    `json:"id"`
	BookID        int    `json:"book_id"`
	MemberID      int    `json:"member_id"`
	ReservedAt    string `json:"reserved_at,omitempty"`
	QueuePosition int    `json:"queue_position"`
	Status        string `json:"status"`
	NotifiedAt    string `json:"notified_at,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`

	BookTitle    string `json:"book_title,omitempty"`
	BookAuthor   string `json:"book_author,omitempty"`
	MemberName   string `json:"member_name,omitempty"`
	MemberNumber string `json:"member_number,omitempty"`
}
