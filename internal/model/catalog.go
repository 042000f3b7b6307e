// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// CATALOG
// =============================================================================

// Copy status values reported by the server.
const (
	CopyAvailable = "available"
	CopyLoaned    = "loaned"
)

// Book is a catalog title. AvailableCopies is only filled in on the list
// endpoint.
type Book struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher,omitempty"`
	YearPublished   *int   `json:"year_published,omitempty"`
	Genre           string `json:"genre,omitempty"`
	Language        string `json:"language"`
	Description     string `json:"description,omitempty"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// BookCopy is one physical copy, identified on the shelf by its library
// (inventory) number.
type BookCopy struct {
	ID              int    `json:"id"`
	LibraryNumber   string `json:"library_number"`
	BookID          int    `json:"book_id"`
	Status          string `json:"status"`
	ShelfLocation   string `json:"shelf_location,omitempty"`
	Condition       string `json:"condition"`
	AcquisitionType string `json:"acquisition_type"`
	AcquiredAt      string `json:"acquired_at,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// =============================================================================
// REQUEST BODIES
// =============================================================================

// NewLoan issues a copy to a member.
type NewLoan struct {
	CopyID   int `json:"copy_id"`
	MemberID int `json:"member_id"`
}

// NewReservation queues a member for a title.
type NewReservation struct {
	BookID   int `json:"book_id"`
	MemberID int `json:"member_id"`
}

// NewMember registers a reader. Empty optional fields are sent as absent so
// the server stores them as null.
type NewMember struct {
	MemberNumber       int    `json:"member_number,omitempty"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	DateOfBirth        string `json:"date_of_birth,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Address            string `json:"address,omitempty"`
	MemberType         string `json:"member_type"`
	AllowNotifications bool   `json:"allow_notifications"`
	Notes              string `json:"notes,omitempty"`
}

// NewMembership records a paid membership period. Dates are YYYY-MM-DD.
type NewMembership struct {
	Year       int     `json:"year"`
	AmountPaid float64 `json:"amount_paid"`
	PaidAt     string  `json:"paid_at"`
	ValidFrom  string  `json:"valid_from"`
	ValidUntil string  `json:"valid_until"`
}

// BlockRequest blocks or unblocks a member. The reason is dropped by the
// server when unblocking.
type BlockRequest struct {
	IsBlocked   bool   `json:"is_blocked"`
	BlockReason string `json:"block_reason,omitempty"`
}
