// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"time"

	"github.com/jeranaias/biblioteka-tui/internal/model"
)

// =============================================================================
// LOAN STATUS
// =============================================================================

// LoanStatus is the label shown for a loan.
type LoanStatus string

// Loan display statuses. Unknown server values pass through unchanged.
const (
	LoanActive   LoanStatus = model.LoanActive
	LoanOverdue  LoanStatus = model.LoanOverdue
	LoanReturned LoanStatus = model.LoanReturned
	LoanLost     LoanStatus = model.LoanLost
)

// DeriveLoanStatus returns the display status of a loan at now.
//
// Returned and lost loans are final. An active loan whose due date is a
// calendar day before today shows as overdue even if the server has not
// flipped it yet. Anything else, including an unparsable due date, is the
// server's status verbatim.
func DeriveLoanStatus(loan model.Loan, now time.Time) LoanStatus {
	server := LoanStatus(loan.Status)
	if server != LoanActive {
		return server
	}
	due, err := ParseDate(loan.DueDate)
	if err != nil {
		return server
	}
	if due.Before(Today(now)) {
		return LoanOverdue
	}
	return server
}

// DaysOverdue returns how many whole days past due the loan is at now, or 0
// when it is not overdue (including returned and lost loans).
func DaysOverdue(loan model.Loan, now time.Time) int {
	if DeriveLoanStatus(loan, now) != LoanOverdue {
		return 0
	}
	due, err := ParseDate(loan.DueDate)
	if err != nil {
		return 0
	}
	days := due.DaysUntil(Today(now))
	if days < 0 {
		return 0
	}
	return days
}

// SplitLoans separates loans still out (server status active or overdue)
// from the archive. Order is preserved; the input is not modified.
func SplitLoans(loans []model.Loan) (current, archived []model.Loan) {
	for _, l := range loans {
		if l.Status == model.LoanActive || l.Status == model.LoanOverdue {
			current = append(current, l)
		} else {
			archived = append(archived, l)
		}
	}
	return current, archived
}

// MaxExtensions is how many times the server lets a loan be extended.
const MaxExtensions = 2

// CanReturn reports whether a return may be recorded for the loan.
func CanReturn(loan model.Loan) bool {
	return loan.Status != model.LoanReturned
}

// CanExtend reports whether the loan may be extended. The server checks the
// raw status, so a loan shown as overdue but still active on the server
// qualifies. Waiting reservations can still make the server refuse.
func CanExtend(loan model.Loan) bool {
	return loan.Status == model.LoanActive && loan.ExtensionsCount < MaxExtensions
}
