// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/biblioteka-tui/internal/status"
)

// =============================================================================
// STATUS BADGES
// =============================================================================

// LoanColor returns the badge color for a derived loan status.
func LoanColor(s status.LoanStatus) lipgloss.TerminalColor {
	switch s {
	case status.LoanActive:
		return Cyan
	case status.LoanOverdue, status.LoanLost:
		return Rose
	case status.LoanReturned:
		return Slate
	}
	return TextSecondary
}

// MembershipColor returns the badge color for a derived membership status.
func MembershipColor(s status.MembershipStatus) lipgloss.TerminalColor {
	switch s {
	case status.MembershipPaid:
		return Emerald
	case status.MembershipExpired:
		return Amber
	case status.MembershipNotPaid, status.MembershipBlocked:
		return Rose
	}
	return TextSecondary
}

// ReservationColor returns the badge color for a reservation's server status.
func ReservationColor(s string) lipgloss.TerminalColor {
	switch s {
	case "waiting":
		return Cyan
	case "notified":
		return Amber
	case "fulfilled":
		return Emerald
	case "cancelled":
		return Slate
	}
	return TextSecondary
}

// Badge renders label in color. Overdue and blocked states are also bold so
// they stand out without color.
func Badge(label string, color lipgloss.TerminalColor) string {
	style := lipgloss.NewStyle().Foreground(color)
	if color == Rose {
		style = style.Bold(true)
	}
	return style.Render(label)
}
