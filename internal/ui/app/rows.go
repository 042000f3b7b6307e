// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strconv"
	"time"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/model"
	"github.com/jeranaias/biblioteka-tui/internal/status"
	"github.com/jeranaias/biblioteka-tui/internal/ui/components"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
	"github.com/jeranaias/biblioteka-tui/internal/util"
)

// =============================================================================
// TABLES
// =============================================================================

func (m *Model) buildTables() {
	tr := m.tr
	m.memberTable = components.NewTable(m.theme,
		components.Column{Title: tr.T(i18n.ColMemberNumber), Width: 10},
		components.Column{Title: tr.T(i18n.ColName), Width: 18, Flex: true},
		components.Column{Title: tr.T(i18n.ColMemberType), Width: 12},
		components.Column{Title: tr.T(i18n.ColMembership), Width: 13},
		components.Column{Title: tr.T(i18n.ColValidUntil), Width: 10},
		components.Column{Title: tr.T(i18n.ColContact), Width: 14, Flex: true},
	)
	loanColumns := []components.Column{
		{Title: tr.T(i18n.ColBook), Width: 20, Flex: true},
		{Title: tr.T(i18n.ColLibraryNumber), Width: 10},
		{Title: tr.T(i18n.ColMember), Width: 16, Flex: true},
		{Title: tr.T(i18n.ColDueDate), Width: 10},
		{Title: tr.T(i18n.ColStatus), Width: 10},
		{Title: tr.T(i18n.ColDaysLate), Width: 9, Right: true},
	}
	m.loanTable = components.NewTable(m.theme, loanColumns...)
	m.memberLoanTable = components.NewTable(m.theme, loanColumns...)
	m.reservationTable = components.NewTable(m.theme,
		components.Column{Title: tr.T(i18n.ColBook), Width: 20, Flex: true},
		components.Column{Title: tr.T(i18n.ColMember), Width: 16, Flex: true},
		components.Column{Title: tr.T(i18n.ColQueue), Width: 5, Right: true},
		components.Column{Title: tr.T(i18n.ColReservedAt), Width: 10},
		components.Column{Title: tr.T(i18n.ColStatus), Width: 11},
	)
	m.overdueTable = components.NewTable(m.theme,
		components.Column{Title: tr.T(i18n.ColBook), Width: 20, Flex: true},
		components.Column{Title: tr.T(i18n.ColLibraryNumber), Width: 10},
		components.Column{Title: tr.T(i18n.ColMember), Width: 16, Flex: true},
		components.Column{Title: tr.T(i18n.ColEmail), Width: 14, Flex: true},
		components.Column{Title: tr.T(i18n.ColDueDate), Width: 10},
		components.Column{Title: tr.T(i18n.ColDaysLate), Width: 9, Right: true},
	)
	m.paymentTable = components.NewTable(m.theme,
		components.Column{Title: tr.T(i18n.ColYear), Width: 6},
		components.Column{Title: tr.T(i18n.ColAmount), Width: 10, Right: true},
		components.Column{Title: tr.T(i18n.ColPaidAt), Width: 10},
		components.Column{Title: tr.T(i18n.ColValidFrom), Width: 10},
		components.Column{Title: tr.T(i18n.ColValidUntil), Width: 10},
	)
	m.bookTable = components.NewTable(m.theme,
		components.Column{Title: tr.T(i18n.ColBook), Width: 24, Flex: true},
		components.Column{Title: tr.T(i18n.ColAuthor), Width: 18, Flex: true},
		components.Column{Title: tr.T(i18n.ColGenre), Width: 12},
		components.Column{Title: tr.T(i18n.ColAvailable), Width: 8, Right: true},
	)
	for _, t := range m.tables() {
		t.SetEmptyText(tr.T(i18n.NoData))
	}
}

func (m *Model) tables() []*components.Table {
	return []*components.Table{
		m.memberTable, m.loanTable, m.memberLoanTable, m.reservationTable,
		m.overdueTable, m.paymentTable, m.bookTable,
	}
}

// currentTable is the table the active tab shows, or nil for the dashboard.
func (m *Model) currentTable() *components.Table {
	switch m.active {
	case tabMembers:
		switch {
		case m.memberOpen != nil && m.showPayments:
			return m.paymentTable
		case m.memberOpen != nil:
			return m.memberLoanTable
		}
		return m.memberTable
	case tabLoans:
		return m.loanTable
	case tabReservations:
		return m.reservationTable
	case tabBooks:
		return m.bookTable
	case tabOverdue:
		return m.overdueTable
	}
	return nil
}

// syncTable rebuilds the rows of t's table from the raw server rows at the
// current time.
func (m *Model) syncTable(t tab) {
	now := m.now()
	switch t {
	case tabMembers:
		if m.memberOpen != nil {
			m.memberLoanTable.SetRows(loanRows(m.visibleMemberLoans(), now, m.tr))
			m.paymentTable.SetRows(paymentRows(m.memberships))
		} else {
			m.memberTable.SetRows(memberRows(m.visibleMembers(), now, m.tr))
		}
	case tabLoans:
		m.loanTable.SetRows(loanRows(m.loans, now, m.tr))
	case tabReservations:
		m.reservationTable.SetRows(reservationRows(m.visibleReservations(), m.tr))
	case tabBooks:
		m.bookTable.SetRows(bookRows(m.books))
	case tabOverdue:
		m.overdueTable.SetRows(overdueRows(m.overdue, m.tr))
	}
}

// visibleMembers narrows the loaded members by the search box, ignoring
// case and diacritics.
func (m *Model) visibleMembers() []model.Member {
	needle := m.search.Value()
	if needle == "" {
		return m.members
	}
	var out []model.Member
	for _, mem := range m.members {
		if i18n.Contains(mem.FullName(), needle) ||
			i18n.Contains(mem.MemberNumber, needle) ||
			i18n.Contains(mem.Email, needle) ||
			i18n.Contains(mem.Phone, needle) {
			out = append(out, mem)
		}
	}
	return out
}

func (m *Model) visibleMemberLoans() []model.Loan {
	current, archived := status.SplitLoans(m.memberLoans)
	if m.showArchive {
		return archived
	}
	return current
}

func (m *Model) visibleReservations() []model.Reservation {
	return m.resFilter.Apply(m.reservations)
}

// openMemberStatus derives the open member's status from the payment
// history once it has loaded, and from the list row until then.
func (m *Model) openMemberStatus() status.MembershipStatus {
	if m.membershipsLoaded {
		return status.HistoryStatus(*m.memberOpen, m.memberships, m.now())
	}
	return status.MemberStatus(*m.memberOpen, m.now())
}

// =============================================================================
// ROW BUILDERS
// =============================================================================

func memberRows(members []model.Member, now time.Time, tr *i18n.Translator) []components.Row {
	rows := make([]components.Row, 0, len(members))
	for _, mem := range members {
		st := status.MemberStatus(mem, now)
		validUntil := ""
		if mem.LastMembership != nil {
			validUntil = util.DatePart(mem.LastMembership.ValidUntil)
		}
		rows = append(rows, components.Row{
			{Text: mem.MemberNumber},
			{Text: mem.FullName()},
			{Text: mem.MemberType},
			{Text: tr.Status("membership", string(st)), Color: styles.MembershipColor(st)},
			{Text: validUntil},
			{Text: util.FirstNonEmpty(mem.Email, mem.Phone)},
		})
	}
	return rows
}

func loanRows(loans []model.Loan, now time.Time, tr *i18n.Translator) []components.Row {
	rows := make([]components.Row, 0, len(loans))
	for _, l := range loans {
		st := status.DeriveLoanStatus(l, now)
		late := ""
		if days := status.DaysOverdue(l, now); days > 0 {
			late = tr.T(i18n.Days, days)
		}
		rows = append(rows, components.Row{
			{Text: l.BookTitle},
			{Text: l.LibraryNumber},
			{Text: l.MemberName},
			{Text: util.DatePart(l.DueDate)},
			{Text: tr.Status("loan", string(st)), Color: styles.LoanColor(st)},
			{Text: late, Color: styles.Rose},
		})
	}
	return rows
}

func reservationRows(reservations []model.Reservation, tr *i18n.Translator) []components.Row {
	rows := make([]components.Row, 0, len(reservations))
	for _, r := range reservations {
		rows = append(rows, components.Row{
			{Text: r.BookTitle},
			{Text: r.MemberName},
			{Text: strconv.Itoa(r.QueuePosition)},
			{Text: util.DatePart(r.ReservedAt)},
			{Text: tr.Status("reservation", r.Status), Color: styles.ReservationColor(r.Status)},
		})
	}
	return rows
}

func overdueRows(overdue []model.OverdueRow, tr *i18n.Translator) []components.Row {
	rows := make([]components.Row, 0, len(overdue))
	for _, o := range overdue {
		rows = append(rows, components.Row{
			{Text: o.BookTitle},
			{Text: o.LibraryNumber},
			{Text: o.MemberName},
			{Text: o.MemberEmail},
			{Text: util.DatePart(o.DueDate)},
			{Text: tr.T(i18n.Days, o.DaysLate), Color: styles.Rose},
		})
	}
	return rows
}

// paymentRows lists the payment history as the server ordered it.
func paymentRows(history []model.Membership) []components.Row {
	rows := make([]components.Row, 0, len(history))
	for _, ms := range history {
		rows = append(rows, components.Row{
			{Text: strconv.Itoa(ms.Year)},
			{Text: strconv.FormatFloat(ms.AmountPaid, 'f', 2, 64)},
			{Text: util.DatePart(ms.PaidAt)},
			{Text: util.DatePart(ms.ValidFrom)},
			{Text: util.DatePart(ms.ValidUntil)},
		})
	}
	return rows
}

func bookRows(books []model.Book) []components.Row {
	rows := make([]components.Row, 0, len(books))
	for _, b := range books {
		color := styles.Emerald
		if b.AvailableCopies == 0 {
			color = styles.Rose
		}
		rows = append(rows, components.Row{
			{Text: b.Title},
			{Text: b.Author},
			{Text: b.Genre},
			{Text: strconv.Itoa(b.AvailableCopies) + "/" + strconv.Itoa(b.TotalCopies), Color: color},
		})
	}
	return rows
}
