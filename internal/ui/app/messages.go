// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/biblioteka-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

// tickMsg refreshes the countdown, expires toasts and re-derives statuses
// that depend on the date.
type tickMsg time.Time

// loginResultMsg carries the outcome of a sign-in attempt.
type loginResultMsg struct {
	user model.User
	err  error
}

type dashboardMsg struct {
	data model.Dashboard
	err  error
}

type membersMsg struct {
	query string
	rows  []model.Member
	err   error
}

type memberLoansMsg struct {
	member model.Member
	rows   []model.Loan
	err    error
}

type membershipsMsg struct {
	memberID int
	rows     []model.Membership
	err      error
}

type booksMsg struct {
	rows []model.Book
	err  error
}

type loansMsg struct {
	rows []model.Loan
	err  error
}

type reservationsMsg struct {
	status string
	rows   []model.Reservation
	err    error
}

type overdueMsg struct {
	rows []model.OverdueRow
	err  error
}

// actionMsg is the outcome of a loan, reservation or member action on the
// record with the given id.
type actionMsg struct {
	kind   actionKind
	id     int
	result model.ActionResult
	err    error
}

type actionKind int

const (
	actionReturn actionKind = iota
	actionExtend
	actionCancel
	actionFulfill
	actionBlock
	actionUnblock
)

// =============================================================================
// COMMANDS
// =============================================================================

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.requestTimeout)
}

func (m *Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		user, err := m.session.Login(ctx, username, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (m *Model) dashboardCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		d, err := m.backend.Dashboard(ctx)
		return dashboardMsg{data: d, err: err}
	}
}

func (m *Model) membersCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		rows, err := m.backend.ListMembers(ctx, query)
		return membersMsg{query: query, rows: rows, err: err}
	}
}

func (m *Model) memberLoansCmd(member model.Member) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		rows, err := m.backend.MemberLoans(ctx, member.ID)
		return memberLoansMsg{member: member, rows: rows, err: err}
	}
}

func (m *Model) membershipsCmd(member model.Member) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		rows, err := m.backend.Memberships(ctx, member.ID)
		return membershipsMsg{memberID: member.ID, rows: rows, err: err}
	}
}

func (m *Model) booksCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		rows, err := m.backend.ListBooks(ctx, "")
		return booksMsg{rows: rows, err: err}
	}
}

func (m *Model) loansCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		rows, err := m.backend.ActiveLoans(ctx)
		return loansMsg{rows: rows, err: err}
	}
}

func (m *Model) reservationsCmd(serverStatus string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		rows, err := m.backend.ListReservations(ctx, serverStatus)
		return reservationsMsg{status: serverStatus, rows: rows, err: err}
	}
}

func (m *Model) overdueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()
		rows, err := m.backend.OverdueLoans(ctx)
		return overdueMsg{rows: rows, err: err}
	}
}

func (m *Model) actionCmd(kind actionKind, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()

		var res model.ActionResult
		var err error
		switch kind {
		case actionReturn:
			res, err = m.backend.ReturnLoan(ctx, id)
		case actionExtend:
			res, err = m.backend.ExtendLoan(ctx, id)
		case actionCancel:
			res, err = m.backend.CancelReservation(ctx, id)
		case actionFulfill:
			res, err = m.backend.FulfillReservation(ctx, id)
		case actionBlock, actionUnblock:
			res, err = m.backend.SetMemberBlocked(ctx, id, kind == actionBlock, "")
		}
		return actionMsg{kind: kind, id: id, result: res, err: err}
	}
}
