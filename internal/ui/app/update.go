// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/biblioteka-tui/internal/api"
	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/model"
	"github.com/jeranaias/biblioteka-tui/internal/session"
	"github.com/jeranaias/biblioteka-tui/internal/status"
	"github.com/jeranaias/biblioteka-tui/internal/ui/components"
)

// Update handles every message. Key and mouse input is reported to the
// session manager as activity before anything else looks at it.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kind, ok := session.ActivityFromMsg(msg); ok && m.session != nil {
		m.session.OnActivity(kind)
		if _, isKey := msg.(tea.KeyMsg); !isKey && m.overlay.IsVisible() && m.session.State() == session.Active {
			m.overlay.Hide()
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.toasts.Tick()
		if m.overlay.IsVisible() && m.session != nil {
			m.overlay.UpdateTime(m.session.Remaining())
		}
		return m, tickCmd()

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case session.WarningMsg:
		m.logger.Debug("session warning shown", "remaining", msg.Remaining)
		m.overlay.Show(msg.Remaining)
		return m, nil

	case components.SessionContinueMsg:
		if m.session != nil {
			m.session.Continue()
		}
		return m, nil

	case session.TerminatedMsg:
		return m.onTerminated(msg.Reason), nil

	case loginResultMsg:
		return m.onLogin(msg)

	case dashboardMsg:
		if m.accept(tabDashboard, msg.err) {
			d := msg.data
			m.dashboard = &d
		}
		return m, nil

	case membersMsg:
		if msg.query == m.memberQuery && m.accept(tabMembers, msg.err) {
			m.members = msg.rows
			m.syncTable(tabMembers)
		}
		return m, nil

	case memberLoansMsg:
		if m.memberOpen != nil && msg.member.ID == m.memberOpen.ID && m.accept(tabMembers, msg.err) {
			m.memberLoans = msg.rows
			m.memberLoaded = true
			m.syncTable(tabMembers)
		}
		return m, nil

	case membershipsMsg:
		if m.memberOpen != nil && msg.memberID == m.memberOpen.ID && m.accept(tabMembers, msg.err) {
			m.memberships = msg.rows
			m.membershipsLoaded = true
			m.syncTable(tabMembers)
		}
		return m, nil

	case booksMsg:
		if m.accept(tabBooks, msg.err) {
			m.books = msg.rows
			m.syncTable(tabBooks)
		}
		return m, nil

	case loansMsg:
		if m.accept(tabLoans, msg.err) {
			m.loans = msg.rows
			m.syncTable(tabLoans)
		}
		return m, nil

	case reservationsMsg:
		if msg.status == m.resFilter.ServerStatus() && m.accept(tabReservations, msg.err) {
			m.reservations = msg.rows
			m.syncTable(tabReservations)
		}
		return m, nil

	case overdueMsg:
		if m.accept(tabOverdue, msg.err) {
			m.overdue = msg.rows
			m.syncTable(tabOverdue)
		}
		return m, nil

	case actionMsg:
		return m.onAction(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == screenLogin {
		return m.updateLoginInputs(msg)
	}
	return m, nil
}

// accept records the end of a load for t and reports whether its rows
// should be kept. Results arriving after sign-out are dropped. A 401 is
// not shown: the API client has already ended the session.
func (m *Model) accept(t tab, err error) bool {
	if m.screen != screenMain {
		return false
	}
	m.loading[t] = false
	if err != nil {
		if !errors.Is(err, api.ErrUnauthorized) {
			m.errs[t] = m.tr.T(i18n.LoadErr, err.Error())
			m.logger.Warn("load failed", "tab", t.titleKey(), "error", err)
		}
		return false
	}
	m.errs[t] = ""
	return true
}

func (m *Model) anyLoading() bool {
	for _, v := range m.loading {
		if v {
			return true
		}
	}
	return m.loggingIn
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.overlay.SetSize(width, height)
	m.help.Width = width
	m.helpView.Width = width
	m.helpView.Height = max(height-4, 3)

	rows := max(height-8, 3)
	for _, t := range m.tables() {
		t.SetSize(max(width-2, 20), rows)
	}
}

// =============================================================================
// SESSION
// =============================================================================

// onTerminated drops every trace of the old session and shows the sign-in
// form. Expiry and sign-out leave a notice; a rejected credential does not.
func (m Model) onTerminated(reason session.Reason) Model {
	m.logger.Info("session ended", "reason", reason.String())

	m.screen = screenLogin
	m.overlay.Hide()
	m.showHelp = false
	m.searching = false
	m.loggingIn = false
	m.loginErr = ""
	m.clearData()

	m.password.Reset()
	m.password.Blur()
	m.username.Focus()

	switch reason {
	case session.ReasonExpired:
		m.toasts.AddWarning(m.tr.T(i18n.SessionExpired))
	case session.ReasonLogout:
		m.toasts.AddStatus(m.tr.T(i18n.SessionLoggedOut))
	}
	return m
}

func (m *Model) clearData() {
	m.dashboard = nil
	m.members = nil
	m.memberQuery = ""
	m.search.SetValue("")
	m.search.Blur()
	m.loans = nil
	m.reservations = nil
	m.overdue = nil
	m.books = nil
	m.closeMember()
	m.resFilter = status.FilterActive
	m.loading = map[tab]bool{}
	m.errs = map[tab]string{}
	for _, t := range m.tables() {
		t.SetRows(nil)
	}
}

func (m Model) onLogin(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	if msg.err != nil {
		detail := msg.err.Error()
		var apiErr *api.APIError
		if errors.As(msg.err, &apiErr) && apiErr.Detail != "" {
			detail = apiErr.Detail
		}
		m.loginErr = m.tr.T(i18n.LoginFailed, detail)
		m.password.Reset()
		return m, nil
	}

	m.loginErr = ""
	m.password.Reset()
	m.password.Blur()
	m.username.Blur()
	m.screen = screenMain
	m.toasts.AddSuccess(m.tr.T(i18n.LoggedInAs, msg.user.FullName, m.roleLabel(msg.user)))
	return m, m.enterMain()
}

func (m *Model) roleLabel(u model.User) string {
	if u.IsAdmin {
		return m.tr.T(i18n.RoleAdministrator)
	}
	return m.tr.T(i18n.RoleLibrarian)
}

func (m *Model) enterMain() tea.Cmd {
	m.active = tabDashboard
	return m.loadTab(tabDashboard)
}

// =============================================================================
// LOADING
// =============================================================================

func (m *Model) loadTab(t tab) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	m.loading[t] = true
	m.errs[t] = ""

	var cmd tea.Cmd
	switch t {
	case tabDashboard:
		cmd = m.dashboardCmd()
	case tabMembers:
		if m.memberOpen != nil {
			cmd = tea.Batch(m.memberLoansCmd(*m.memberOpen), m.membershipsCmd(*m.memberOpen))
		} else {
			cmd = m.membersCmd(m.memberQuery)
		}
	case tabLoans:
		cmd = m.loansCmd()
	case tabReservations:
		cmd = m.reservationsCmd(m.resFilter.ServerStatus())
	case tabBooks:
		cmd = m.booksCmd()
	case tabOverdue:
		cmd = m.overdueCmd()
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) switchTab(t tab) tea.Cmd {
	m.active = (t + tabCount) % tabCount
	return m.loadTab(m.active)
}

func (m Model) onAction(msg actionMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenMain {
		return m, nil
	}
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return m, nil
		}
		text := msg.err.Error()
		var apiErr *api.APIError
		if errors.As(msg.err, &apiErr) && apiErr.Detail != "" {
			text = apiErr.Detail
		}
		m.toasts.AddError(text)
		return m, nil
	}

	switch msg.kind {
	case actionReturn:
		m.toasts.AddSuccess(m.tr.T(i18n.ActionReturned))
	case actionExtend:
		m.toasts.AddSuccess(m.tr.T(i18n.ActionExtended, msg.result.NewDueDate))
	case actionCancel:
		m.toasts.AddSuccess(m.tr.T(i18n.ActionCancelled))
	case actionFulfill:
		m.toasts.AddSuccess(m.tr.T(i18n.ActionFulfilled))
	case actionBlock:
		m.setBlocked(msg.id, true)
		m.toasts.AddSuccess(m.tr.T(i18n.ActionBlocked))
	case actionUnblock:
		m.setBlocked(msg.id, false)
		m.toasts.AddSuccess(m.tr.T(i18n.ActionUnblocked))
	}
	return m, m.loadTab(m.active)
}

// setBlocked applies a confirmed block change to the open member until the
// reload arrives.
func (m *Model) setBlocked(id int, blocked bool) {
	if m.memberOpen == nil || m.memberOpen.ID != id {
		return
	}
	open := *m.memberOpen
	open.IsBlocked = blocked
	if !blocked {
		open.BlockReason = ""
	}
	m.memberOpen = &open
}

func blockAction(member model.Member) actionKind {
	if member.IsBlocked {
		return actionUnblock
	}
	return actionBlock
}

// =============================================================================
// INPUT
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenMain || m.overlay.IsVisible() {
		return m, nil
	}
	t := m.currentTable()
	if t == nil {
		return m, nil
	}
	switch msg.Type {
	case tea.MouseWheelUp:
		t.MoveUp(1)
	case tea.MouseWheelDown:
		t.MoveDown(1)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.overlay.IsVisible() {
		if key.Matches(msg, m.keys.Logout) && m.session != nil {
			m.overlay.Hide()
			m.session.Logout()
			return m, nil
		}
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	if m.screen == screenLogin {
		return m.handleLoginKey(msg)
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Logout):
		if m.session != nil {
			m.session.Logout()
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView.SetContent(renderHelp(m.tr, m.theme.IsDark, m.width))
		m.helpView.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m, m.switchTab(m.active + 1)
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.switchTab(m.active - 1)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadTab(m.active)
	}

	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, m.keys.Up):
			t.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			t.MoveDown(1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			t.PageUp()
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			t.PageDown()
			return m, nil
		case key.Matches(msg, m.keys.Home):
			t.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.End):
			t.GotoBottom()
			return m, nil
		}
	}

	switch m.active {
	case tabMembers:
		return m.handleMembersKey(msg)
	case tabLoans:
		if loan, ok := m.selectedLoan(m.loanTable, m.loans); ok {
			return m.loanAction(msg, loan)
		}
	case tabReservations:
		return m.handleReservationsKey(msg)
	case tabOverdue:
		if key.Matches(msg, m.keys.Return) {
			if i := m.overdueTable.Cursor(); i >= 0 && i < len(m.overdue) {
				return m, m.actionCmd(actionReturn, m.overdue[i].ID)
			}
		}
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if m.username.Focused() {
			m.username.Blur()
			return m, m.password.Focus()
		}
		m.password.Blur()
		return m, m.username.Focus()
	case tea.KeyEnter:
		if m.loggingIn {
			return m, nil
		}
		username := strings.TrimSpace(m.username.Value())
		password := m.password.Value()
		if username == "" || password == "" {
			m.loginErr = m.tr.T(i18n.LoginMissing)
			return m, nil
		}
		if m.session == nil {
			return m, nil
		}
		m.loginErr = ""
		m.loggingIn = true
		return m, tea.Batch(m.loginCmd(username, password), m.spinner.Tick)
	}
	return m.updateLoginInputs(msg)
}

func (m Model) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var c1, c2 tea.Cmd
	m.username, c1 = m.username.Update(msg)
	m.password, c2 = m.password.Update(msg)
	return m, tea.Batch(c1, c2)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.memberQuery = strings.TrimSpace(m.search.Value())
		return m, m.loadTab(tabMembers)
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.memberQuery)
		m.syncTable(tabMembers)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.syncTable(tabMembers)
	return m, cmd
}

func (m Model) handleMembersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.memberOpen != nil {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.closeMember()
			return m, nil
		case key.Matches(msg, m.keys.Archive):
			m.showArchive = !m.showArchive
			m.syncTable(tabMembers)
			return m, nil
		case key.Matches(msg, m.keys.Payments):
			m.showPayments = !m.showPayments
			m.syncTable(tabMembers)
			return m, nil
		case key.Matches(msg, m.keys.Block):
			return m, m.actionCmd(blockAction(*m.memberOpen), m.memberOpen.ID)
		}
		if m.showPayments {
			return m, nil
		}
		if loan, ok := m.selectedLoan(m.memberLoanTable, m.visibleMemberLoans()); ok {
			return m.loanAction(msg, loan)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case key.Matches(msg, m.keys.Open):
		if member, ok := m.selectedMember(); ok {
			m.closeMember()
			m.memberOpen = &member
			return m, m.loadTab(tabMembers)
		}
	case key.Matches(msg, m.keys.Block):
		if member, ok := m.selectedMember(); ok {
			return m, m.actionCmd(blockAction(member), member.ID)
		}
	}
	return m, nil
}

func (m *Model) selectedMember() (model.Member, bool) {
	rows := m.visibleMembers()
	i := m.memberTable.Cursor()
	if i < 0 || i >= len(rows) {
		return model.Member{}, false
	}
	return rows[i], true
}

// closeMember leaves the member detail and forgets its rows.
func (m *Model) closeMember() {
	m.memberOpen = nil
	m.memberLoans = nil
	m.memberLoaded = false
	m.showArchive = false
	m.memberships = nil
	m.membershipsLoaded = false
	m.showPayments = false
	m.memberLoanTable.SetRows(nil)
	m.paymentTable.SetRows(nil)
}

func (m Model) loanAction(msg tea.KeyMsg, loan model.Loan) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Return):
		if !status.CanReturn(loan) {
			m.toasts.AddWarning(m.tr.T(i18n.ActionNotAllowed))
			return m, nil
		}
		return m, m.actionCmd(actionReturn, loan.ID)
	case key.Matches(msg, m.keys.Extend):
		if !status.CanExtend(loan) {
			m.toasts.AddWarning(m.tr.T(i18n.ActionNotAllowed))
			return m, nil
		}
		return m, m.actionCmd(actionExtend, loan.ID)
	}
	return m, nil
}

func (m Model) handleReservationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Filter) {
		m.resFilter = nextFilter(m.resFilter)
		m.reservations = nil
		m.reservationTable.SetRows(nil)
		return m, m.loadTab(tabReservations)
	}

	rows := m.visibleReservations()
	i := m.reservationTable.Cursor()
	if i < 0 || i >= len(rows) {
		return m, nil
	}
	r := rows[i]

	switch {
	case key.Matches(msg, m.keys.Cancel):
		if !status.CanCancel(r) {
			m.toasts.AddWarning(m.tr.T(i18n.ActionNotAllowed))
			return m, nil
		}
		return m, m.actionCmd(actionCancel, r.ID)
	case key.Matches(msg, m.keys.Fulfill):
		if !status.CanFulfill(r) {
			m.toasts.AddWarning(m.tr.T(i18n.ActionNotAllowed))
			return m, nil
		}
		return m, m.actionCmd(actionFulfill, r.ID)
	}
	return m, nil
}

func nextFilter(f status.ReservationFilter) status.ReservationFilter {
	for i, candidate := range reservationFilters {
		if candidate == f {
			return reservationFilters[(i+1)%len(reservationFilters)]
		}
	}
	return status.FilterActive
}

func (m *Model) selectedLoan(t *components.Table, rows []model.Loan) (model.Loan, bool) {
	i := t.Cursor()
	if i < 0 || i >= len(rows) {
		return model.Loan{}, false
	}
	return rows[i], true
}
