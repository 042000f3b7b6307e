// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/status"
	"github.com/jeranaias/biblioteka-tui/internal/ui/components"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
)

// View renders the current screen. Table rows are rebuilt here so derived
// statuses always reflect the current date.
func (m Model) View() string {
	if m.overlay.IsVisible() {
		return m.overlay.View()
	}

	var body string
	if m.screen == screenLogin {
		body = m.viewLogin()
	} else {
		body = m.viewMain()
	}

	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		body += "\n" + components.RenderToastStack(toasts, m.width)
	}
	return body
}

// =============================================================================
// LOGIN
// =============================================================================

func (m Model) viewLogin() string {
	t := m.theme

	lines := []string{
		t.LoginTitle.Render(m.tr.T(i18n.AppTitle) + " · " + m.tr.T(i18n.LoginTitle)),
		t.Label.Render(m.tr.T(i18n.LoginUsername)) + m.username.View(),
		t.Label.Render(m.tr.T(i18n.LoginPassword)) + m.password.View(),
		"",
	}
	switch {
	case m.loggingIn:
		lines = append(lines, m.spinner.View()+" "+m.tr.T(i18n.LoginInProgress))
	case m.loginErr != "":
		lines = append(lines, t.Error.Render(m.loginErr))
	default:
		lines = append(lines, t.Hint.Render(m.tr.T(i18n.LoginHint)))
	}

	box := t.LoginBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// MAIN SCREEN
// =============================================================================

func (m Model) viewMain() string {
	sections := []string{m.viewHeader(), m.viewTabs()}

	if m.showHelp {
		sections = append(sections, m.helpView.View())
	} else {
		sections = append(sections, m.viewBody(), m.viewStatusBar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	t := m.theme

	left := t.HeaderTitle.Render(m.tr.T(i18n.AppTitle))
	if m.version != "" {
		left += t.HeaderUser.Render(" " + m.version)
	}

	var right []string
	if m.session != nil {
		// Narrow terminals keep only the countdown.
		if u, ok := m.session.User(); ok && t.GetLayoutMode() != styles.LayoutNarrow {
			right = append(right, t.HeaderUser.Render(u.FullName+" · "+m.roleLabel(u)))
		}
		remaining := m.session.Remaining()
		style := t.Countdown
		if remaining <= m.session.Timeouts().Warning {
			style = t.CountdownLow
		}
		right = append(right, style.Render(m.tr.T(i18n.SessionRemaining, components.FormatCountdown(remaining))))
	}
	rightText := strings.Join(right, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(rightText) - 2
	if gap < 1 {
		gap = 1
	}
	return t.Header.Render(left + strings.Repeat(" ", gap) + rightText)
}

func (m Model) viewTabs() string {
	parts := make([]string, 0, tabCount)
	for i := tab(0); i < tabCount; i++ {
		label := m.tr.T(i.titleKey())
		if i == m.active {
			parts = append(parts, m.theme.TabActive.Render(label))
		} else {
			parts = append(parts, m.theme.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n"
}

func (m Model) viewBody() string {
	var lines []string

	if m.loading[m.active] {
		lines = append(lines, m.spinner.View()+" "+m.tr.T(i18n.Loading))
	}
	if e := m.errs[m.active]; e != "" {
		lines = append(lines, m.theme.Error.Render(e))
	}

	switch m.active {
	case tabDashboard:
		lines = append(lines, m.viewDashboard())
	case tabMembers:
		lines = append(lines, m.viewMembers())
	case tabReservations:
		lines = append(lines, m.theme.Hint.Render(m.tr.T(i18n.FilterLabel, m.filterLabel())))
		m.syncTable(m.active)
		lines = append(lines, m.currentTable().View())
	default:
		m.syncTable(m.active)
		lines = append(lines, m.currentTable().View())
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (m Model) viewDashboard() string {
	if m.dashboard == nil {
		return ""
	}
	d := m.dashboard
	t := m.theme

	card := func(labelKey string, value int, alert bool) string {
		v := t.CardValue
		if alert && value > 0 {
			v = t.CardAlert
		}
		return t.Card.Render(t.CardLabel.Render(m.tr.T(labelKey)) + "\n" + v.Render(strconv.Itoa(value)))
	}

	attention := lipgloss.JoinHorizontal(lipgloss.Top,
		card(i18n.DashActiveLoans, d.ActiveLoans, false),
		card(i18n.DashOverdueLoans, d.OverdueLoans, true),
		card(i18n.DashExpiredMemberships, d.ExpiredMemberships, true),
		card(i18n.DashWaitingReservations, d.WaitingReservations, false),
	)
	totals := lipgloss.JoinHorizontal(lipgloss.Top,
		card(i18n.DashTotalBooks, d.TotalBooks, false),
		card(i18n.DashTotalCopies, d.TotalCopies, false),
		card(i18n.DashTotalMembers, d.TotalMembers, false),
	)
	return lipgloss.JoinVertical(lipgloss.Left, attention, totals)
}

func (m Model) viewMembers() string {
	m.syncTable(tabMembers)

	if m.memberOpen != nil {
		name := m.memberOpen.FullName()
		st := m.openMemberStatus()
		lines := []string{
			lipgloss.NewStyle().Foreground(styles.MembershipColor(st)).
				Render(m.tr.T(i18n.MemberStatusLine, m.tr.Status("membership", string(st)))),
		}
		if m.memberOpen.IsBlocked && m.memberOpen.BlockReason != "" {
			lines = append(lines, m.theme.Hint.Render(m.tr.T(i18n.MemberBlockReason, m.memberOpen.BlockReason)))
		}
		if m.showPayments {
			lines = append(lines,
				m.theme.HeaderTitle.Render(m.tr.T(i18n.MemberPaymentsTitle, name)),
				m.paymentTable.View())
			return strings.Join(lines, "\n")
		}
		which := m.tr.T(i18n.LoansCurrent)
		if m.showArchive {
			which = m.tr.T(i18n.LoansArchive)
		}
		lines = append(lines,
			m.theme.HeaderTitle.Render(m.tr.T(i18n.MemberLoansTitle, name, which)),
			m.memberLoanTable.View())
		return strings.Join(lines, "\n")
	}

	var search string
	if m.searching || m.search.Value() != "" {
		search = m.search.View() + "\n"
	}
	return search + m.memberTable.View()
}

func (m Model) filterLabel() string {
	switch m.resFilter {
	case status.FilterActive:
		return m.tr.T(i18n.FilterActive)
	case status.FilterAll:
		return m.tr.T(i18n.FilterAll)
	}
	return m.tr.Status("reservation", string(m.resFilter))
}

func (m Model) viewStatusBar() string {
	bindings := m.keys.shortHelp(m.active, m.memberOpen != nil)
	bar := m.theme.StatusBar
	if m.width > 0 {
		bar = bar.Width(m.width)
	}
	return bar.Render(m.help.ShortHelpView(bindings))
}
