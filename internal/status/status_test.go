// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/biblioteka-tui/internal/model"
)

// mid-afternoon, so time-of-day never decides a boundary
var now = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.Local)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format("2006-01-02")
}

// =============================================================================
// DATE TESTS
// =============================================================================

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-03-10", Date{2025, time.March, 10}, false},
		{" 2025-03-10 ", Date{2025, time.March, 10}, false},
		{"2025-03-01T23:30:00-05:00", Date{2025, time.March, 1}, false},
		{"2025-03-01T00:10:00Z", Date{2025, time.March, 1}, false},
		{"2025-03-01T08:15:42.123456", Date{2025, time.March, 1}, false},
		{"2025-03-01 08:15:42", Date{2025, time.March, 1}, false},
		{"", Date{}, true},
		{"10.03.2025", Date{}, true},
		{"not a date", Date{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrBadDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDate_BeforeAndDaysUntil(t *testing.T) {
	a := Date{2024, time.December, 31}
	b := Date{2025, time.January, 2}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, 2, a.DaysUntil(b))
	assert.Equal(t, -2, b.DaysUntil(a))
	assert.Equal(t, "2024-12-31", a.String())
}

// =============================================================================
// LOAN TESTS
// =============================================================================

func TestDeriveLoanStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		due    string
		want   LoanStatus
	}{
		{"active due today stays active", model.LoanActive, day(0), LoanActive},
		{"active due yesterday is overdue", model.LoanActive, day(-1), LoanOverdue},
		{"active due tomorrow stays active", model.LoanActive, day(1), LoanActive},
		{"server overdue passes through", model.LoanOverdue, day(3), LoanOverdue},
		{"returned is final", model.LoanReturned, day(-30), LoanReturned},
		{"lost is final", model.LoanLost, day(-30), LoanLost},
		{"malformed due date keeps server status", model.LoanActive, "soon", LoanActive},
		{"empty due date keeps server status", model.LoanActive, "", LoanActive},
		{"unknown status passes through", "damaged", day(-5), LoanStatus("damaged")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loan := model.Loan{Status: tc.status, DueDate: tc.due}
			assert.Equal(t, tc.want, DeriveLoanStatus(loan, now))
		})
	}
}

func TestDeriveLoanStatus_DueDateBoundaryIgnoresTimeOfDay(t *testing.T) {
	loan := model.Loan{Status: model.LoanActive, DueDate: day(0)}

	for _, hour := range []int{0, 12, 23} {
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, 59, 59, 0, time.Local)
		assert.Equal(t, LoanActive, DeriveLoanStatus(loan, at), "hour %d", hour)
	}
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, LoanOverdue, DeriveLoanStatus(loan, nextMidnight))
}

func TestDeriveLoanStatus_FinalStatusesInvariantUnderTime(t *testing.T) {
	for _, st := range []string{model.LoanReturned, model.LoanLost} {
		loan := model.Loan{Status: st, DueDate: "2020-01-01"}
		for _, offset := range []int{-3650, -1, 0, 1, 3650} {
			at := now.AddDate(0, 0, offset)
			assert.Equal(t, LoanStatus(st), DeriveLoanStatus(loan, at))
		}
	}
}

func TestDeriveLoanStatus_DoesNotMutate(t *testing.T) {
	loan := model.Loan{ID: 1, Status: model.LoanActive, DueDate: day(-3)}
	before := loan

	_ = DeriveLoanStatus(loan, now)
	assert.Equal(t, before, loan)
}

func TestDaysOverdue(t *testing.T) {
	assert.Equal(t, 3, DaysOverdue(model.Loan{Status: model.LoanActive, DueDate: day(-3)}, now))
	assert.Equal(t, 10, DaysOverdue(model.Loan{Status: model.LoanOverdue, DueDate: day(-10)}, now))
	assert.Equal(t, 0, DaysOverdue(model.Loan{Status: model.LoanActive, DueDate: day(0)}, now))
	assert.Equal(t, 0, DaysOverdue(model.Loan{Status: model.LoanReturned, DueDate: day(-3)}, now))
	assert.Equal(t, 0, DaysOverdue(model.Loan{Status: model.LoanOverdue, DueDate: "??"}, now))
}

func TestSplitLoans(t *testing.T) {
	loans := []model.Loan{
		{ID: 1, Status: model.LoanActive},
		{ID: 2, Status: model.LoanReturned},
		{ID: 3, Status: model.LoanOverdue},
		{ID: 4, Status: model.LoanLost},
	}

	current, archived := SplitLoans(loans)
	require.Len(t, current, 2)
	require.Len(t, archived, 2)
	assert.Equal(t, 1, current[0].ID)
	assert.Equal(t, 3, current[1].ID)
	assert.Equal(t, 2, archived[0].ID)
	assert.Equal(t, 4, archived[1].ID)
}

// =============================================================================
// MEMBERSHIP TESTS
// =============================================================================

func TestLoanActions(t *testing.T) {
	tests := []struct {
		name      string
		loan      model.Loan
		canReturn bool
		canExtend bool
	}{
		{"active", model.Loan{Status: model.LoanActive, DueDate: day(3)}, true, true},
		{"active past due", model.Loan{Status: model.LoanActive, DueDate: day(-3)}, true, true},
		{"server overdue", model.Loan{Status: model.LoanOverdue, DueDate: day(-3)}, true, false},
		{"extension limit", model.Loan{Status: model.LoanActive, ExtensionsCount: MaxExtensions}, true, false},
		{"returned", model.Loan{Status: model.LoanReturned}, false, false},
		{"lost", model.Loan{Status: model.LoanLost}, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.canReturn, CanReturn(tc.loan))
			assert.Equal(t, tc.canExtend, CanExtend(tc.loan))
		})
	}
}

func TestDeriveMembershipStatus(t *testing.T) {
	valid := &model.Membership{ValidFrom: day(-100), ValidUntil: day(200)}
	lapsed := &model.Membership{ValidFrom: day(-400), ValidUntil: day(-1)}
	today := &model.Membership{ValidFrom: day(-365), ValidUntil: day(0)}
	broken := &model.Membership{ValidUntil: "31/12/2025"}

	tests := []struct {
		name    string
		blocked bool
		ms      *model.Membership
		want    MembershipStatus
	}{
		{"blocked beats a valid membership", true, valid, MembershipBlocked},
		{"blocked beats a missing membership", true, nil, MembershipBlocked},
		{"no membership is not paid", false, nil, MembershipNotPaid},
		{"lapsed yesterday is expired", false, lapsed, MembershipExpired},
		{"valid until today is paid", false, today, MembershipPaid},
		{"valid in future is paid", false, valid, MembershipPaid},
		{"malformed valid_until counts as paid", false, broken, MembershipPaid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			member := model.Member{ID: 1, IsBlocked: tc.blocked}
			assert.Equal(t, tc.want, DeriveMembershipStatus(member, tc.ms, now))
		})
	}
}

func TestDeriveMembershipStatus_ValidUntilTodayAtAnyHour(t *testing.T) {
	ms := &model.Membership{ValidUntil: day(0)}
	member := model.Member{}

	for _, hour := range []int{0, 1, 12, 23} {
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.Local)
		assert.Equal(t, MembershipPaid, DeriveMembershipStatus(member, ms, at), "hour %d", hour)
	}
}

func TestMemberStatus_UsesLastMembership(t *testing.T) {
	m := model.Member{LastMembership: &model.Membership{ValidUntil: day(-5)}}
	assert.Equal(t, MembershipExpired, MemberStatus(m, now))

	m.LastMembership = nil
	assert.Equal(t, MembershipNotPaid, MemberStatus(m, now))
}

func TestLatestMembership(t *testing.T) {
	assert.Nil(t, LatestMembership(nil))

	// Ordered by year, as the server lists them; the renewal paid late in
	// 2024 runs past the 2025 one.
	history := []model.Membership{
		{ID: 3, Year: 2025, ValidUntil: "2025-06-30"},
		{ID: 2, Year: 2024, ValidUntil: "2025-09-01"},
		{ID: 1, Year: 2023, ValidUntil: "garbled"},
	}
	latest := LatestMembership(history)
	require.NotNil(t, latest)
	assert.Equal(t, 2, latest.ID)

	latest.ValidUntil = "changed"
	assert.Equal(t, "2025-09-01", history[1].ValidUntil, "result is a copy")

	only := LatestMembership([]model.Membership{{ID: 9, ValidUntil: "garbled"}})
	require.NotNil(t, only)
	assert.Equal(t, 9, only.ID)
}

func TestHistoryStatus(t *testing.T) {
	history := []model.Membership{
		{ValidUntil: day(-400)},
		{ValidUntil: day(-1)},
	}
	member := model.Member{}
	assert.Equal(t, MembershipExpired, HistoryStatus(member, history, now))

	history = append(history, model.Membership{ValidUntil: day(0)})
	assert.Equal(t, MembershipPaid, HistoryStatus(member, history, now))
	assert.Equal(t, MembershipNotPaid, HistoryStatus(member, nil, now))

	// Blocked wins over any payment on file.
	member.IsBlocked = true
	assert.Equal(t, MembershipBlocked, HistoryStatus(member, history, now))
	assert.Equal(t, MembershipBlocked, HistoryStatus(member, nil, now))
}

func TestMembershipPeriod(t *testing.T) {
	paid := Date{2025, time.March, 10}

	from, until := MembershipPeriod(paid, false)
	assert.Equal(t, paid, from)
	assert.Equal(t, Date{2025, time.December, 31}, until)

	from, until = MembershipPeriod(paid, true)
	assert.Equal(t, paid, from)
	assert.Equal(t, Date{2026, time.March, 10}, until)

	// 2024 is a leap year, so 365 days from January 10th end on January 9th.
	_, until = MembershipPeriod(Date{2024, time.January, 10}, true)
	assert.Equal(t, Date{2025, time.January, 9}, until)
}

func TestNewMembership(t *testing.T) {
	req := NewMembership(1000, Date{2025, time.March, 10}, false)
	assert.Equal(t, model.NewMembership{
		Year:       2025,
		AmountPaid: 1000,
		PaidAt:     "2025-03-10",
		ValidFrom:  "2025-03-10",
		ValidUntil: "2025-12-31",
	}, req)
}

func TestExpiredSince(t *testing.T) {
	d, ok := ExpiredSince(model.ExpiredMembership{LastValidUntil: "2024-12-31"})
	assert.True(t, ok)
	assert.Equal(t, Date{2024, time.December, 31}, d)

	_, ok = ExpiredSince(model.ExpiredMembership{LastValidUntil: model.NeverPaid})
	assert.False(t, ok)
	_, ok = ExpiredSince(model.ExpiredMembership{LastValidUntil: ""})
	assert.False(t, ok)
}

// =============================================================================
// RESERVATION TESTS
// =============================================================================

func TestIsReservationActive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{model.ReservationWaiting, true},
		{model.ReservationNotified, true},
		{model.ReservationFulfilled, false},
		{model.ReservationCancelled, false},
		{"active", false},
		{"expired", false},
		{"", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, IsReservationActive(model.Reservation{Status: tc.status}), tc.status)
	}
}

func TestActiveReservations_ReturnsNewSlice(t *testing.T) {
	rows := []model.Reservation{
		{ID: 1, Status: model.ReservationWaiting},
		{ID: 2, Status: model.ReservationFulfilled},
		{ID: 3, Status: model.ReservationNotified},
		{ID: 4, Status: model.ReservationCancelled},
	}
	snapshot := append([]model.Reservation(nil), rows...)

	active := ActiveReservations(rows)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].ID)
	assert.Equal(t, 3, active[1].ID)
	assert.Equal(t, snapshot, rows)
}

func TestReservationActions(t *testing.T) {
	waiting := model.Reservation{Status: model.ReservationWaiting}
	notified := model.Reservation{Status: model.ReservationNotified}
	done := model.Reservation{Status: model.ReservationFulfilled}

	assert.True(t, CanCancel(waiting))
	assert.True(t, CanCancel(notified))
	assert.False(t, CanCancel(done))
	assert.False(t, CanFulfill(waiting))
	assert.True(t, CanFulfill(notified))
	assert.False(t, CanFulfill(done))
}

func TestReservationFilter(t *testing.T) {
	rows := []model.Reservation{
		{ID: 1, Status: model.ReservationWaiting},
		{ID: 2, Status: model.ReservationCancelled},
	}

	f, err := ParseReservationFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterActive, f)
	assert.Equal(t, "", f.ServerStatus(), "active must never reach the server")
	assert.Len(t, f.Apply(rows), 1)

	f, err = ParseReservationFilter("all")
	require.NoError(t, err)
	assert.Equal(t, "", f.ServerStatus())
	assert.Len(t, f.Apply(rows), 2)

	f, err = ParseReservationFilter(model.ReservationCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, f.ServerStatus())
	assert.Len(t, f.Apply(rows), 2)

	_, err = ParseReservationFilter("pending")
	assert.Error(t, err)
}
