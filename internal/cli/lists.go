// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/model"
	"github.com/jeranaias/biblioteka-tui/internal/status"
	"github.com/jeranaias/biblioteka-tui/internal/util"
)

// The list commands print what the server returned with the statuses
// derived at the moment of printing, the same rules the TUI applies.

// withSession opens the environment, resumes the stored session and runs fn
// with a request-scoped context.
func withSession(cmd *cobra.Command, o *options, fn func(ctx context.Context, e *env) error) error {
	e, err := o.openEnv(o.logger)
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.requireSession(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), o.cfg.RequestTimeout())
	defer cancel()
	return fn(ctx, e)
}

// =============================================================================
// DASHBOARD
// =============================================================================

func newDashboardCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the headline counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "dashboard", func() (model.Dashboard, error) {
					return e.client.Dashboard(ctx)
				}, func(d model.Dashboard) {
					w := cmd.OutOrStdout()
					tr := o.tr
					fmt.Fprintln(w, TitleStyle.Render(tr.T(i18n.TabDashboard)))
					printField(w, tr.T(i18n.DashActiveLoans), strconv.Itoa(d.ActiveLoans))
					printField(w, tr.T(i18n.DashOverdueLoans), strconv.Itoa(d.OverdueLoans))
					printField(w, tr.T(i18n.DashExpiredMemberships), strconv.Itoa(d.ExpiredMemberships))
					printField(w, tr.T(i18n.DashWaitingReservations), strconv.Itoa(d.WaitingReservations))
					printField(w, tr.T(i18n.DashTotalBooks), strconv.Itoa(d.TotalBooks))
					printField(w, tr.T(i18n.DashTotalCopies), strconv.Itoa(d.TotalCopies))
					printField(w, tr.T(i18n.DashTotalMembers), strconv.Itoa(d.TotalMembers))
				})
			})
		},
	}
}

// =============================================================================
// MEMBERS
// =============================================================================

// memberRow is a member with its derived membership status.
type memberRow struct {
	model.Member
	MembershipStatus status.MembershipStatus `json:"membership_status"`
}

func newMembersCmd(o *options) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "members", func() ([]memberRow, error) {
					members, err := e.client.ListMembers(ctx, query)
					if err != nil {
						return nil, err
					}
					now := time.Now()
					rows := make([]memberRow, 0, len(members))
					for _, m := range members {
						rows = append(rows, memberRow{Member: m, MembershipStatus: status.MemberStatus(m, now)})
					}
					return rows, nil
				}, func(rows []memberRow) {
					tr := o.tr
					out := make([][]string, 0, len(rows))
					for _, r := range rows {
						validUntil := ""
						if r.LastMembership != nil {
							validUntil = util.DatePart(r.LastMembership.ValidUntil)
						}
						out = append(out, []string{
							r.MemberNumber, r.FullName(), r.MemberType,
							tr.Status("membership", string(r.MembershipStatus)), validUntil, util.FirstNonEmpty(r.Email, r.Phone),
						})
					}
					printTable(cmd.OutOrStdout(), []column{
						{title: tr.T(i18n.ColMemberNumber), width: 10},
						{title: tr.T(i18n.ColName), width: 24},
						{title: tr.T(i18n.ColMemberType), width: 12},
						{title: tr.T(i18n.ColMembership), width: 13},
						{title: tr.T(i18n.ColValidUntil), width: 10},
						{title: tr.T(i18n.ColContact), width: 28},
					}, out)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search by name, member number, email or phone")
	cmd.AddCommand(
		newMemberShowCmd(o),
		newMemberAddCmd(o),
		newMemberPayCmd(o),
		newMemberBlockCmd(o, true),
		newMemberBlockCmd(o, false),
	)
	return cmd
}

// =============================================================================
// LOANS
// =============================================================================

// loanRow is a loan with its derived status and days overdue.
type loanRow struct {
	model.Loan
	DisplayStatus status.LoanStatus `json:"display_status"`
	DaysOverdue   int               `json:"days_overdue"`
}

func newLoansCmd(o *options) *cobra.Command {
	var memberID int
	var archive bool

	cmd := &cobra.Command{
		Use:   "loans",
		Short: "List active loans, or the loans of one member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if archive && memberID == 0 {
				return &UsageError{Msg: "--archive needs --member"}
			}
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "loans", func() ([]loanRow, error) {
					var loans []model.Loan
					var err error
					if memberID != 0 {
						loans, err = e.client.MemberLoans(ctx, memberID)
					} else {
						loans, err = e.client.ActiveLoans(ctx)
					}
					if err != nil {
						return nil, err
					}
					if memberID != 0 {
						current, archived := status.SplitLoans(loans)
						loans = current
						if archive {
							loans = archived
						}
					}
					return deriveLoans(loans, time.Now()), nil
				}, func(rows []loanRow) {
					tr := o.tr
					out := make([][]string, 0, len(rows))
					for _, r := range rows {
						late := ""
						if r.DaysOverdue > 0 {
							late = tr.T(i18n.Days, r.DaysOverdue)
						}
						out = append(out, []string{
							strconv.Itoa(r.ID), r.BookTitle, r.LibraryNumber, r.MemberName,
							util.DatePart(r.DueDate), tr.Status("loan", string(r.DisplayStatus)), late,
						})
					}
					printTable(cmd.OutOrStdout(), []column{
						{title: "ID", width: 6, right: true},
						{title: tr.T(i18n.ColBook), width: 28},
						{title: tr.T(i18n.ColLibraryNumber), width: 10},
						{title: tr.T(i18n.ColMember), width: 22},
						{title: tr.T(i18n.ColDueDate), width: 10},
						{title: tr.T(i18n.ColStatus), width: 10},
						{title: tr.T(i18n.ColDaysLate), width: 9, right: true},
					}, out)
				})
			})
		},
	}

	cmd.Flags().IntVarP(&memberID, "member", "m", 0, "Show the loans of this member ID")
	cmd.Flags().BoolVar(&archive, "archive", false, "With --member, show returned and lost loans")
	cmd.AddCommand(newLoanIssueCmd(o))
	return cmd
}

func deriveLoans(loans []model.Loan, now time.Time) []loanRow {
	rows := make([]loanRow, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, loanRow{
			Loan:          l,
			DisplayStatus: status.DeriveLoanStatus(l, now),
			DaysOverdue:   status.DaysOverdue(l, now),
		})
	}
	return rows
}

// =============================================================================
// RESERVATIONS
// =============================================================================

func newReservationsCmd(o *options) *cobra.Command {
	var filterName string

	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := status.ParseReservationFilter(filterName)
			if err != nil {
				return &UsageError{Msg: err.Error()}
			}
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "reservations", func() ([]model.Reservation, error) {
					rows, err := e.client.ListReservations(ctx, filter.ServerStatus())
					if err != nil {
						return nil, err
					}
					return filter.Apply(rows), nil
				}, func(rows []model.Reservation) {
					tr := o.tr
					out := make([][]string, 0, len(rows))
					for _, r := range rows {
						out = append(out, []string{
							strconv.Itoa(r.ID), r.BookTitle, r.MemberName, strconv.Itoa(r.QueuePosition),
							util.DatePart(r.ReservedAt), tr.Status("reservation", r.Status),
						})
					}
					printTable(cmd.OutOrStdout(), []column{
						{title: "ID", width: 6, right: true},
						{title: tr.T(i18n.ColBook), width: 28},
						{title: tr.T(i18n.ColMember), width: 22},
						{title: tr.T(i18n.ColQueue), width: 5, right: true},
						{title: tr.T(i18n.ColReservedAt), width: 10},
						{title: tr.T(i18n.ColStatus), width: 11},
					}, out)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&filterName, "status", "s", string(status.FilterActive),
		"active, all, waiting, notified, fulfilled or cancelled")
	cmd.AddCommand(newReserveCmd(o))
	return cmd
}

// =============================================================================
// OVERDUE
// =============================================================================

func newOverdueCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "overdue", func() ([]model.OverdueRow, error) {
					return e.client.OverdueLoans(ctx)
				}, func(rows []model.OverdueRow) {
					tr := o.tr
					out := make([][]string, 0, len(rows))
					for _, r := range rows {
						out = append(out, []string{
							r.BookTitle, r.LibraryNumber, r.MemberName, r.MemberEmail,
							util.DatePart(r.DueDate), tr.T(i18n.Days, r.DaysLate),
						})
					}
					printTable(cmd.OutOrStdout(), []column{
						{title: tr.T(i18n.ColBook), width: 28},
						{title: tr.T(i18n.ColLibraryNumber), width: 10},
						{title: tr.T(i18n.ColMember), width: 22},
						{title: tr.T(i18n.ColEmail), width: 28},
						{title: tr.T(i18n.ColDueDate), width: 10},
						{title: tr.T(i18n.ColDaysLate), width: 9, right: true},
					}, out)
				})
			})
		},
	}
}

// =============================================================================
// CATALOG
// =============================================================================

func newBooksCmd(o *options) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "books",
		Short: "Search the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "books", func() ([]model.Book, error) {
					return e.client.ListBooks(ctx, query)
				}, func(books []model.Book) {
					tr := o.tr
					out := make([][]string, 0, len(books))
					for _, b := range books {
						out = append(out, []string{
							strconv.Itoa(b.ID), b.Title, b.Author, b.Genre,
							fmt.Sprintf("%d/%d", b.AvailableCopies, b.TotalCopies),
						})
					}
					printTable(cmd.OutOrStdout(), []column{
						{title: "ID", width: 6, right: true},
						{title: tr.T(i18n.ColBook), width: 32},
						{title: tr.T(i18n.ColAuthor), width: 24},
						{title: tr.T(i18n.ColGenre), width: 14},
						{title: tr.T(i18n.ColAvailable), width: 8, right: true},
					}, out)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search by title, author or library number")
	return cmd
}

// =============================================================================
// EXPIRED MEMBERSHIPS
// =============================================================================

func newExpiredCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "expired",
		Short: "List members whose membership has expired",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "expired", func() ([]model.ExpiredMembership, error) {
					return e.client.ExpiredMemberships(ctx)
				}, func(rows []model.ExpiredMembership) {
					tr := o.tr
					out := make([][]string, 0, len(rows))
					for _, r := range rows {
						until := tr.T(i18n.NeverPaid)
						if d, ok := status.ExpiredSince(r); ok {
							until = d.String()
						}
						out = append(out, []string{
							r.MemberNumber, r.MemberName, r.MemberType, until, util.FirstNonEmpty(r.Email, r.Phone),
						})
					}
					printTable(cmd.OutOrStdout(), []column{
						{title: tr.T(i18n.ColMemberNumber), width: 10},
						{title: tr.T(i18n.ColName), width: 24},
						{title: tr.T(i18n.ColMemberType), width: 12},
						{title: tr.T(i18n.ColValidUntil), width: 10},
						{title: tr.T(i18n.ColContact), width: 28},
					}, out)
				})
			})
		},
	}
}
