// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/model"
	"github.com/jeranaias/biblioteka-tui/internal/status"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
	"github.com/jeranaias/biblioteka-tui/internal/util"
)

// parseID reads a positive record ID from a positional argument.
func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, &UsageError{Msg: fmt.Sprintf("invalid %s ID %q", what, arg)}
	}
	return id, nil
}

// parseDay reads a YYYY-MM-DD flag value.
func parseDay(flag, value string) (status.Date, error) {
	d, err := status.ParseDate(value)
	if err != nil {
		return status.Date{}, &UsageError{Msg: fmt.Sprintf("--%s: %q is not a YYYY-MM-DD date", flag, value)}
	}
	return d, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// =============================================================================
// SHOW
// =============================================================================

// memberDetail is a member with the full payment history and the status
// derived from that history.
type memberDetail struct {
	Member           model.Member            `json:"member"`
	MembershipStatus status.MembershipStatus `json:"membership_status"`
	Memberships      []model.Membership      `json:"memberships"`
}

func newMemberShowCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show MEMBER_ID",
		Short: "Show a member with their membership history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "member")
			if err != nil {
				return err
			}
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "members show", func() (memberDetail, error) {
					member, err := e.client.GetMember(ctx, id)
					if err != nil {
						return memberDetail{}, err
					}
					history, err := e.client.Memberships(ctx, id)
					if err != nil {
						return memberDetail{}, err
					}
					return memberDetail{
						Member:           member,
						MembershipStatus: status.HistoryStatus(member, history, time.Now()),
						Memberships:      history,
					}, nil
				}, func(d memberDetail) {
					w := cmd.OutOrStdout()
					tr := o.tr
					m := d.Member
					fmt.Fprintln(w, TitleStyle.Render(m.FullName()))
					printField(w, tr.T(i18n.ColMemberNumber), m.MemberNumber)
					printField(w, tr.T(i18n.ColMemberType), m.MemberType)
					printField(w, tr.T(i18n.ColMembership), tr.Status("membership", string(d.MembershipStatus)))
					if m.IsBlocked && m.BlockReason != "" {
						printField(w, "", tr.T(i18n.MemberBlockReason, m.BlockReason))
					}
					if m.Email != "" {
						printField(w, tr.T(i18n.ColEmail), m.Email)
					}
					if m.Phone != "" {
						printField(w, tr.T(i18n.ColPhone), m.Phone)
					}

					fmt.Fprintln(w)
					fmt.Fprintln(w, TitleStyle.Render(tr.T(i18n.MemberPaymentsTitle, m.FullName())))
					out := make([][]string, 0, len(d.Memberships))
					for _, ms := range d.Memberships {
						out = append(out, []string{
							strconv.Itoa(ms.Year), formatAmount(ms.AmountPaid), util.DatePart(ms.PaidAt),
							util.DatePart(ms.ValidFrom), util.DatePart(ms.ValidUntil),
						})
					}
					printTable(w, []column{
						{title: tr.T(i18n.ColYear), width: 6},
						{title: tr.T(i18n.ColAmount), width: 10, right: true},
						{title: tr.T(i18n.ColPaidAt), width: 10},
						{title: tr.T(i18n.ColValidFrom), width: 10},
						{title: tr.T(i18n.ColValidUntil), width: 10},
					}, out)
				})
			})
		},
	}
}

// =============================================================================
// REGISTER
// =============================================================================

func newMemberAddCmd(o *options) *cobra.Command {
	var req model.NewMember

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.FirstName = strings.TrimSpace(req.FirstName)
			req.LastName = strings.TrimSpace(req.LastName)
			if req.FirstName == "" || req.LastName == "" {
				return &UsageError{Msg: "--first-name and --last-name are required"}
			}
			if req.DateOfBirth != "" {
				dob, err := parseDay("born", req.DateOfBirth)
				if err != nil {
					return err
				}
				req.DateOfBirth = dob.String()
			}
			if req.MemberType == "" {
				req.MemberType = o.cfg.Library.DefaultMemberType
			}
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "members add", func() (model.Member, error) {
					return e.client.RegisterMember(ctx, req)
				}, func(m model.Member) {
					fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(o.tr.T(i18n.ActionRegistered, m.FullName(), m.MemberNumber)))
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.FirstName, "first-name", "", "First name (required)")
	f.StringVar(&req.LastName, "last-name", "", "Last name (required)")
	f.IntVar(&req.MemberNumber, "number", 0, "Member number (default: assigned by the server)")
	f.StringVar(&req.DateOfBirth, "born", "", "Date of birth, YYYY-MM-DD")
	f.StringVar(&req.Email, "email", "", "Email address")
	f.StringVar(&req.Phone, "phone", "", "Phone number")
	f.StringVar(&req.Address, "address", "", "Postal address")
	f.StringVar(&req.MemberType, "type", "", "Member category (default from library.default_member_type)")
	f.BoolVar(&req.AllowNotifications, "notify", false, "Allow email notifications")
	f.StringVar(&req.Notes, "notes", "", "Free-form notes")
	return cmd
}

// =============================================================================
// BILLING
// =============================================================================

func newMemberPayCmd(o *options) *cobra.Command {
	var amount float64
	var paidAt, validUntil, period string

	cmd := &cobra.Command{
		Use:   "pay MEMBER_ID",
		Short: "Record a membership payment",
		Long: "Record a membership payment. The period starts on the payment date and\n" +
			"ends on December 31st (calendar) or 365 days later (rolling), unless\n" +
			"--valid-until is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "member")
			if err != nil {
				return err
			}
			if amount <= 0 {
				return &UsageError{Msg: "--amount must be greater than zero"}
			}

			paid := status.Today(time.Now())
			if paidAt != "" {
				if paid, err = parseDay("paid-at", paidAt); err != nil {
					return err
				}
			}

			rolling := o.cfg.RollingMemberships()
			switch period {
			case "":
			case "calendar":
				rolling = false
			case "rolling":
				rolling = true
			default:
				return &UsageError{Msg: fmt.Sprintf("--period must be calendar or rolling, not %q", period)}
			}

			req := status.NewMembership(amount, paid, rolling)
			if validUntil != "" {
				until, err := parseDay("valid-until", validUntil)
				if err != nil {
					return err
				}
				if until.Before(paid) {
					return &UsageError{Msg: "--valid-until is before the payment date"}
				}
				req.ValidUntil = until.String()
			}

			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "members pay", func() (model.Membership, error) {
					return e.client.RecordMembership(ctx, id, req)
				}, func(ms model.Membership) {
					fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(o.tr.T(i18n.ActionPaid, util.DatePart(ms.ValidUntil))))
				})
			})
		},
	}

	f := cmd.Flags()
	f.Float64Var(&amount, "amount", 0, "Amount paid (required)")
	f.StringVar(&paidAt, "paid-at", "", "Payment date, YYYY-MM-DD (default today)")
	f.StringVar(&period, "period", "", "calendar or rolling (default from library.membership_period)")
	f.StringVar(&validUntil, "valid-until", "", "Last valid day, YYYY-MM-DD, overriding the period")
	return cmd
}

// =============================================================================
// BLOCKING
// =============================================================================

func newMemberBlockCmd(o *options, blocked bool) *cobra.Command {
	var reason string

	use, short, command, done := "unblock MEMBER_ID", "Lift a member's block", "members unblock", i18n.ActionUnblocked
	if blocked {
		use, short, command, done = "block MEMBER_ID", "Block a member from borrowing", "members block", i18n.ActionBlocked
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "member")
			if err != nil {
				return err
			}
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), command, func() (model.ActionResult, error) {
					return e.client.SetMemberBlocked(ctx, id, blocked, strings.TrimSpace(reason))
				}, func(model.ActionResult) {
					fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(o.tr.T(done)))
				})
			})
		},
	}
	if blocked {
		cmd.Flags().StringVar(&reason, "reason", "", "Why the member is blocked")
	}
	return cmd
}
