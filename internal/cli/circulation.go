// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/model"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
	"github.com/jeranaias/biblioteka-tui/internal/util"
)

// Availability and blocking are checked by the server; its refusal is
// reported as the error detail.

func newLoanIssueCmd(o *options) *cobra.Command {
	var libraryNumber string
	var copyID, memberID int

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a copy to a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			libraryNumber = strings.TrimSpace(libraryNumber)
			if (libraryNumber == "") == (copyID == 0) {
				return &UsageError{Msg: "give exactly one of --copy or --copy-id"}
			}
			if memberID <= 0 {
				return &UsageError{Msg: "--member is required"}
			}
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "loans issue", func() (model.Loan, error) {
					id := copyID
					if libraryNumber != "" {
						cp, err := e.client.CopyByNumber(ctx, libraryNumber)
						if err != nil {
							return model.Loan{}, err
						}
						id = cp.ID
					}
					return e.client.IssueLoan(ctx, id, memberID)
				}, func(l model.Loan) {
					fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(o.tr.T(i18n.ActionIssued, util.DatePart(l.DueDate))))
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&libraryNumber, "copy", "", "Library number of the copy")
	f.IntVar(&copyID, "copy-id", 0, "Copy ID")
	f.IntVarP(&memberID, "member", "m", 0, "Member ID (required)")
	return cmd
}

func newReserveCmd(o *options) *cobra.Command {
	var bookID, memberID int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Put a member in the queue for a title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if bookID <= 0 || memberID <= 0 {
				return &UsageError{Msg: "--book and --member are required"}
			}
			return withSession(cmd, o, func(ctx context.Context, e *env) error {
				return emit(o, cmd.OutOrStdout(), "reservations add", func() (model.Reservation, error) {
					return e.client.Reserve(ctx, bookID, memberID)
				}, func(r model.Reservation) {
					fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess(o.tr.T(i18n.ActionReserved, r.QueuePosition)))
				})
			})
		},
	}

	f := cmd.Flags()
	f.IntVarP(&bookID, "book", "b", 0, "Book ID (required)")
	f.IntVarP(&memberID, "member", "m", 0, "Member ID (required)")
	return cmd
}
