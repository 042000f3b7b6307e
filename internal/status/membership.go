// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"time"

	"github.com/jeranaias/biblioteka-tui/internal/model"
)

// MembershipStatus is the label shown for a member's billing state.
type MembershipStatus string

// Membership display statuses.
const (
	MembershipBlocked MembershipStatus = "blocked"
	MembershipNotPaid MembershipStatus = "not_paid"
	MembershipExpired MembershipStatus = "expired"
	MembershipPaid    MembershipStatus = "paid"
)

// DeriveMembershipStatus returns the membership status of a member at now.
// The first matching rule wins:
//
//  1. blocked member: blocked, whatever the membership dates say
//  2. no membership on file: not_paid
//  3. valid_until a calendar day before today: expired
//  4. otherwise: paid
//
// A membership whose valid_until cannot be parsed counts as paid, since a
// record is on file.
func DeriveMembershipStatus(member model.Member, ms *model.Membership, now time.Time) MembershipStatus {
	if member.IsBlocked {
		return MembershipBlocked
	}
	if ms == nil {
		return MembershipNotPaid
	}
	until, err := ParseDate(ms.ValidUntil)
	if err != nil {
		return MembershipPaid
	}
	if until.Before(Today(now)) {
		return MembershipExpired
	}
	return MembershipPaid
}

// MemberStatus derives from the member's embedded last membership.
func MemberStatus(member model.Member, now time.Time) MembershipStatus {
	return DeriveMembershipStatus(member, member.LastMembership, now)
}

// LatestMembership returns the period of history that runs furthest, by
// valid_until, or nil for an empty history. Periods with an unparsable
// valid_until only win when nothing else is on file. The result is a copy.
func LatestMembership(history []model.Membership) *model.Membership {
	var best *model.Membership
	var bestUntil Date
	bestParsed := false
	for i := range history {
		until, err := ParseDate(history[i].ValidUntil)
		parsed := err == nil
		switch {
		case best == nil,
			parsed && !bestParsed,
			parsed && bestUntil.Before(until):
			best, bestUntil, bestParsed = &history[i], until, parsed
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// HistoryStatus derives the membership status from the full payment
// history instead of the embedded last membership.
func HistoryStatus(member model.Member, history []model.Membership, now time.Time) MembershipStatus {
	return DeriveMembershipStatus(member, LatestMembership(history), now)
}

// MembershipPeriod returns the validity of a membership paid on paidAt.
// Calendar memberships end on December 31st of the payment year; rolling
// ones last 365 days.
func MembershipPeriod(paidAt Date, rolling bool) (from, until Date) {
	if rolling {
		return paidAt, paidAt.AddDays(365)
	}
	return paidAt, Date{Year: paidAt.Year, Month: time.December, Day: 31}
}

// NewMembership builds the request recording a payment of amount on paidAt.
func NewMembership(amount float64, paidAt Date, rolling bool) model.NewMembership {
	from, until := MembershipPeriod(paidAt, rolling)
	return model.NewMembership{
		Year:       paidAt.Year,
		AmountPaid: amount,
		PaidAt:     paidAt.String(),
		ValidFrom:  from.String(),
		ValidUntil: until.String(),
	}
}

// ExpiredSince returns the last valid day of an expired-report line, or
// false when the member never paid or the date is unreadable.
func ExpiredSince(row model.ExpiredMembership) (Date, bool) {
	if row.LastValidUntil == model.NeverPaid {
		return Date{}, false
	}
	d, err := ParseDate(row.LastValidUntil)
	if err != nil {
		return Date{}, false
	}
	return d, true
}
