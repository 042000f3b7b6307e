// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"fmt"

	"github.com/jeranaias/biblioteka-tui/internal/model"
)

// =============================================================================
// RESERVATIONS
// =============================================================================

// IsReservationActive reports whether a reservation is still in the queue,
// that is waiting or notified. Unknown statuses are not active.
func IsReservationActive(r model.Reservation) bool {
	return r.Status == model.ReservationWaiting || r.Status == model.ReservationNotified
}

// ActiveReservations returns a new slice holding the active reservations.
func ActiveReservations(rows []model.Reservation) []model.Reservation {
	out := make([]model.Reservation, 0, len(rows))
	for _, r := range rows {
		if IsReservationActive(r) {
			out = append(out, r)
		}
	}
	return out
}

// CanCancel reports whether a reservation may still be cancelled.
func CanCancel(r model.Reservation) bool {
	return IsReservationActive(r)
}

// CanFulfill reports whether the member was notified and can pick the book up.
func CanFulfill(r model.Reservation) bool {
	return r.Status == model.ReservationNotified
}

// =============================================================================
// RESERVATION FILTER
// =============================================================================

// ReservationFilter is what the reservations view is showing.
//
// FilterActive is a client-side view (waiting + notified). It has no server
// equivalent and is never sent as a query parameter.
type ReservationFilter string

// View filters. Server statuses are also valid filters.
const (
	FilterActive ReservationFilter = "active"
	FilterAll    ReservationFilter = "all"
)

// ParseReservationFilter validates a filter name. Empty means FilterActive.
func ParseReservationFilter(s string) (ReservationFilter, error) {
	switch {
	case s == "":
		return FilterActive, nil
	case s == string(FilterActive), s == string(FilterAll):
		return ReservationFilter(s), nil
	case model.IsReservationStatus(s):
		return ReservationFilter(s), nil
	}
	return "", fmt.Errorf("unknown reservation filter %q", s)
}

// ServerStatus is the status query parameter to send, or "" for none.
func (f ReservationFilter) ServerStatus() string {
	if f == FilterActive || f == FilterAll {
		return ""
	}
	return string(f)
}

// Apply narrows rows fetched with ServerStatus to what the filter shows.
func (f ReservationFilter) Apply(rows []model.Reservation) []model.Reservation {
	if f == FilterActive {
		return ActiveReservations(rows)
	}
	return rows
}
