// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
)

// =============================================================================
// DECODING TESTS
// =============================================================================

func TestMember_DecodeWithLastMembership(t *testing.T) {
	raw := `{
		"id": 7, "member_number": "M-0007", "first_name": "Ana", "last_name": "Petrović",
		"member_type": "odrasli", "is_active": true, "is_blocked": false,
		"last_membership": {"id": 3, "member_id": 7, "year": 2025, "amount_paid": 1200,
			"paid_at": "2025-01-10", "valid_from": "2025-01-10", "valid_until": "2026-01-09"}
	}`

	var m Member
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m.FullName() != "Ana Petrović" {
		t.Errorf("FullName() = %q, want %q", m.FullName(), "Ana Petrović")
	}
	if m.LastMembership == nil {
		t.Fatal("LastMembership should be decoded")
	}
	if m.LastMembership.ValidUntil != "2026-01-09" {
		t.Errorf("ValidUntil = %q, want 2026-01-09", m.LastMembership.ValidUntil)
	}
}

func TestMember_DecodeNullMembership(t *testing.T) {
	var m Member
	if err := json.Unmarshal([]byte(`{"id": 1, "last_membership": null}`), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m.LastMembership != nil {
		t.Error("null last_membership should decode to nil")
	}
}

func TestMember_FullNameTrims(t *testing.T) {
	if got := (Member{FirstName: "Ana"}).FullName(); got != "Ana" {
		t.Errorf("FullName() = %q, want %q", got, "Ana")
	}
}

// =============================================================================
// STATUS VALUE TESTS
// =============================================================================

func TestIsReservationStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{ReservationWaiting, true},
		{ReservationNotified, true},
		{ReservationFulfilled, true},
		{ReservationCancelled, true},
		{"active", false},
		{"", false},
		{"WAITING", false},
	}

	for _, tc := range tests {
		if got := IsReservationStatus(tc.status); got != tc.want {
			t.Errorf("IsReservationStatus(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestLoginResponse_User(t *testing.T) {
	resp := LoginResponse{AccessToken: "tok", UserID: 4, Username: "jana", FullName: "Jana J", IsAdmin: true}
	u := resp.User()

	if u.ID != 4 || u.Username != "jana" || u.FullName != "Jana J" || !u.IsAdmin {
		t.Errorf("User() = %+v", u)
	}
	if u.Role() != "administrator" {
		t.Errorf("Role() = %q, want administrator", u.Role())
	}
	if (User{}).Role() != "librarian" {
		t.Error("non-admin Role() should be librarian")
	}
}

// =============================================================================
// REQUEST BODY TESTS
// =============================================================================

func TestNewMember_OmitsEmptyOptionalFields(t *testing.T) {
	raw, err := json.Marshal(NewMember{FirstName: "Ana", LastName: "Anić", MemberType: "odrasli"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, k := range []string{"member_number", "email", "phone", "date_of_birth", "address", "notes"} {
		if _, ok := got[k]; ok {
			t.Errorf("%s should be omitted when empty", k)
		}
	}
	if got["allow_notifications"] != false {
		t.Errorf("allow_notifications = %v, want false", got["allow_notifications"])
	}
}

func TestExpiredMembership_DecodeNeverPaid(t *testing.T) {
	raw := `{"member_id": 4, "member_name": "Đorđe Đurić", "member_number": "C-4",
		"member_type": "djak", "email": null, "phone": "064", "last_valid_until": "Nikad"}`
	var e ExpiredMembership
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if e.LastValidUntil != NeverPaid {
		t.Errorf("LastValidUntil = %q, want %q", e.LastValidUntil, NeverPaid)
	}
	if e.Email != "" {
		t.Errorf("Email = %q, want empty for null", e.Email)
	}
}
