// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jeranaias/biblioteka-tui/internal/model"
)

// =============================================================================
// AUTH
// =============================================================================

// AuthConfig fetches the session timeout configuration. No token is needed.
func (c *Client) AuthConfig(ctx context.Context) (model.AuthConfig, error) {
	var cfg model.AuthConfig
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/config", anonymous: true}, &cfg)
	return cfg, err
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.do(ctx, request{
		method:     http.MethodPost,
		path:       "/auth/login",
		body:       model.LoginRequest{Username: username, Password: password},
		anonymous:  true,
		noAuthHook: true,
	}, &resp)
	if errors.Is(err, ErrUnauthorized) {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			return model.LoginResponse{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Detail)
		}
		return model.LoginResponse{}, ErrInvalidCredentials
	}
	return resp, err
}

// Logout asks the server to invalidate token. It uses the given token rather
// than the live one and never reports a 401 to the unauthorized handler.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, request{
		method:     http.MethodPost,
		path:       "/auth/logout",
		token:      token,
		anonymous:  token == "",
		noAuthHook: true,
	}, nil)
}

// Me returns the signed-in staff account.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &u)
	return u, err
}

// =============================================================================
// MEMBERS
// =============================================================================

// ListMembers searches active members by name, number, email or phone. An
// empty query lists everyone.
func (c *Client) ListMembers(ctx context.Context, query string) ([]model.Member, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	var members []model.Member
	err := c.do(ctx, request{method: http.MethodGet, path: "/members", query: q}, &members)
	return members, err
}

// GetMember returns one member.
func (c *Client) GetMember(ctx context.Context, id int) (model.Member, error) {
	var m model.Member
	err := c.do(ctx, request{method: http.MethodGet, path: "/members/" + strconv.Itoa(id)}, &m)
	return m, err
}

// RegisterMember creates a member. The server assigns the member number
// when none is given.
func (c *Client) RegisterMember(ctx context.Context, m model.NewMember) (model.Member, error) {
	var out model.Member
	err := c.do(ctx, request{method: http.MethodPost, path: "/members", body: m}, &out)
	return out, err
}

// SetMemberBlocked blocks or unblocks a member. The reason is ignored when
// unblocking.
func (c *Client) SetMemberBlocked(ctx context.Context, id int, blocked bool, reason string) (model.ActionResult, error) {
	body := model.BlockRequest{IsBlocked: blocked}
	if blocked {
		body.BlockReason = reason
	}
	var res model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/members/" + strconv.Itoa(id) + "/block", body: body}, &res)
	return res, err
}

// Memberships returns the payment history of a member, newest year first.
func (c *Client) Memberships(ctx context.Context, memberID int) ([]model.Membership, error) {
	var ms []model.Membership
	err := c.do(ctx, request{method: http.MethodGet, path: "/members/" + strconv.Itoa(memberID) + "/memberships"}, &ms)
	return ms, err
}

// RecordMembership records a paid membership period for a member.
func (c *Client) RecordMembership(ctx context.Context, memberID int, ms model.NewMembership) (model.Membership, error) {
	var out model.Membership
	err := c.do(ctx, request{method: http.MethodPost, path: "/members/" + strconv.Itoa(memberID) + "/membership", body: ms}, &out)
	return out, err
}

// MemberLoans returns every loan of a member, newest first.
func (c *Client) MemberLoans(ctx context.Context, memberID int) ([]model.Loan, error) {
	var loans []model.Loan
	err := c.do(ctx, request{method: http.MethodGet, path: "/members/" + strconv.Itoa(memberID) + "/loans"}, &loans)
	return loans, err
}

// =============================================================================
// CATALOG
// =============================================================================

// ListBooks searches the catalog by title or author. An empty query lists
// every title.
func (c *Client) ListBooks(ctx context.Context, query string) ([]model.Book, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	var books []model.Book
	err := c.do(ctx, request{method: http.MethodGet, path: "/books", query: q}, &books)
	return books, err
}

// CopyByNumber looks up a shelf copy by its library number.
func (c *Client) CopyByNumber(ctx context.Context, libraryNumber string) (model.BookCopy, error) {
	var cp model.BookCopy
	err := c.do(ctx, request{method: http.MethodGet, path: "/books/copy/" + url.PathEscape(libraryNumber)}, &cp)
	return cp, err
}

// =============================================================================
// LOANS
// =============================================================================

// IssueLoan lends a copy to a member. The server sets the due date.
func (c *Client) IssueLoan(ctx context.Context, copyID, memberID int) (model.Loan, error) {
	var loan model.Loan
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/loans",
		body:   model.NewLoan{CopyID: copyID, MemberID: memberID},
	}, &loan)
	return loan, err
}

// ActiveLoans returns loans the server holds as active or overdue.
func (c *Client) ActiveLoans(ctx context.Context) ([]model.Loan, error) {
	var loans []model.Loan
	err := c.do(ctx, request{method: http.MethodGet, path: "/loans/active"}, &loans)
	return loans, err
}

// OverdueLoans returns loans past their due date with the days late.
func (c *Client) OverdueLoans(ctx context.Context) ([]model.OverdueRow, error) {
	var rows []model.OverdueRow
	err := c.do(ctx, request{method: http.MethodGet, path: "/loans/overdue"}, &rows)
	return rows, err
}

// ReturnLoan records a returned copy.
func (c *Client) ReturnLoan(ctx context.Context, id int) (model.ActionResult, error) {
	var res model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/loans/" + strconv.Itoa(id) + "/return"}, &res)
	return res, err
}

// ExtendLoan pushes the due date of an active loan.
func (c *Client) ExtendLoan(ctx context.Context, id int) (model.ActionResult, error) {
	var res model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/loans/" + strconv.Itoa(id) + "/extend"}, &res)
	return res, err
}

// =============================================================================
// RESERVATIONS
// =============================================================================

// ListReservations lists reservations with the given server status, or all
// of them for "". Only the four server statuses are accepted.
func (c *Client) ListReservations(ctx context.Context, status string) ([]model.Reservation, error) {
	q := url.Values{}
	if status != "" {
		if !model.IsReservationStatus(status) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		q.Set("status", status)
	}
	var rs []model.Reservation
	err := c.do(ctx, request{method: http.MethodGet, path: "/reservations", query: q}, &rs)
	return rs, err
}

// Reserve puts a member in the queue for a title.
func (c *Client) Reserve(ctx context.Context, bookID, memberID int) (model.Reservation, error) {
	var r model.Reservation
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/reservations",
		body:   model.NewReservation{BookID: bookID, MemberID: memberID},
	}, &r)
	return r, err
}

// CancelReservation cancels a waiting or notified reservation.
func (c *Client) CancelReservation(ctx context.Context, id int) (model.ActionResult, error) {
	var res model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/reservations/" + strconv.Itoa(id) + "/cancel"}, &res)
	return res, err
}

// FulfillReservation marks a notified reservation as picked up.
func (c *Client) FulfillReservation(ctx context.Context, id int) (model.ActionResult, error) {
	var res model.ActionResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/reservations/" + strconv.Itoa(id) + "/fulfill"}, &res)
	return res, err
}

// =============================================================================
// REPORTS
// =============================================================================

// Dashboard returns the headline counters.
func (c *Client) Dashboard(ctx context.Context) (model.Dashboard, error) {
	var d model.Dashboard
	err := c.do(ctx, request{method: http.MethodGet, path: "/reports/dashboard"}, &d)
	return d, err
}

// ExpiredMemberships lists active members whose latest membership lapsed or
// who never paid.
func (c *Client) ExpiredMemberships(ctx context.Context) ([]model.ExpiredMembership, error) {
	var rows []model.ExpiredMembership
	err := c.do(ctx, request{method: http.MethodGet, path: "/reports/expired-memberships"}, &rows)
	return rows, err
}
