// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// AUTHENTICATION
// =============================================================================

// AuthConfig is the session configuration served by GET /auth/config.
type AuthConfig struct {
	SessionTimeoutMinutes int `json:"session_timeout_minutes"`
	SessionWarningMinutes int `json:"session_warning_minutes"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// User returns the identity part of the response.
func (r LoginResponse) User() User {
	return User{
		ID:       r.UserID,
		Username: r.Username,
		FullName: r.FullName,
		IsAdmin:  r.IsAdmin,
	}
}

// User is the cached identity of the signed-in staff member.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

// Role returns the display role of the user.
func (u User) Role() string {
	if u.IsAdmin {
		return "administrator"
	}
	return "librarian"
}
