// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/jeranaias/biblioteka-tui/internal/api"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates a missing, expired or rejected session
	ExitAuthError = 4
	// ExitNetworkError indicates the API could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a record was not found
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// ErrNotSignedIn is returned by commands that need a stored session.
var ErrNotSignedIn = errors.New("not signed in; run 'biblioteka login' first")

// ConfigError wraps a configuration problem.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// UsageError is an invalid flag value or argument.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *ConfigError
	var usageErr *UsageError
	var ttyErr *TTYRequiredError
	var urlErr *url.Error
	var netErr net.Error

	switch {
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.As(err, &usageErr), errors.As(err, &ttyErr):
		return ExitUsageError
	case errors.Is(err, ErrNotSignedIn),
		errors.Is(err, api.ErrUnauthorized),
		errors.Is(err, api.ErrInvalidCredentials),
		errors.Is(err, api.ErrForbidden):
		return ExitAuthError
	case errors.Is(err, api.ErrNotFound):
		return ExitNotFoundError
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeoutError
	case errors.As(err, &netErr) && netErr.Timeout():
		return ExitTimeoutError
	case errors.As(err, &urlErr):
		return ExitNetworkError
	}
	return ExitGeneralError
}

// friendly rewrites errors a librarian is likely to see into plain advice.
func friendly(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return &hintError{msg: "the session is no longer valid; run 'biblioteka login' again", err: err}
	case errors.Is(err, api.ErrForbidden):
		return &hintError{msg: "your account is not allowed to do this", err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && !errors.Is(err, context.DeadlineExceeded) {
		return &hintError{msg: "cannot reach the library server at " + redactURL(urlErr.URL), err: err}
	}
	return err
}

// hintError keeps the original error for ExitCode while showing msg.
type hintError struct {
	msg string
	err error
}

func (e *hintError) Error() string { return e.msg }

func (e *hintError) Unwrap() error { return e.err }

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Scheme + "://" + u.Host
}
