// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/jeranaias/biblioteka-tui/internal/model"
)

// Built-in session durations, used when the server does not say otherwise.
const (
	DefaultTimeout = 30 * time.Minute
	DefaultWarning = 5 * time.Minute
)

// Timeouts parameterizes the inactivity timers.
type Timeouts struct {
	// Timeout is the inactivity period after which the session ends.
	Timeout time.Duration
	// Warning is how long before Timeout the user is warned. Zero disables
	// the warning; a value of Timeout or more warns immediately.
	Warning time.Duration
}

// DefaultTimeouts returns 30 minutes with a 5 minute warning.
func DefaultTimeouts() Timeouts {
	return Timeouts{Timeout: DefaultTimeout, Warning: DefaultWarning}
}

// TimeoutsFromMinutes converts minute counts as served by the API.
func TimeoutsFromMinutes(timeout, warning int) Timeouts {
	return Timeouts{
		Timeout: time.Duration(timeout) * time.Minute,
		Warning: time.Duration(warning) * time.Minute,
	}
}

// Valid reports whether t can drive the timers.
func (t Timeouts) Valid() bool {
	return t.Timeout > 0 && t.Warning >= 0
}

// warnAfter is the delay from a reset to the warning.
func (t Timeouts) warnAfter() time.Duration {
	d := t.Timeout - t.Warning
	if d < 0 {
		return 0
	}
	return d
}

// ConfigSource serves the session configuration (GET /auth/config).
type ConfigSource interface {
	AuthConfig(ctx context.Context) (model.AuthConfig, error)
}

// LoadTimeouts fetches the session configuration once. Any failure, or a
// response that cannot drive the timers, yields fallback. Failures are
// logged at debug level and never returned.
func LoadTimeouts(ctx context.Context, src ConfigSource, fallback Timeouts, logger *slog.Logger) Timeouts {
	if logger == nil {
		logger = slog.Default()
	}
	if src == nil {
		return fallback
	}

	cfg, err := src.AuthConfig(ctx)
	if err != nil {
		logger.Debug("session config unavailable, using defaults",
			"error", err, "timeout", fallback.Timeout, "warning", fallback.Warning)
		return fallback
	}

	t := TimeoutsFromMinutes(cfg.SessionTimeoutMinutes, cfg.SessionWarningMinutes)
	if !t.Valid() {
		logger.Debug("session config out of range, using defaults",
			"timeout_minutes", cfg.SessionTimeoutMinutes, "warning_minutes", cfg.SessionWarningMinutes)
		return fallback
	}
	return t
}
