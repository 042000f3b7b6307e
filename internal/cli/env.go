// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/jeranaias/biblioteka-tui/internal/api"
	"github.com/jeranaias/biblioteka-tui/internal/config"
	"github.com/jeranaias/biblioteka-tui/internal/session"
	"github.com/jeranaias/biblioteka-tui/internal/storage"
)

// env is the wired client stack: the state database, the API client and the
// session manager that owns the token in it.
type env struct {
	store  *storage.Store
	client *api.Client
	mgr    *session.Manager
}

// openEnv opens the state database and wires the API client to the session
// manager in both directions: the client reads the live token from the
// manager and reports a rejected one back to it.
func (o *options) openEnv(logger *slog.Logger) (*env, error) {
	path, err := o.cfg.StatePath()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	e := &env{store: store}
	e.client = api.New(o.cfg.API.BaseURL, clientOptions(o.cfg, o.info.Version, logger,
		api.WithTokenSource(func() string { return e.mgr.Token() }),
		api.WithUnauthorizedHandler(func(token string) { e.mgr.Unauthorized(token) }),
	)...)
	e.mgr = session.New(
		session.WithStore(store),
		session.WithAuthenticator(e.client),
		session.WithLogger(logger),
		session.WithTimeouts(fallbackTimeouts(o.cfg)),
		session.WithLogoutGrace(o.cfg.LogoutGrace()),
	)
	return e, nil
}

func clientOptions(cfg *config.Config, version string, logger *slog.Logger, extra ...api.Option) []api.Option {
	limit := rate.Limit(cfg.API.RateLimitPerSec)
	opts := []api.Option{
		api.WithLogger(logger),
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithMaxRetries(cfg.API.MaxRetries),
		api.WithRateLimit(limit, cfg.API.RateLimitBurst),
		api.WithUserAgent("biblioteka-tui/" + version),
	}
	return append(opts, extra...)
}

func fallbackTimeouts(cfg *config.Config) session.Timeouts {
	return session.TimeoutsFromMinutes(cfg.Session.DefaultTimeoutMinutes, cfg.Session.DefaultWarningMinutes)
}

// timeouts asks the server for the session timers when configured to.
func (e *env) timeouts(ctx context.Context, cfg *config.Config, logger *slog.Logger) session.Timeouts {
	fallback := fallbackTimeouts(cfg)
	if !cfg.Session.UseServerConfig {
		return fallback
	}
	return session.LoadTimeouts(ctx, e.client, fallback, logger)
}

// requireSession resumes the stored session or fails with ErrNotSignedIn.
func (e *env) requireSession() error {
	if !e.mgr.Start() {
		return ErrNotSignedIn
	}
	return nil
}

// Close waits for a pending server logout and closes the database.
func (e *env) Close() error {
	e.mgr.Drain()
	return e.store.Close()
}
