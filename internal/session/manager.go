// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jeranaias/biblioteka-tui/internal/model"
)

// DefaultLogoutGrace bounds the best-effort logout call.
const DefaultLogoutGrace = 5 * time.Second

// Errors returned by Login.
var (
	ErrNoAuthenticator = errors.New("session: no authenticator configured")
	ErrEmptyToken      = errors.New("session: server returned an empty token")
)

// =============================================================================
// STATE
// =============================================================================

// State is the lifecycle state of the session.
type State int

const (
	// NoSession means nobody is signed in.
	NoSession State = iota
	// Active means a session is live and the warning has not fired.
	Active
	// Warned means the expiry warning fired and has not been acknowledged.
	Warned
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case NoSession:
		return "NO_SESSION"
	case Active:
		return "ACTIVE"
	case Warned:
		return "WARNED"
	default:
		return "UNKNOWN"
	}
}

// Reason says why a session was terminated.
type Reason int

const (
	// ReasonExpired: the inactivity deadline passed.
	ReasonExpired Reason = iota
	// ReasonLogout: the user signed out.
	ReasonLogout
	// ReasonUnauthorized: the API rejected the credential.
	ReasonUnauthorized
)

// String returns a string representation of the Reason.
func (r Reason) String() string {
	switch r {
	case ReasonExpired:
		return "expired"
	case ReasonLogout:
		return "logout"
	case ReasonUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// ActivityKind is a user interaction that proves the session is in use.
type ActivityKind int

const (
	ActivityPointerMove ActivityKind = iota
	ActivityKeyPress
	ActivityClick
	ActivityScroll
)

// String returns a string representation of the ActivityKind.
func (k ActivityKind) String() string {
	switch k {
	case ActivityPointerMove:
		return "pointer_move"
	case ActivityKeyPress:
		return "key_press"
	case ActivityClick:
		return "click"
	case ActivityScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Store persists the token and identity. *storage.Store satisfies it.
type Store interface {
	Token() string
	SetToken(token string) error
	User() (model.User, bool)
	SetUser(u model.User) error
	Clear() error
}

// Authenticator talks to the auth endpoints. *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (model.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager is the process-wide owner of the session.
type Manager struct {
	mu sync.Mutex

	clock       Clock
	store       Store
	auth        Authenticator
	logger      *slog.Logger
	timeouts    Timeouts
	logoutGrace time.Duration

	state State
	token string
	user  model.User

	// generation tags the live timer pair; callbacks from older pairs are inert.
	generation   uint64
	warningTimer Timer
	expireTimer  Timer
	warningAt    time.Time
	expireAt     time.Time

	onWarning   func(remaining time.Duration)
	onTerminate func(reason Reason)

	pending sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithStore sets the persistent store.
func WithStore(s Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithAuthenticator sets the auth endpoint client.
func WithAuthenticator(a Authenticator) Option {
	return func(m *Manager) { m.auth = a }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTimeouts sets the timer durations. Invalid values are ignored.
func WithTimeouts(t Timeouts) Option {
	return func(m *Manager) {
		if t.Valid() {
			m.timeouts = t
		}
	}
}

// WithLogoutGrace bounds the best-effort logout request.
func WithLogoutGrace(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.logoutGrace = d
		}
	}
}

// New creates a Manager in NoSession. Without WithStore the session lives
// in memory only.
func New(opts ...Option) *Manager {
	m := &Manager{
		clock:       RealClock(),
		timeouts:    DefaultTimeouts(),
		logoutGrace: DefaultLogoutGrace,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = &memoryStore{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// SetCallbacks sets the hooks invoked on entering Warned and on termination.
// They run outside the manager's lock and may call back into it.
func (m *Manager) SetCallbacks(onWarning func(remaining time.Duration), onTerminate func(reason Reason)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onWarning = onWarning
	m.onTerminate = onTerminate
}

// SetTimeouts changes the durations used from the next reset on.
func (m *Manager) SetTimeouts(t Timeouts) {
	if !t.Valid() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeouts = t
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start resumes a stored session. It does nothing and returns false when no
// token is stored. Calling Start on a live session is a no-op returning true.
func (m *Manager) Start() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != NoSession {
		return true
	}
	token := m.store.Token()
	if token == "" {
		return false
	}
	m.token = token
	m.user, _ = m.store.User()
	m.state = Active
	m.scheduleLocked()

	m.logEvent(slog.LevelInfo, "SESSION_STARTED",
		"user", m.user.Username, "timeout", m.timeouts.Timeout, "warning", m.timeouts.Warning)
	return true
}

// Login authenticates against the API and starts a fresh session. On
// failure the manager stays in NoSession and nothing is persisted.
func (m *Manager) Login(ctx context.Context, username, password string) (model.User, error) {
	if m.auth == nil {
		return model.User{}, ErrNoAuthenticator
	}

	resp, err := m.auth.Login(ctx, username, password)
	if err != nil {
		m.logEvent(slog.LevelWarn, "LOGIN_FAILED", "user", username, "error", err)
		return model.User{}, err
	}
	if resp.AccessToken == "" {
		return model.User{}, ErrEmptyToken
	}
	user := resp.User()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != NoSession {
		m.stopTimersLocked()
	}
	if err := m.store.SetToken(resp.AccessToken); err != nil {
		_ = m.store.Clear()
		m.resetLocked()
		return model.User{}, fmt.Errorf("failed to persist session token: %w", err)
	}
	if err := m.store.SetUser(user); err != nil {
		_ = m.store.Clear()
		m.resetLocked()
		return model.User{}, fmt.Errorf("failed to persist user identity: %w", err)
	}

	m.token = resp.AccessToken
	m.user = user
	m.state = Active
	m.scheduleLocked()

	m.logEvent(slog.LevelInfo, "SESSION_STARTED",
		"user", user.Username, "timeout", m.timeouts.Timeout, "warning", m.timeouts.Warning)
	return user, nil
}

// Reset cancels both pending timers and schedules a new pair from now.
// Safe to call at any rate. Does nothing without a session.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == NoSession {
		return
	}
	m.state = Active
	m.scheduleLocked()
}

// OnActivity records a user interaction. It resets the timers if and only
// if a session is live.
func (m *Manager) OnActivity(kind ActivityKind) {
	m.Reset()
}

// Continue acknowledges the expiry warning and keeps the session alive.
func (m *Manager) Continue() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == NoSession {
		return
	}
	m.state = Active
	m.scheduleLocked()
	m.logEvent(slog.LevelInfo, "SESSION_CONTINUED", "expires_at", m.expireAt)
}

// Terminate ends the session: both timers are cancelled, every persisted
// key is cleared and the terminate callback runs with reason. For logout
// and expiry the server is asked to invalidate the token in the
// background; local teardown never waits for that call. Terminate without
// a session does nothing.
func (m *Manager) Terminate(reason Reason) {
	m.mu.Lock()
	after := m.endLocked(reason)
	m.mu.Unlock()
	after()
}

// Logout is Terminate(ReasonLogout).
func (m *Manager) Logout() {
	m.Terminate(ReasonLogout)
}

// Unauthorized handles an authentication failure from the API. token is the
// credential the failed request carried; a rejection of an older token does
// not end a newer session. An empty token always terminates.
func (m *Manager) Unauthorized(token string) {
	m.mu.Lock()
	if token != "" && m.token != "" && token != m.token {
		m.mu.Unlock()
		m.logEvent(slog.LevelDebug, "UNAUTHORIZED_STALE_TOKEN")
		return
	}
	after := m.endLocked(ReasonUnauthorized)
	m.mu.Unlock()
	after()
}

// endLocked tears the session down and returns the work that must run after
// the lock is released (logging and the terminate callback).
func (m *Manager) endLocked(reason Reason) func() {
	if m.state == NoSession {
		return func() {}
	}

	token := m.token
	user := m.user.Username
	m.stopTimersLocked()

	if reason != ReasonUnauthorized && m.auth != nil && token != "" {
		m.logoutAsync(token)
	}

	m.resetLocked()
	clearErr := m.store.Clear()
	cb := m.onTerminate

	return func() {
		if clearErr != nil {
			m.logEvent(slog.LevelError, "SESSION_CLEAR_FAILED", "error", clearErr)
		}
		m.logEvent(slog.LevelInfo, "SESSION_TERMINATED", "reason", reason.String(), "user", user)
		if cb != nil {
			cb(reason)
		}
	}
}

// Drain waits for background logout calls to finish. Each is bounded by the
// logout grace period.
func (m *Manager) Drain() {
	m.pending.Wait()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the live session token, or "" without a session.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns the signed-in identity.
func (m *Manager) User() (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.state != NoSession
}

// Timeouts returns the configured durations.
func (m *Manager) Timeouts() Timeouts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeouts
}

// Deadlines returns when the pending warning and termination fire. Both are
// zero without a session; warning is zero once it has fired or when
// warnings are disabled.
func (m *Manager) Deadlines() (warning, timeout time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warningAt, m.expireAt
}

// Remaining returns the time left before the session expires.
func (m *Manager) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == NoSession {
		return 0
	}
	d := m.expireAt.Sub(m.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// =============================================================================
// TIMERS
// =============================================================================

// scheduleLocked replaces the timer pair with one measured from now.
func (m *Manager) scheduleLocked() {
	m.stopTimersLocked()
	m.generation++
	gen := m.generation

	now := m.clock.Now()
	m.expireAt = now.Add(m.timeouts.Timeout)
	m.expireTimer = m.clock.AfterFunc(m.timeouts.Timeout, func() { m.fireExpire(gen) })

	if m.timeouts.Warning > 0 {
		after := m.timeouts.warnAfter()
		m.warningAt = now.Add(after)
		m.warningTimer = m.clock.AfterFunc(after, func() { m.fireWarning(gen) })
	}

	m.logEvent(slog.LevelDebug, "SESSION_RESET", "expires_at", m.expireAt)
}

// stopTimersLocked cancels both timers and invalidates their callbacks.
func (m *Manager) stopTimersLocked() {
	if m.warningTimer != nil {
		m.warningTimer.Stop()
		m.warningTimer = nil
	}
	if m.expireTimer != nil {
		m.expireTimer.Stop()
		m.expireTimer = nil
	}
	m.warningAt = time.Time{}
	m.expireAt = time.Time{}
	m.generation++
}

// resetLocked drops the in-memory session. Caller stops the timers.
func (m *Manager) resetLocked() {
	m.state = NoSession
	m.token = ""
	m.user = model.User{}
}

func (m *Manager) fireWarning(gen uint64) {
	m.mu.Lock()
	if gen != m.generation || m.state != Active {
		m.mu.Unlock()
		return
	}
	m.state = Warned
	m.warningTimer = nil
	m.warningAt = time.Time{}
	remaining := m.expireAt.Sub(m.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	cb := m.onWarning
	m.mu.Unlock()

	m.logEvent(slog.LevelInfo, "SESSION_WARNING", "expires_in", remaining)
	if cb != nil {
		cb(remaining)
	}
}

func (m *Manager) fireExpire(gen uint64) {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.expireTimer = nil
	after := m.endLocked(ReasonExpired)
	m.mu.Unlock()
	after()
}

// logoutAsync invalidates token on the server without blocking the caller.
func (m *Manager) logoutAsync(token string) {
	auth, grace := m.auth, m.logoutGrace
	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := auth.Logout(ctx, token); err != nil {
			m.logEvent(slog.LevelWarn, "LOGOUT_FAILED", "error", err)
		}
	}()
}

// logEvent writes a session event for the activity log.
func (m *Manager) logEvent(level slog.Level, event string, args ...any) {
	m.logger.Log(context.Background(), level, "session event", append([]any{"event", event}, args...)...)
}

// =============================================================================
// IN-MEMORY STORE
// =============================================================================

// memoryStore keeps session state for the lifetime of the process only.
type memoryStore struct {
	mu    sync.Mutex
	token string
	user  *model.User
}

func (s *memoryStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *memoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memoryStore) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *memoryStore) SetUser(u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	return nil
}

func (s *memoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}
