// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model of the biblioteka TUI: the
// sign-in form, the six tabs and the session timeout overlay.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/model"
	"github.com/jeranaias/biblioteka-tui/internal/session"
	"github.com/jeranaias/biblioteka-tui/internal/status"
	"github.com/jeranaias/biblioteka-tui/internal/ui/components"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
)

// Backend is the part of the library API the screens read and act on.
// *api.Client satisfies it.
type Backend interface {
	Dashboard(ctx context.Context) (model.Dashboard, error)
	ListMembers(ctx context.Context, query string) ([]model.Member, error)
	MemberLoans(ctx context.Context, memberID int) ([]model.Loan, error)
	Memberships(ctx context.Context, memberID int) ([]model.Membership, error)
	SetMemberBlocked(ctx context.Context, id int, blocked bool, reason string) (model.ActionResult, error)
	ListBooks(ctx context.Context, query string) ([]model.Book, error)
	ActiveLoans(ctx context.Context) ([]model.Loan, error)
	OverdueLoans(ctx context.Context) ([]model.OverdueRow, error)
	ListReservations(ctx context.Context, status string) ([]model.Reservation, error)
	ReturnLoan(ctx context.Context, id int) (model.ActionResult, error)
	ExtendLoan(ctx context.Context, id int) (model.ActionResult, error)
	CancelReservation(ctx context.Context, id int) (model.ActionResult, error)
	FulfillReservation(ctx context.Context, id int) (model.ActionResult, error)
}

// =============================================================================
// SCREENS AND TABS
// =============================================================================

type screen int

const (
	screenLogin screen = iota
	screenMain
)

type tab int

const (
	tabDashboard tab = iota
	tabMembers
	tabLoans
	tabReservations
	tabBooks
	tabOverdue
	tabCount
)

func (t tab) titleKey() string {
	switch t {
	case tabMembers:
		return i18n.TabMembers
	case tabLoans:
		return i18n.TabLoans
	case tabReservations:
		return i18n.TabReservations
	case tabBooks:
		return i18n.TabBooks
	case tabOverdue:
		return i18n.TabOverdue
	}
	return i18n.TabDashboard
}

// reservationFilters is the cycle order of the reservations filter.
var reservationFilters = []status.ReservationFilter{
	status.FilterActive,
	status.FilterAll,
	model.ReservationWaiting,
	model.ReservationNotified,
	model.ReservationFulfilled,
	model.ReservationCancelled,
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures New.
type Options struct {
	Session        *session.Manager
	Backend        Backend
	Translator     *i18n.Translator
	Theme          *styles.Theme
	Logger         *slog.Logger
	Now            func() time.Time
	RequestTimeout time.Duration
	Version        string
}

// Model is the Bubble Tea model for the whole program.
type Model struct {
	session *session.Manager
	backend Backend
	tr      *i18n.Translator
	theme   *styles.Theme
	logger  *slog.Logger
	now     func() time.Time
	keys    KeyMap
	version string

	requestTimeout time.Duration

	screen screen
	width  int
	height int

	// Login form
	username  textinput.Model
	password  textinput.Model
	loggingIn bool
	loginErr  string

	// Main screen
	active   tab
	showHelp bool
	help     help.Model
	helpView viewport.Model
	spinner  spinner.Model
	loading  map[tab]bool
	errs     map[tab]string

	overlay components.SessionTimeoutOverlay
	toasts  *components.ToastManager

	// Raw rows as the server sent them. Derived statuses are computed from
	// these at render time and never stored.
	dashboard    *model.Dashboard
	members      []model.Member
	memberQuery  string
	searching    bool
	search       textinput.Model
	loans        []model.Loan
	reservations []model.Reservation
	resFilter    status.ReservationFilter
	overdue      []model.OverdueRow
	books        []model.Book

	// Loans and payments of one member, opened from the members tab.
	memberOpen        *model.Member
	memberLoans       []model.Loan
	showArchive       bool
	memberLoaded      bool
	memberships       []model.Membership
	membershipsLoaded bool
	showPayments      bool

	memberTable      *components.Table
	loanTable        *components.Table
	memberLoanTable  *components.Table
	reservationTable *components.Table
	overdueTable     *components.Table
	paymentTable     *components.Table
	bookTable        *components.Table
}

// New creates the root model. The session should already have been
// started (or not) by the caller; New only reads its state.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New("")
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme("auto")
	}
	tr := opts.Translator

	username := textinput.New()
	username.Prompt = ""
	username.CharLimit = 64
	username.Placeholder = tr.T(i18n.LoginUsername)

	password := textinput.New()
	password.Prompt = ""
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Placeholder = tr.T(i18n.LoginPassword)

	search := textinput.New()
	search.Prompt = tr.T(i18n.SearchPrompt)
	search.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		session:        opts.Session,
		backend:        opts.Backend,
		tr:             tr,
		theme:          opts.Theme,
		logger:         opts.Logger,
		now:            opts.Now,
		keys:           DefaultKeyMap(tr),
		version:        opts.Version,
		requestTimeout: opts.RequestTimeout,
		username:       username,
		password:       password,
		search:         search,
		help:           help.New(),
		helpView:       viewport.New(80, 20),
		spinner:        sp,
		loading:        map[tab]bool{},
		errs:           map[tab]string{},
		overlay:        components.NewSessionTimeoutOverlay(tr),
		toasts:         components.NewToastManager(),
		resFilter:      status.FilterActive,
	}
	m.buildTables()

	if m.session != nil && m.session.State() != session.NoSession {
		m.screen = screenMain
	} else {
		m.screen = screenLogin
		m.username.Focus()
	}
	return m
}

// Init starts the heartbeat and, with a live session, loads the dashboard.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), textinput.Blink}
	if m.screen == screenMain {
		cmds = append(cmds, m.enterMain())
	}
	return tea.Batch(cmds...)
}
