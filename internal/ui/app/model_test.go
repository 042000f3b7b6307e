// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/biblioteka-tui/internal/api"
	"github.com/jeranaias/biblioteka-tui/internal/i18n"
	"github.com/jeranaias/biblioteka-tui/internal/logging"
	"github.com/jeranaias/biblioteka-tui/internal/model"
	"github.com/jeranaias/biblioteka-tui/internal/session"
	"github.com/jeranaias/biblioteka-tui/internal/status"
	"github.com/jeranaias/biblioteka-tui/internal/ui/components"
	"github.com/jeranaias/biblioteka-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

// stubClock never fires timers; tests only read the deadlines.
type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

type stubTimer struct{}

func (stubTimer) Stop() bool { return true }

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) AfterFunc(time.Duration, func()) session.Timer {
	return stubTimer{}
}

func (c *stubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeAuth struct {
	mu      sync.Mutex
	resp    model.LoginResponse
	err     error
	logouts []string
}

func (a *fakeAuth) Login(context.Context, string, string) (model.LoginResponse, error) {
	return a.resp, a.err
}

func (a *fakeAuth) Logout(_ context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logouts = append(a.logouts, token)
	return nil
}

type fakeBackend struct {
	mu sync.Mutex

	dashboard    model.Dashboard
	members      []model.Member
	loans        []model.Loan
	memberLoans  []model.Loan
	overdue      []model.OverdueRow
	reservations []model.Reservation
	memberships  []model.Membership
	books        []model.Book
	actionErr    error

	reservationQueries []string
	memberQueries      []string
	actions            []string
}

func (b *fakeBackend) record(list *[]string, v string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	*list = append(*list, v)
}

func (b *fakeBackend) Dashboard(context.Context) (model.Dashboard, error) {
	return b.dashboard, nil
}

func (b *fakeBackend) ListMembers(_ context.Context, query string) ([]model.Member, error) {
	b.record(&b.memberQueries, query)
	return b.members, nil
}

func (b *fakeBackend) MemberLoans(context.Context, int) ([]model.Loan, error) {
	return b.memberLoans, nil
}

func (b *fakeBackend) Memberships(context.Context, int) ([]model.Membership, error) {
	return b.memberships, nil
}

func (b *fakeBackend) SetMemberBlocked(_ context.Context, id int, blocked bool, reason string) (model.ActionResult, error) {
	if blocked {
		b.record(&b.actions, "block")
	} else {
		b.record(&b.actions, "unblock")
	}
	return model.ActionResult{Message: "ok"}, b.actionErr
}

func (b *fakeBackend) ListBooks(context.Context, string) ([]model.Book, error) {
	return b.books, nil
}

func (b *fakeBackend) ActiveLoans(context.Context) ([]model.Loan, error) {
	return b.loans, nil
}

func (b *fakeBackend) OverdueLoans(context.Context) ([]model.OverdueRow, error) {
	return b.overdue, nil
}

func (b *fakeBackend) ListReservations(_ context.Context, status string) ([]model.Reservation, error) {
	b.record(&b.reservationQueries, status)
	return b.reservations, nil
}

func (b *fakeBackend) ReturnLoan(_ context.Context, id int) (model.ActionResult, error) {
	b.record(&b.actions, "return")
	return model.ActionResult{Message: "ok"}, b.actionErr
}

func (b *fakeBackend) ExtendLoan(_ context.Context, id int) (model.ActionResult, error) {
	b.record(&b.actions, "extend")
	return model.ActionResult{NewDueDate: "2025-03-24"}, b.actionErr
}

func (b *fakeBackend) CancelReservation(_ context.Context, id int) (model.ActionResult, error) {
	b.record(&b.actions, "cancel")
	return model.ActionResult{}, b.actionErr
}

func (b *fakeBackend) FulfillReservation(_ context.Context, id int) (model.ActionResult, error) {
	b.record(&b.actions, "fulfill")
	return model.ActionResult{}, b.actionErr
}

// =============================================================================
// HELPERS
// =============================================================================

var testNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

type harness struct {
	clock   *stubClock
	auth    *fakeAuth
	backend *fakeBackend
	mgr     *session.Manager

	mu   sync.Mutex
	sent []tea.Msg
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock: &stubClock{now: testNow},
		auth: &fakeAuth{resp: model.LoginResponse{
			AccessToken: "tok-1",
			UserID:      7,
			Username:    "ana",
			FullName:    "Ana Anić",
		}},
		backend: &fakeBackend{},
	}
	h.mgr = session.New(
		session.WithClock(h.clock),
		session.WithAuthenticator(h.auth),
		session.WithLogger(logging.Discard()),
		session.WithTimeouts(session.Timeouts{Timeout: 30 * time.Minute, Warning: 5 * time.Minute}),
	)
	session.Bind(h.mgr, func(msg tea.Msg) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.sent = append(h.sent, msg)
	})
	return h
}

func (h *harness) model(lang string) Model {
	m := New(Options{
		Session:    h.mgr,
		Backend:    h.backend,
		Translator: i18n.New(lang),
		Theme:      styles.NewTheme("dark"),
		Logger:     logging.Discard(),
		Now:        h.clock.Now,
	})
	return update(m, tea.WindowSizeMsg{Width: 140, Height: 40})
}

// takeSent returns and forgets the messages the manager delivered.
func (h *harness) takeSent() []tea.Msg {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.sent
	h.sent = nil
	return out
}

// signIn logs in through the form and feeds the dashboard load back.
func (h *harness) signIn(t *testing.T, m Model) Model {
	t.Helper()
	m.username.SetValue("ana")
	m.password.SetValue("tajna")
	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, cmd)
	require.Equal(t, screenMain, m.screen)
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// runCmd executes cmd and flattens batches. Commands that block (cursor
// blink, the one second heartbeat) are abandoned.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// feed runs cmd and applies the resulting data messages, following up on
// the commands they return. Spinner ticks are dropped so it terminates.
func feed(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := runCmd(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case loginResultMsg, dashboardMsg, membersMsg, memberLoansMsg,
			membershipsMsg, booksMsg, loansMsg, reservationsMsg, overdueMsg, actionMsg,
			components.SessionContinueMsg:
			var next tea.Cmd
			m, next = updateCmd(m, msg)
			queue = append(queue, runCmd(next)...)
		}
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func toastTexts(m Model) []string {
	var out []string
	for _, t := range m.toasts.Toasts() {
		out = append(out, t.Message)
	}
	return out
}

// =============================================================================
// SIGN-IN
// =============================================================================

func TestNew_NoSessionShowsLogin(t *testing.T) {
	h := newHarness(t)
	m := h.model("en")

	assert.Equal(t, screenLogin, m.screen)
	assert.True(t, m.username.Focused())
	assert.Contains(t, m.View(), "Sign in")
}

func TestNew_ResumedSessionShowsMain(t *testing.T) {
	h := newHarness(t)
	_, err := h.mgr.Login(context.Background(), "ana", "tajna")
	require.NoError(t, err)

	m := h.model("en")
	assert.Equal(t, screenMain, m.screen)
}

func TestLogin_Success(t *testing.T) {
	h := newHarness(t)
	h.backend.dashboard = model.Dashboard{ActiveLoans: 12, OverdueLoans: 3}
	m := h.signIn(t, h.model("en"))

	assert.Equal(t, session.Active, h.mgr.State())
	assert.False(t, m.loggingIn)
	assert.Contains(t, toastTexts(m), "Signed in as Ana Anić (librarian)")
	require.NotNil(t, m.dashboard)
	assert.Equal(t, 12, m.dashboard.ActiveLoans)

	view := m.View()
	assert.Contains(t, view, "Active loans")
	assert.Contains(t, view, "Ana Anić")
}

func TestLogin_MissingFields(t *testing.T) {
	h := newHarness(t)
	m := h.model("en")
	m.username.SetValue("ana")

	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Enter username and password", m.loginErr)
	assert.Equal(t, session.NoSession, h.mgr.State())
}

func TestLogin_FailureShowsServerDetail(t *testing.T) {
	h := newHarness(t)
	h.auth.err = &api.APIError{Status: 400, Detail: "Korisnik je deaktiviran"}
	m := h.model("en")
	m.username.SetValue("ana")
	m.password.SetValue("tajna")

	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, cmd)

	assert.Equal(t, screenLogin, m.screen)
	assert.Equal(t, "Sign in failed: Korisnik je deaktiviran", m.loginErr)
	assert.Empty(t, m.password.Value())
	assert.Equal(t, session.NoSession, h.mgr.State())
}

func TestLogin_TabMovesFocus(t *testing.T) {
	h := newHarness(t)
	m := h.model("en")

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.username.Focused())
	assert.True(t, m.password.Focused())

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.username.Focused())
}

// =============================================================================
// SESSION
// =============================================================================

func TestActivity_KeyResetsTimers(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))

	h.clock.Advance(10 * time.Minute)
	m = update(m, keyRunes("j"))

	_, timeout := h.mgr.Deadlines()
	assert.Equal(t, testNow.Add(40*time.Minute), timeout)
}

func TestActivity_ResizeIsNotActivity(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))

	h.clock.Advance(10 * time.Minute)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	_ = m

	_, timeout := h.mgr.Deadlines()
	assert.Equal(t, testNow.Add(30*time.Minute), timeout)
}

func TestWarning_AnyKeyContinues(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))

	m = update(m, session.WarningMsg{Remaining: 5 * time.Minute})
	require.True(t, m.overlay.IsVisible())
	assert.Contains(t, m.View(), "Session expiring")

	// q would quit on the main screen; here it only dismisses the warning.
	h.clock.Advance(2 * time.Minute)
	m, cmd := updateCmd(m, keyRunes("q"))
	assert.False(t, m.overlay.IsVisible())

	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, components.SessionContinueMsg{}, msgs[0])

	m = update(m, msgs[0])
	assert.Equal(t, session.Active, h.mgr.State())
	_, timeout := h.mgr.Deadlines()
	assert.Equal(t, testNow.Add(32*time.Minute), timeout)
}

func TestWarning_MouseHidesOverlay(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))

	m = update(m, session.WarningMsg{Remaining: 5 * time.Minute})
	m = update(m, tea.MouseMsg{Type: tea.MouseMotion})
	assert.False(t, m.overlay.IsVisible())
}

func TestWarning_LogoutKey(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))
	h.takeSent()

	m = update(m, session.WarningMsg{Remaining: 5 * time.Minute})
	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	h.mgr.Drain()

	assert.Equal(t, session.NoSession, h.mgr.State())
	assert.Equal(t, []string{"tok-1"}, h.auth.logouts)
	sent := h.takeSent()
	require.Len(t, sent, 1)
	assert.Equal(t, session.TerminatedMsg{Reason: session.ReasonLogout}, sent[0])

	m = update(m, sent[0])
	assert.Equal(t, screenLogin, m.screen)
	assert.Contains(t, toastTexts(m), "You have been signed out")
}

func TestTerminated_ExpiredClearsData(t *testing.T) {
	h := newHarness(t)
	h.backend.loans = []model.Loan{{ID: 1, Status: model.LoanActive, DueDate: "2025-03-20", BookTitle: "Na Drini ćuprija"}}
	m := h.signIn(t, h.model("sr"))

	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd = updateCmd(m, tea.KeyMsg{Type: tea.KeyTab})
	m = feed(t, m, cmd)
	require.Len(t, m.loans, 1)

	m = update(m, session.TerminatedMsg{Reason: session.ReasonExpired})
	assert.Equal(t, screenLogin, m.screen)
	assert.Nil(t, m.loans)
	assert.Nil(t, m.dashboard)
	assert.Equal(t, 0, m.loanTable.Len())
	assert.Contains(t, toastTexts(m), "Sesija je istekla. Prijavite se ponovo.")
	assert.NotContains(t, m.View(), "Na Drini ćuprija")
}

func TestTerminated_UnauthorizedIsSilent(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))
	before := len(m.toasts.Toasts())

	m = update(m, session.TerminatedMsg{Reason: session.ReasonUnauthorized})
	assert.Equal(t, screenLogin, m.screen)
	assert.Len(t, m.toasts.Toasts(), before)
}

func TestAccept_DropsLateResults(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))
	m = update(m, session.TerminatedMsg{Reason: session.ReasonUnauthorized})

	m = update(m, loansMsg{rows: []model.Loan{{ID: 9}}})
	assert.Nil(t, m.loans)
}

func TestAccept_UnauthorizedErrorNotShown(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))

	m = update(m, loansMsg{err: &api.APIError{Status: 401}})
	assert.Empty(t, m.errs[tabLoans])

	m = update(m, loansMsg{err: &api.APIError{Status: 500, Detail: "baza nedostupna"}})
	assert.Contains(t, m.errs[tabLoans], "baza nedostupna")
}

// =============================================================================
// DERIVED STATUSES
// =============================================================================

func TestView_DerivedStatusFollowsClock(t *testing.T) {
	h := newHarness(t)
	h.backend.loans = []model.Loan{{
		ID: 1, Status: model.LoanActive, DueDate: "2025-03-10",
		BookTitle: "Prokleta avlija", MemberName: "Marko Marković",
	}}
	m := h.signIn(t, h.model("en"))
	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd = updateCmd(m, tea.KeyMsg{Type: tea.KeyTab})
	m = feed(t, m, cmd)
	require.Equal(t, tabLoans, m.active)

	// The tab bar always carries one "Overdue".
	view := m.View()
	assert.Equal(t, 1, strings.Count(view, "Overdue"))
	assert.NotContains(t, view, "1 day")

	// Same rows, next day: no reload needed.
	h.clock.Advance(24 * time.Hour)
	view = m.View()
	assert.Equal(t, 2, strings.Count(view, "Overdue"))
	assert.Contains(t, view, "1 day")
	assert.Equal(t, model.LoanActive, m.loans[0].Status)
}

func TestView_NarrowHeaderKeepsCountdown(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))
	header := func(m Model) string { return strings.SplitN(m.View(), "\n", 2)[0] }
	assert.Contains(t, header(m), "Ana Anić")

	m = update(m, tea.WindowSizeMsg{Width: 50, Height: 30})
	assert.NotContains(t, header(m), "Ana Anić")
	assert.Contains(t, header(m), "30:00")
}

func TestLoanRows(t *testing.T) {
	tr := i18n.New("en")
	loans := []model.Loan{
		{Status: model.LoanActive, DueDate: "2025-03-07", BookTitle: "Seobe"},
		{Status: model.LoanActive, DueDate: "2025-03-10"},
		{Status: model.LoanReturned, DueDate: "2025-01-01"},
		{Status: "damaged", DueDate: "2025-01-01"},
	}

	rows := loanRows(loans, testNow, tr)
	require.Len(t, rows, 4)
	assert.Equal(t, "Overdue", rows[0][4].Text)
	assert.Equal(t, "3 days", rows[0][5].Text)
	assert.Equal(t, styles.Rose, rows[0][4].Color)
	assert.Equal(t, "Active", rows[1][4].Text)
	assert.Empty(t, rows[1][5].Text)
	assert.Equal(t, "Returned", rows[2][4].Text)
	assert.Empty(t, rows[2][5].Text)
	assert.Equal(t, "damaged", rows[3][4].Text)
}

func TestMemberRows(t *testing.T) {
	tr := i18n.New("sr")
	members := []model.Member{
		{MemberNumber: "C-1", FirstName: "Ana", LastName: "Anić",
			LastMembership: &model.Membership{ValidUntil: "2025-12-31"}},
		{MemberNumber: "C-2", FirstName: "Ivan", LastName: "Ivić",
			LastMembership: &model.Membership{ValidUntil: "2025-03-09"}},
		{MemberNumber: "C-3", FirstName: "Mila", LastName: "Milić", Phone: "064 123 456"},
		{MemberNumber: "C-4", FirstName: "Đorđe", LastName: "Đorđević", IsBlocked: true,
			LastMembership: &model.Membership{ValidUntil: "2025-12-31"}},
	}

	rows := memberRows(members, testNow, tr)
	require.Len(t, rows, 4)
	assert.Equal(t, "Plaćena", rows[0][3].Text)
	assert.Equal(t, "2025-12-31", rows[0][4].Text)
	assert.Equal(t, "Istekla", rows[1][3].Text)
	assert.Equal(t, "Nije plaćena", rows[2][3].Text)
	assert.Empty(t, rows[2][4].Text)
	assert.Equal(t, "064 123 456", rows[2][5].Text)
	assert.Equal(t, "Blokiran", rows[3][3].Text)
}

func TestOverdueRows(t *testing.T) {
	rows := overdueRows([]model.OverdueRow{{BookTitle: "Dervis i smrt", DueDate: "2025-03-01T00:00:00", DaysLate: 1}}, i18n.New("sr"))
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-03-01", rows[0][4].Text)
	assert.Equal(t, "1 dan", rows[0][5].Text)
}

// =============================================================================
// TABS AND ACTIONS
// =============================================================================

func TestNextFilter_Cycles(t *testing.T) {
	f := status.FilterActive
	var seen []status.ReservationFilter
	for range reservationFilters {
		f = nextFilter(f)
		seen = append(seen, f)
	}
	assert.Equal(t, []status.ReservationFilter{
		status.FilterAll, model.ReservationWaiting, model.ReservationNotified,
		model.ReservationFulfilled, model.ReservationCancelled, status.FilterActive,
	}, seen)
	assert.Equal(t, status.FilterActive, nextFilter("bogus"))
}

func TestReservations_FilterQueriesServer(t *testing.T) {
	h := newHarness(t)
	h.backend.reservations = []model.Reservation{
		{ID: 1, Status: model.ReservationWaiting},
		{ID: 2, Status: model.ReservationFulfilled},
	}
	m := h.signIn(t, h.model("en"))
	m.active = tabReservations

	m = feed(t, m, m.loadTab(tabReservations))
	assert.Len(t, m.visibleReservations(), 1)

	m, cmd := updateCmd(m, keyRunes("s"))
	m = feed(t, m, cmd)
	assert.Equal(t, status.FilterAll, m.resFilter)
	assert.Len(t, m.visibleReservations(), 2)

	m, cmd = updateCmd(m, keyRunes("s"))
	m = feed(t, m, cmd)
	assert.Equal(t, status.ReservationFilter(model.ReservationWaiting), m.resFilter)
	assert.Equal(t, []string{"", "", "waiting"}, h.backend.reservationQueries)
}

func TestReservations_ActionGuards(t *testing.T) {
	h := newHarness(t)
	h.backend.reservations = []model.Reservation{{ID: 1, Status: model.ReservationWaiting}}
	m := h.signIn(t, h.model("en"))
	m.active = tabReservations
	m = feed(t, m, m.loadTab(tabReservations))

	// A waiting reservation cannot be fulfilled yet.
	m, cmd := updateCmd(m, keyRunes("f"))
	assert.Nil(t, cmd)
	assert.Contains(t, toastTexts(m), "Not allowed in this status")

	m, cmd = updateCmd(m, keyRunes("c"))
	m = feed(t, m, cmd)
	assert.Equal(t, []string{"cancel"}, h.backend.actions)
	assert.Contains(t, toastTexts(m), "Reservation cancelled")
}

func TestLoans_ExtendGuard(t *testing.T) {
	h := newHarness(t)
	h.backend.loans = []model.Loan{{ID: 1, Status: model.LoanActive, DueDate: "2025-03-20", ExtensionsCount: status.MaxExtensions}}
	m := h.signIn(t, h.model("en"))
	m.active = tabLoans
	m = feed(t, m, m.loadTab(tabLoans))

	m, cmd := updateCmd(m, keyRunes("e"))
	assert.Nil(t, cmd)
	assert.Contains(t, toastTexts(m), "Not allowed in this status")
	assert.Empty(t, h.backend.actions)
}

func TestLoans_ExtendShowsNewDueDate(t *testing.T) {
	h := newHarness(t)
	h.backend.loans = []model.Loan{{ID: 1, Status: model.LoanActive, DueDate: "2025-03-20"}}
	m := h.signIn(t, h.model("en"))
	m.active = tabLoans
	m = feed(t, m, m.loadTab(tabLoans))

	m, cmd := updateCmd(m, keyRunes("e"))
	m = feed(t, m, cmd)
	assert.Equal(t, []string{"extend"}, h.backend.actions)
	assert.Contains(t, toastTexts(m), "Loan extended until 2025-03-24")
}

func TestLoans_ActionErrorShowsDetail(t *testing.T) {
	h := newHarness(t)
	h.backend.loans = []model.Loan{{ID: 1, Status: model.LoanActive, DueDate: "2025-03-20"}}
	h.backend.actionErr = &api.APIError{Status: 400, Detail: "Knjiga ima rezervacije na čekanju"}
	m := h.signIn(t, h.model("en"))
	m.active = tabLoans
	m = feed(t, m, m.loadTab(tabLoans))

	m, cmd := updateCmd(m, keyRunes("e"))
	m = feed(t, m, cmd)
	assert.Contains(t, toastTexts(m), "Knjiga ima rezervacije na čekanju")
}

func TestMembers_SearchIgnoresDiacritics(t *testing.T) {
	h := newHarness(t)
	h.backend.members = []model.Member{
		{ID: 1, MemberNumber: "C-1", FirstName: "Đorđe", LastName: "Petrović"},
		{ID: 2, MemberNumber: "C-2", FirstName: "Ana", LastName: "Jovanović"},
	}
	m := h.signIn(t, h.model("en"))
	m.active = tabMembers
	m = feed(t, m, m.loadTab(tabMembers))
	require.Len(t, m.visibleMembers(), 2)

	m = update(m, keyRunes("/"))
	require.True(t, m.searching)
	for _, r := range "djordje" {
		m = update(m, keyRunes(string(r)))
	}
	rows := m.visibleMembers()
	require.Len(t, rows, 1)
	assert.Equal(t, "C-1", rows[0].MemberNumber)

	// Enter runs the query on the server.
	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, cmd)
	assert.False(t, m.searching)
	assert.Equal(t, "djordje", m.memberQuery)
	assert.Equal(t, []string{"", "djordje"}, h.backend.memberQueries)
}

func TestMembers_OpenLoansAndArchive(t *testing.T) {
	h := newHarness(t)
	h.backend.members = []model.Member{{ID: 4, MemberNumber: "C-4", FirstName: "Ana", LastName: "Anić"}}
	h.backend.memberLoans = []model.Loan{
		{ID: 1, Status: model.LoanActive, DueDate: "2025-03-20"},
		{ID: 2, Status: model.LoanReturned, DueDate: "2025-01-20"},
		{ID: 3, Status: model.LoanLost, DueDate: "2024-12-20"},
	}
	m := h.signIn(t, h.model("en"))
	m.active = tabMembers
	m = feed(t, m, m.loadTab(tabMembers))

	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, cmd)
	require.NotNil(t, m.memberOpen)
	assert.True(t, m.memberLoaded)
	assert.Len(t, m.visibleMemberLoans(), 1)

	m = update(m, keyRunes("a"))
	assert.Len(t, m.visibleMemberLoans(), 2)

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.memberOpen)
}

func TestMembers_PaymentHistory(t *testing.T) {
	h := newHarness(t)
	h.backend.members = []model.Member{{ID: 4, MemberNumber: "C-4", FirstName: "Ana", LastName: "Anić",
		LastMembership: &model.Membership{ValidUntil: "2025-01-31"}}}
	h.backend.memberships = []model.Membership{
		{Year: 2025, AmountPaid: 1200, PaidAt: "2025-03-01", ValidFrom: "2025-03-01", ValidUntil: "2025-12-31"},
		{Year: 2024, AmountPaid: 1000, PaidAt: "2024-02-01", ValidFrom: "2024-02-01", ValidUntil: "2024-12-31"},
	}
	m := h.signIn(t, h.model("en"))
	m.active = tabMembers
	m = feed(t, m, m.loadTab(tabMembers))

	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, cmd)
	require.True(t, m.membershipsLoaded)
	assert.Equal(t, status.MembershipPaid, m.openMemberStatus(), "history outranks the stale list row")
	assert.Contains(t, m.View(), "Membership: Paid")

	m = update(m, keyRunes("p"))
	require.True(t, m.showPayments)
	assert.Same(t, m.paymentTable, m.currentTable())
	assert.Equal(t, 2, m.paymentTable.Len())
	view := m.View()
	assert.Contains(t, view, "Memberships: Ana Anić")
	assert.Contains(t, view, "1200.00")

	// Loan actions do not apply to payment rows.
	m, cmd = updateCmd(m, keyRunes("r"))
	assert.Nil(t, cmd)

	m = update(m, keyRunes("p"))
	assert.Same(t, m.memberLoanTable, m.currentTable())

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.memberships)
	assert.False(t, m.showPayments)
}

func TestMembers_BlockFromList(t *testing.T) {
	h := newHarness(t)
	h.backend.members = []model.Member{{ID: 4, MemberNumber: "C-4", FirstName: "Ana", LastName: "Anić"}}
	m := h.signIn(t, h.model("en"))
	m.active = tabMembers
	m = feed(t, m, m.loadTab(tabMembers))

	m, cmd := updateCmd(m, keyRunes("b"))
	m = feed(t, m, cmd)
	assert.Equal(t, []string{"block"}, h.backend.actions)
	assert.Contains(t, toastTexts(m), "Member blocked")
	assert.Equal(t, []string{"", ""}, h.backend.memberQueries, "the list reloads after the change")
}

func TestMembers_UnblockFromDetail(t *testing.T) {
	h := newHarness(t)
	h.backend.members = []model.Member{{ID: 4, MemberNumber: "C-4", FirstName: "Ana", LastName: "Anić",
		IsBlocked: true, BlockReason: "Dug"}}
	m := h.signIn(t, h.model("en"))
	m.active = tabMembers
	m = feed(t, m, m.loadTab(tabMembers))

	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = feed(t, m, cmd)
	view := m.View()
	assert.Contains(t, view, "Membership: Blocked")
	assert.Contains(t, view, "Blocked because: Dug")

	m, cmd = updateCmd(m, keyRunes("b"))
	m = feed(t, m, cmd)
	assert.Equal(t, []string{"unblock"}, h.backend.actions)
	require.NotNil(t, m.memberOpen)
	assert.False(t, m.memberOpen.IsBlocked)
	assert.Contains(t, toastTexts(m), "Member unblocked")
	assert.NotContains(t, m.View(), "Blocked because")
	assert.True(t, h.backend.members[0].IsBlocked, "the loaded row is not mutated")
}

func TestMembers_BlockErrorShowsDetail(t *testing.T) {
	h := newHarness(t)
	h.backend.members = []model.Member{{ID: 4, FirstName: "Ana", LastName: "Anić"}}
	h.backend.actionErr = &api.APIError{Status: 403, Detail: "Samo administrator"}
	m := h.signIn(t, h.model("en"))
	m.active = tabMembers
	m = feed(t, m, m.loadTab(tabMembers))

	m, cmd := updateCmd(m, keyRunes("b"))
	m = feed(t, m, cmd)
	assert.Contains(t, toastTexts(m), "Samo administrator")
}

func TestBooks_CatalogTab(t *testing.T) {
	h := newHarness(t)
	h.backend.books = []model.Book{
		{ID: 2, Title: "Seobe", Author: "Miloš Crnjanski", Genre: "roman", TotalCopies: 3, AvailableCopies: 1},
		{ID: 3, Title: "Derviš i smrt", Author: "Meša Selimović", TotalCopies: 1},
	}
	m := h.signIn(t, h.model("en"))
	m.active = tabBooks
	m = feed(t, m, m.loadTab(tabBooks))
	require.Len(t, m.books, 2)

	view := m.View()
	assert.Contains(t, view, "Catalog")
	assert.Contains(t, view, "Miloš Crnjanski")
	assert.Contains(t, view, "1/3")
}

func TestBookRows_NoCopiesLeft(t *testing.T) {
	rows := bookRows([]model.Book{
		{Title: "Seobe", TotalCopies: 3, AvailableCopies: 1},
		{Title: "Derviš i smrt", TotalCopies: 1},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, styles.Emerald, rows[0][3].Color)
	assert.Equal(t, "0/1", rows[1][3].Text)
	assert.Equal(t, styles.Rose, rows[1][3].Color)
}

func TestPaymentRows(t *testing.T) {
	rows := paymentRows([]model.Membership{{Year: 2025, AmountPaid: 800.5, PaidAt: "2025-03-01T09:15:00", ValidFrom: "2025-03-01", ValidUntil: "2025-12-31"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "2025", rows[0][0].Text)
	assert.Equal(t, "800.50", rows[0][1].Text)
	assert.Equal(t, "2025-03-01", rows[0][2].Text)
}

func TestTabs_Wrap(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))

	m = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabOverdue, m.active)
	m = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabBooks, m.active)
	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabDashboard, m.active)
}

func TestHelp_Toggle(t *testing.T) {
	h := newHarness(t)
	m := h.signIn(t, h.model("en"))

	m = update(m, keyRunes("?"))
	assert.True(t, m.showHelp)
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestHelpMarkdown_Language(t *testing.T) {
	assert.True(t, strings.Contains(helpMarkdown(i18n.New("en")), "Session"))
	assert.True(t, strings.Contains(helpMarkdown(i18n.New("sr")), "Sesija"))
	assert.NotEmpty(t, renderHelp(i18n.New("en"), true, 80))
}
