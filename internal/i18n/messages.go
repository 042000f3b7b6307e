// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	AppTitle = "app.title"
	Loading  = "app.loading"
	NoData   = "app.no_data"
	LoadErr  = "app.load_error"

	LoginTitle      = "login.title"
	LoginUsername   = "login.username"
	LoginPassword   = "login.password"
	LoginHint       = "login.hint"
	LoginFailed     = "login.failed"
	LoginInProgress = "login.in_progress"
	LoginMissing    = "login.missing"
	LoggedInAs      = "login.logged_in_as"

	SessionWarningTitle = "session.warning.title"
	SessionWarningBody  = "session.warning.body"
	SessionContinue     = "session.warning.continue"
	SessionLogoutHint   = "session.warning.logout"
	SessionExpired      = "session.expired"
	SessionLoggedOut    = "session.logged_out"
	SessionNone         = "session.none"

	TabDashboard    = "tab.dashboard"
	TabMembers      = "tab.members"
	TabLoans        = "tab.loans"
	TabReservations = "tab.reservations"
	TabOverdue      = "tab.overdue"
	TabBooks        = "tab.books"

	DashActiveLoans         = "dash.active_loans"
	DashOverdueLoans        = "dash.overdue_loans"
	DashExpiredMemberships  = "dash.expired_memberships"
	DashWaitingReservations = "dash.waiting_reservations"
	DashTotalBooks          = "dash.total_books"
	DashTotalCopies         = "dash.total_copies"
	DashTotalMembers        = "dash.total_members"

	ColMemberNumber  = "col.member_number"
	ColName          = "col.name"
	ColMemberType    = "col.member_type"
	ColMembership    = "col.membership"
	ColValidUntil    = "col.valid_until"
	ColBook          = "col.book"
	ColLibraryNumber = "col.library_number"
	ColMember        = "col.member"
	ColDueDate       = "col.due_date"
	ColStatus        = "col.status"
	ColDaysLate      = "col.days_late"
	ColQueue         = "col.queue"
	ColReservedAt    = "col.reserved_at"
	ColEmail         = "col.email"
	ColContact       = "col.contact"
	ColRole          = "col.role"
	ColAuthor        = "col.author"
	ColGenre         = "col.genre"
	ColAvailable     = "col.available"
	ColAmount        = "col.amount"
	ColPaidAt        = "col.paid_at"
	ColValidFrom     = "col.valid_from"
	ColPhone         = "col.phone"
	ColYear          = "col.year"

	FilterActive = "filter.active"
	FilterAll    = "filter.all"
	FilterLabel  = "filter.label"
	SearchPrompt = "search.prompt"
	LoansCurrent = "loans.current"
	LoansArchive = "loans.archive"

	ActionReturned   = "action.returned"
	ActionExtended   = "action.extended"
	ActionCancelled  = "action.cancelled"
	ActionFulfilled  = "action.fulfilled"
	ActionNotAllowed = "action.not_allowed"
	ActionBlocked    = "action.blocked"
	ActionUnblocked  = "action.unblocked"
	ActionIssued     = "action.issued"
	ActionReserved   = "action.reserved"
	ActionRegistered = "action.registered"
	ActionPaid       = "action.paid"

	RoleAdministrator = "role.administrator"
	RoleLibrarian     = "role.librarian"

	KeyNavigate = "key.navigate"
	KeyTabs     = "key.tabs"
	KeySearch   = "key.search"
	KeyOpen     = "key.open"
	KeyBack     = "key.back"
	KeyRefresh  = "key.refresh"
	KeyReturn   = "key.return"
	KeyExtend   = "key.extend"
	KeyCancel   = "key.cancel"
	KeyFulfill  = "key.fulfill"
	KeyFilter   = "key.filter"
	KeyArchive  = "key.archive"
	KeyBlock    = "key.block"
	KeyPayments = "key.payments"
	KeyHelp     = "key.help"
	KeyLogout   = "key.logout"
	KeyQuit     = "key.quit"

	MemberLoansTitle    = "member.loans_title"
	MemberPaymentsTitle = "member.payments_title"
	MemberStatusLine    = "member.status_line"
	MemberBlockReason   = "member.block_reason"
	NeverPaid           = "member.never_paid"
	SessionRemaining    = "session.remaining"

	// Plural messages; the argument is the count.
	Days    = "plural.days"
	Minutes = "plural.minutes"
)

// StatusKey returns the catalog key for a derived status label, e.g.
// StatusKey("loan", "overdue").
func StatusKey(kind, status string) string {
	return "status." + kind + "." + status
}

type entry struct {
	key, sr, en string
}

var entries = []entry{
	{AppTitle, "Biblioteka", "Library"},
	{Loading, "Učitavanje…", "Loading…"},
	{NoData, "Nema podataka", "No data"},
	{LoadErr, "Greška pri učitavanju: %s", "Failed to load: %s"},

	{LoginTitle, "Prijava", "Sign in"},
	{LoginUsername, "Korisničko ime", "Username"},
	{LoginPassword, "Lozinka", "Password"},
	{LoginHint, "enter prijava · tab sledeće polje · esc izlaz", "enter sign in · tab next field · esc quit"},
	{LoginFailed, "Prijava nije uspela: %s", "Sign in failed: %s"},
	{LoginInProgress, "Prijavljivanje…", "Signing in…"},
	{LoginMissing, "Unesite korisničko ime i lozinku", "Enter username and password"},
	{LoggedInAs, "Prijavljeni ste kao %s (%s)", "Signed in as %s (%s)"},

	{SessionWarningTitle, "Sesija uskoro ističe", "Session expiring"},
	{SessionWarningBody, "Zbog neaktivnosti sesija ističe za %s.", "Your session expires in %s due to inactivity."},
	{SessionContinue, "Pritisnite bilo koji taster da nastavite", "Press any key to continue"},
	{SessionLogoutHint, "ctrl+l odjava", "ctrl+l sign out"},
	{SessionExpired, "Sesija je istekla. Prijavite se ponovo.", "Session expired. Please sign in again."},
	{SessionLoggedOut, "Odjavljeni ste", "You have been signed out"},
	{SessionNone, "Niste prijavljeni", "Not signed in"},

	{TabDashboard, "Početna", "Dashboard"},
	{TabMembers, "Članovi", "Members"},
	{TabLoans, "Pozajmice", "Loans"},
	{TabReservations, "Rezervacije", "Reservations"},
	{TabOverdue, "Kašnjenja", "Overdue"},
	{TabBooks, "Katalog", "Catalog"},

	{DashActiveLoans, "Aktivne pozajmice", "Active loans"},
	{DashOverdueLoans, "Zakasnele pozajmice", "Overdue loans"},
	{DashExpiredMemberships, "Istekle članarine", "Expired memberships"},
	{DashWaitingReservations, "Rezervacije na čekanju", "Waiting reservations"},
	{DashTotalBooks, "Naslova", "Titles"},
	{DashTotalCopies, "Primeraka", "Copies"},
	{DashTotalMembers, "Članova", "Members"},

	{ColMemberNumber, "Br. člana", "Member no."},
	{ColName, "Ime i prezime", "Name"},
	{ColMemberType, "Kategorija", "Category"},
	{ColMembership, "Članarina", "Membership"},
	{ColValidUntil, "Važi do", "Valid until"},
	{ColBook, "Knjiga", "Book"},
	{ColLibraryNumber, "Inv. broj", "Library no."},
	{ColMember, "Član", "Member"},
	{ColDueDate, "Rok", "Due"},
	{ColStatus, "Status", "Status"},
	{ColDaysLate, "Kašnjenje", "Late"},
	{ColQueue, "Red", "Queue"},
	{ColReservedAt, "Rezervisano", "Reserved"},
	{ColEmail, "E-pošta", "Email"},
	{ColContact, "Kontakt", "Contact"},
	{ColRole, "Uloga", "Role"},
	{ColAuthor, "Autor", "Author"},
	{ColGenre, "Žanr", "Genre"},
	{ColAvailable, "Dostupno", "Available"},
	{ColAmount, "Iznos", "Amount"},
	{ColPaidAt, "Plaćeno", "Paid on"},
	{ColValidFrom, "Važi od", "Valid from"},
	{ColPhone, "Telefon", "Phone"},
	{ColYear, "Godina", "Year"},

	{FilterActive, "Aktivne", "Active"},
	{FilterAll, "Sve", "All"},
	{FilterLabel, "Filter: %s", "Filter: %s"},
	{SearchPrompt, "Pretraga: ", "Search: "},
	{LoansCurrent, "Tekuće", "Current"},
	{LoansArchive, "Arhiva", "Archive"},

	{ActionReturned, "Knjiga vraćena", "Book returned"},
	{ActionExtended, "Pozajmica produžena do %s", "Loan extended until %s"},
	{ActionCancelled, "Rezervacija otkazana", "Reservation cancelled"},
	{ActionFulfilled, "Rezervacija ispunjena", "Reservation fulfilled"},
	{ActionNotAllowed, "Radnja nije dozvoljena za ovaj status", "Not allowed in this status"},
	{ActionBlocked, "Član blokiran", "Member blocked"},
	{ActionUnblocked, "Član deblokiran", "Member unblocked"},
	{ActionIssued, "Knjiga izdata, rok za vraćanje %s", "Book issued, due %s"},
	{ActionReserved, "Rezervacija kreirana, mesto u redu %d", "Reservation created, queue position %d"},
	{ActionRegistered, "Član upisan: %s (br. %s)", "Member registered: %s (no. %s)"},
	{ActionPaid, "Članarina evidentirana, važi do %s", "Membership recorded, valid until %s"},

	{RoleAdministrator, "administrator", "administrator"},
	{RoleLibrarian, "bibliotekar", "librarian"},

	{KeyNavigate, "kretanje", "move"},
	{KeyTabs, "kartice", "tabs"},
	{KeySearch, "pretraga", "search"},
	{KeyOpen, "otvori", "open"},
	{KeyBack, "nazad", "back"},
	{KeyRefresh, "osveži", "refresh"},
	{KeyReturn, "vrati", "return"},
	{KeyExtend, "produži", "extend"},
	{KeyCancel, "otkaži", "cancel"},
	{KeyFulfill, "ispuni", "fulfill"},
	{KeyFilter, "filter", "filter"},
	{KeyArchive, "arhiva", "archive"},
	{KeyBlock, "blokada", "block"},
	{KeyPayments, "članarine", "memberships"},
	{KeyHelp, "pomoć", "help"},
	{KeyLogout, "odjava", "sign out"},
	{KeyQuit, "izlaz", "quit"},

	{MemberLoansTitle, "Pozajmice: %s (%s)", "Loans: %s (%s)"},
	{MemberPaymentsTitle, "Članarine: %s", "Memberships: %s"},
	{MemberStatusLine, "Članarina: %s", "Membership: %s"},
	{MemberBlockReason, "Razlog blokade: %s", "Blocked because: %s"},
	{NeverPaid, "nikad", "never"},
	{SessionRemaining, "sesija %s", "session %s"},

	{StatusKey("loan", "active"), "Aktivna", "Active"},
	{StatusKey("loan", "overdue"), "Kasni", "Overdue"},
	{StatusKey("loan", "returned"), "Vraćena", "Returned"},
	{StatusKey("loan", "lost"), "Izgubljena", "Lost"},

	{StatusKey("membership", "paid"), "Plaćena", "Paid"},
	{StatusKey("membership", "expired"), "Istekla", "Expired"},
	{StatusKey("membership", "not_paid"), "Nije plaćena", "Not paid"},
	{StatusKey("membership", "blocked"), "Blokiran", "Blocked"},

	{StatusKey("reservation", "waiting"), "Čeka", "Waiting"},
	{StatusKey("reservation", "notified"), "Obavešten", "Notified"},
	{StatusKey("reservation", "fulfilled"), "Ispunjena", "Fulfilled"},
	{StatusKey("reservation", "cancelled"), "Otkazana", "Cancelled"},
}

func setPlurals(b *catalog.Builder) {
	set := func(tag language.Tag, key string, msg catalog.Message) {
		if err := b.Set(tag, key, msg); err != nil {
			panic("i18n: bad plural entry " + key + ": " + err.Error())
		}
		keys[tag.String()+"\x00"+key] = struct{}{}
	}

	set(Serbian, Days, plural.Selectf(1, "%d",
		plural.One, "%d dan",
		plural.Other, "%d dana"))
	set(English, Days, plural.Selectf(1, "%d",
		plural.One, "%d day",
		plural.Other, "%d days"))

	set(Serbian, Minutes, plural.Selectf(1, "%d",
		plural.One, "%d minut",
		plural.Other, "%d minuta"))
	set(English, Minutes, plural.Selectf(1, "%d",
		plural.One, "%d minute",
		plural.Other, "%d minutes"))
}
