// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
)

// =============================================================================
// HELP SCREEN
// =============================================================================

const helpSR = `# Biblioteka – pomoć

## Kretanje

| Taster | Radnja |
|---|---|
| tab / shift+tab | sledeća / prethodna kartica |
| ↑ ↓ j k | izbor reda |
| pgup pgdn g G | stranica, početak, kraj |
| ctrl+r | osveži |
| ctrl+l | odjava |
| q | izlaz |

## Članovi

` + "`/`" + ` pretraga (bez obzira na kvačice), ` + "`enter`" + ` pozajmice člana,
` + "`a`" + ` tekuće / arhiva, ` + "`p`" + ` istorija članarina,
` + "`b`" + ` blokira ili deblokira člana, ` + "`esc`" + ` nazad.

Članarina: **Plaćena**, **Istekla** (važi do je prošao), **Nije plaćena**
(nema uplate) ili **Blokiran**.

## Pozajmice i kašnjenja

` + "`r`" + ` vrati knjigu, ` + "`e`" + ` produži (najviše dva puta).
Pozajmica kojoj je rok prošao prikazuje se kao **Kasni** i pre nego što je
server označi.

## Rezervacije

` + "`s`" + ` menja filter (Aktivne = na čekanju i obavešteni),
` + "`c`" + ` otkaži, ` + "`f`" + ` ispuni (samo obavešteni).

## Katalog

Naslovi sa brojem dostupnih i ukupnih primeraka. Upis članova, uplate,
izdavanje i nove rezervacije rade se iz komandne linije
(` + "`biblioteka members add`" + `, ` + "`loans issue`" + ` …).

## Sesija

Posle perioda neaktivnosti sesija ističe. Pre isteka pojavljuje se
upozorenje; bilo koji taster nastavlja rad.
`

const helpEN = `# Library – help

## Navigation

| Key | Action |
|---|---|
| tab / shift+tab | next / previous tab |
| ↑ ↓ j k | select row |
| pgup pgdn g G | page, top, bottom |
| ctrl+r | refresh |
| ctrl+l | sign out |
| q | quit |

## Members

` + "`/`" + ` search (diacritics ignored), ` + "`enter`" + ` member's loans,
` + "`a`" + ` current / archive, ` + "`p`" + ` membership history,
` + "`b`" + ` blocks or unblocks the member, ` + "`esc`" + ` back.

Membership: **Paid**, **Expired** (valid-until has passed), **Not paid**
(no payment on file) or **Blocked**.

## Loans and overdue

` + "`r`" + ` return a book, ` + "`e`" + ` extend (at most twice).
A loan past its due date shows as **Overdue** even before the server
marks it.

## Reservations

` + "`s`" + ` cycles the filter (Active = waiting and notified),
` + "`c`" + ` cancel, ` + "`f`" + ` fulfill (notified only).

## Catalog

Titles with available and total copies. Registering members, recording
payments, issuing books and new reservations are done from the command
line (` + "`biblioteka members add`" + `, ` + "`loans issue`" + ` …).

## Session

The session expires after a period of inactivity. A warning appears
first; any key keeps working.
`

// helpMarkdown returns the help text in the translator's language.
func helpMarkdown(tr *i18n.Translator) string {
	if i18n.Code(tr.Tag()) == "en" {
		return helpEN
	}
	return helpSR
}

// renderHelp renders the help text for the terminal. Rendering failures
// fall back to the raw markdown.
func renderHelp(tr *i18n.Translator, dark bool, width int) string {
	md := helpMarkdown(tr)

	wrap := width - 4
	if wrap < 40 || width == 0 {
		wrap = 76
	}
	style := "light"
	if dark {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
