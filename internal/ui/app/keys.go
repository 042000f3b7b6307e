// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the main screen.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Search   key.Binding
	Open     key.Binding
	Back     key.Binding
	Refresh  key.Binding
	Return   key.Binding
	Extend   key.Binding
	Cancel   key.Binding
	Fulfill  key.Binding
	Filter   key.Binding
	Archive  key.Binding
	Payments key.Binding
	Block    key.Binding
	Help     key.Binding
	Logout   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings with help text in tr's language.
func DefaultKeyMap(tr *i18n.Translator) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", tr.T(i18n.KeyNavigate)),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", tr.T(i18n.KeyNavigate)),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", tr.T(i18n.KeyTabs)),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", tr.T(i18n.KeySearch)),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", tr.T(i18n.KeyOpen)),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", tr.T(i18n.KeyBack)),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", tr.T(i18n.KeyRefresh)),
		),
		Return: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", tr.T(i18n.KeyReturn)),
		),
		Extend: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", tr.T(i18n.KeyExtend)),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", tr.T(i18n.KeyCancel)),
		),
		Fulfill: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", tr.T(i18n.KeyFulfill)),
		),
		Filter: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", tr.T(i18n.KeyFilter)),
		),
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", tr.T(i18n.KeyArchive)),
		),
		Payments: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", tr.T(i18n.KeyPayments)),
		),
		Block: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", tr.T(i18n.KeyBlock)),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", tr.T(i18n.KeyHelp)),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", tr.T(i18n.KeyLogout)),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", tr.T(i18n.KeyQuit)),
		),
	}
}

// shortHelp returns the bindings shown in the status bar for a tab.
func (k KeyMap) shortHelp(t tab, inMemberLoans bool) []key.Binding {
	common := []key.Binding{k.NextTab, k.Refresh, k.Help, k.Logout, k.Quit}
	var specific []key.Binding
	switch t {
	case tabMembers:
		if inMemberLoans {
			specific = []key.Binding{k.Archive, k.Return, k.Extend, k.Payments, k.Block, k.Back}
		} else {
			specific = []key.Binding{k.Search, k.Open, k.Block}
		}
	case tabLoans:
		specific = []key.Binding{k.Return, k.Extend}
	case tabReservations:
		specific = []key.Binding{k.Filter, k.Cancel, k.Fulfill}
	}
	return append(specific, common...)
}
