// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the biblioteka TUI.

All colors use Lip Gloss AdaptiveColor so one palette serves light and dark
terminals. NewTheme picks the background from the configured mode or, for
"auto", from termenv.

# Status badges

Derived statuses from package status map to a color:

	loan:        active=Cyan  overdue=Rose  returned=Slate  lost=Rose
	membership:  paid=Emerald expired=Amber not_paid=Rose   blocked=Rose
	reservation: waiting=Cyan notified=Amber fulfilled=Emerald cancelled=Slate

Badge renders the label; Rose badges are bold as well, so the states that
need staff attention are visible on monochrome terminals.
*/
package styles
