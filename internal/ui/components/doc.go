// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for the biblioteka TUI.
//
//   - SessionTimeoutOverlay: the inactivity warning; any key continues
//   - ToastManager: transient notices in the bottom-right corner
//   - Table: scrollable list with display-width aware columns
package components
