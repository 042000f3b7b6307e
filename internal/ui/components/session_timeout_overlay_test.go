// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/biblioteka-tui/internal/i18n"
)

func TestSessionTimeoutOverlay_ShowAndView(t *testing.T) {
	o := NewSessionTimeoutOverlay(i18n.New("en"))
	assert.False(t, o.IsVisible())
	assert.Empty(t, o.View())

	o.SetSize(80, 24)
	o.Show(5 * time.Minute)
	require.True(t, o.IsVisible())

	view := o.View()
	assert.Contains(t, view, "Session expiring")
	assert.Contains(t, view, "5 minutes")
	assert.Contains(t, view, "5:00")
}

func TestSessionTimeoutOverlay_AnyKeyContinues(t *testing.T) {
	o := NewSessionTimeoutOverlay(i18n.New("sr"))
	o.Show(time.Minute)

	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, o.IsVisible())
	require.NotNil(t, cmd)
	assert.IsType(t, SessionContinueMsg{}, cmd())
}

func TestSessionTimeoutOverlay_KeyWhileHiddenIsIgnored(t *testing.T) {
	o := NewSessionTimeoutOverlay(i18n.New("sr"))
	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestSessionTimeoutOverlay_UpdateTime(t *testing.T) {
	o := NewSessionTimeoutOverlay(i18n.New("en"))
	o.Show(5 * time.Minute)
	o.UpdateTime(61 * time.Second)
	assert.Equal(t, 61*time.Second, o.TimeRemaining())
	assert.Contains(t, o.View(), "2 minutes")
	assert.Contains(t, o.View(), "1:01")
}

func TestRemainingMinutes(t *testing.T) {
	assert.Equal(t, 0, RemainingMinutes(0))
	assert.Equal(t, 0, RemainingMinutes(-time.Second))
	assert.Equal(t, 1, RemainingMinutes(time.Second))
	assert.Equal(t, 5, RemainingMinutes(5*time.Minute))
	assert.Equal(t, 5, RemainingMinutes(4*time.Minute+time.Second))
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "0:00", FormatCountdown(-time.Second))
	assert.Equal(t, "4:59", FormatCountdown(299*time.Second))
	assert.Equal(t, "30:00", FormatCountdown(30*time.Minute))
}
