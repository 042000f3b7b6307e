// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time { return f.t }

func TestToastManager_AddAndExpire(t *testing.T) {
	clock := &fakeNow{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	m := NewToastManagerWithClock(clock.now)

	assert.False(t, m.HasToasts())

	m.AddStatus("saved")
	m.AddError("failed")
	require.Len(t, m.Toasts(), 2)
	assert.Equal(t, "failed", m.Toasts()[0].Message, "newest first")

	clock.t = clock.t.Add(DefaultToastDuration)
	assert.True(t, m.Tick())
	require.Len(t, m.Toasts(), 1)
	assert.Equal(t, ToastKindError, m.Toasts()[0].Kind)

	clock.t = clock.t.Add(ErrorToastDuration)
	assert.False(t, m.Tick())
	assert.False(t, m.HasToasts())
}

func TestToastManager_Durations(t *testing.T) {
	m := NewToastManager()
	m.AddWarning("w")
	m.AddSuccess("s")

	toasts := m.Toasts()
	assert.Equal(t, DefaultToastDuration, toasts[0].Duration)
	assert.Equal(t, WarningToastDuration, toasts[1].Duration)
}

func TestToastManager_CapsVisibleToasts(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus("n")
	}
	assert.Len(t, m.Toasts(), 4)
}

func TestToastManager_RemoveAndClear(t *testing.T) {
	m := NewToastManager()
	id := m.AddStatus("a")
	m.AddStatus("b")

	m.Remove(id)
	require.Len(t, m.Toasts(), 1)
	assert.Equal(t, "b", m.Toasts()[0].Message)

	m.Remove(9999)
	assert.Len(t, m.Toasts(), 1)

	m.Clear()
	assert.False(t, m.HasToasts())
}

func TestRenderToastStack(t *testing.T) {
	assert.Empty(t, RenderToastStack(nil, 80))

	m := NewToastManager()
	m.AddError("Sesija je istekla")
	out := RenderToastStack(m.Toasts(), 80)
	assert.Contains(t, out, "Sesija je istekla")
	assert.Contains(t, out, "[X]")
}
