// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// WarningMsg is delivered to the program when the expiry warning fires.
type WarningMsg struct {
	Remaining time.Duration
}

// TerminatedMsg is delivered to the program when the session ends.
type TerminatedMsg struct {
	Reason Reason
}

// Sender delivers a message to a running program, e.g. (*tea.Program).Send.
type Sender func(tea.Msg)

// ProgramSender returns a Sender for p that never blocks the caller. The
// terminate callback also runs inside Update on sign-out, where a direct
// p.Send would wait on the event loop it is running on.
func ProgramSender(p *tea.Program) Sender {
	return func(msg tea.Msg) { go p.Send(msg) }
}

// DeferredSender is a Sender whose target is attached later, so the
// manager can be bound before the program exists. Messages sent before
// Attach are queued and delivered in order when it is called.
type DeferredSender struct {
	mu     sync.Mutex
	target Sender
	queued []tea.Msg
}

// Send delivers msg to the target, or queues it until Attach.
func (d *DeferredSender) Send(msg tea.Msg) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.target == nil {
		d.queued = append(d.queued, msg)
		return
	}
	d.target(msg)
}

// Attach sets the target and flushes the queue into it.
func (d *DeferredSender) Attach(target Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = target
	for _, msg := range d.queued {
		target(msg)
	}
	d.queued = nil
}

// Bind routes the manager's callbacks into the program as WarningMsg and
// TerminatedMsg. Timer callbacks run on their own goroutines, so messages
// are the only safe way to reach the model.
func Bind(m *Manager, send Sender) {
	m.SetCallbacks(
		func(remaining time.Duration) { send(WarningMsg{Remaining: remaining}) },
		func(reason Reason) { send(TerminatedMsg{Reason: reason}) },
	)
}

// ActivityFromMsg classifies terminal input as user activity. Window
// resizes, ticks and other program messages are not activity.
func ActivityFromMsg(msg tea.Msg) (ActivityKind, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return ActivityKeyPress, true
	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp, tea.MouseWheelDown:
			return ActivityScroll, true
		case tea.MouseMotion:
			return ActivityPointerMove, true
		default:
			return ActivityClick, true
		}
	}
	return 0, false
}
