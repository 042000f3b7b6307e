// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the lifecycle of the signed-in staff session.
//
// A Manager is the single owner of the session token. It starts a session
// from a stored token or a fresh login, pushes the inactivity deadlines
// forward on every user interaction, warns shortly before the deadline and
// terminates the session on expiry, on explicit logout, or when the API
// rejects the credential.
//
// # States
//
//	NoSession --login/start--> Active --warning deadline--> Warned
//	Warned --activity/continue--> Active
//	Active, Warned --terminate--> NoSession
//
// NoSession is only left through Start (a token is stored) or Login.
//
// # Timers
//
// Exactly one (warning, termination) timer pair is pending while a session is
// live. Every reset stops both and schedules a new pair from the current
// instant. Each pair carries a generation number, so a callback from a
// superseded pair that already fired is ignored.
//
// # Usage
//
//	mgr := session.New(
//	    session.WithStore(st),
//	    session.WithAuthenticator(client),
//	    session.WithTimeouts(session.LoadTimeouts(ctx, client, session.DefaultTimeouts(), logger)),
//	)
//	mgr.SetCallbacks(onWarning, onTerminate)
//	mgr.Start()
//
//	// on every key press or mouse event
//	mgr.OnActivity(session.ActivityKeyPress)
package session
