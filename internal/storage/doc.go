// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides persistent client-side state for biblioteka.
//
// State is a small key/value table in a local SQLite database. It holds the
// session token, the cached identity of the signed-in staff member and the
// chosen interface language. The session manager is the only writer of the
// token and identity keys; everything else reads them through the manager.
//
// # Usage
//
//	st, err := storage.Open(path)
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	tok := st.Token()
package storage
