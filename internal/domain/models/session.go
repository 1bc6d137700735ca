// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

// Session is a read-only snapshot of the host application's state for the
// acting user. It is handed to the extension explicitly instead of being
// read from ambient global state.
type Session struct {
	UserID    string
	Username  string
	UserEmail string
	TeamID    string
}
