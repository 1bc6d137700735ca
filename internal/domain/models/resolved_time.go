// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

// ResolvedTime carries one instant (and the meeting end derived from it) in
// every representation the scheduling request needs: the client's wall clock
// with its UTC offset, UTC, and the fixed organizational timezone. All fields
// are set together; the zero value is the valid "incomplete" state used while
// the form has no full date/time selection yet.
type ResolvedTime struct {
	StartClient string // e.g. 2026-09-01T15:04:00+05:00
	StartUTC    string // e.g. 2026-09-01T10:04:00Z
	StartFixed  string // always carries the organizational +03:00 offset
	EndClient   string
	EndUTC      string
	EndFixed    string
	Timezone    string // IANA zone name of the client, e.g. "Europe/Moscow"
}

// Complete reports whether the resolution produced an actual instant.
func (rt ResolvedTime) Complete() bool {
	return rt.StartClient != ""
}
