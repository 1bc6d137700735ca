// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

// SurfaceState enumerates which UI surface of the extension is shown.
// Exactly one state is active at a time.
type SurfaceState int

const (
	SurfaceClosed SurfaceState = iota
	SurfaceDropdown
	SurfaceScheduleModal
	SurfaceAboutModal
)

// String returns the state name for logging.
func (s SurfaceState) String() string {
	switch s {
	case SurfaceClosed:
		return "closed"
	case SurfaceDropdown:
		return "dropdown"
	case SurfaceScheduleModal:
		return "schedule_modal"
	case SurfaceAboutModal:
		return "about_modal"
	}
	return "unknown"
}

// ThreadContext links a surface invocation back to the originating message
// thread, when the action was triggered from a message context menu.
type ThreadContext struct {
	PostID string
	RootID string
}

// Visibility is a snapshot of the surface state machine.
type Visibility struct {
	State   SurfaceState
	Channel *Channel
	Thread  *ThreadContext
}
