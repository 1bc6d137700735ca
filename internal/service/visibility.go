// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/pkg/constants"
)

// FormFactory builds a fresh scheduling form for a channel. thread is
// non-nil when the surface was opened from a message context menu.
type FormFactory func(channel *models.Channel, thread *models.ThreadContext) *SchedulingForm

// Visibility is the state machine over the extension's UI surfaces. Exactly
// one surface is active at a time; opening one closes whatever was open.
// Closing the schedule modal drops the form, cancels pending participant
// searches, and returns the submit lifecycle to idle.
type Visibility struct {
	formFactory FormFactory
	search      *ParticipantSearch
	request     *MeetingRequest
	closeDelay  time.Duration

	mu      sync.Mutex
	state   models.SurfaceState
	channel *models.Channel
	thread  *models.ThreadContext
	form    *SchedulingForm
}

// NewVisibility creates the surface state machine, initially closed.
func NewVisibility(formFactory FormFactory, search *ParticipantSearch, request *MeetingRequest) *Visibility {
	return &Visibility{
		formFactory: formFactory,
		search:      search,
		request:     request,
		closeDelay:  constants.SuccessCloseDelay,
	}
}

// Snapshot returns the current surface state.
func (v *Visibility) Snapshot() models.Visibility {
	v.mu.Lock()
	defer v.mu.Unlock()
	return models.Visibility{
		State:   v.state,
		Channel: v.channel,
		Thread:  v.thread,
	}
}

// Form returns the scheduling form, non-nil only while the schedule modal
// is open.
func (v *Visibility) Form() *SchedulingForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

// ToggleDropdown opens the dropdown for the channel, or closes it when it
// is already open.
func (v *Visibility) ToggleDropdown(channel *models.Channel) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state == models.SurfaceDropdown {
		v.closeLocked()
		return
	}
	v.closeLocked()
	v.state = models.SurfaceDropdown
	v.channel = channel
}

// OpenScheduleModal opens the scheduling form for the channel, replacing
// any open surface. A fresh draft is created on every open.
func (v *Visibility) OpenScheduleModal(channel *models.Channel, thread *models.ThreadContext) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closeLocked()
	v.state = models.SurfaceScheduleModal
	v.channel = channel
	v.thread = thread
	v.form = v.formFactory(channel, thread)
	slog.Debug("schedule modal opened", "channel_id", channel.ID, "in_thread", thread != nil)
}

// OpenAboutModal shows the about surface.
func (v *Visibility) OpenAboutModal() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closeLocked()
	v.state = models.SurfaceAboutModal
}

// Close dismisses whatever surface is open and resets the form state.
func (v *Visibility) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closeLocked()
}

// AutoCloseAfterSuccess schedules a close after the standard delay, fired
// only if the submit is still in the succeeded state by then.
func (v *Visibility) AutoCloseAfterSuccess() *time.Timer {
	return time.AfterFunc(v.closeDelay, func() {
		if v.request != nil && v.request.State() == SubmitSucceeded {
			v.Close()
		}
	})
}

func (v *Visibility) closeLocked() {
	v.state = models.SurfaceClosed
	v.channel = nil
	v.thread = nil
	v.form = nil
	if v.search != nil {
		v.search.Cancel()
	}
	if v.request != nil {
		v.request.ResetState()
	}
}
