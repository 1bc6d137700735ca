// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konturtalk/meeting-extension/internal/domain/mocks"
	"github.com/konturtalk/meeting-extension/internal/domain/models"
)

func newTestVisibility(t *testing.T) *Visibility {
	t.Helper()
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	resolver := newTestResolver(t, now)
	validator := NewFormValidator(resolver)
	search := NewParticipantSearch(&mocks.MockChatClient{})
	request := NewMeetingRequest(MeetingRequestConfig{}, &mocks.MockRoomProvisioner{},
		&mocks.MockChatClient{}, resolver, nil)

	factory := func(channel *models.Channel, thread *models.ThreadContext) *SchedulingForm {
		return NewSchedulingForm(resolver, validator, channel, testSession(), thread, "kontur-talk")
	}
	return NewVisibility(factory, search, request)
}

func TestVisibilityInitiallyClosed(t *testing.T) {
	v := newTestVisibility(t)

	snapshot := v.Snapshot()
	assert.Equal(t, models.SurfaceClosed, snapshot.State)
	assert.Nil(t, snapshot.Channel)
	assert.Nil(t, v.Form())
}

func TestVisibilityToggleDropdown(t *testing.T) {
	v := newTestVisibility(t)
	channel := testChannel()

	v.ToggleDropdown(channel)
	snapshot := v.Snapshot()
	assert.Equal(t, models.SurfaceDropdown, snapshot.State)
	assert.Equal(t, channel, snapshot.Channel)

	v.ToggleDropdown(channel)
	assert.Equal(t, models.SurfaceClosed, v.Snapshot().State)
}

func TestVisibilityOpenScheduleModal(t *testing.T) {
	v := newTestVisibility(t)
	channel := testChannel()
	thread := &models.ThreadContext{PostID: "post-1", RootID: "root-1"}

	v.ToggleDropdown(channel)
	v.OpenScheduleModal(channel, thread)

	snapshot := v.Snapshot()
	assert.Equal(t, models.SurfaceScheduleModal, snapshot.State)
	assert.Equal(t, thread, snapshot.Thread)
	require.NotNil(t, v.Form())
	assert.Equal(t, "Dev Team", *v.Form().Draft().Title)
}

func TestVisibilityCloseDropsFormState(t *testing.T) {
	v := newTestVisibility(t)
	channel := testChannel()

	v.OpenScheduleModal(channel, nil)
	form := v.Form()
	require.NotNil(t, form)
	form.SetDuration(240)
	form.AddParticipant(models.Participant{ID: "user-2"})

	v.Close()
	assert.Nil(t, v.Form())
	assert.Equal(t, models.SurfaceClosed, v.Snapshot().State)

	// Reopening yields a fresh draft, not the edited one.
	v.OpenScheduleModal(channel, nil)
	fresh := v.Form()
	require.NotNil(t, fresh)
	assert.NotSame(t, form, fresh)
	assert.Equal(t, 60, fresh.Draft().DurationMinutes)
	assert.Empty(t, fresh.Draft().Participants)
}

func TestVisibilitySurfacesAreExclusive(t *testing.T) {
	v := newTestVisibility(t)
	channel := testChannel()

	v.OpenScheduleModal(channel, nil)
	v.OpenAboutModal()

	snapshot := v.Snapshot()
	assert.Equal(t, models.SurfaceAboutModal, snapshot.State)
	assert.Nil(t, v.Form())
}

func TestVisibilityAutoCloseAfterSuccess(t *testing.T) {
	v := newTestVisibility(t)
	v.closeDelay = 10 * time.Millisecond
	v.OpenScheduleModal(testChannel(), nil)

	// Not succeeded: the surface stays open.
	timer := v.AutoCloseAfterSuccess()
	defer timer.Stop()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, models.SurfaceScheduleModal, v.Snapshot().State)

	// Succeeded: the surface closes after the delay.
	v.request.mu.Lock()
	v.request.state = SubmitSucceeded
	v.request.mu.Unlock()
	timer2 := v.AutoCloseAfterSuccess()
	defer timer2.Stop()

	require.Eventually(t, func() bool {
		return v.Snapshot().State == models.SurfaceClosed
	}, 2*time.Second, 5*time.Millisecond)
}
