// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/pkg/constants"
	"github.com/konturtalk/meeting-extension/pkg/utils"
)

func newTestForm(t *testing.T, now time.Time, channel *models.Channel, thread *models.ThreadContext) *SchedulingForm {
	t.Helper()
	resolver := NewTimeResolver(now.Location())
	resolver.nowFn = func() time.Time { return now }
	session := models.Session{
		UserID:   "user-1",
		Username: "organizer",
		TeamID:   "team-1",
	}
	return NewSchedulingForm(resolver, NewFormValidator(resolver), channel, session, thread, "kontur-talk")
}

func testChannel() *models.Channel {
	return &models.Channel{
		ID:          "channel-1",
		TeamID:      "team-1",
		Type:        models.ChannelTypeOpen,
		Name:        "dev-team",
		DisplayName: "Dev Team",
	}
}

func TestSchedulingFormDefaults(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	form := newTestForm(t, now, testChannel(), nil)

	draft := form.Draft()
	assert.Nil(t, draft.Date)
	assert.Empty(t, draft.Hour)
	assert.Empty(t, draft.Minute)
	assert.Equal(t, constants.DefaultDurationMinutes, draft.DurationMinutes)
	assert.Equal(t, "Dev Team", utils.StringValue(draft.Title))
	assert.True(t, draft.NotifyParticipants)
	assert.False(t, draft.CreateCalendarEvent)
	assert.Empty(t, draft.Participants)
}

func TestSchedulingFormResetIdempotent(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	form := newTestForm(t, now, testChannel(), nil)

	form.SetDuration(120)
	form.SetTitle(utils.StringPtr("Planning"))
	form.AddParticipant(models.Participant{ID: "user-2", Username: "second"})

	form.Reset()
	afterOnce := *form.Draft()
	form.Reset()
	afterTwice := *form.Draft()

	assert.Equal(t, afterOnce, afterTwice)
	assert.Equal(t, "Dev Team", utils.StringValue(afterTwice.Title))
	assert.Equal(t, constants.DefaultDurationMinutes, afterTwice.DurationMinutes)
}

func TestSchedulingFormReactiveErrorClearing(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	form := newTestForm(t, now, testChannel(), nil)

	_, errs := form.BuildRequest()
	require.False(t, errs.Valid())
	require.Contains(t, form.Errors(), constants.FormFieldDatetime)
	require.Contains(t, form.Errors(), constants.FormFieldTime)
	require.Contains(t, form.Errors(), constants.FormFieldParticipants)

	date := now.AddDate(0, 0, 1)
	form.SetDate(&date)
	assert.NotContains(t, form.Errors(), constants.FormFieldDatetime)
	assert.Contains(t, form.Errors(), constants.FormFieldTime)

	form.SetTime("10", "30")
	assert.NotContains(t, form.Errors(), constants.FormFieldTime)

	form.AddParticipant(models.Participant{ID: "user-2"})
	assert.NotContains(t, form.Errors(), constants.FormFieldParticipants)
}

func TestSchedulingFormApplyPreset(t *testing.T) {
	tests := []struct {
		name           string
		now            time.Time
		offset         time.Duration
		expectedHour   string
		expectedMinute string
	}{
		{
			name:           "plus 15 minutes rounds down to 5",
			now:            time.Date(2026, time.September, 1, 12, 7, 0, 0, time.UTC),
			offset:         PresetIn15Min,
			expectedHour:   "12",
			expectedMinute: "20",
		},
		{
			name:           "already on boundary",
			now:            time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC),
			offset:         PresetIn30Min,
			expectedHour:   "12",
			expectedMinute: "30",
		},
		{
			name:           "plus 2 hours crosses hour",
			now:            time.Date(2026, time.September, 1, 22, 59, 0, 0, time.UTC),
			offset:         PresetIn2Hours,
			expectedHour:   "00",
			expectedMinute: "55",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := newTestForm(t, tc.now, testChannel(), nil)
			form.ApplyPreset(tc.offset)

			draft := form.Draft()
			assert.Equal(t, tc.expectedHour, draft.Hour)
			assert.Equal(t, tc.expectedMinute, draft.Minute)
			require.NotNil(t, draft.Date)
		})
	}
}

func TestSchedulingFormPresetKeepsSelectedDate(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	form := newTestForm(t, now, testChannel(), nil)

	selected := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	form.SetDate(&selected)
	form.ApplyPreset(PresetIn1Hour)

	require.NotNil(t, form.Draft().Date)
	assert.True(t, form.Draft().Date.Equal(selected))
	assert.Equal(t, "13", form.Draft().Hour)
}

func TestSchedulingFormBuildRequest(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, moscow)
	thread := &models.ThreadContext{PostID: "post-1", RootID: "root-1"}
	form := newTestForm(t, now, testChannel(), thread)

	date := time.Date(2026, time.September, 3, 0, 0, 0, 0, moscow)
	form.SetDate(&date)
	form.SetTime("15", "30")
	form.SetDuration(90)
	form.SetTitle(utils.StringPtr("  Sprint review  "))
	form.AddParticipant(models.Participant{ID: "user-2", Username: "second"})
	form.AddParticipant(models.Participant{ID: "user-3", Username: "third"})
	form.SetCreateCalendarEvent(true)

	req, errs := form.BuildRequest()
	require.True(t, errs.Valid())
	require.NotNil(t, req)

	assert.Equal(t, "channel-1", req.ChannelID)
	assert.Equal(t, "team-1", req.TeamID)
	assert.Equal(t, "user-1", req.UserID)
	assert.Equal(t, "2026-09-03T15:30:00+03:00", req.StartTimeClient)
	assert.Equal(t, "2026-09-03T17:00:00+03:00", req.EndTimeClient)
	assert.Equal(t, "2026-09-03T12:30:00Z", req.StartTimeUTC)
	assert.Equal(t, "2026-09-03T15:30:00+03:00", req.StartTimeMSK)
	assert.Equal(t, "Europe/Moscow", req.Timezone)
	assert.Equal(t, req.StartTimeUTC, req.StartAt)
	assert.Equal(t, req.StartTimeClient, req.StartAtLocal)
	assert.Equal(t, 90, req.DurationMinutes)
	assert.Equal(t, "Sprint review", utils.StringValue(req.Title))
	assert.Equal(t, []string{"user-2", "user-3"}, req.ParticipantIDs)
	assert.True(t, req.NotifyParticipants)
	assert.True(t, req.CreateGoogleCalendarEvent)
	assert.Equal(t, "kontur-talk", req.ServiceName)
	assert.Equal(t, "root-1", req.RootID)
}

func TestSchedulingFormBuildRequestBlankTitleBecomesNil(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	form := newTestForm(t, now, testChannel(), nil)

	date := now.AddDate(0, 0, 1)
	form.SetDate(&date)
	form.SetTime("10", "00")
	form.SetTitle(utils.StringPtr("   "))
	form.AddParticipant(models.Participant{ID: "user-2"})

	req, errs := form.BuildRequest()
	require.True(t, errs.Valid())
	assert.Nil(t, req.Title)
	assert.Empty(t, req.RootID)
}

func TestSchedulingFormBuildRequestDirectChannelNoParticipants(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	channel := &models.Channel{
		ID:   "dm-1",
		Type: models.ChannelTypeDirect,
		Name: "user-1__user-2",
	}
	form := newTestForm(t, now, channel, nil)

	date := now.AddDate(0, 0, 1)
	form.SetDate(&date)
	form.SetTime("10", "00")

	req, errs := form.BuildRequest()
	require.True(t, errs.Valid())
	assert.Empty(t, req.ParticipantIDs)
}

func TestSchedulingFormValidationFailureKeepsErrors(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	form := newTestForm(t, now, testChannel(), nil)

	req, errs := form.BuildRequest()
	assert.Nil(t, req)
	assert.False(t, errs.Valid())
	assert.Equal(t, errs, form.Errors())
}
