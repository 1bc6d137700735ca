// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/pkg/constants"
	"github.com/konturtalk/meeting-extension/pkg/utils"
)

// Relative-time presets offered next to the time picker.
const (
	PresetIn15Min  = 15 * time.Minute
	PresetIn30Min  = 30 * time.Minute
	PresetIn1Hour  = time.Hour
	PresetIn2Hours = 2 * time.Hour
)

// SchedulingForm owns the meeting draft while the scheduling surface is open.
// It applies mutations, clears field errors reactively as the user edits, and
// assembles the outbound scheduling request on submit.
type SchedulingForm struct {
	resolver    *TimeResolver
	validator   *FormValidator
	channel     *models.Channel
	session     models.Session
	thread      *models.ThreadContext
	serviceName string

	draft  *models.MeetingDraft
	errors models.ValidationErrors
}

// NewSchedulingForm creates a form for the given channel with a fresh draft.
// thread is non-nil when the surface was opened from a message context menu.
func NewSchedulingForm(
	resolver *TimeResolver,
	validator *FormValidator,
	channel *models.Channel,
	session models.Session,
	thread *models.ThreadContext,
	serviceName string,
) *SchedulingForm {
	f := &SchedulingForm{
		resolver:    resolver,
		validator:   validator,
		channel:     channel,
		session:     session,
		thread:      thread,
		serviceName: serviceName,
	}
	f.Reset()
	return f
}

// Draft returns the current form state.
func (f *SchedulingForm) Draft() *models.MeetingDraft {
	return f.draft
}

// Errors returns the current field errors.
func (f *SchedulingForm) Errors() models.ValidationErrors {
	return f.errors
}

// Reset restores the draft to its initial defaults, re-deriving the default
// title from the channel name. Called on open, cancel, and successful submit.
func (f *SchedulingForm) Reset() {
	f.draft = models.NewMeetingDraft(f.channel.Title())
	f.errors = models.ValidationErrors{}
}

// SetDate sets the selected calendar day and clears the date error.
func (f *SchedulingForm) SetDate(date *time.Time) {
	f.draft.Date = date
	f.errors.Clear(constants.FormFieldDatetime)
}

// SetTime sets the hour/minute pair and clears the time error. Both
// components are set together; pass two empty strings to unset.
func (f *SchedulingForm) SetTime(hour, minute string) {
	f.draft.Hour = hour
	f.draft.Minute = minute
	f.errors.Clear(constants.FormFieldTime)
}

// SetDuration sets the meeting duration and clears the duration error.
func (f *SchedulingForm) SetDuration(minutes int) {
	f.draft.DurationMinutes = minutes
	f.errors.Clear(constants.FormFieldDuration)
}

// SetTitle sets the meeting title and clears the title error.
func (f *SchedulingForm) SetTitle(title *string) {
	f.draft.Title = title
	f.errors.Clear(constants.FormFieldTitle)
}

// AddParticipant adds a participant and clears the participants error.
func (f *SchedulingForm) AddParticipant(p models.Participant) {
	if f.draft.AddParticipant(p) {
		f.errors.Clear(constants.FormFieldParticipants)
	}
}

// RemoveParticipant removes a participant by ID.
func (f *SchedulingForm) RemoveParticipant(id string) {
	f.draft.RemoveParticipant(id)
}

// SetNotifyParticipants sets the notification flag.
func (f *SchedulingForm) SetNotifyParticipants(notify bool) {
	f.draft.NotifyParticipants = notify
}

// SetCreateCalendarEvent sets the calendar-event flag.
func (f *SchedulingForm) SetCreateCalendarEvent(create bool) {
	f.draft.CreateCalendarEvent = create
}

// ApplyPreset sets the time to now + offset with the minute rounded down to
// the nearest 5-minute boundary. When no date is selected yet the date is
// taken from the same computation; an already-selected date is kept.
func (f *SchedulingForm) ApplyPreset(offset time.Duration) {
	target := f.resolver.Now().Add(offset)
	minute := target.Minute() - target.Minute()%5

	f.SetTime(fmt.Sprintf("%02d", target.Hour()), fmt.Sprintf("%02d", minute))
	if f.draft.Date == nil {
		day := dateOnly(target)
		f.SetDate(&day)
	}
}

// SetFieldErrors replaces the current field errors, used to surface
// server-side validation results after a rejected submit.
func (f *SchedulingForm) SetFieldErrors(errs models.ValidationErrors) {
	if errs == nil {
		errs = models.ValidationErrors{}
	}
	f.errors = errs
}

// BuildRequest validates the draft and assembles the scheduling request.
// When validation fails the errors are retained on the form and returned;
// the request is nil.
func (f *SchedulingForm) BuildRequest() (*models.ScheduleMeetingRequest, models.ValidationErrors) {
	errs := f.validator.Validate(f.draft, f.channel.IsDirect())
	if !errs.Valid() {
		f.errors = errs
		return nil, errs
	}

	resolved := f.resolver.Resolve(f.draft.Date, f.draft.Hour, f.draft.Minute, f.draft.DurationMinutes)

	var title *string
	if f.draft.Title != nil {
		if trimmed := strings.TrimSpace(*f.draft.Title); trimmed != "" {
			title = utils.StringPtr(trimmed)
		}
	}

	req := &models.ScheduleMeetingRequest{
		ChannelID: f.channel.ID,
		TeamID:    f.session.TeamID,
		UserID:    f.session.UserID,

		StartTimeClient: resolved.StartClient,
		EndTimeClient:   resolved.EndClient,
		StartTimeUTC:    resolved.StartUTC,
		EndTimeUTC:      resolved.EndUTC,
		StartTimeMSK:    resolved.StartFixed,
		EndTimeMSK:      resolved.EndFixed,
		Timezone:        resolved.Timezone,

		StartAt:      resolved.StartUTC,
		StartAtLocal: resolved.StartClient,

		DurationMinutes:           f.draft.DurationMinutes,
		Title:                     title,
		ParticipantIDs:            f.draft.ParticipantIDs(),
		NotifyParticipants:        f.draft.NotifyParticipants,
		CreateGoogleCalendarEvent: f.draft.CreateCalendarEvent,
		ServiceName:               f.serviceName,
	}
	if f.thread != nil {
		req.RootID = f.thread.RootID
	}

	return req, nil
}
