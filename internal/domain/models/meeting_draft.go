// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

import (
	"time"

	"github.com/konturtalk/meeting-extension/pkg/constants"
)

// MeetingDraft is the mutable scheduling form state. Hour and Minute are
// two-digit strings where "" means "unset"; the form sets and clears them as
// a pair. Date carries only the calendar day (midnight in the client zone).
type MeetingDraft struct {
	Date            *time.Time
	Hour            string
	Minute          string
	DurationMinutes int
	Title           *string
	Participants    []Participant

	NotifyParticipants  bool
	CreateCalendarEvent bool
}

// NewMeetingDraft creates a fresh draft with the defaults the scheduling
// surface opens with. The title is pre-filled from the channel name.
func NewMeetingDraft(channelTitle string) *MeetingDraft {
	d := &MeetingDraft{
		DurationMinutes:    constants.DefaultDurationMinutes,
		NotifyParticipants: true,
	}
	if channelTitle != "" {
		title := channelTitle
		d.Title = &title
	}
	return d
}

// HasTime reports whether both time components are set.
func (d *MeetingDraft) HasTime() bool {
	return d.Hour != "" && d.Minute != ""
}

// HasParticipant reports whether a participant with the given ID is selected.
func (d *MeetingDraft) HasParticipant(id string) bool {
	for _, p := range d.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// AddParticipant appends a participant, preserving insertion order and set
// semantics on ID. Returns false when the participant was already selected.
func (d *MeetingDraft) AddParticipant(p Participant) bool {
	if d.HasParticipant(p.ID) {
		return false
	}
	d.Participants = append(d.Participants, p)
	return true
}

// RemoveParticipant removes the participant with the given ID, if present.
func (d *MeetingDraft) RemoveParticipant(id string) {
	for i, p := range d.Participants {
		if p.ID == id {
			d.Participants = append(d.Participants[:i], d.Participants[i+1:]...)
			return
		}
	}
}

// ParticipantIDs returns the selected participant IDs in insertion order.
func (d *MeetingDraft) ParticipantIDs() []string {
	ids := make([]string, len(d.Participants))
	for i, p := range d.Participants {
		ids[i] = p.ID
	}
	return ids
}
