// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package constants

import "time"

// Meeting time constraints
const (
	// OrganizationTimezone is the fixed organizational timezone used for the
	// *_msk request fields and for chat post formatting. It is a business
	// rule of the deployment, not a default that follows the client.
	OrganizationTimezone = "Europe/Moscow"

	// MaxScheduleAheadDays is how far in the future a meeting may be scheduled
	MaxScheduleAheadDays = 30

	// MinMeetingDurationMinutes is the minimum duration of a meeting in minutes
	MinMeetingDurationMinutes = 5

	// MaxMeetingDurationMinutes is the maximum duration of a meeting in minutes
	MaxMeetingDurationMinutes = 480

	// MaxTitleLength is the maximum meeting title length in UTF-16 code units
	MaxTitleLength = 100

	// DefaultDurationMinutes is the duration preselected in the scheduling form
	DefaultDurationMinutes = 60
)

// DurationOptions are the selectable meeting durations in minutes.
var DurationOptions = []int{15, 30, 45, 60, 90, 120, 180, 240}

// Participant search behavior
const (
	// SearchDebounce is how long a search query must stay unchanged before a
	// network request is issued
	SearchDebounce = 300 * time.Millisecond

	// SearchMinQueryLength is the minimum query length that triggers a search
	SearchMinQueryLength = 2
)

// WebhookTimeout bounds a single provisioning webhook round-trip.
const WebhookTimeout = 2 * time.Minute

// SuccessCloseDelay is how long the scheduling surface stays open after a
// successful submit before auto-closing.
const SuccessCloseDelay = 1500 * time.Millisecond

// Request field names used in API payloads and field-scoped error responses.
const (
	RequestFieldChannelID       = "channel_id"
	RequestFieldTeamID          = "team_id"
	RequestFieldUserID          = "user_id"
	RequestFieldStartAt         = "start_at"
	RequestFieldStartAtLocal    = "start_at_local"
	RequestFieldStartTimeClient = "start_time_client"
	RequestFieldTimezone        = "timezone"
	RequestFieldDuration        = "duration_minutes"
	RequestFieldTitle           = "title"
	RequestFieldParticipantIDs  = "participant_ids"
	RequestFieldGeneral         = "general"
)

// Form field names used for inline error display in the scheduling form.
const (
	FormFieldDatetime     = "meetingDatetime"
	FormFieldTime         = "meetingTime"
	FormFieldDuration     = "duration"
	FormFieldTitle        = "meetingTitle"
	FormFieldParticipants = "participants"
	FormFieldGeneral      = "general"
)

// Webhook response field names
const (
	WebhookFieldRoomURL    = "room_url"
	WebhookFieldMeetingURL = "meeting_url"
	WebhookFieldSuccess    = "success"
	WebhookFieldMessage    = "message"
	WebhookFieldError      = "error"
)

// Operation types sent to the provisioning webhook.
const (
	OperationInstantCall      = "instant_call"
	OperationScheduledMeeting = "scheduled_meeting"
)
