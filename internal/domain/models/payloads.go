// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

// ScheduleMeetingRequest is the body the scheduling form posts to the
// extension's schedule-meeting endpoint. It carries the newer
// four-representation time fields alongside the legacy start_at /
// start_at_local pair so older extension servers keep working.
type ScheduleMeetingRequest struct {
	ChannelID string `json:"channel_id"`
	TeamID    string `json:"team_id"`
	UserID    string `json:"user_id"`

	StartTimeClient string `json:"start_time_client,omitempty"`
	EndTimeClient   string `json:"end_time_client,omitempty"`
	StartTimeUTC    string `json:"start_time_utc,omitempty"`
	EndTimeUTC      string `json:"end_time_utc,omitempty"`
	StartTimeMSK    string `json:"start_time_msk,omitempty"`
	EndTimeMSK      string `json:"end_time_msk,omitempty"`
	Timezone        string `json:"timezone"`

	// Legacy single-representation fields.
	StartAt      string `json:"start_at"`
	StartAtLocal string `json:"start_at_local"`

	DurationMinutes           int      `json:"duration_minutes"`
	Title                     *string  `json:"title"`
	ParticipantIDs            []string `json:"participant_ids"`
	NotifyParticipants        bool     `json:"notify_participants"`
	CreateGoogleCalendarEvent bool     `json:"create_google_calendar_event"`
	ServiceName               string   `json:"service_name,omitempty"`
	RootID                    string   `json:"root_id,omitempty"`
}

// ScheduleMeetingResponse is the success body of the schedule-meeting endpoint.
type ScheduleMeetingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	RoomURL string `json:"room_url"`
}

// InstantCallPayload is the fixed-shape body sent to the provisioning
// webhook for an instant call.
type InstantCallPayload struct {
	OperationType string  `json:"operation_type"`
	ChannelID     string  `json:"channel_id"`
	ChannelName   string  `json:"channel_name"`
	ChannelType   string  `json:"channel_type"`
	UserID        string  `json:"user_id"`
	Username      string  `json:"username"`
	UserEmail     *string `json:"user_email"`
	StartTimeUTC  string  `json:"start_time_utc"`
	StartTimeMSK  string  `json:"start_time_msk"`
	Timestamp     string  `json:"timestamp"`
	RootID        string  `json:"root_id"`
	IsThreadReply bool    `json:"is_thread_reply"`
}

// MeetingProvisionPayload is the body the extension server sends to the
// provisioning webhook for a scheduled meeting.
type MeetingProvisionPayload struct {
	OperationType    string            `json:"operation_type"`
	ScheduledAt      string            `json:"scheduled_at"`
	ScheduledAtLocal string            `json:"scheduled_at_local"`
	EndTime          string            `json:"end_time"`
	EndTimeLocal     string            `json:"end_time_local"`
	Timezone         string            `json:"timezone"`
	DurationMinutes  int               `json:"duration_minutes"`
	Title            string            `json:"title"`
	Description      *string           `json:"description"`
	ChannelID        string            `json:"channel_id"`
	ChannelName      string            `json:"channel_name"`
	ChannelType      string            `json:"channel_type"`
	UserID           string            `json:"user_id"`
	Username         string            `json:"username"`
	UserEmail        string            `json:"user_email"`
	Participants     []ParticipantInfo `json:"participants"`

	NotifyParticipants        bool `json:"notify_participants"`
	CreateGoogleCalendarEvent bool `json:"create_google_calendar_event"`

	RootID    string `json:"root_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ProvisionResult is the interpreted webhook response. RoomURL may be empty
// when the webhook only acknowledged success without returning a link.
type ProvisionResult struct {
	RoomURL string
	Message string
}
