// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

// Participant is a meeting attendee selected in the scheduling form, or
// auto-derived from a direct-message counterpart.
type Participant struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// ParticipantInfo is the participant representation sent to the provisioning
// webhook, which uses user_id as the identifier key.
type ParticipantInfo struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
