// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package models contains the data model types of the meeting extension.
package models

// User is a host chat user profile, as returned by the user-search and
// user-lookup endpoints.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ToParticipant converts a user profile into a meeting participant.
func (u *User) ToParticipant() Participant {
	p := Participant{
		ID:       u.ID,
		Username: u.Username,
	}
	if u.Email != "" {
		p.Email = &u.Email
	}
	if u.FirstName != "" {
		p.FirstName = &u.FirstName
	}
	if u.LastName != "" {
		p.LastName = &u.LastName
	}
	return p
}
