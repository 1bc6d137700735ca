// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

import "github.com/konturtalk/meeting-extension/pkg/constants"

// ValidationErrors maps a logical form field name to a human-readable
// message. An empty map means the form may be submitted.
type ValidationErrors map[string]string

// Valid reports whether no field errors are present.
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Clear removes the error for one field, used when the user edits it.
func (v ValidationErrors) Clear(field string) {
	delete(v, field)
}

// FieldError is one entry in a server-side error response body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the wire format of a failed extension API call.
type ErrorResponse struct {
	Errors  []FieldError `json:"errors,omitempty"`
	Message string       `json:"message,omitempty"`
}

// serverFieldMap translates server request field names into the form field
// names the scheduling surface displays errors under.
var serverFieldMap = map[string]string{
	constants.RequestFieldStartAt:         constants.FormFieldDatetime,
	constants.RequestFieldStartAtLocal:    constants.FormFieldDatetime,
	constants.RequestFieldStartTimeClient: constants.FormFieldDatetime,
	constants.RequestFieldDuration:        constants.FormFieldDuration,
	constants.RequestFieldTitle:           constants.FormFieldTitle,
	constants.RequestFieldParticipantIDs:  constants.FormFieldParticipants,
	constants.RequestFieldGeneral:         constants.FormFieldGeneral,
}

// MapServerField maps a server field name to its form field. Unknown fields
// pass through unchanged so new server fields still surface somewhere.
func MapServerField(field string) string {
	if mapped, ok := serverFieldMap[field]; ok {
		return mapped
	}
	return field
}
