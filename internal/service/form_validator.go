// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/pkg/constants"
)

// User-facing validation messages shown inline in the scheduling form.
const (
	msgDateRequired        = "Дата обязательна"
	msgDateInPast          = "Дата не может быть в прошлом"
	msgDateTooFar          = "Дата не может быть более чем через 30 дней"
	msgTimeRequired        = "Время обязательно"
	msgTimeInPast          = "Время не может быть в прошлом"
	msgDurationRequired    = "Продолжительность обязательна"
	msgTitleTooLong        = "Название не может быть длиннее 100 символов"
	msgParticipantRequired = "Необходимо выбрать хотя бы одного участника"
)

// FormValidator checks a meeting draft against the scheduling rules. All
// rules are evaluated independently so the user sees every problem at once.
type FormValidator struct {
	resolver *TimeResolver
}

// NewFormValidator creates a validator that takes "now" and the client
// timezone from the given resolver.
func NewFormValidator(resolver *TimeResolver) *FormValidator {
	return &FormValidator{resolver: resolver}
}

// Validate returns the accumulated field errors for the draft. An empty map
// means the form may be submitted. In a direct-message channel the
// counterpart participant is implicit, so the participants rule is skipped.
func (v *FormValidator) Validate(draft *models.MeetingDraft, isDirectChannel bool) models.ValidationErrors {
	errs := models.ValidationErrors{}
	now := v.resolver.Now()
	today := dateOnly(now)

	if draft.Date == nil {
		errs[constants.FormFieldDatetime] = msgDateRequired
	} else {
		day := dateOnly(draft.Date.In(now.Location()))
		switch {
		case day.Before(today):
			errs[constants.FormFieldDatetime] = msgDateInPast
		case day.After(today.AddDate(0, 0, constants.MaxScheduleAheadDays)):
			errs[constants.FormFieldDatetime] = msgDateTooFar
		}
	}

	if !draft.HasTime() {
		errs[constants.FormFieldTime] = msgTimeRequired
	} else if draft.Date != nil {
		// A past instant is reported on the time field, not the date
		// field: the date rule above already covers past days.
		if start, ok := v.startInstant(draft, now.Location()); ok && start.Before(now) {
			errs[constants.FormFieldTime] = msgTimeInPast
		}
	}

	if draft.DurationMinutes <= 0 {
		errs[constants.FormFieldDuration] = msgDurationRequired
	}

	if draft.Title != nil {
		title := strings.TrimSpace(*draft.Title)
		if title != "" && utf16Length(title) > constants.MaxTitleLength {
			errs[constants.FormFieldTitle] = msgTitleTooLong
		}
	}

	if len(draft.Participants) == 0 && !isDirectChannel {
		errs[constants.FormFieldParticipants] = msgParticipantRequired
	}

	return errs
}

func (v *FormValidator) startInstant(draft *models.MeetingDraft, loc *time.Location) (time.Time, bool) {
	h, err := strconv.Atoi(draft.Hour)
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(draft.Minute)
	if err != nil {
		return time.Time{}, false
	}
	d := draft.Date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// utf16Length counts UTF-16 code units, matching how browser form inputs
// measure length. Characters outside the BMP count as two.
func utf16Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}
