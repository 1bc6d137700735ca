// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/pkg/constants"
)

// offsetFormat always prints a numeric UTC offset, so the organizational
// representation carries a literal +03:00 even when the client zone is UTC.
const offsetFormat = "2006-01-02T15:04:05-07:00"

// TimeResolver converts the scheduling form's (date, hour, minute, duration)
// tuple into the timestamp representations the scheduling request carries:
// the client's wall clock with its offset, UTC, and the fixed organizational
// timezone.
type TimeResolver struct {
	clientZone *time.Location
	fixedZone  *time.Location
	nowFn      func() time.Time
}

// NewTimeResolver creates a resolver for the given client timezone. A nil
// clientZone falls back to the process-local zone.
func NewTimeResolver(clientZone *time.Location) *TimeResolver {
	if clientZone == nil {
		clientZone = time.Local
	}
	return &TimeResolver{
		clientZone: clientZone,
		fixedZone:  organizationZone(),
		nowFn:      time.Now,
	}
}

// organizationZone loads the organizational timezone. Conversion goes through
// the zone database so the representation stays correct even if the zone's
// rules ever change; the fixed-offset fallback only covers hosts with no
// tzdata at all.
func organizationZone() *time.Location {
	loc, err := time.LoadLocation(constants.OrganizationTimezone)
	if err != nil {
		slog.Warn("failed to load organization timezone, using fixed offset",
			"timezone", constants.OrganizationTimezone, "error", err)
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// Resolve combines a calendar day and two-digit hour/minute strings into a
// start instant and computes the meeting end from the duration. An absent
// date, empty time components, or components that fail to parse all yield the
// zero ResolvedTime: an incomplete selection is a valid state, not an error.
func (r *TimeResolver) Resolve(date *time.Time, hour, minute string, durationMinutes int) models.ResolvedTime {
	if date == nil || hour == "" || minute == "" {
		return models.ResolvedTime{}
	}

	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return models.ResolvedTime{}
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m < 0 || m > 59 {
		return models.ResolvedTime{}
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, r.clientZone)
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	return models.ResolvedTime{
		StartClient: r.FormatClient(start),
		StartUTC:    r.FormatUTC(start),
		StartFixed:  r.FormatFixed(start),
		EndClient:   r.FormatClient(end),
		EndUTC:      r.FormatUTC(end),
		EndFixed:    r.FormatFixed(end),
		Timezone:    r.clientZone.String(),
	}
}

// FormatClient serializes the instant in the client zone with its numeric
// UTC offset at that instant, which keeps DST transitions correct.
func (r *TimeResolver) FormatClient(t time.Time) string {
	return t.In(r.clientZone).Format(offsetFormat)
}

// FormatUTC serializes the instant in UTC.
func (r *TimeResolver) FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatFixed serializes the instant in the organizational timezone.
func (r *TimeResolver) FormatFixed(t time.Time) string {
	return t.In(r.fixedZone).Format(offsetFormat)
}

// Now returns the current time in the client zone.
func (r *TimeResolver) Now() time.Time {
	return r.nowFn().In(r.clientZone)
}

// FixedZone returns the organizational timezone.
func (r *TimeResolver) FixedZone() *time.Location {
	return r.fixedZone
}
