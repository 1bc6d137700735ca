// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
)

// RoomProvisioner is the externally configured webhook that creates the
// actual meeting rooms. Every call is a single attempt; the caller decides
// how a failure is surfaced, never whether to retry.
type RoomProvisioner interface {
	// Configured reports whether a webhook URL is set. When false, callers
	// must degrade to a user-facing configuration warning.
	Configured() bool

	// InstantCall provisions a room right away.
	InstantCall(ctx context.Context, payload *models.InstantCallPayload) (*models.ProvisionResult, error)

	// ScheduleMeeting provisions a room for a future start time.
	ScheduleMeeting(ctx context.Context, payload *models.MeetingProvisionPayload) (*models.ProvisionResult, error)
}
