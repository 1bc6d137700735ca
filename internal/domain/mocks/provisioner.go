// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
)

// MockRoomProvisioner implements RoomProvisioner for testing
type MockRoomProvisioner struct {
	mock.Mock
}

func (m *MockRoomProvisioner) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockRoomProvisioner) InstantCall(ctx context.Context, payload *models.InstantCallPayload) (*models.ProvisionResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProvisionResult), args.Error(1)
}

func (m *MockRoomProvisioner) ScheduleMeeting(ctx context.Context, payload *models.MeetingProvisionPayload) (*models.ProvisionResult, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProvisionResult), args.Error(1)
}
