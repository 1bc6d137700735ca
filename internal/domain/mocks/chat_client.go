// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
)

// MockChatClient implements ChatClient for testing
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) SearchUsers(ctx context.Context, term, teamID string) ([]models.User, error) {
	args := m.Called(ctx, term, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockChatClient) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockChatClient) GetChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChatClient) CreatePost(ctx context.Context, channelID, message, rootID string) error {
	args := m.Called(ctx, channelID, message, rootID)
	return args.Error(0)
}
