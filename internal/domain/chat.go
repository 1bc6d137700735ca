// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
)

// ChatClient defines the operations the extension needs from the host chat
// application's REST API. The extension only ever reads users and channels;
// the single write is posting a message back into a channel or thread.
type ChatClient interface {
	// SearchUsers looks up users by term within a team.
	SearchUsers(ctx context.Context, term, teamID string) ([]models.User, error)

	// GetUser fetches a single user profile by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetChannel fetches a channel by ID.
	GetChannel(ctx context.Context, channelID string) (*models.Channel, error)

	// CreatePost creates a message in the given channel. A non-empty rootID
	// attaches the message to an existing thread.
	CreatePost(ctx context.Context, channelID, message, rootID string) error
}
