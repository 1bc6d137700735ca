// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package chat implements the team-chat REST API client used for user
// search, channel lookups, and posting messages.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/konturtalk/meeting-extension/internal/domain"
	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/pkg/constants"
)

const defaultTimeout = 10 * time.Second

// Config holds the chat API client configuration.
type Config struct {
	// BaseURL is the chat server API root, e.g. "https://chat.example.com/api/v4".
	BaseURL string
	// Token authenticates requests. Sent as a bearer token when set.
	Token string
	// Timeout bounds a single API call.
	Timeout time.Duration
}

// Client is an HTTP client for the team-chat REST API.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new chat API client with the given configuration.
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var _ domain.ChatClient = (*Client)(nil)

// SearchUsers finds users matching the term, scoped to a team when teamID
// is non-empty.
func (c *Client) SearchUsers(ctx context.Context, term, teamID string) ([]models.User, error) {
	body := map[string]string{"term": term}
	if teamID != "" {
		body["team_id"] = teamID
	}

	var users []models.User
	if err := c.do(ctx, http.MethodPost, "/users/search", body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetChannel fetches a single channel by ID.
func (c *Client) GetChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	var channel models.Channel
	if err := c.do(ctx, http.MethodGet, "/channels/"+url.PathEscape(channelID), nil, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// CreatePost publishes a message to a channel. A non-empty rootID attaches
// the post to an existing thread.
func (c *Client) CreatePost(ctx context.Context, channelID, message, rootID string) error {
	body := map[string]string{
		"channel_id": channelID,
		"message":    message,
	}
	if rootID != "" {
		body["root_id"] = rootID
	}

	return c.do(ctx, http.MethodPost, "/posts", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.config.BaseURL == "" {
		return domain.NewConfigurationError("chat API base URL is not configured")
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return domain.NewInternalError("marshaling chat API request", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return domain.NewInternalError("creating chat API request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.Token != "" {
		req.Header.Set(constants.AuthorizationHeader, "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewTransportError(fmt.Sprintf("chat API %s %s failed", method, path), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NewNotFoundError(fmt.Sprintf("chat API %s %s returned 404", method, path))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.NewRemoteError(fmt.Sprintf("chat API %s %s returned status %d", method, path, resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewRemoteError(fmt.Sprintf("decoding chat API %s %s response", method, path), err)
	}
	return nil
}
