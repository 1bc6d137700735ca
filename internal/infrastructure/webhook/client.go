// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package webhook dispatches meeting provisioning requests to the
// configured n8n webhook over HTTP.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/konturtalk/meeting-extension/internal/domain"
	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/internal/logging"
	"github.com/konturtalk/meeting-extension/internal/utils"
	"github.com/konturtalk/meeting-extension/pkg/constants"
)

// Config holds the webhook client configuration.
type Config struct {
	// WebhookURL is the n8n endpoint that provisions rooms. Empty means
	// the integration is not configured.
	WebhookURL string
	// Timeout bounds a single dispatch, workflow execution included.
	Timeout time.Duration
}

// Client posts provisioning payloads to the webhook and interprets the
// workflow's response.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new webhook client with the given configuration.
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = constants.WebhookTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var _ domain.RoomProvisioner = (*Client)(nil)

// Configured reports whether a webhook URL is set.
func (c *Client) Configured() bool {
	return c.config.WebhookURL != ""
}

// WebhookError is a structured error returned by the n8n workflow itself,
// as opposed to a transport or decoding failure.
type WebhookError struct {
	Message     string
	ExecutionID string
	StatusCode  int
}

// Error implements the error interface.
func (e *WebhookError) Error() string {
	if e.ExecutionID != "" {
		return fmt.Sprintf("webhook workflow error (execution %s): %s", e.ExecutionID, e.Message)
	}
	return fmt.Sprintf("webhook workflow error: %s", e.Message)
}

// InstantCall requests an immediate meeting room.
func (c *Client) InstantCall(ctx context.Context, payload *models.InstantCallPayload) (*models.ProvisionResult, error) {
	return c.send(ctx, payload)
}

// ScheduleMeeting requests a scheduled meeting.
func (c *Client) ScheduleMeeting(ctx context.Context, payload *models.MeetingProvisionPayload) (*models.ProvisionResult, error) {
	return c.send(ctx, payload)
}

func (c *Client) send(ctx context.Context, payload any) (*models.ProvisionResult, error) {
	if !c.Configured() {
		return nil, domain.NewConfigurationError("webhook URL is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.NewInternalError("marshaling webhook payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewInternalError("creating webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.DebugContext(ctx, "dispatching webhook request", "webhook_url", c.config.WebhookURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTransportError("webhook request failed", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.WarnContext(ctx, "error closing webhook response body", logging.ErrKey, err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError("reading webhook response", err)
	}

	result := map[string]any{}
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			if resp.StatusCode != http.StatusOK {
				return nil, domain.NewRemoteError(fmt.Sprintf("webhook returned status %d", resp.StatusCode))
			}
			return nil, domain.NewRemoteError("webhook returned malformed JSON", err)
		}
	}

	if resp.StatusCode != http.StatusOK {
		if status, ok := result["status"].(string); ok && status == constants.WebhookFieldError {
			werr := &WebhookError{
				StatusCode: resp.StatusCode,
				Message:    stringField(result, constants.WebhookFieldMessage),
			}
			if id, ok := result["execution_id"].(string); ok {
				werr.ExecutionID = id
			}
			if werr.Message == "" {
				werr.Message = fmt.Sprintf("webhook returned status %d", resp.StatusCode)
			}
			return nil, werr
		}
		return nil, domain.NewRemoteError(fmt.Sprintf("webhook returned status %d", resp.StatusCode))
	}

	if ok, present := successFlag(result); present && !ok {
		msg := stringField(result, constants.WebhookFieldMessage)
		if msg == "" {
			msg = "webhook reported failure"
		}
		return nil, domain.NewRemoteError(msg)
	}

	return &models.ProvisionResult{
		RoomURL: roomURL(result),
		Message: stringField(result, constants.WebhookFieldMessage),
	}, nil
}

// roomURL prefers room_url, falls back to meeting_url from older workflow
// revisions, and as a last resort pulls a link out of the message text.
func roomURL(result map[string]any) string {
	if url := stringField(result, constants.WebhookFieldRoomURL); url != "" {
		return url
	}
	if url := stringField(result, constants.WebhookFieldMeetingURL); url != "" {
		return url
	}
	return utils.FirstRoomLink(stringField(result, constants.WebhookFieldMessage))
}

// successFlag normalizes the workflow's success field, which has been
// observed as a boolean, a string, and a number across workflow revisions.
func successFlag(result map[string]any) (ok bool, present bool) {
	raw, exists := result[constants.WebhookFieldSuccess]
	if !exists {
		return false, false
	}

	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1" || s == "yes", true
	case float64:
		return v != 0, true
	default:
		return false, true
	}
}

func stringField(result map[string]any, key string) string {
	if v, ok := result[key].(string); ok {
		return v
	}
	return ""
}
