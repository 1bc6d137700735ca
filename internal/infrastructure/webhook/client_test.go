// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konturtalk/meeting-extension/internal/domain"
	"github.com/konturtalk/meeting-extension/internal/domain/models"
)

func TestClientConfigured(t *testing.T) {
	tests := []struct {
		name       string
		webhookURL string
		expected   bool
	}{
		{
			name:       "configured",
			webhookURL: "https://n8n.example.com/webhook/meet",
			expected:   true,
		},
		{
			name:       "not configured",
			webhookURL: "",
			expected:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClient(Config{WebhookURL: tc.webhookURL})
			assert.Equal(t, tc.expected, client.Configured())
		})
	}
}

func TestClientInstantCall(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedErr     bool
		expectedErrType domain.ErrorType
		expectedRoomURL string
	}{
		{
			name:            "success with room_url",
			status:          http.StatusOK,
			body:            `{"success": true, "room_url": "https://talk.example.com/r/abc"}`,
			expectedRoomURL: "https://talk.example.com/r/abc",
		},
		{
			name:            "success with legacy meeting_url",
			status:          http.StatusOK,
			body:            `{"success": true, "meeting_url": "https://talk.example.com/r/legacy"}`,
			expectedRoomURL: "https://talk.example.com/r/legacy",
		},
		{
			name:            "room_url preferred over meeting_url",
			status:          http.StatusOK,
			body:            `{"room_url": "https://talk.example.com/r/new", "meeting_url": "https://talk.example.com/r/old"}`,
			expectedRoomURL: "https://talk.example.com/r/new",
		},
		{
			name:            "link pulled from message text",
			status:          http.StatusOK,
			body:            `{"success": true, "message": "Комната создана: https://talk.example.com/r/msg."}`,
			expectedRoomURL: "https://talk.example.com/r/msg",
		},
		{
			name:   "empty body is accepted",
			status: http.StatusOK,
			body:   "",
		},
		{
			name:            "success flag as string",
			status:          http.StatusOK,
			body:            `{"success": "true", "room_url": "https://talk.example.com/r/s"}`,
			expectedRoomURL: "https://talk.example.com/r/s",
		},
		{
			name:            "success flag as number",
			status:          http.StatusOK,
			body:            `{"success": 1, "room_url": "https://talk.example.com/r/n"}`,
			expectedRoomURL: "https://talk.example.com/r/n",
		},
		{
			name:            "explicit failure flag",
			status:          http.StatusOK,
			body:            `{"success": false, "message": "workflow rejected request"}`,
			expectedErr:     true,
			expectedErrType: domain.ErrorTypeRemote,
		},
		{
			name:            "non-200 unstructured",
			status:          http.StatusInternalServerError,
			body:            `{"detail": "boom"}`,
			expectedErr:     true,
			expectedErrType: domain.ErrorTypeRemote,
		},
		{
			name:            "malformed JSON on 200",
			status:          http.StatusOK,
			body:            `{not json`,
			expectedErr:     true,
			expectedErrType: domain.ErrorTypeRemote,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(Config{WebhookURL: srv.URL})
			result, err := client.InstantCall(context.Background(), &models.InstantCallPayload{
				ChannelID: "channel-1",
				UserID:    "user-1",
			})

			if tc.expectedErr {
				require.Error(t, err)
				assert.Equal(t, tc.expectedErrType, domain.GetErrorType(err))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tc.expectedRoomURL, result.RoomURL)
		})
	}
}

func TestClientWorkflowError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status": "error", "message": "credentials expired", "execution_id": "exec-42"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{WebhookURL: srv.URL})
	_, err := client.ScheduleMeeting(context.Background(), &models.MeetingProvisionPayload{})

	require.Error(t, err)
	var werr *WebhookError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "credentials expired", werr.Message)
	assert.Equal(t, "exec-42", werr.ExecutionID)
	assert.Equal(t, http.StatusInternalServerError, werr.StatusCode)
	assert.Contains(t, werr.Error(), "exec-42")
}

func TestClientNotConfigured(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.InstantCall(context.Background(), &models.InstantCallPayload{})

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConfiguration, domain.GetErrorType(err))
}

func TestClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(Config{WebhookURL: srv.URL})
	_, err := client.InstantCall(context.Background(), &models.InstantCallPayload{})

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeTransport, domain.GetErrorType(err))
}
