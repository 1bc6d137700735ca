// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/konturtalk/meeting-extension/internal/domain"
	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/internal/logging"
	"github.com/konturtalk/meeting-extension/pkg/constants"
)

// User-facing messages for the request flows.
const (
	msgWebhookNotConfigured = "⚠️ Вебхук не настроен. Обратитесь к администратору для настройки интеграции."
	msgScheduleFailed       = "Ошибка при создании встречи"
	msgInstantCallPost      = "📞 Я создал встречу: %s"
)

// webhookDiagnostic is shown when the provisioning webhook is unreachable at
// the network level, with remediation hints for the admin.
const webhookDiagnostic = "🔌 Не удалось подключиться к вебхуку:\n%s\n\nПроверьте:\n1. n8n запущен и доступен\n2. Workflow активирован\n3. URL указан правильно"

// SubmitState tracks the scheduling form's submit button lifecycle.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitInProgress
	SubmitSucceeded
)

// MeetingRequestConfig holds the collaborator endpoints of the request flows.
type MeetingRequestConfig struct {
	// ScheduleEndpoint is the extension server's schedule-meeting URL.
	ScheduleEndpoint string
	// Timeout bounds the schedule submission round-trip.
	Timeout time.Duration
	// Extension carries the admin-managed extension configuration.
	Extension models.ExtensionConfig
}

// MeetingRequest drives the two meeting-creation flows: an instant call
// posted straight to the provisioning webhook, and a scheduled meeting
// submitted to the extension server. Both are single attempts with no retry;
// a failure terminates the user action.
type MeetingRequest struct {
	config      MeetingRequestConfig
	provisioner domain.RoomProvisioner
	chatClient  domain.ChatClient
	resolver    *TimeResolver
	httpClient  *http.Client

	// openURL opens a room link in a new browser tab when the
	// open_in_new_tab flag is set. Supplied by the host integration layer.
	openURL func(url string)

	mu    sync.Mutex
	state SubmitState
}

// NewMeetingRequest creates a new request orchestrator. openURL may be nil
// when the host offers no way to open links.
func NewMeetingRequest(
	config MeetingRequestConfig,
	provisioner domain.RoomProvisioner,
	chatClient domain.ChatClient,
	resolver *TimeResolver,
	openURL func(url string),
) *MeetingRequest {
	if config.Timeout == 0 {
		config.Timeout = constants.WebhookTimeout
	}

	return &MeetingRequest{
		config:      config,
		provisioner: provisioner,
		chatClient:  chatClient,
		resolver:    resolver,
		openURL:     openURL,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// State returns the current submit lifecycle state.
func (m *MeetingRequest) State() SubmitState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ResetState returns the submit lifecycle to idle, called when the
// scheduling surface closes.
func (m *MeetingRequest) ResetState() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = SubmitIdle
}

// InstantCall creates a meeting room immediately and announces it in the
// channel (or thread). When the webhook returns a bare success with no room
// URL the call still succeeds, but nothing is posted.
func (m *MeetingRequest) InstantCall(ctx context.Context, channel *models.Channel, session models.Session, thread *models.ThreadContext) (*models.ProvisionResult, error) {
	if !m.provisioner.Configured() {
		return nil, domain.NewConfigurationError(msgWebhookNotConfigured)
	}

	now := m.resolver.Now()
	payload := &models.InstantCallPayload{
		OperationType: constants.OperationInstantCall,
		ChannelID:     channel.ID,
		ChannelName:   channel.Name,
		ChannelType:   channel.Type,
		UserID:        session.UserID,
		Username:      session.Username,
		StartTimeUTC:  m.resolver.FormatUTC(now),
		StartTimeMSK:  m.resolver.FormatFixed(now),
		Timestamp:     m.resolver.FormatUTC(now),
	}
	if session.UserEmail != "" {
		email := session.UserEmail
		payload.UserEmail = &email
	}
	if thread != nil {
		payload.RootID = thread.RootID
		payload.IsThreadReply = true
	}

	result, err := m.provisioner.InstantCall(ctx, payload)
	if err != nil {
		slog.ErrorContext(ctx, "instant call failed", logging.ErrKey, err, "channel_id", channel.ID)
		if domain.GetErrorType(err) == domain.ErrorTypeTransport {
			return nil, domain.NewTransportError(fmt.Sprintf(webhookDiagnostic, m.config.Extension.WebhookURL), err)
		}
		return nil, err
	}

	if result.RoomURL != "" {
		rootID := ""
		if thread != nil {
			rootID = thread.RootID
		}
		message := fmt.Sprintf(msgInstantCallPost, result.RoomURL)
		if err := m.chatClient.CreatePost(ctx, channel.ID, message, rootID); err != nil {
			// The room exists; a failed announcement must not fail the call.
			slog.WarnContext(ctx, "failed to post instant call message", logging.ErrKey, err, "channel_id", channel.ID)
		}
		if m.config.Extension.OpenInNewTab && m.openURL != nil {
			m.openURL(result.RoomURL)
		}
	}

	return result, nil
}

// SubmitSchedule validates the form, submits the built payload to the
// extension server, and maps a rejected response's field errors back onto
// the form. A general-scoped server error is raised as a top-level failure
// instead of a field error. Re-entrant submission while one is in flight is
// rejected.
func (m *MeetingRequest) SubmitSchedule(ctx context.Context, form *SchedulingForm) (*models.ScheduleMeetingResponse, error) {
	m.mu.Lock()
	if m.state == SubmitInProgress {
		m.mu.Unlock()
		return nil, domain.NewValidationError("запрос уже выполняется")
	}

	req, errs := form.BuildRequest()
	if !errs.Valid() {
		m.mu.Unlock()
		return nil, domain.NewValidationError("форма заполнена с ошибками")
	}
	m.state = SubmitInProgress
	m.mu.Unlock()

	resp, err := m.postSchedule(ctx, form, req)

	m.mu.Lock()
	if err != nil {
		m.state = SubmitIdle
	} else {
		m.state = SubmitSucceeded
	}
	m.mu.Unlock()

	return resp, err
}

func (m *MeetingRequest) postSchedule(ctx context.Context, form *SchedulingForm, req *models.ScheduleMeetingRequest) (*models.ScheduleMeetingResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, domain.NewInternalError("marshaling schedule request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.ScheduleEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewInternalError("creating schedule request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(constants.RequestedWithHeader, "XMLHttpRequest")

	httpResp, err := m.httpClient.Do(httpReq)
	if err != nil {
		slog.ErrorContext(ctx, "schedule submission failed", logging.ErrKey, err)
		return nil, domain.NewTransportError(msgScheduleFailed, err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, m.mapRejection(ctx, form, httpResp)
	}

	var resp models.ScheduleMeetingResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		// Success is signaled by the status code; the body is best effort.
		slog.DebugContext(ctx, "ignoring undecodable schedule response body", logging.ErrKey, err)
	}
	return &resp, nil
}

// mapRejection turns a non-2xx schedule response into form field errors, or
// a top-level error when the body is unstructured or carries a general-scope
// entry.
func (m *MeetingRequest) mapRejection(ctx context.Context, form *SchedulingForm, httpResp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&errResp); err != nil || (len(errResp.Errors) == 0 && errResp.Message == "") {
		slog.ErrorContext(ctx, "schedule request rejected without structured errors", "status_code", httpResp.StatusCode)
		return domain.NewRemoteError(msgScheduleFailed)
	}

	fieldErrs := models.ValidationErrors{}
	var general string
	for _, fe := range errResp.Errors {
		mapped := models.MapServerField(fe.Field)
		if mapped == constants.FormFieldGeneral {
			general = fe.Message
			continue
		}
		fieldErrs[mapped] = fe.Message
	}

	if len(fieldErrs) > 0 {
		form.SetFieldErrors(fieldErrs)
	}
	if general != "" {
		return domain.NewRemoteError(general)
	}
	if len(fieldErrs) == 0 {
		if errResp.Message != "" {
			return domain.NewRemoteError(errResp.Message)
		}
		return domain.NewRemoteError(msgScheduleFailed)
	}
	return domain.NewValidationError("форма заполнена с ошибками")
}
