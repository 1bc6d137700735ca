// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package handlers implements the extension's HTTP endpoints called by the
// browser bundle.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf16"

	goahttp "goa.design/goa/v3/http"

	"github.com/konturtalk/meeting-extension/internal/domain"
	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/internal/infrastructure/webhook"
	"github.com/konturtalk/meeting-extension/internal/logging"
	"github.com/konturtalk/meeting-extension/internal/service"
	"github.com/konturtalk/meeting-extension/pkg/concurrent"
	"github.com/konturtalk/meeting-extension/pkg/constants"
	"github.com/konturtalk/meeting-extension/pkg/utils"
)

// Server-side validation and status messages.
const (
	msgChannelRequired     = "Не указан канал"
	msgUserRequired        = "Не указан пользователь"
	msgChannelNotFound     = "Канал не найден"
	msgUserNotFound        = "Пользователь не найден"
	msgStartRequired       = "Не указано время встречи"
	msgStartUnparsable     = "Неверный формат времени"
	msgStartInPast         = "Время встречи не может быть в прошлом"
	msgStartTooFar         = "Встреча не может быть запланирована более чем за 30 дней"
	msgDurationOutOfRange  = "Продолжительность должна быть от 5 до 480 минут"
	msgTitleTooLong        = "Название не может быть длиннее 100 символов"
	msgNoParticipantsFound = "Не удалось найти участников встречи"
	msgInternalError       = "Внутренняя ошибка сервера"
	msgMeetingCreated      = "Встреча успешно создана"

	defaultMeetingTitle = "Встреча"
)

// startTimeFormats are the accepted serializations of the start time, in
// preference order. Formats without an offset are interpreted in the
// organizational timezone.
var startTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ExtensionHandler serves the extension endpoints: the config the browser
// bundle bootstraps from, and the schedule-meeting operation.
type ExtensionHandler struct {
	chatClient  domain.ChatClient
	provisioner domain.RoomProvisioner
	resolver    *service.TimeResolver
	config      models.ExtensionConfig
	workerPool  *concurrent.WorkerPool
}

// NewExtensionHandler creates a new handler for the extension endpoints.
func NewExtensionHandler(
	chatClient domain.ChatClient,
	provisioner domain.RoomProvisioner,
	resolver *service.TimeResolver,
	config models.ExtensionConfig,
) *ExtensionHandler {
	return &ExtensionHandler{
		chatClient:  chatClient,
		provisioner: provisioner,
		resolver:    resolver,
		config:      config,
		workerPool:  concurrent.NewWorkerPool(5),
	}
}

// Mount registers the extension endpoints on the muxer.
func (h *ExtensionHandler) Mount(mux goahttp.Muxer) {
	mux.Handle(http.MethodGet, "/config", h.GetConfig)
	mux.Handle(http.MethodPost, "/api/schedule-meeting", h.ScheduleMeeting)
}

// GetConfig serves the admin-managed extension configuration.
func (h *ExtensionHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.encode(r.Context(), w, http.StatusOK, h.config)
}

// ScheduleMeeting validates a scheduling request, resolves its participants,
// dispatches the provisioning webhook, and announces the meeting in the
// channel. Error responses always carry the field-scoped wire format.
func (h *ExtensionHandler) ScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "panic in schedule-meeting handler", "panic", rec, logging.PriorityCritical())
			h.fieldErrors(ctx, w, http.StatusInternalServerError,
				models.FieldError{Field: constants.RequestFieldGeneral, Message: msgInternalError})
		}
	}()

	var req models.ScheduleMeetingRequest
	if err := goahttp.RequestDecoder(r).Decode(&req); err != nil {
		slog.WarnContext(ctx, "undecodable schedule-meeting request", logging.ErrKey, err)
		h.fieldErrors(ctx, w, http.StatusBadRequest,
			models.FieldError{Field: constants.RequestFieldGeneral, Message: msgStartUnparsable})
		return
	}

	ctx = logging.AppendCtx(ctx, slog.String("channel_id", req.ChannelID))
	ctx = logging.AppendCtx(ctx, slog.String("user_id", req.UserID))

	start, fieldErrs := h.validateRequest(&req)
	if len(fieldErrs) > 0 {
		h.fieldErrors(ctx, w, http.StatusBadRequest, fieldErrs...)
		return
	}

	channel, err := h.chatClient.GetChannel(ctx, req.ChannelID)
	if err != nil {
		slog.WarnContext(ctx, "channel lookup failed", logging.ErrKey, err)
		h.fieldErrors(ctx, w, http.StatusBadRequest,
			models.FieldError{Field: constants.RequestFieldChannelID, Message: msgChannelNotFound})
		return
	}

	organizer, err := h.chatClient.GetUser(ctx, req.UserID)
	if err != nil {
		slog.WarnContext(ctx, "organizer lookup failed", logging.ErrKey, err)
		h.fieldErrors(ctx, w, http.StatusBadRequest,
			models.FieldError{Field: constants.RequestFieldUserID, Message: msgUserNotFound})
		return
	}

	participants := h.resolveParticipants(ctx, channel, &req)
	if len(participants) == 0 {
		h.fieldErrors(ctx, w, http.StatusBadRequest,
			models.FieldError{Field: constants.RequestFieldParticipantIDs, Message: msgNoParticipantsFound})
		return
	}

	title := defaultMeetingTitle
	if t := utils.StringValue(req.Title); t != "" {
		title = t
	}

	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)
	now := h.resolver.Now()
	payload := &models.MeetingProvisionPayload{
		OperationType:    constants.OperationScheduledMeeting,
		ScheduledAt:      h.resolver.FormatUTC(start),
		ScheduledAtLocal: start.Format("2006-01-02T15:04:05-07:00"),
		EndTime:          h.resolver.FormatUTC(end),
		EndTimeLocal:     end.Format("2006-01-02T15:04:05-07:00"),
		Timezone:         req.Timezone,
		DurationMinutes:  req.DurationMinutes,
		Title:            title,
		ChannelID:        channel.ID,
		ChannelName:      channel.Name,
		ChannelType:      channel.Type,
		UserID:           organizer.ID,
		Username:         organizer.Username,
		UserEmail:        organizer.Email,
		Participants:     participants,

		NotifyParticipants:        req.NotifyParticipants,
		CreateGoogleCalendarEvent: req.CreateGoogleCalendarEvent,

		RootID:    req.RootID,
		Timestamp: h.resolver.FormatUTC(now),
	}

	result, err := h.provisioner.ScheduleMeeting(ctx, payload)
	if err != nil {
		h.webhookFailure(ctx, w, err)
		return
	}

	h.announceMeeting(ctx, channel, organizer, start, title, req.RootID, result.RoomURL)

	h.encode(ctx, w, http.StatusOK, models.ScheduleMeetingResponse{
		Status:  "success",
		Message: msgMeetingCreated,
		RoomURL: result.RoomURL,
	})
}

// validateRequest collects all field errors at once and parses the start
// time, preferring start_at_local over start_at.
func (h *ExtensionHandler) validateRequest(req *models.ScheduleMeetingRequest) (time.Time, []models.FieldError) {
	var fieldErrs []models.FieldError

	if req.ChannelID == "" {
		fieldErrs = append(fieldErrs, models.FieldError{Field: constants.RequestFieldChannelID, Message: msgChannelRequired})
	}
	if req.UserID == "" {
		fieldErrs = append(fieldErrs, models.FieldError{Field: constants.RequestFieldUserID, Message: msgUserRequired})
	}
	if req.DurationMinutes < constants.MinMeetingDurationMinutes || req.DurationMinutes > constants.MaxMeetingDurationMinutes {
		fieldErrs = append(fieldErrs, models.FieldError{Field: constants.RequestFieldDuration, Message: msgDurationOutOfRange})
	}
	if title := utils.StringValue(req.Title); len(utf16.Encode([]rune(title))) > constants.MaxTitleLength {
		fieldErrs = append(fieldErrs, models.FieldError{Field: constants.RequestFieldTitle, Message: msgTitleTooLong})
	}

	raw := req.StartAtLocal
	field := constants.RequestFieldStartAtLocal
	if raw == "" {
		raw = req.StartAt
		field = constants.RequestFieldStartAt
	}

	var start time.Time
	if raw == "" {
		fieldErrs = append(fieldErrs, models.FieldError{Field: constants.RequestFieldStartAt, Message: msgStartRequired})
	} else {
		parsed, err := h.parseStartTime(raw)
		switch {
		case err != nil:
			fieldErrs = append(fieldErrs, models.FieldError{Field: field, Message: msgStartUnparsable})
		case parsed.Before(h.resolver.Now()):
			fieldErrs = append(fieldErrs, models.FieldError{Field: field, Message: msgStartInPast})
		case parsed.After(h.resolver.Now().AddDate(0, 0, constants.MaxScheduleAheadDays)):
			fieldErrs = append(fieldErrs, models.FieldError{Field: field, Message: msgStartTooFar})
		default:
			start = parsed
		}
	}

	return start, fieldErrs
}

func (h *ExtensionHandler) parseStartTime(raw string) (time.Time, error) {
	for i, format := range startTimeFormats {
		var t time.Time
		var err error
		if i == 0 {
			t, err = time.Parse(format, raw)
		} else {
			t, err = time.ParseInLocation(format, raw, h.resolver.FixedZone())
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", raw)
}

// resolveParticipants fetches the requested participant profiles
// concurrently. In a direct-message channel the counterpart is auto-added.
// Individual lookup failures are skipped so one deactivated account does not
// block the meeting.
func (h *ExtensionHandler) resolveParticipants(ctx context.Context, channel *models.Channel, req *models.ScheduleMeetingRequest) []models.ParticipantInfo {
	ids := req.ParticipantIDs
	if counterpart := channel.OtherUserIDForDM(req.UserID); counterpart != "" {
		seen := false
		for _, id := range ids {
			if id == counterpart {
				seen = true
				break
			}
		}
		if !seen {
			ids = append(ids, counterpart)
		}
	}

	resolved := make([]*models.User, len(ids))
	tasks := make([]func() error, len(ids))
	for i, id := range ids {
		tasks[i] = func() error {
			user, err := h.chatClient.GetUser(ctx, id)
			if err != nil {
				slog.WarnContext(ctx, "skipping unresolvable participant", logging.ErrKey, err, "participant_id", id)
				return nil
			}
			resolved[i] = user
			return nil
		}
	}
	// Lookup errors are swallowed above, so Run cannot fail here.
	_ = h.workerPool.Run(ctx, tasks...)

	participants := make([]models.ParticipantInfo, 0, len(resolved))
	for _, user := range resolved {
		if user == nil {
			continue
		}
		participants = append(participants, models.ParticipantInfo{
			UserID:    user.ID,
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
	}
	return participants
}

// announceMeeting posts the confirmation into the channel. A failed post is
// logged but does not fail the request, the meeting already exists.
func (h *ExtensionHandler) announceMeeting(ctx context.Context, channel *models.Channel, organizer *models.User, start time.Time, title, rootID, roomURL string) {
	when := start.In(h.resolver.FixedZone()).Format("02.01.2006, 15:04")
	message := fmt.Sprintf("📅 @%s запланировал встречу «%s» на %s (по МСК)", organizer.Username, title, when)
	if roomURL != "" {
		message += "\n" + roomURL
	}

	if err := h.chatClient.CreatePost(ctx, channel.ID, message, rootID); err != nil {
		slog.WarnContext(ctx, "failed to post meeting announcement", logging.ErrKey, err)
	}
}

// webhookFailure maps a provisioning error onto the field-scoped error wire
// format, preserving the n8n workflow's own message when there is one.
func (h *ExtensionHandler) webhookFailure(ctx context.Context, w http.ResponseWriter, err error) {
	slog.ErrorContext(ctx, "webhook provisioning failed", logging.ErrKey, err)

	message := msgInternalError
	status := http.StatusInternalServerError

	var werr *webhook.WebhookError
	switch {
	case errors.As(err, &werr):
		message = werr.Message
		status = http.StatusBadGateway
	case domain.GetErrorType(err) == domain.ErrorTypeTransport:
		message = fmt.Sprintf("🔌 Не удалось подключиться к вебхуку:\n%s\n\nПроверьте:\n1. n8n запущен и доступен\n2. Workflow активирован\n3. URL указан правильно", h.config.WebhookURL)
		status = http.StatusBadGateway
	case domain.GetErrorType(err) == domain.ErrorTypeConfiguration:
		message = "Вебхук не настроен. Обратитесь к администратору."
		status = http.StatusServiceUnavailable
	}

	h.fieldErrors(ctx, w, status, models.FieldError{Field: constants.RequestFieldGeneral, Message: message})
}

func (h *ExtensionHandler) fieldErrors(ctx context.Context, w http.ResponseWriter, status int, errs ...models.FieldError) {
	h.encode(ctx, w, status, models.ErrorResponse{Errors: errs})
}

func (h *ExtensionHandler) encode(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := goahttp.ResponseEncoder(ctx, w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "error encoding response", logging.ErrKey, err)
	}
}
