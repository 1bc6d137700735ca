// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/konturtalk/meeting-extension/internal/domain"
	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/internal/logging"
	"github.com/konturtalk/meeting-extension/pkg/constants"
)

// SearchResultFunc receives the result batch for the most recent query.
// A nil or empty slice means "show no suggestions".
type SearchResultFunc func(results []models.Participant)

// ParticipantSearch debounces participant lookups against the chat API.
// Each new query restarts the debounce window and supersedes any pending or
// in-flight query: only the response to the last issued query is applied,
// regardless of arrival order. In-flight requests are not aborted, their
// results are simply discarded when stale.
type ParticipantSearch struct {
	chatClient domain.ChatClient
	debounce   time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewParticipantSearch creates a new search with the standard debounce window.
func NewParticipantSearch(chatClient domain.ChatClient) *ParticipantSearch {
	return &ParticipantSearch{
		chatClient: chatClient,
		debounce:   constants.SearchDebounce,
	}
}

// Search schedules a lookup for the query. Queries shorter than the minimum
// length resolve to an empty batch immediately, without touching the network.
// Users whose IDs are in selected are filtered out of the results. Lookup
// failures also resolve to an empty batch; they are logged, never fatal.
func (s *ParticipantSearch) Search(ctx context.Context, query, teamID string, selected []string, apply SearchResultFunc) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.seq++
	id := s.seq
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len([]rune(query)) < constants.SearchMinQueryLength {
		s.mu.Unlock()
		apply(nil)
		return
	}

	excluded := make(map[string]struct{}, len(selected))
	for _, userID := range selected {
		excluded[userID] = struct{}{}
	}

	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(ctx, id, query, teamID, excluded, apply)
	})
	s.mu.Unlock()
}

// Cancel drops any pending debounce timer and marks in-flight lookups stale.
// Called when the scheduling surface closes.
func (s *ParticipantSearch) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *ParticipantSearch) run(ctx context.Context, id uint64, query, teamID string, excluded map[string]struct{}, apply SearchResultFunc) {
	if s.stale(id) {
		return
	}

	users, err := s.chatClient.SearchUsers(ctx, query, teamID)
	if err != nil {
		slog.WarnContext(ctx, "participant search failed", logging.ErrKey, err, "query", query)
		if !s.stale(id) {
			apply(nil)
		}
		return
	}

	filtered := make([]models.Participant, 0, len(users))
	for _, user := range users {
		if _, ok := excluded[user.ID]; ok {
			continue
		}
		filtered = append(filtered, user.ToParticipant())
	}

	if s.stale(id) {
		return
	}
	apply(filtered)
}

func (s *ParticipantSearch) stale(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id != s.seq
}
