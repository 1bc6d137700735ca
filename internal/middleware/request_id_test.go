// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konturtalk/meeting-extension/pkg/constants"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("preserves caller-provided ID", func(t *testing.T) {
		var seen string
		handler := RequestIDMiddleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen, _ = r.Context().Value(constants.RequestIDContextID).(string)
		}))

		req := httptest.NewRequest(http.MethodGet, "/config", nil)
		req.Header.Set(constants.RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", rec.Header().Get(constants.RequestIDHeader))
	})

	t.Run("generates an ID when absent", func(t *testing.T) {
		var seen string
		handler := RequestIDMiddleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen, _ = r.Context().Value(constants.RequestIDContextID).(string)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))

		require.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(constants.RequestIDHeader))
	})
}

func TestRequestLoggerMiddlewareCapturesStatus(t *testing.T) {
	handler := RequestLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/schedule-meeting", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
