// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package middleware contains the HTTP middleware of the extension server.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/konturtalk/meeting-extension/internal/logging"
	"github.com/konturtalk/meeting-extension/pkg/constants"
)

// RequestIDMiddleware creates a middleware that propagates the caller's
// X-REQUEST-ID header, generating one when absent. The ID is stored in the
// request context, attached to all request-scoped logs, and echoed on the
// response.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := context.WithValue(r.Context(), constants.RequestIDContextID, requestID)
			ctx = logging.AppendCtx(ctx, slog.String("request_id", requestID))

			w.Header().Set(constants.RequestIDHeader, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
