// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package main is the meeting extension server: it serves the configuration
// and scheduling endpoints the browser bundle calls, talks to the host chat
// API, and dispatches meeting provisioning to the configured webhook.
package main

import (
	"context"
	_ "expvar"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/konturtalk/meeting-extension/internal/domain/models"
	"github.com/konturtalk/meeting-extension/internal/handlers"
	"github.com/konturtalk/meeting-extension/internal/infrastructure/chat"
	"github.com/konturtalk/meeting-extension/internal/infrastructure/webhook"
	"github.com/konturtalk/meeting-extension/internal/logging"
	"github.com/konturtalk/meeting-extension/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	extensionConfig := models.ExtensionConfig{
		WebhookURL:   env.WebhookURL,
		OpenInNewTab: env.OpenInNewTab,
		ServiceName:  env.ServiceName,
	}
	if !extensionConfig.WebhookConfigured() {
		slog.Warn("WEBHOOK_URL is not set, meeting creation will fail until an admin configures it")
	}
	if env.ChatAPIBaseURL == "" {
		slog.Warn("CHAT_API_BASE_URL is not set, chat lookups and posts will fail")
	}

	chatClient := chat.NewClient(chat.Config{
		BaseURL: env.ChatAPIBaseURL,
		Token:   env.ChatAPIToken,
	})
	webhookClient := webhook.NewClient(webhook.Config{
		WebhookURL: env.WebhookURL,
	})
	resolver := service.NewTimeResolver(time.UTC)

	extensionHandler := handlers.NewExtensionHandler(chatClient, webhookClient, resolver, extensionConfig)

	// Setup graceful shutdown
	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	httpServer := setupHTTPServer(flags, extensionHandler, &gracefulCloseWG)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, &gracefulCloseWG, cancel)
}
