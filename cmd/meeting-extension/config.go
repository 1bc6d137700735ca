// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"net/url"
	"os"

	"github.com/konturtalk/meeting-extension/internal/logging"
	"github.com/konturtalk/meeting-extension/pkg/utils"
)

// flags are the command line flags for the extension server.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the extension server.
type environment struct {
	Port           string
	WebhookURL     string
	OpenInNewTab   bool
	ServiceName    string
	ChatAPIBaseURL string
	ChatAPIToken   string
}

// parseFlags parses command line flags for the extension server
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the extension server
func parseEnv() environment {
	port := utils.CoalesceString(os.Getenv("PORT"), "8080")

	webhookURL := os.Getenv("WEBHOOK_URL")
	if webhookURL != "" {
		if _, err := url.Parse(webhookURL); err != nil {
			slog.With(logging.ErrKey, err, "url", webhookURL).Error("invalid WEBHOOK_URL provided, webhook features disabled")
			webhookURL = ""
		}
	}

	serviceName := utils.CoalesceString(os.Getenv("SERVICE_NAME"), "kontur-talk")

	chatAPIBaseURL := os.Getenv("CHAT_API_BASE_URL")
	if chatAPIBaseURL != "" {
		if _, err := url.Parse(chatAPIBaseURL); err != nil {
			slog.With(logging.ErrKey, err, "url", chatAPIBaseURL).Error("invalid CHAT_API_BASE_URL provided")
			chatAPIBaseURL = ""
		}
	}

	return environment{
		Port:           port,
		WebhookURL:     webhookURL,
		OpenInNewTab:   os.Getenv("OPEN_IN_NEW_TAB") == "true",
		ServiceName:    serviceName,
		ChatAPIBaseURL: chatAPIBaseURL,
		ChatAPIToken:   os.Getenv("CHAT_API_TOKEN"),
	}
}
