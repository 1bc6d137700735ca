// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

// ExtensionConfig is the admin-managed configuration of the extension,
// served to the browser bundle from the config endpoint.
type ExtensionConfig struct {
	WebhookURL   string `json:"webhook_url"`
	OpenInNewTab bool   `json:"open_in_new_tab"`
	ServiceName  string `json:"service_name"`
}

// WebhookConfigured reports whether the provisioning webhook is set up.
// Without it the instant-call and scheduling features must degrade to a
// user-facing warning.
func (c ExtensionConfig) WebhookConfigured() bool {
	return c.WebhookURL != ""
}
