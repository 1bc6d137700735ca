// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package models

import "strings"

// Channel types as used by the host chat application.
const (
	ChannelTypeOpen    = "O"
	ChannelTypePrivate = "P"
	ChannelTypeGroup   = "G"
	ChannelTypeDirect  = "D"
)

// Channel is a host chat channel.
type Channel struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// IsDirect reports whether the channel is a two-party direct-message channel.
func (c *Channel) IsDirect() bool {
	return c.Type == ChannelTypeDirect
}

// Title returns the human-facing channel name, falling back to the internal
// name when no display name is set.
func (c *Channel) Title() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// OtherUserIDForDM returns the counterpart's user ID in a direct-message
// channel. DM channel names have the form "<userID1>__<userID2>". Returns
// empty string for non-DM channels or when the given user is not a member.
func (c *Channel) OtherUserIDForDM(userID string) string {
	if !c.IsDirect() {
		return ""
	}
	ids := strings.SplitN(c.Name, "__", 2)
	if len(ids) != 2 {
		return ""
	}
	switch userID {
	case ids[0]:
		return ids[1]
	case ids[1]:
		return ids[0]
	}
	return ""
}
