// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

// Package utils contains internal helpers shared across the extension server.
package utils

import (
	"regexp"
	"strings"
)

// roomLinkPattern matches HTTP and HTTPS URLs embedded in free-form text.
var roomLinkPattern = regexp.MustCompile(`https?://[^\s<>"]+`)

// ExtractRoomLinks extracts all HTTP/HTTPS URLs from the given text, in
// order of appearance and deduplicated. Some workflow revisions embed the
// room link in the human-readable message instead of a dedicated field.
func ExtractRoomLinks(text string) []string {
	if text == "" {
		return nil
	}

	matches := roomLinkPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	links := make([]string, 0, len(matches))
	for _, link := range matches {
		link = trimTrailingPunctuation(link)
		if seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}
	return links
}

// FirstRoomLink returns the first URL found in the text, or "".
func FirstRoomLink(text string) string {
	links := ExtractRoomLinks(text)
	if len(links) == 0 {
		return ""
	}
	return links[0]
}

// trimTrailingPunctuation strips sentence punctuation the regex captures
// when a link ends a sentence. This can also strip a legitimate closing
// bracket, which is acceptable for message text.
func trimTrailingPunctuation(link string) string {
	const trailing = ".,!?;:)]}"
	for len(link) > 0 && strings.ContainsRune(trailing, rune(link[len(link)-1])) {
		link = link[:len(link)-1]
	}
	return link
}
