// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringPtr(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "non-empty string", input: "meeting"},
		{name: "empty string", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringPtr(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.input, *got)
		})
	}
}

func TestStringValue(t *testing.T) {
	s := "room"
	assert.Equal(t, "room", StringValue(&s))
	assert.Equal(t, "", StringValue(nil))
}

func TestBoolValue(t *testing.T) {
	b := true
	assert.True(t, BoolValue(&b))
	assert.False(t, BoolValue(nil))
	assert.True(t, *BoolPtr(true))
}
