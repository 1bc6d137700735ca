// Copyright The Kontur Meeting Extension contributors.
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestErrKeyConstant(t *testing.T) {
	if ErrKey != "error" {
		t.Errorf("expected ErrKey to be 'error', got %q", ErrKey)
	}
}

func TestAppendCtx(t *testing.T) {
	attr := slog.String("channel_id", "ch1")
	ctx := AppendCtx(context.TODO(), attr)

	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(attrs))
	}
	if attrs[0].Key != "channel_id" || attrs[0].Value.String() != "ch1" {
		t.Errorf("unexpected attribute %s=%s", attrs[0].Key, attrs[0].Value.String())
	}
}

func TestAppendCtx_WithParent(t *testing.T) {
	ctx := AppendCtx(context.Background(), slog.String("request_id", "r1"))
	ctx = AppendCtx(ctx, slog.String("user_id", "u1"))

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "request_id" {
		t.Errorf("expected first key 'request_id', got %q", attrs[0].Key)
	}
	if attrs[1].Key != "user_id" {
		t.Errorf("expected second key 'user_id', got %q", attrs[1].Key)
	}
}

func TestAppendCtx_NilParent(t *testing.T) {
	//nolint:staticcheck // passing nil on purpose
	ctx := AppendCtx(nil, slog.String("k", "v"))
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}

func TestPriority(t *testing.T) {
	attr := PriorityCritical()
	if attr.Key != "priority" {
		t.Errorf("expected key 'priority', got %q", attr.Key)
	}
	if attr.Value.String() != "critical" {
		t.Errorf("expected value 'critical', got %q", attr.Value.String())
	}
}
