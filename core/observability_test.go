package core_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-membership/core"
	"github.com/goliatone/go-membership/devkit"
)

func TestLogWithLevel_RoutesLevelsAndFields(t *testing.T) {
	logger := devkit.NewCaptureLogger()

	core.LogWithLevel(context.Background(), logger, " WARN ", "warned", map[string]any{"flock": "acme"})
	core.LogWithLevel(context.Background(), logger, "unknown", "fallback", nil)

	if !logger.Has("warn", "warned") {
		t.Fatalf("expected warn entry")
	}
	if !logger.Has("info", "fallback") {
		t.Fatalf("expected unknown level to fall back to info")
	}
	records := logger.Snapshot()
	if records[0].Fields["flock"] != "acme" {
		t.Fatalf("expected structured field to be attached, got %#v", records[0].Fields)
	}
}

func TestLogWithLevel_NilLoggerIsNoop(t *testing.T) {
	core.LogWithLevel(context.Background(), nil, "error", "ignored", map[string]any{"a": 1})
}

func TestFlattenFields_SortsKeys(t *testing.T) {
	args := core.FlattenFields(map[string]any{"b": 2, "a": 1})
	if len(args) != 4 || args[0] != "a" || args[2] != "b" {
		t.Fatalf("expected sorted key/value pairs, got %#v", args)
	}
	if core.FlattenFields(nil) != nil {
		t.Fatalf("expected nil args for empty fields")
	}
}
