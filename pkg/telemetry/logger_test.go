package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) (buf *bytes.Buffer) {
	t.Helper()

	buf = &bytes.Buffer{}
	previous := SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(previous)
	})
	return buf
}

func TestInfoWritesJSONLine(t *testing.T) {
	buf := captureOutput(t)

	Info("candidate.scored", map[string]any{"token": "abc", "percentage": 83})

	var payload map[string]any
	err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload)
	if err != nil {
		t.Fatalf("Failed to decode log line: %v", err)
	}

	if payload["level"] != "info" {
		t.Errorf("Expected level info, got %v", payload["level"])
	}
	if payload["msg"] != "candidate.scored" {
		t.Errorf("Expected msg candidate.scored, got %v", payload["msg"])
	}
	if payload["token"] != "abc" {
		t.Errorf("Expected token abc, got %v", payload["token"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Error("Expected ts field")
	}
}

func TestReservedFieldsWin(t *testing.T) {
	buf := captureOutput(t)

	Warn("real", map[string]any{"msg": "spoofed", "level": "debug"})

	var payload map[string]any
	err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload)
	if err != nil {
		t.Fatalf("Failed to decode log line: %v", err)
	}

	if payload["msg"] != "real" || payload["level"] != "warn" {
		t.Errorf("Expected reserved fields to be kept, got %v", payload)
	}
}

func TestErrorFieldsAreStrings(t *testing.T) {
	buf := captureOutput(t)

	Error("store.failed", map[string]any{"error": errors.New("boom")})

	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("Expected error rendered as string, got %s", buf.String())
	}
}

func TestUnmarshalableFieldFallsBack(t *testing.T) {
	buf := captureOutput(t)

	Info("bad", map[string]any{"ch": make(chan int)})

	if !strings.Contains(buf.String(), "logger marshal failed") {
		t.Errorf("Expected fallback line, got %s", buf.String())
	}
}

func TestTransitionArrowIsNotEscaped(t *testing.T) {
	buf := captureOutput(t)

	Info("request.complete", map[string]any{"status_transition": "pending->in_progress", "note": "a<b&c"})

	out := buf.String()
	if !strings.Contains(out, `"status_transition":"pending->in_progress"`) {
		t.Errorf("Expected unescaped arrow, got %s", out)
	}
	if !strings.Contains(out, `"note":"a<b&c"`) {
		t.Errorf("Expected unescaped characters, got %s", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Expected exactly one line, got %q", out)
	}
}
