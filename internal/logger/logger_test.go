package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("should not appear")

	if buf.Len() > 0 {
		t.Fatalf("expected no output for info at warn level, got: %s", buf.String())
	}

	log.Warn("should appear", "key", "value")
	out := buf.String()
	if !strings.Contains(out, "should appear") || !strings.Contains(out, `"key":"value"`) {
		t.Fatalf("unexpected JSON output: %s", out)
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"pretty", "hello"},
		{"", "hello"},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		log, err := Build(&buf, tc.format, slog.LevelInfo)
		if err != nil {
			t.Fatalf("Build(%q): %v", tc.format, err)
		}
		log.Info("hello")
		if !strings.Contains(buf.String(), tc.want) {
			t.Errorf("Build(%q): expected %q in output, got: %s", tc.format, tc.want, buf.String())
		}
	}

	if _, err := Build(&bytes.Buffer{}, "xml", slog.LevelInfo); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWith(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo).With("run", "abc")
	log.Info("child message")

	if !strings.Contains(buf.String(), `"run":"abc"`) {
		t.Fatalf("expected run=abc in output, got: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), JSON(&buf, slog.LevelInfo))

	FromContext(ctx).Info("roundtrip test")
	if !strings.Contains(buf.String(), "roundtrip test") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext with no logger returned nil")
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	// Should not panic
	Discard().Error("dropped")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q): unexpected error state: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestPrettyGroupsAndAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil).WithAttrs([]slog.Attr{slog.String("run", "r1")}).WithGroup("extract")
	slog.New(h).Info("saved", "id", 3)

	out := buf.String()
	if !strings.Contains(out, "run=r1") {
		t.Fatalf("expected ungrouped handler attr, got: %s", out)
	}
	if !strings.Contains(out, "extract.id=3") {
		t.Fatalf("expected grouped record attr, got: %s", out)
	}
}

func TestPrettyQuoting(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil)).Info("test", "path", "/tmp/out dir", "fmt", "png")

	out := buf.String()
	if !strings.Contains(out, `path="/tmp/out dir"`) {
		t.Fatalf("expected quoted string with spaces, got: %s", out)
	}
	if !strings.Contains(out, "fmt=png") {
		t.Fatalf("expected unquoted simple string, got: %s", out)
	}
}
