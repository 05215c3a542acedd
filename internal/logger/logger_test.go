package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("decoded", "blocks", 65)

	output := buf.String()
	if !strings.Contains(output, `"msg":"decoded"`) {
		t.Fatalf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"blocks":65`) {
		t.Fatalf("expected blocks=65 in JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Fatalf("expected level INFO in output, got: %s", output)
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Text(&buf, slog.LevelWarn)
	log.Info("should not appear")
	log.Debug("also should not appear")

	if buf.Len() > 0 {
		t.Fatalf("expected no output for info/debug at warn level, got: %s", buf.String())
	}

	log.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected warn message in output, got: %s", buf.String())
	}
}

func TestWith(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Text(&buf, slog.LevelDebug).With("file", "blink.uf2")
	log.Debug("start")

	if !strings.Contains(buf.String(), "file=blink.uf2") {
		t.Fatalf("expected attribute in output, got: %s", buf.String())
	}
}

func TestForFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "", want: "msg=hello"},
		{format: "text", want: "msg=hello"},
		{format: "json", want: `"msg":"hello"`},
		{format: "pretty", wantErr: true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log, err := ForFormat(&buf, tt.format, slog.LevelInfo)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForFormat(%q) expected error", tt.format)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ForFormat(%q) returned error: %v", tt.format, err)
		}
		log.Info("hello")
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("ForFormat(%q) output = %q, want substring %q", tt.format, buf.String(), tt.want)
		}
	}
}

func TestContext(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Text(&buf, slog.LevelInfo)
	ctx := WithContext(context.Background(), log)

	FromContext(ctx).Info("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Fatalf("expected context logger to be used, got: %s", buf.String())
	}

	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without logger returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
