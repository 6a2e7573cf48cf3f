package logging

import (
	"context"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("json"); got != FormatJSON {
		t.Errorf("ParseFormat(json) = %v", got)
	}
	if got := ParseFormat("text"); got != FormatText {
		t.Errorf("ParseFormat(text) = %v", got)
	}
	if got := ParseFormat(""); got != FormatText {
		t.Errorf("ParseFormat empty should default to text, got %v", got)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("empty context should have no request ID, got %q", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID = %q, want req-123", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	InitLogger(LevelInfo, FormatText)

	if logger := LoggerFromContext(context.Background()); logger == nil {
		t.Fatal("LoggerFromContext returned nil")
	}
	ctx := WithRequestID(context.Background(), "req-456")
	if logger := LoggerFromContext(ctx); logger == nil {
		t.Fatal("LoggerFromContext with request ID returned nil")
	}
}

func TestInitLogger(t *testing.T) {
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, Level(99)} {
		for _, format := range []Format{FormatJSON, FormatText} {
			InitLogger(level, format)
			if GetLogger() == nil {
				t.Fatalf("GetLogger returned nil for level=%v format=%v", level, format)
			}
		}
	}
}
