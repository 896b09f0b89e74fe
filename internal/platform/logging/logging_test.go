package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewEnabledAtLevel(t *testing.T) {
	t.Parallel()

	logger := New(Options{Level: "warn"})
	if logger == nil {
		t.Fatal("expected logger")
	}
	if logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Fatal("expected info to be disabled at warn level")
	}
	if !logger.Enabled(t.Context(), slog.LevelError) {
		t.Fatal("expected error to be enabled at warn level")
	}
}
