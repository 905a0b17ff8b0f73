package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want *zapcore.Level
	}{
		{"debug", levelPtr(zapcore.DebugLevel)},
		{"info", levelPtr(zapcore.InfoLevel)},
		{"warn", levelPtr(zapcore.WarnLevel)},
		{"error", levelPtr(zapcore.ErrorLevel)},
		{"verbose", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseLevel(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("parseLevel(%q) = %v, want nil", tt.in, *got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, *tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		l, err := New("warn", pretty)
		if err != nil {
			t.Fatalf("New(pretty=%v) failed: %v", pretty, err)
		}
		if l == nil {
			t.Fatalf("New(pretty=%v) returned nil logger", pretty)
		}
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(String("component", "store"))

	l.Debug("fetched", Int64("id", 7))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "store" {
		t.Errorf("component = %v, want %q", fields["component"], "store")
	}
	if fields["id"] != int64(7) {
		t.Errorf("id = %v, want 7", fields["id"])
	}
}

func levelPtr(l zapcore.Level) *zapcore.Level { return &l }
