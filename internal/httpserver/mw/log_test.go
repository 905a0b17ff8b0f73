package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/monitor/internal/logger"
)

func TestLog(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantLevel zapcore.Level
		want      int
		wantBytes int
	}{
		{
			name:      "implicit 200",
			handler:   func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("hello")) },
			wantLevel: zapcore.InfoLevel,
			want:      http.StatusOK,
			wantBytes: 5,
		},
		{
			name:      "not found",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantLevel: zapcore.InfoLevel,
			want:      http.StatusNotFound,
		},
		{
			name:      "server error",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			wantLevel: zapcore.WarnLevel,
			want:      http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			h := Log(logger.FromZap(zap.New(core)))(tt.handler)

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/services", nil))

			entries := logs.FilterMessage("http_request").All()
			if len(entries) != 1 {
				t.Fatalf("expected 1 log entry, got %d", len(entries))
			}
			e := entries[0]
			if e.Level != tt.wantLevel {
				t.Errorf("level = %v, want %v", e.Level, tt.wantLevel)
			}
			fields := e.ContextMap()
			if fields["status"] != int64(tt.want) {
				t.Errorf("status = %v, want %d", fields["status"], tt.want)
			}
			if fields["bytes"] != int64(tt.wantBytes) {
				t.Errorf("bytes = %v, want %d", fields["bytes"], tt.wantBytes)
			}
			if fields["path"] != "/api/services" {
				t.Errorf("path = %v", fields["path"])
			}
		})
	}
}

func TestStatusWriter_HijackUnsupported(t *testing.T) {
	w := &statusWriter{ResponseWriter: httptest.NewRecorder()}
	if _, _, err := w.Hijack(); err == nil {
		t.Fatal("expected error from recorder without Hijacker")
	}
}
