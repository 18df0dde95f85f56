package spans

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestEnd(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name       string
		err        error
		wantCode   codes.Code
		wantEvents int
		wantLog    bool
	}{
		{"success", nil, codes.Ok, 0, false},
		{"failure", errBoom, codes.Error, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			_, span := tp.Tracer("test").Start(context.Background(), "work")
			if got := End(span, tt.err, "work failed", logger); got != tt.err {
				t.Fatalf("expected %v returned, got %v", tt.err, got)
			}

			ended := sr.Ended()
			if len(ended) != 1 {
				t.Fatalf("expected 1 ended span, got %d", len(ended))
			}
			if ended[0].Status().Code != tt.wantCode {
				t.Errorf("expected status %v, got %v", tt.wantCode, ended[0].Status().Code)
			}
			if len(ended[0].Events()) != tt.wantEvents {
				t.Errorf("expected %d events, got %d", tt.wantEvents, len(ended[0].Events()))
			}
			if tt.err != nil && !strings.Contains(ended[0].Status().Description, "work failed: boom") {
				t.Errorf("unexpected status description %q", ended[0].Status().Description)
			}
			if got := strings.Contains(logs.String(), "work failed"); got != tt.wantLog {
				t.Errorf("expected log %v, got:\n%s", tt.wantLog, logs.String())
			}
		})
	}
}

func TestEnd_NilLogger(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	_, span := tp.Tracer("test").Start(context.Background(), "work")
	_ = End(span, errors.New("boom"), "work failed", nil)

	if ended := sr.Ended(); len(ended) != 1 || ended[0].Status().Code != codes.Error {
		t.Errorf("expected one failed span, got %+v", ended)
	}
}
