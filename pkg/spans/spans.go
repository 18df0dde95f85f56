// Package spans closes OpenTelemetry spans with the outcome of the work they
// cover.
package spans

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// End records err on span, logs it through l when l is not nil, and ends the
// span. It returns err unchanged so callers can return through it.
func End(span trace.Span, err error, message string, l *slog.Logger) error {
	defer span.End()

	if err != nil {
		if l != nil {
			l.Error(message, "err", err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Errorf("%s: %w", message, err).Error())
		return err
	}

	span.SetStatus(codes.Ok, "ok")
	return nil
}
