package logging

import (
	"context"
	"log/slog"

	"imfdata/internal/feeds"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldFeed is the standardized structured logging key for feed names.
	FieldFeed = "feed"
	// FieldRelease is the standardized structured logging key for release identifiers.
	FieldRelease = "release"
	// FieldURL is the standardized structured logging key for request URLs.
	FieldURL = "url"
	// FieldStatus is the standardized structured logging key for HTTP status codes.
	FieldStatus = "status"
	// FieldCorrelationID is the standardized structured logging key for fetch correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if feed, ok := feeds.FeedFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldFeed, feed))
	}
	if id, ok := feeds.FetchIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
