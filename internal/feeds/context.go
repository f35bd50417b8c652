package feeds

import "context"

type contextKey string

const (
	feedKey    contextKey = "feed"
	fetchIDKey contextKey = "fetch_id"
)

// WithFeed annotates context with the feed name (weo, sdr).
func WithFeed(ctx context.Context, feed string) context.Context {
	if feed == "" {
		return ctx
	}
	return context.WithValue(ctx, feedKey, feed)
}

// FeedFromContext returns the feed name if present.
func FeedFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(feedKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithFetchID annotates context with a correlation identifier that ties the
// log lines of one resolution attempt together.
func WithFetchID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, fetchIDKey, id)
}

// FetchIDFromContext extracts the correlation identifier if present.
func FetchIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(fetchIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
