// Package transport issues the HTTP requests the feeds make against the
// publisher's website.
//
// It owns the polite-crawler behaviour shared by every feed: a single rate
// limiter, a stable User-Agent, request timeouts, and the mapping from HTTP
// outcomes onto the feed error taxonomy. A 404 or 410 means the requested
// publication does not exist upstream and maps to the no-data marker; every
// other failure is a connection error. The transport never retries; callers
// decide whether a failure is worth another request.
package transport
