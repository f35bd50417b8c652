// Package memo provides the in-memory memoization layer shared by the feed
// services.
//
// Each feed owns its own Cache instance, so clearing one feed's entries never
// disturbs another's. Entries live for the lifetime of the process, bounded
// by an LRU capacity; first-time construction of a key is collapsed so
// concurrent callers trigger a single upstream fetch and share the result.
package memo
