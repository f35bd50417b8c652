// Package feeds defines shared utilities consumed by the individual data
// feed implementations (WEO, SDR).
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     consistently (missing publication vs transport fault vs format drift).
//   - Context helpers that stamp feed names and fetch correlation identifiers
//     for logging.
//
// Use these helpers when wiring new feed logic so error classification and
// observability stay uniform across feeds.
package feeds
