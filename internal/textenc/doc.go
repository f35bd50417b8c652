// Package textenc resolves the character encoding of downloaded payload
// bytes before parsing.
//
// Publisher exports have shipped in shifting encodings over the years, so
// decoding follows a fixed evidence order: the transport-declared charset
// label, a byte order mark, an in-band XML declaration, then UTF-8 validation
// of the raw bytes. A payload whose encoding cannot be established from any
// of these signals is rejected as format drift instead of being decoded on a
// guess.
package textenc
