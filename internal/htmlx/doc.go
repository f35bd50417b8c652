// Package htmlx provides small HTML traversal helpers for the publisher page
// scraping the feeds depend on.
//
// The helpers cover exactly the two access patterns the feeds need: locating
// a download anchor by its visible text, and reading cell text out of listing
// tables. They operate on golang.org/x/net/html node trees.
package htmlx
