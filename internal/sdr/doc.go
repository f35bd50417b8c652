// Package sdr retrieves the Special Drawing Rights datasets the publisher
// exposes next to the main database: member holdings and allocations,
// currency exchange rates against the SDR, and the SDR interest rate.
//
// All three feeds serve legacy tab-separated exports rather than a machine
// friendly API. Holdings are keyed by month and reached through a query
// parameter naming the last day of that month; the latest published month is
// discovered by scraping a listing page. Exchange and interest rates are
// returned by form posts that emulate the "TSV" button on the site, and the
// responses interleave report dates, per-currency detail rows, and the
// summary rows this package actually extracts.
//
// Each feed memoizes its results independently. Unparseable numeric cells
// become nil values on retained rows; structural surprises in the exports
// surface as unexpected-file errors so format drift is visible instead of
// silently dropped.
package sdr
