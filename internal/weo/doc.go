// Package weo retrieves and normalizes the World Economic Outlook database
// published twice a year.
//
// The publisher exposes each release through a database page whose layout
// and URL embed the release identifier (April or October plus a year). The
// package owns the full pipeline for one request:
//
//   - Release identifier arithmetic: validation, ordering, the predecessor
//     relation, and computing which release should exist for a given date.
//   - Resolution: an explicit identifier is fetched exactly once, while an
//     unpinned "latest" request starts from the expected release and rolls
//     back through a bounded number of predecessors when the expected one is
//     not published yet.
//   - Payload parsing: the downloaded SDMX archive carries one schema entry
//     describing the dimension code lists and one data entry with the nested
//     series and observations; parsing flattens them into typed rows with
//     code labels joined in.
//   - Memoization: parsed tables are cached per request shape for the
//     lifetime of the process, so repeat requests return the same artifact
//     without touching the network.
//
// Transport faults and payload format drift are never recovered from; only
// a missing publication triggers rollback, and only for unpinned requests.
package weo
