// Package main hosts the imfdata CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into feed
// requests: WEO release fetches and version queries, SDR holdings, exchange
// rate and interest rate lookups, and configuration scaffolding. It
// centralizes configuration resolution, logger construction, and service
// assembly so subcommands can focus on rendering.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
