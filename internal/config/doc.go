// Package config loads, normalizes, and validates imfdata configuration data.
//
// It supplies repository defaults, reads TOML files, expands tilde shortcuts
// in user-supplied config paths, and honours environment fallbacks such as
// IMFDATA_USER_AGENT. The Config type centralizes every knob the CLI needs,
// so transport settings, feed site roots, and cache sizing are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// canonical log formats, bounded cache capacities, and clear validation
// errors.
package config
