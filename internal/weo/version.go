package weo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"imfdata/internal/feeds"
)

// Period is the half of the year a release belongs to. The publisher issues
// exactly two releases per year.
type Period string

const (
	PeriodApril   Period = "April"
	PeriodOctober Period = "October"
)

// ParsePeriod normalizes raw into a canonical Period. Case and surrounding
// whitespace are forgiven; anything that is not one of the two publication
// months is rejected.
func ParsePeriod(raw string) (Period, error) {
	normalized := cases.Title(language.English).String(strings.TrimSpace(raw))
	period := Period(normalized)
	switch period {
	case PeriodApril, PeriodOctober:
		return period, nil
	}
	return "", feeds.Wrap(feeds.ErrInvalidVersion, "weo", "parse period",
		fmt.Sprintf("%q is not a release month (want %s or %s)", raw, PeriodApril, PeriodOctober), nil)
}

// Release identifies one WEO publication.
type Release struct {
	Period Period
	Year   int
}

// NewRelease builds a validated Release from a raw period spelling and year.
func NewRelease(period string, year int) (Release, error) {
	parsed, err := ParsePeriod(period)
	if err != nil {
		return Release{}, err
	}
	release := Release{Period: parsed, Year: year}
	if err := release.Validate(); err != nil {
		return Release{}, err
	}
	return release, nil
}

// ParseRelease parses the canonical "April 2026" form.
func ParseRelease(raw string) (Release, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return Release{}, feeds.Wrap(feeds.ErrInvalidVersion, "weo", "parse release",
			fmt.Sprintf("%q is not in the form %q", raw, "April 2026"), nil)
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return Release{}, feeds.Wrap(feeds.ErrInvalidVersion, "weo", "parse release",
			fmt.Sprintf("%q has a non-numeric year", raw), nil)
	}
	return NewRelease(fields[0], year)
}

// Validate reports whether the release identifies a plausible publication.
// The zero Release is invalid; it is reserved for the unpinned-latest request
// shape.
func (r Release) Validate() error {
	switch r.Period {
	case PeriodApril, PeriodOctober:
	default:
		return feeds.Wrap(feeds.ErrInvalidVersion, "weo", "validate release",
			fmt.Sprintf("period %q is not a release month", string(r.Period)), nil)
	}
	if r.Year <= 0 {
		return feeds.Wrap(feeds.ErrInvalidVersion, "weo", "validate release",
			fmt.Sprintf("year %d is not a publication year", r.Year), nil)
	}
	return nil
}

// String renders the canonical "April 2026" form.
func (r Release) String() string {
	return string(r.Period) + " " + strconv.Itoa(r.Year)
}

// Before reports whether r was published before other.
func (r Release) Before(other Release) bool {
	if r.Year != other.Year {
		return r.Year < other.Year
	}
	return r.Period == PeriodApril && other.Period == PeriodOctober
}

// Previous returns the release published immediately before r.
func (r Release) Previous() Release {
	if r.Period == PeriodOctober {
		return Release{Period: PeriodApril, Year: r.Year}
	}
	return Release{Period: PeriodOctober, Year: r.Year - 1}
}

// ExpectedLatest computes the most recent release that should exist on the
// given date. A release is considered available from the first day of the
// month after its publication month, so the cutovers are May 1 (April
// release) and November 1 (October release).
func ExpectedLatest(today time.Time) Release {
	year := today.Year()
	switch {
	case today.Month() >= time.November:
		return Release{Period: PeriodOctober, Year: year}
	case today.Month() >= time.May:
		return Release{Period: PeriodApril, Year: year}
	default:
		return Release{Period: PeriodOctober, Year: year - 1}
	}
}
