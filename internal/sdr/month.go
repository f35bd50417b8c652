package sdr

import (
	"fmt"
	"time"

	"imfdata/internal/feeds"
)

// Month identifies one monthly holdings publication.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth validates and builds a Month.
func NewMonth(year int, month time.Month) (Month, error) {
	m := Month{Year: year, Month: month}
	if err := m.Validate(); err != nil {
		return Month{}, err
	}
	return m, nil
}

// Validate rejects months outside January through December and non-positive
// years.
func (m Month) Validate() error {
	if m.Month < time.January || m.Month > time.December {
		return feeds.Wrap(feeds.ErrInvalidVersion, "sdr", "validate month",
			fmt.Sprintf("month %d is not in 1..12", int(m.Month)), nil)
	}
	if m.Year <= 0 {
		return feeds.Wrap(feeds.ErrInvalidVersion, "sdr", "validate month",
			fmt.Sprintf("year %d is not positive", m.Year), nil)
	}
	return nil
}

// String renders the canonical form, for example "March 2026".
func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// After reports whether m is chronologically after other.
func (m Month) After(other Month) bool {
	if m.Year != other.Year {
		return m.Year > other.Year
	}
	return m.Month > other.Month
}

// LastDay returns the number of days in the month.
func (m Month) LastDay() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns the month's publication date, its last day at midnight UTC.
func (m Month) Date() time.Time {
	return time.Date(m.Year, m.Month, m.LastDay(), 0, 0, 0, 0, time.UTC)
}
