package sdr

import (
	"errors"
	"testing"
	"time"

	"imfdata/internal/feeds"
)

func TestMonthValidate(t *testing.T) {
	valid := Month{Year: 2024, Month: time.February}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate returned error for %s: %v", valid, err)
	}

	cases := []struct {
		name  string
		month Month
	}{
		{name: "month zero", month: Month{Year: 2024, Month: 0}},
		{name: "month thirteen", month: Month{Year: 2024, Month: 13}},
		{name: "year zero", month: Month{Year: 0, Month: time.January}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.month.Validate(); !errors.Is(err, feeds.ErrInvalidVersion) {
				t.Fatalf("error = %v, want ErrInvalidVersion", err)
			}
		})
	}
}

func TestMonthLastDay(t *testing.T) {
	cases := []struct {
		month Month
		want  int
	}{
		{Month{2024, time.January}, 31},
		{Month{2024, time.February}, 29},
		{Month{2023, time.February}, 28},
		{Month{2024, time.April}, 30},
		{Month{2023, time.December}, 31},
	}
	for _, tc := range cases {
		if got := tc.month.LastDay(); got != tc.want {
			t.Errorf("%s last day = %d, want %d", tc.month, got, tc.want)
		}
	}
}

func TestMonthAfter(t *testing.T) {
	older := Month{Year: 2023, Month: time.December}
	newer := Month{Year: 2024, Month: time.January}
	if !newer.After(older) {
		t.Fatalf("%s should be after %s", newer, older)
	}
	if older.After(newer) {
		t.Fatalf("%s should not be after %s", older, newer)
	}
	if older.After(older) {
		t.Fatal("a month should not be after itself")
	}
}

func TestMonthDate(t *testing.T) {
	month := Month{Year: 2024, Month: time.February}
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if got := month.Date(); !got.Equal(want) {
		t.Fatalf("Date() = %s, want %s", got, want)
	}
	if got, want := month.String(), "February 2024"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
