package weo

import (
	"errors"
	"testing"

	"imfdata/internal/feeds"
	"imfdata/internal/testsupport"
)

func TestParseArchiveJoinsLabels(t *testing.T) {
	raw := testsupport.SDMXArchive{}.Build(t)

	rows, err := ParseArchive(raw)
	if err != nil {
		t.Fatalf("ParseArchive returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.ConceptCode != "NGDP_R" || first.ConceptLabel != "Gross domestic product, constant prices" {
		t.Fatalf("concept not resolved: %+v", first)
	}
	if first.RefAreaCode != "111" || first.RefAreaLabel != "United States" {
		t.Fatalf("ref area not resolved: %+v", first)
	}
	if first.FreqLabel != "Annual" || first.UnitLabel != "National currency" || first.ScaleLabel != "Billions" {
		t.Fatalf("labels not resolved: %+v", first)
	}
	if first.TimePeriod != "2024" {
		t.Fatalf("unexpected time period %q", first.TimePeriod)
	}
	if first.Value == nil || *first.Value != 21.354 {
		t.Fatalf("unexpected value %v", first.Value)
	}
	if first.LastActualDate != "2025" {
		t.Fatalf("unexpected last actual date %q", first.LastActualDate)
	}

	second := rows[1]
	if second.Value == nil || *second.Value != 1234.5 {
		t.Fatalf("expected thousands separator to be stripped, got %v", second.Value)
	}
}

func TestParseArchiveKeepsRowsWithNullValues(t *testing.T) {
	series := testsupport.DefaultSeries()
	series[0].Obs = []testsupport.SDMXObs{
		{TimePeriod: "2021", Value: "n/a"},
		{TimePeriod: "2022", Value: "--"},
		{TimePeriod: "2023", Value: "NULL"},
		{TimePeriod: "2024", Value: "not a number"},
		{TimePeriod: "2025", Value: "3.5"},
	}
	raw := testsupport.SDMXArchive{Series: series}.Build(t)

	rows, err := ParseArchive(raw)
	if err != nil {
		t.Fatalf("ParseArchive returned error: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected every observation retained, got %d rows", len(rows))
	}
	for i, row := range rows[:4] {
		if row.Value != nil {
			t.Fatalf("row %d: expected nil value, got %v", i, *row.Value)
		}
	}
	if rows[4].Value == nil || *rows[4].Value != 3.5 {
		t.Fatalf("expected final observation parsed, got %v", rows[4].Value)
	}
}

func TestParseArchiveRejectsCorruptArchive(t *testing.T) {
	_, err := ParseArchive([]byte("this is not a zip"))
	if !errors.Is(err, feeds.ErrUnexpectedFile) {
		t.Fatalf("expected unexpected-file error, got %v", err)
	}
}

func TestParseArchiveRejectsWrongEntryCounts(t *testing.T) {
	cases := []struct {
		name    string
		archive testsupport.SDMXArchive
	}{
		{"missing schema", testsupport.SDMXArchive{OmitSchema: true}},
		{"missing data", testsupport.SDMXArchive{OmitData: true}},
		{"extra data entry", testsupport.SDMXArchive{ExtraEntries: map[string]string{"second.xml": "<x/>"}}},
		{"extra schema entry", testsupport.SDMXArchive{ExtraEntries: map[string]string{"second.xsd": "<x/>"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseArchive(tc.archive.Build(t))
			if !errors.Is(err, feeds.ErrUnexpectedFile) {
				t.Fatalf("expected unexpected-file error, got %v", err)
			}
		})
	}
}

func TestParseArchiveRejectsMissingCodeList(t *testing.T) {
	lists := testsupport.DefaultCodeLists()
	delete(lists, "IMF.CL_FREQ.1.0")
	raw := testsupport.SDMXArchive{CodeLists: lists}.Build(t)

	_, err := ParseArchive(raw)
	if !errors.Is(err, feeds.ErrUnexpectedFile) {
		t.Fatalf("expected unexpected-file error, got %v", err)
	}
}

func TestParseArchiveRejectsUnknownDimensionCode(t *testing.T) {
	series := testsupport.DefaultSeries()
	series[0].Concept = "NOT_A_CONCEPT"
	raw := testsupport.SDMXArchive{Series: series}.Build(t)

	_, err := ParseArchive(raw)
	if !errors.Is(err, feeds.ErrUnexpectedFile) {
		t.Fatalf("expected unexpected-file error, got %v", err)
	}
}

func TestParseArchiveRejectsSeriesMissingDimension(t *testing.T) {
	series := testsupport.DefaultSeries()
	series[0].Scale = ""
	raw := testsupport.SDMXArchive{Series: series}.Build(t)

	_, err := ParseArchive(raw)
	if !errors.Is(err, feeds.ErrUnexpectedFile) {
		t.Fatalf("expected unexpected-file error, got %v", err)
	}
}

func TestParseArchiveRejectsEmptyDataSet(t *testing.T) {
	raw := testsupport.SDMXArchive{Series: []testsupport.SDMXSeries{}}.Build(t)

	_, err := ParseArchive(raw)
	if !errors.Is(err, feeds.ErrUnexpectedFile) {
		t.Fatalf("expected unexpected-file error, got %v", err)
	}
}

func TestParseObservationValue(t *testing.T) {
	ptr := func(f float64) *float64 { return &f }
	cases := []struct {
		raw  string
		want *float64
	}{
		{"21.354", ptr(21.354)},
		{"1,234.5", ptr(1234.5)},
		{"-2.5", ptr(-2.5)},
		{" 1234", ptr(1234)},
		{"1'234", ptr(1234)},
		{"n/a", nil},
		{"--", nil},
		{"NULL", nil},
		{"", nil},
		{"garbage", nil},
		{"1 234", nil},
	}
	for _, tc := range cases {
		got := parseObservationValue(tc.raw)
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("parseObservationValue(%q) = %v, want nil", tc.raw, *got)
		case tc.want != nil && got == nil:
			t.Fatalf("parseObservationValue(%q) = nil, want %v", tc.raw, *tc.want)
		case tc.want != nil && *got != *tc.want:
			t.Fatalf("parseObservationValue(%q) = %v, want %v", tc.raw, *got, *tc.want)
		}
	}
}
