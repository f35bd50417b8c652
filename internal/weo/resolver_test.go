package weo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"imfdata/internal/feeds"
	"imfdata/internal/logging"
)

type stubFetcher struct {
	calls    []Release
	fetchIDs []string
	respond  func(release Release) ([]Observation, error)
}

func (s *stubFetcher) Fetch(ctx context.Context, release Release) ([]Observation, error) {
	s.calls = append(s.calls, release)
	id, _ := feeds.FetchIDFromContext(ctx)
	s.fetchIDs = append(s.fetchIDs, id)
	return s.respond(release)
}

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse clock value %q: %v", value, err)
	}
	return func() time.Time { return parsed }
}

func notPublished(release Release) error {
	return feeds.Wrap(feeds.ErrNoData, "weo", "download database page",
		"http 404: not published for "+release.String(), nil)
}

func TestResolveExplicitPin(t *testing.T) {
	stub := &stubFetcher{respond: func(Release) ([]Observation, error) {
		return []Observation{{ConceptCode: "NGDP_R", TimePeriod: "2024"}}, nil
	}}
	resolver := NewResolver(stub, DefaultMaxRollbacks, logging.NewNop())

	requested := Release{Period: PeriodOctober, Year: 2024}
	table, err := resolver.Resolve(context.Background(), &requested)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if table.Release != requested {
		t.Fatalf("table release = %s, want %s", table.Release, requested)
	}
	if len(table.Rows) != 1 || table.Rows[0].ConceptCode != "NGDP_R" {
		t.Fatalf("unexpected rows: %+v", table.Rows)
	}
	if len(stub.calls) != 1 || stub.calls[0] != requested {
		t.Fatalf("fetch calls = %v, want exactly one for %s", stub.calls, requested)
	}
}

func TestResolveExplicitPinDoesNotRollBack(t *testing.T) {
	stub := &stubFetcher{respond: func(release Release) ([]Observation, error) {
		return nil, notPublished(release)
	}}
	resolver := NewResolver(stub, DefaultMaxRollbacks, logging.NewNop())

	requested := Release{Period: PeriodApril, Year: 2030}
	_, err := resolver.Resolve(context.Background(), &requested)
	if !errors.Is(err, feeds.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
	if len(stub.calls) != 1 {
		t.Fatalf("fetch called %d times, want 1", len(stub.calls))
	}
}

func TestResolveLatest(t *testing.T) {
	stub := &stubFetcher{respond: func(Release) ([]Observation, error) {
		return []Observation{{TimePeriod: "2026"}}, nil
	}}
	resolver := NewResolver(stub, DefaultMaxRollbacks, logging.NewNop())
	resolver.now = fixedClock(t, "2026-06-15")

	table, err := resolver.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := Release{Period: PeriodApril, Year: 2026}
	if table.Release != want {
		t.Fatalf("table release = %s, want %s", table.Release, want)
	}
	if len(stub.calls) != 1 || stub.calls[0] != want {
		t.Fatalf("fetch calls = %v, want exactly one for %s", stub.calls, want)
	}
}

func TestResolveLatestRollsBack(t *testing.T) {
	available := Release{Period: PeriodOctober, Year: 2025}
	stub := &stubFetcher{respond: func(release Release) ([]Observation, error) {
		if release == available {
			return []Observation{{TimePeriod: "2025"}}, nil
		}
		return nil, notPublished(release)
	}}

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	resolver := NewResolver(stub, DefaultMaxRollbacks, logger)
	resolver.now = fixedClock(t, "2026-06-15")

	table, err := resolver.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if table.Release != available {
		t.Fatalf("table release = %s, want %s", table.Release, available)
	}
	if len(stub.calls) != 2 {
		t.Fatalf("fetch called %d times, want 2", len(stub.calls))
	}
	if expected := (Release{Period: PeriodApril, Year: 2026}); stub.calls[0] != expected {
		t.Fatalf("first call = %s, want %s", stub.calls[0], expected)
	}
	if stub.calls[1] != available {
		t.Fatalf("second call = %s, want %s", stub.calls[1], available)
	}
	if stub.fetchIDs[0] == "" || stub.fetchIDs[0] != stub.fetchIDs[1] {
		t.Fatalf("fetch ids not shared across rollback: %v", stub.fetchIDs)
	}

	logs := buf.String()
	if !strings.Contains(logs, "release not yet published, rolling back") {
		t.Fatalf("rollback notice missing from logs:\n%s", logs)
	}
	if !strings.Contains(logs, `"release":"April 2026"`) || !strings.Contains(logs, `"previous":"October 2025"`) {
		t.Fatalf("rollback log lacks release fields:\n%s", logs)
	}
	if !strings.Contains(logs, `"correlation_id"`) {
		t.Fatalf("logs lack a correlation id:\n%s", logs)
	}
}

func TestResolveLatestExhausted(t *testing.T) {
	stub := &stubFetcher{respond: func(release Release) ([]Observation, error) {
		return nil, notPublished(release)
	}}
	resolver := NewResolver(stub, 2, logging.NewNop())
	resolver.now = fixedClock(t, "2026-06-15")

	_, err := resolver.Resolve(context.Background(), nil)
	if !errors.Is(err, feeds.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
	if !strings.Contains(err.Error(), "April 2026") {
		t.Fatalf("exhaustion error does not name the expected release: %v", err)
	}

	wantCalls := []Release{
		{Period: PeriodApril, Year: 2026},
		{Period: PeriodOctober, Year: 2025},
		{Period: PeriodApril, Year: 2025},
	}
	if len(stub.calls) != len(wantCalls) {
		t.Fatalf("fetch called %d times, want %d", len(stub.calls), len(wantCalls))
	}
	for i, want := range wantCalls {
		if stub.calls[i] != want {
			t.Fatalf("call %d = %s, want %s", i, stub.calls[i], want)
		}
	}
}

func TestResolveLatestRollbackDisabled(t *testing.T) {
	stub := &stubFetcher{respond: func(release Release) ([]Observation, error) {
		return nil, notPublished(release)
	}}
	resolver := NewResolver(stub, -1, logging.NewNop())
	resolver.now = fixedClock(t, "2026-06-15")

	_, err := resolver.Resolve(context.Background(), nil)
	if !errors.Is(err, feeds.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
	if len(stub.calls) != 1 {
		t.Fatalf("fetch called %d times, want 1", len(stub.calls))
	}
}

func TestResolveLatestStopsOnTerminalErrors(t *testing.T) {
	cases := []struct {
		name   string
		marker error
	}{
		{name: "connection failure", marker: feeds.ErrConnection},
		{name: "format drift", marker: feeds.ErrUnexpectedFile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubFetcher{respond: func(Release) ([]Observation, error) {
				return nil, feeds.Wrap(tc.marker, "weo", "download archive", "boom", nil)
			}}
			resolver := NewResolver(stub, DefaultMaxRollbacks, logging.NewNop())
			resolver.now = fixedClock(t, "2026-06-15")

			_, err := resolver.Resolve(context.Background(), nil)
			if !errors.Is(err, tc.marker) {
				t.Fatalf("error = %v, want %v", err, tc.marker)
			}
			if len(stub.calls) != 1 {
				t.Fatalf("fetch called %d times, want 1", len(stub.calls))
			}
		})
	}
}

func TestNewResolverDefaultsRollbackBudget(t *testing.T) {
	stub := &stubFetcher{respond: func(release Release) ([]Observation, error) {
		return nil, notPublished(release)
	}}
	resolver := NewResolver(stub, 0, nil)
	resolver.now = fixedClock(t, "2026-06-15")

	if _, err := resolver.Resolve(context.Background(), nil); !errors.Is(err, feeds.ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
	if want := DefaultMaxRollbacks + 1; len(stub.calls) != want {
		t.Fatalf("fetch called %d times, want %d", len(stub.calls), want)
	}
}
