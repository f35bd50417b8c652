package sdr

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"imfdata/internal/feeds"
	"imfdata/internal/logging"
	"imfdata/internal/memo"
	"imfdata/internal/transport"
)

const defaultBaseURL = "https://www.imf.org"

// Doer is the transport surface the feeds consume.
type Doer interface {
	Get(ctx context.Context, url string) (*transport.Payload, error)
	PostForm(ctx context.Context, url string, form url.Values) (*transport.Payload, error)
}

// Config carries the assembly parameters for a Service.
type Config struct {
	// BaseURL overrides the publisher's site root. Empty selects the
	// production site.
	BaseURL string
	// CacheCapacity bounds each feed's memoized results. Values below one
	// select the cache's default capacity.
	CacheCapacity int
}

// Service retrieves the three feeds. Each memoizes independently: the
// latest published month once, holdings per month, exchange rates per
// basis, and the interest rate series once.
type Service struct {
	client  Doer
	baseURL string
	logger  *slog.Logger

	latest   *memo.Cache[Month]
	holdings *memo.Cache[[]Holding]
	exchange *memo.Cache[[]ExchangeRate]
	interest *memo.Cache[[]InterestRate]
}

// NewService wires the feeds around the supplied client.
func NewService(client Doer, cfg Config, logger *slog.Logger) *Service {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logging.NewComponentLogger(logger, "sdr"),
		latest:   memo.New[Month]("sdr", cfg.CacheCapacity, logger),
		holdings: memo.New[[]Holding]("sdr", cfg.CacheCapacity, logger),
		exchange: memo.New[[]ExchangeRate]("sdr", cfg.CacheCapacity, logger),
		interest: memo.New[[]InterestRate]("sdr", cfg.CacheCapacity, logger),
	}
}

// Holdings returns the holdings and allocations rows for the requested
// month, or for the latest published month when month is nil. Months after
// the latest published one report no data.
func (s *Service) Holdings(ctx context.Context, month *Month) ([]Holding, error) {
	if month != nil {
		if err := month.Validate(); err != nil {
			return nil, err
		}
	}
	ctx = s.feedContext(ctx)

	latest, err := s.latest.Do("latest", func() (Month, error) {
		return s.scrapeLatestMonth(ctx)
	})
	if err != nil {
		return nil, err
	}

	target := latest
	if month != nil {
		if month.After(latest) {
			return nil, feeds.Wrap(feeds.ErrNoData, "sdr", "fetch holdings",
				fmt.Sprintf("no holdings published for %s, latest is %s", *month, latest), nil)
		}
		target = *month
	}

	return s.holdings.Do(target.String(), func() ([]Holding, error) {
		return s.fetchHoldings(ctx, target)
	})
}

// ExchangeRates returns the valuation series for the requested basis.
func (s *Service) ExchangeRates(ctx context.Context, basis Basis) ([]ExchangeRate, error) {
	if err := basis.Validate(); err != nil {
		return nil, err
	}
	ctx = s.feedContext(ctx)
	return s.exchange.Do(string(basis), func() ([]ExchangeRate, error) {
		return s.fetchExchangeRates(ctx, basis)
	})
}

// InterestRates returns the published interest rate series.
func (s *Service) InterestRates(ctx context.Context) ([]InterestRate, error) {
	ctx = s.feedContext(ctx)
	return s.interest.Do("interest", func() ([]InterestRate, error) {
		return s.fetchInterestRates(ctx)
	})
}

// ClearCache drops every memoized result across the feeds. The caches of
// other services are unaffected.
func (s *Service) ClearCache() {
	s.latest.Clear()
	s.holdings.Clear()
	s.exchange.Clear()
	s.interest.Clear()
}

// tsvExportForm emulates the TSV button on the rate pages.
func tsvExportForm() url.Values {
	return url.Values{"__EVENTTARGET": []string{"lbnTSV"}}
}

func (s *Service) feedContext(ctx context.Context) context.Context {
	ctx = feeds.WithFeed(ctx, "sdr")
	return feeds.WithFetchID(ctx, uuid.NewString())
}
