package weo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"imfdata/internal/memo"
)

// latestKey is the cache key for unpinned requests. Explicit pins key by the
// release's canonical string, so "latest" and a pin to the release it happens
// to resolve to occupy distinct entries.
const latestKey = "latest"

// Config carries the assembly parameters for a Service.
type Config struct {
	// BaseURL overrides the publisher's site root. Empty selects the
	// production site.
	BaseURL string
	// MaxRollbacks bounds the fallback steps for unpinned requests. Zero
	// selects DefaultMaxRollbacks, negative values disable rollback.
	MaxRollbacks int
	// CacheCapacity bounds the memoized tables. Values below one select the
	// cache's default capacity.
	CacheCapacity int
}

// Service is the caller-facing entry point for the dataset. It resolves which
// release to serve, memoizes parsed tables per request shape, and tracks the
// release most recently served.
type Service struct {
	resolver *Resolver
	cache    *memo.Cache[*Table]

	mu            sync.Mutex
	lastEffective Release
	hasEffective  bool
}

// ServiceOption customizes Service construction.
type ServiceOption func(*Service)

// WithNow overrides the clock used to compute the expected-latest release.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.resolver.now = now
		}
	}
}

// NewService wires fetcher, resolver, and cache around the supplied client.
func NewService(client Getter, cfg Config, logger *slog.Logger, opts ...ServiceOption) *Service {
	fetcher := NewFetcher(client, cfg.BaseURL, logger)
	service := &Service{
		resolver: NewResolver(fetcher, cfg.MaxRollbacks, logger),
		cache:    memo.New[*Table]("weo", cfg.CacheCapacity, logger),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Fetch returns the table for the requested release, or for the latest
// published release when requested is nil. Repeat requests with the same
// shape return the identical memoized table.
func (s *Service) Fetch(ctx context.Context, requested *Release) (*Table, error) {
	key := latestKey
	if requested != nil {
		if err := requested.Validate(); err != nil {
			return nil, err
		}
		key = requested.String()
	}

	table, err := s.cache.Do(key, func() (*Table, error) {
		return s.resolver.Resolve(ctx, requested)
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastEffective = table.Release
	s.hasEffective = true
	s.mu.Unlock()

	return table, nil
}

// LastEffectiveVersion reports the release served by the most recent
// successful Fetch, which after a rollback differs from the requested shape.
// ok is false until a fetch has succeeded.
func (s *Service) LastEffectiveVersion() (Release, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEffective, s.hasEffective
}

// ClearCache drops every memoized table held by this service. The caches of
// other feeds are unaffected.
func (s *Service) ClearCache() {
	s.cache.Clear()
}
