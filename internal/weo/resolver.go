package weo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"imfdata/internal/feeds"
	"imfdata/internal/logging"
)

// DefaultMaxRollbacks bounds how many releases an unpinned request may step
// back through while the expected publication is missing.
const DefaultMaxRollbacks = 2

// resolveState tracks the lifecycle of a single resolution attempt.
type resolveState string

const (
	stateResolvingExplicit resolveState = "resolving_explicit"
	stateResolvingLatest   resolveState = "resolving_latest"
	stateRolledBack        resolveState = "rolled_back"
	stateResolved          resolveState = "resolved"
	stateExhausted         resolveState = "exhausted"
)

// observationFetcher is the slice of the fetcher the resolver drives.
type observationFetcher interface {
	Fetch(ctx context.Context, release Release) ([]Observation, error)
}

// Resolver decides which release a request is served from. Pinned requests
// map to exactly one fetch. Unpinned requests start from the release expected
// for the current date and may roll back through earlier releases while the
// publication is missing upstream.
type Resolver struct {
	fetcher      observationFetcher
	logger       *slog.Logger
	now          func() time.Time
	maxRollbacks int
}

// NewResolver builds a resolver around the supplied fetcher. A zero
// maxRollbacks selects DefaultMaxRollbacks; negative values disable rollback.
func NewResolver(fetcher observationFetcher, maxRollbacks int, logger *slog.Logger) *Resolver {
	switch {
	case maxRollbacks == 0:
		maxRollbacks = DefaultMaxRollbacks
	case maxRollbacks < 0:
		maxRollbacks = 0
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		fetcher:      fetcher,
		logger:       logging.NewComponentLogger(logger, "weo"),
		now:          time.Now,
		maxRollbacks: maxRollbacks,
	}
}

// Resolve fetches observations for the requested release. A nil request means
// "latest". The returned table names the release that was actually served,
// which after a rollback differs from the one first computed.
func (r *Resolver) Resolve(ctx context.Context, requested *Release) (*Table, error) {
	ctx = feeds.WithFeed(ctx, "weo")
	ctx = feeds.WithFetchID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, r.logger)

	state := stateResolvingLatest
	candidate := ExpectedLatest(r.now())
	if requested != nil {
		state = stateResolvingExplicit
		candidate = *requested
	}
	expected := candidate

	var (
		rows      []Observation
		lastErr   error
		rollbacks int
	)
	for state != stateResolved && state != stateExhausted {
		var err error
		rows, err = r.fetcher.Fetch(ctx, candidate)
		switch {
		case err == nil:
			state = stateResolved
		case state == stateResolvingExplicit || !feeds.Recoverable(err):
			return nil, err
		case rollbacks >= r.maxRollbacks:
			lastErr = err
			state = stateExhausted
		default:
			previous := candidate.Previous()
			logger.Info("release not yet published, rolling back",
				logging.String(logging.FieldRelease, candidate.String()),
				logging.String("previous", previous.String()),
				logging.Int("step", rollbacks+1),
			)
			rollbacks++
			candidate = previous
			state = stateRolledBack
		}
	}

	if state == stateExhausted {
		message := fmt.Sprintf("no publication found within %d releases of %s", r.maxRollbacks, expected)
		return nil, feeds.Wrap(feeds.ErrNoData, "weo", "resolve latest release", message, lastErr)
	}

	logger.Info("release resolved",
		logging.String(logging.FieldRelease, candidate.String()),
		logging.Int("rows", len(rows)),
		logging.Int("rollbacks", rollbacks),
	)
	return &Table{Release: candidate, Rows: rows}, nil
}
