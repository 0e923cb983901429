package speedtest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/device"
	"github.com/leapstack-labs/pingerdash/pkg/adapter"
)

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 30 * time.Second

// Fetcher runs device lookups against a connected adapter.
type Fetcher struct {
	adapter adapter.Adapter
	query   Query
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// WithTimeout sets the per-lookup timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// NewFetcher returns a fetcher for q. Unset query fields take their defaults.
func NewFetcher(adp adapter.Adapter, q Query, opts ...Option) (*Fetcher, error) {
	if adp == nil {
		return nil, fmt.Errorf("adapter is required")
	}
	q = q.WithDefaults()
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid results query: %w", err)
	}
	f := &Fetcher{adapter: adp, query: q, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = adapter.DiscardLogger(f.logger)
	return f, nil
}

// Query returns the lookup the fetcher runs.
func (f *Fetcher) Query() Query {
	return f.query
}

// Fetch returns the results for id, newest first.
func (f *Fetcher) Fetch(ctx context.Context, id device.ID) (*dataset.Dataset, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("device identifier is required")
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	query := f.query.SQL(f.adapter.Placeholder(1))
	rows, err := f.adapter.Query(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results for %s: %w", id, err)
	}
	defer func() { _ = rows.Close() }()

	ds, err := dataset.FromRows(rows.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read results for %s: %w", id, err)
	}

	f.logger.Debug("fetched speed tests",
		slog.String("device", id.String()),
		slog.String("adapter", f.adapter.Name()),
		slog.Int("rows", ds.NumRows()),
		slog.Duration("elapsed", time.Since(start)))
	return ds, nil
}
