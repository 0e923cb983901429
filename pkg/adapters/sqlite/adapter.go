// Package sqlite provides a SQLite warehouse adapter for pingerdash.
//
// SQLite is used for lightweight local demos and tests; it runs without cgo.
package sqlite

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/pingerdash/pkg/adapter"
	"github.com/leapstack-labs/pingerdash/pkg/core"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:       adapter.DiscardLogger(logger),
			Placeholders: core.PlaceholderQuestion,
		},
	}
}

// Name returns the registered adapter type.
func (a *Adapter) Name() string {
	return "sqlite"
}

// Connect opens the database file; an empty path opens a private in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	a.Logger.Debug("connecting to sqlite", slog.String("path", path))
	if err := a.Open(ctx, "sqlite", path, cfg); err != nil {
		return err
	}
	// An in-memory database lives per connection.
	if path == ":memory:" {
		a.DB.SetMaxOpenConns(1)
	}
	return nil
}

var _ adapter.Adapter = (*Adapter)(nil)
