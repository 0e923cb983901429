// Package adapter provides the warehouse adapter contract and registry used
// by pingerdash to read speed-test results.
//
// Concrete adapter implementations live in pkg/adapters/ subdirectories and
// register themselves from init().
package adapter

import (
	"context"

	"github.com/leapstack-labs/pingerdash/pkg/core"
)

type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all warehouse adapters must implement.
// Adapters are read-mostly: the dashboard only issues SELECTs, Exec exists
// for seeding local demo data.
type Adapter interface {
	// Connect establishes a connection to the warehouse using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// Placeholder returns the bind parameter for the 1-based index.
	Placeholder(index int) string

	// Name returns the registered adapter type (e.g. "duckdb").
	Name() string
}

// CSVLoader is implemented by adapters that can bulk-load a CSV file into a table.
type CSVLoader interface {
	LoadCSV(ctx context.Context, table, path string) error
}

// DBProvider is implemented by adapters backed by database/sql.
type DBProvider interface {
	SQLDB() any
}
