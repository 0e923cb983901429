package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/pingerdash/pkg/adapter"
)

// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/pingerdash/pkg/adapters/duckdb"
func init() {
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Adapter { return New(logger) },
		adapter.WithDescription("local DuckDB file, seeded with read_csv_auto"))
}
