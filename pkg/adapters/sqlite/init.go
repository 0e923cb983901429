package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/pingerdash/pkg/adapter"
)

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter { return New(logger) },
		adapter.WithDescription("local SQLite file, pure Go"))
}
