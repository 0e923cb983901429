package snowflake

import (
	"log/slog"

	"github.com/leapstack-labs/pingerdash/pkg/adapter"
)

func init() {
	adapter.Register("snowflake", func(logger *slog.Logger) adapter.Adapter { return New(logger) },
		adapter.WithDescription("Snowflake warehouse where devices report results"),
		adapter.ReadOnly())
}
