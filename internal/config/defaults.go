package config

import (
	"strings"

	"github.com/leapstack-labs/pingerdash/pkg/core"
)

// Default configuration values.
const (
	DefaultSeedsDir   = "seeds"
	DefaultTargetType = "duckdb"
	DefaultDatabase   = "pingerdash.duckdb"

	// DefaultLocalTable is the results table created by the seed command.
	DefaultLocalTable = "speed_tests_results"
	// DefaultWarehouseTable is the results table in the production warehouse.
	DefaultWarehouseTable = "IOT.PINGER.SPEED_TESTS_RESULTS"
)

var defaultSchemas = map[string]string{
	"duckdb":   "main",
	"postgres": "public",
}

// DefaultSchemaForType returns the default schema for a target type, or
// an empty string when the warehouse chooses it.
func DefaultSchemaForType(targetType string) string {
	return defaultSchemas[strings.ToLower(targetType)]
}

// DefaultResultsTable returns the results table for a target type: the
// production table on snowflake and the seeded demo table elsewhere.
func DefaultResultsTable(targetType string) string {
	if strings.EqualFold(targetType, "snowflake") {
		return DefaultWarehouseTable
	}
	return DefaultLocalTable
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}
	if t.Type == "" {
		t.Type = DefaultTargetType
	}
	t.Type = strings.ToLower(t.Type)

	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	switch t.Type {
	case "postgres":
		if t.Port == 0 {
			t.Port = 5432
		}
		if t.Host == "" {
			t.Host = "localhost"
		}
	case "duckdb", "sqlite":
		if t.Database == "" {
			t.Database = ":memory:"
		}
	}
}
