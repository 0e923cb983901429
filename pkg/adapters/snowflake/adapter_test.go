package snowflake

import (
	"testing"
	"time"

	"github.com/leapstack-labs/pingerdash/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	p, err := ParseParams(nil)
	require.NoError(t, err)
	assert.Equal(t, "pingerdash", p.Application)

	p, err = ParseParams(map[string]any{
		"login_timeout": "45s",
		"query_tag":     "pinger-dashboard",
	})
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, p.LoginTimeout)
	assert.Equal(t, "pinger-dashboard", p.QueryTag)

	_, err = ParseParams(map[string]any{"nope": 1})
	require.Error(t, err)
}

func TestBuildDSN(t *testing.T) {
	_, err := buildDSN(core.AdapterConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires account")

	dsn, err := buildDSN(core.AdapterConfig{
		Account:   "xy12345",
		Username:  "reader",
		Password:  "secret",
		Database:  "IOT",
		Schema:    "PINGER",
		Warehouse: "COMPUTE_WH",
		Role:      "ANALYST",
	})
	require.NoError(t, err)
	assert.Contains(t, dsn, "reader:secret@")
	assert.Contains(t, dsn, "xy12345")
	assert.Contains(t, dsn, "warehouse=COMPUTE_WH")
	assert.Contains(t, dsn, "role=ANALYST")
}
