package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pingerdash/pkg/core"

	_ "github.com/leapstack-labs/pingerdash/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/pingerdash/pkg/adapters/snowflake"
	_ "github.com/leapstack-labs/pingerdash/pkg/adapters/sqlite"
)

func TestApplyTargetDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   core.TargetConfig
		want core.TargetConfig
	}{
		{
			name: "empty becomes in-memory duckdb",
			want: core.TargetConfig{Type: "duckdb", Database: ":memory:", Schema: "main"},
		},
		{
			name: "postgres",
			in:   core.TargetConfig{Type: "Postgres", Database: "pinger"},
			want: core.TargetConfig{Type: "postgres", Database: "pinger", Host: "localhost", Port: 5432, Schema: "public"},
		},
		{
			name: "snowflake keeps schema unset",
			in:   core.TargetConfig{Type: "snowflake", Account: "acme"},
			want: core.TargetConfig{Type: "snowflake", Account: "acme"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			ApplyTargetDefaults(&got)
			assert.Equal(t, tt.want, got)
		})
	}

	ApplyTargetDefaults(nil)
}

func TestDefaultResultsTable(t *testing.T) {
	assert.Equal(t, DefaultWarehouseTable, DefaultResultsTable("Snowflake"))
	assert.Equal(t, DefaultLocalTable, DefaultResultsTable("duckdb"))
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name    string
		target  *core.TargetConfig
		wantErr string
	}{
		{name: "nil", target: nil, wantErr: "target type is required"},
		{name: "sqlite", target: &core.TargetConfig{Type: "sqlite"}},
		{name: "unknown", target: &core.TargetConfig{Type: "oracle"}, wantErr: "unknown adapter type"},
		{name: "snowflake without account", target: &core.TargetConfig{Type: "snowflake"}, wantErr: "account"},
		{name: "snowflake", target: &core.TargetConfig{Type: "snowflake", Account: "acme"}},
		{name: "postgres without database", target: &core.TargetConfig{Type: "postgres"}, wantErr: "database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt), []byte("verbose: true\n"), 0o600))

	assert.Equal(t, root, FindProjectRoot(nested, 10))
	assert.Equal(t, "", FindProjectRoot(nested, 1))
	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), FindConfigFile(root))
}
