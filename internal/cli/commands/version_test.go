package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pingerdash/internal/cli/config"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{
			name:    "default version",
			version: "0.1.0",
			wantOut: []string{"pingerdash v0.1.0", "Pinger"},
		},
		{
			name:    "lists adapters",
			version: "1.2.3",
			wantOut: []string{"pingerdash v1.2.3", "duckdb", "sqlite", "snowflake", "(read-only)"},
		},
		{
			name:    "dev version",
			version: "dev",
			wantOut: []string{"pingerdash vdev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetConfig()
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			require.NoError(t, cmd.Execute())

			output := buf.String()
			for _, want := range tt.wantOut {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	t.Setenv("PINGERDASH_OUTPUT", "json")
	config.ResetConfig()

	cmd := NewVersionCommand("0.1.0")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())

	var info versionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, "0.1.0", info.Version)
	assert.True(t, strings.HasPrefix(info.Go, "go"))
	assert.Contains(t, info.Adapters, "postgres")
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand("test")

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
