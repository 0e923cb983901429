package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/pingerdash/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name: "in-memory",
			setupPath: func(_ *testing.T) string {
				return ":memory:"
			},
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "pinger.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			dbPath := tt.setupPath(t)
			require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: dbPath}))
			defer func() { _ = adp.Close() }()

			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	err := adp.Exec(ctx, "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not established")

	_, err = adp.Query(ctx, "SELECT 1")
	require.Error(t, err)

	err = adp.LoadCSV(ctx, "t", "missing.csv")
	require.Error(t, err)
}

func TestAdapter_QueryWithArgs(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{}))
	defer func() { _ = adp.Close() }()

	require.NoError(t, adp.Exec(ctx, `CREATE TABLE SPEED_TESTS_RESULTS (DEVICE_UUID VARCHAR, AVG_PING DOUBLE)`))
	require.NoError(t, adp.Exec(ctx, `INSERT INTO SPEED_TESTS_RESULTS VALUES (?, ?), (?, ?)`,
		"a", 10.5, "b", 20.0))

	rows, err := adp.Query(ctx, "SELECT AVG_PING FROM SPEED_TESTS_RESULTS WHERE DEVICE_UUID = "+adp.Placeholder(1), "b")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var ping float64
	require.NoError(t, rows.Scan(&ping))
	assert.InDelta(t, 20.0, ping, 0.0001)
	assert.False(t, rows.Next())
	require.NoError(t, rows.Err())
}

func TestAdapter_LoadCSV(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{}))
	defer func() { _ = adp.Close() }()

	csvPath := filepath.Join(t.TempDir(), "results.csv")
	content := "DEVICE_UUID,END_DATE,AVG_PING\n" +
		"123e4567-e89b-12d3-a456-426614174000,2024-05-01 10:00:00,12.5\n" +
		"123e4567-e89b-12d3-a456-426614174000,2024-05-02 10:00:00,14.0\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0600))

	require.NoError(t, adp.LoadCSV(ctx, "SPEED_TESTS_RESULTS", csvPath))

	rows, err := adp.Query(ctx, "SELECT COUNT(*) FROM SPEED_TESTS_RESULTS")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()
	require.True(t, rows.Next())
	var n int
	require.NoError(t, rows.Scan(&n))
	assert.Equal(t, 2, n)
}

func TestAdapter_ConnectRejectsBadParams(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), core.AdapterConfig{
		Params: map[string]any{"bogus": true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duckdb params")
	assert.False(t, adp.IsConnected())
}

func TestAdapter_Name(t *testing.T) {
	assert.Equal(t, "duckdb", New(nil).Name())
}
