package speedtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/device"
	"github.com/leapstack-labs/pingerdash/internal/testutil"
	"github.com/leapstack-labs/pingerdash/pkg/adapter"
	"github.com/leapstack-labs/pingerdash/pkg/core"
)

const testDevice = "123e4567-e89b-12d3-a456-426614174000"

type mockAdapter struct {
	adapter.BaseSQLAdapter
}

func (m *mockAdapter) Connect(context.Context, adapter.Config) error { return nil }
func (m *mockAdapter) Name() string { return "mock" }

func newMockAdapter(t *testing.T, style core.PlaceholderStyle) (*mockAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &mockAdapter{BaseSQLAdapter: adapter.BaseSQLAdapter{DB: db, Placeholders: style}}, mock
}

func TestQuery_SQL(t *testing.T) {
	q := DefaultQuery()
	assert.Equal(t,
		"SELECT END_DATE, AVG_UPLOAD_SPEED, AVG_DOWNLOAD_SPEED, AVG_PING FROM IOT.PINGER.SPEED_TESTS_RESULTS WHERE DEVICE_UUID = ? ORDER BY END_DATE DESC",
		q.SQL("?"))

	q.Limit = 50
	q.Table = "speed_tests_results"
	assert.Equal(t,
		"SELECT END_DATE, AVG_UPLOAD_SPEED, AVG_DOWNLOAD_SPEED, AVG_PING FROM speed_tests_results WHERE DEVICE_UUID = $1 ORDER BY END_DATE DESC LIMIT 50",
		q.SQL("$1"))
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Query)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Query) {}},
		{name: "bad table", mutate: func(q *Query) { q.Table = "t; DROP TABLE x" }, wantErr: "invalid table"},
		{name: "trailing dot", mutate: func(q *Query) { q.Table = "IOT." }, wantErr: "invalid table"},
		{name: "bad column", mutate: func(q *Query) { q.Columns = []string{"END_DATE", "1x"} }, wantErr: `invalid column "1x"`},
		{name: "bad series", mutate: func(q *Query) { q.ChartSeries = []string{"a b"} }, wantErr: `invalid column "a b"`},
		{name: "no columns", mutate: func(q *Query) { q.Columns = nil }, wantErr: "no columns"},
		{name: "negative limit", mutate: func(q *Query) { q.Limit = -1 }, wantErr: "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := DefaultQuery()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewFetcher(t *testing.T) {
	_, err := NewFetcher(nil, Query{})
	require.Error(t, err)

	adp, _ := newMockAdapter(t, core.PlaceholderQuestion)
	f, err := NewFetcher(adp, Query{Table: "speed_tests_results"})
	require.NoError(t, err)
	assert.Equal(t, "speed_tests_results", f.Query().Table)
	assert.Equal(t, DefaultColumns, f.Query().Columns)

	_, err = NewFetcher(adp, Query{Table: "bad name"})
	require.Error(t, err)
}

func TestFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name  string
		style core.PlaceholderStyle
		sql   string
	}{
		{
			name:  "question placeholders",
			style: core.PlaceholderQuestion,
			sql:   "SELECT END_DATE, AVG_UPLOAD_SPEED, AVG_DOWNLOAD_SPEED, AVG_PING FROM IOT.PINGER.SPEED_TESTS_RESULTS WHERE DEVICE_UUID = ? ORDER BY END_DATE DESC",
		},
		{
			name:  "dollar placeholders",
			style: core.PlaceholderDollar,
			sql:   "SELECT END_DATE, AVG_UPLOAD_SPEED, AVG_DOWNLOAD_SPEED, AVG_PING FROM IOT.PINGER.SPEED_TESTS_RESULTS WHERE DEVICE_UUID = $1 ORDER BY END_DATE DESC",
		},
	}

	newest := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp, mock := newMockAdapter(t, tt.style)
			mock.ExpectQuery(tt.sql).
				WithArgs(testDevice).
				WillReturnRows(sqlmock.NewRows(DefaultColumns).
					AddRow(newest, 40.5, 210.0, 12.0).
					AddRow(newest.Add(-time.Hour), 38.0, 190.25, nil))

			f, err := NewFetcher(adp, DefaultQuery(), WithLogger(testutil.NewTestLogger(t)))
			require.NoError(t, err)

			ds, err := f.Fetch(context.Background(), device.MustParse(testDevice))
			require.NoError(t, err)
			assert.Equal(t, DefaultColumns, ds.Names())
			assert.Equal(t, 2, ds.NumRows())

			ping, _ := ds.Column("AVG_PING")
			assert.Equal(t, dataset.TypeFloat, ping.Type)
			assert.Equal(t, []any{12.0, nil}, ping.Values)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFetcher_FetchError(t *testing.T) {
	adp, mock := newMockAdapter(t, core.PlaceholderQuestion)
	mock.ExpectQuery(DefaultQuery().SQL("?")).WillReturnError(errors.New("warehouse unavailable"))

	f, err := NewFetcher(adp, DefaultQuery(), WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), device.MustParse(testDevice))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warehouse unavailable")
	assert.Contains(t, err.Error(), testDevice)

	_, err = f.Fetch(context.Background(), device.ID{})
	require.Error(t, err)
}
