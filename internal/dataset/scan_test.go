package dataset

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ts := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"END_DATE", "AVG_PING", "HOST", "OK", "EMPTY"}).
			AddRow(ts, int64(12), []byte("edge-1"), true, nil).
			AddRow(ts.Add(time.Hour), 13.5, "edge-2", false, nil).
			AddRow(nil, nil, nil, nil, nil),
	)

	rows, err := db.Query("SELECT * FROM speed")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	ds, err := FromRows(rows)
	require.NoError(t, err)
	require.Equal(t, 3, ds.NumRows())

	tests := []struct {
		column string
		typ    Type
		first  any
	}{
		{"END_DATE", TypeTime, ts},
		{"AVG_PING", TypeFloat, 12.0},
		{"HOST", TypeText, "edge-1"},
		{"OK", TypeCategory, "true"},
		{"EMPTY", TypeText, nil},
	}
	for _, tt := range tests {
		col, ok := ds.Column(tt.column)
		require.True(t, ok, tt.column)
		assert.Equal(t, tt.typ, col.Type, tt.column)
		assert.Equal(t, tt.first, col.Values[0], tt.column)
		assert.Nil(t, col.Values[2], tt.column)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFromRecords(t *testing.T) {
	ds, err := FromRecords(
		[]string{"AVG_PING", "END_DATE", "HOST"},
		[][]string{
			{"12.5", "2024-01-01 10:00:00", "a"},
			{"", "2024-01-02 10:00:00", "b"},
		},
	)
	require.NoError(t, err)

	ping, _ := ds.Column("AVG_PING")
	assert.Equal(t, TypeFloat, ping.Type)
	assert.Equal(t, []any{12.5, nil}, ping.Values)

	end, _ := ds.Column("END_DATE")
	assert.Equal(t, TypeText, end.Type)

	host, _ := ds.Column("HOST")
	assert.Equal(t, []any{"a", "b"}, host.Values)
}
