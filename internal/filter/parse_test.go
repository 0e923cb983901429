package filter

import (
	"testing"
	"time"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in      string
		column  string
		want    Spec
		wantErr bool
	}{
		{in: "HOST=~^edge", column: "HOST", want: Pattern("^edge")},
		{in: "AVG_PING=10..40", column: "AVG_PING", want: Range(10, 40)},
		{in: "AVG_PING=..40", column: "AVG_PING", want: Spec{Kind: dataset.KindNumeric, Max: float(40)}},
		{in: "AVG_PING=10..", column: "AVG_PING", want: Spec{Kind: dataset.KindNumeric, Min: float(10)}},
		{
			in:     "END_DATE=2024-05-01..2024-05-31",
			column: "END_DATE",
			want:   Days(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)),
		},
		{in: "REGION=eu, us", column: "REGION", want: Categories("eu", "us")},
		{in: "REGION=eu,null", column: "REGION", want: Categories("eu", dataset.NullKey)},
		{in: "REGION=", column: "REGION", want: Categories()},
		{in: "no-equals", wantErr: true},
		{in: "=value", wantErr: true},
		{in: "AVG_PING=..", wantErr: true},
		{in: "END_DATE=2024-05-01..", wantErr: true},
		{in: "X=1..2024-05-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			column, spec, err := ParseAssignment(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.column, column)
			assert.Equal(t, tt.want, spec)
		})
	}
}

func TestParseAssignments(t *testing.T) {
	cfg, err := ParseAssignments([]string{"REGION=eu", "AVG_PING=1..2", "REGION=us"}, 4)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, []string{"REGION", "AVG_PING"}, cfg.Columns)
	assert.Equal(t, Categories("us"), cfg.Specs["REGION"])
	assert.Equal(t, 4, cfg.Threshold)

	cfg, err = ParseAssignments(nil, 0)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)

	_, err = ParseAssignments([]string{"bad"}, 0)
	require.Error(t, err)
}
