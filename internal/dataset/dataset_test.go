package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cols    []Column
		wantErr string
		rows    int
	}{
		{name: "empty", rows: 0},
		{
			name: "aligned",
			cols: []Column{Float("a", 1, 2), Text("b", "x", "y")},
			rows: 2,
		},
		{
			name:    "misaligned",
			cols:    []Column{Float("a", 1, 2), Text("b", "x")},
			wantErr: `column "b" has 1 rows, expected 2`,
		},
		{
			name:    "duplicate",
			cols:    []Column{Float("a", 1), Float("a", 2)},
			wantErr: `duplicate column "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := New(tt.cols...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, ds.NumRows())
		})
	}
}

func TestDataset_Accessors(t *testing.T) {
	ds := MustNew(Float("speed", 1.5, 2.5), Text("host", "a", "b"))

	assert.Equal(t, []string{"speed", "host"}, ds.Names())
	assert.Equal(t, 2, ds.NumColumns())
	assert.Equal(t, []any{2.5, "b"}, ds.Row(1))

	col, ok := ds.Column("host")
	require.True(t, ok)
	assert.Equal(t, TypeText, col.Type)

	_, ok = ds.Column("missing")
	assert.False(t, ok)

	var nilDS *Dataset
	assert.Equal(t, 0, nilDS.NumRows())
	assert.Nil(t, nilDS.Names())
}

func TestDataset_CloneIsIndependent(t *testing.T) {
	ds := MustNew(Float("a", 1, 2, 3))
	cp := ds.Clone()

	cp.Columns()[0].Values[0] = 99.0

	col, _ := ds.Column("a")
	assert.Equal(t, 1.0, col.Values[0])
}

func TestDataset_Take(t *testing.T) {
	ds := MustNew(Float("a", 10, 20, 30), Text("b", "x", "y", "z"))

	out := ds.Take([]int{2, 0})
	assert.Equal(t, 2, out.NumRows())
	assert.Equal(t, []any{30.0, "z"}, out.Row(0))
	assert.Equal(t, []any{10.0, "x"}, out.Row(1))
	assert.Equal(t, 3, ds.NumRows())

	empty := ds.Take(nil)
	assert.Equal(t, 0, empty.NumRows())
	assert.Equal(t, ds.Names(), empty.Names())
}

func TestKeyAndLabel(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		value any
		key   string
		label string
	}{
		{nil, NullKey, NullLabel},
		{"abc", "abc", "abc"},
		{1.5, "1.5", "1.5"},
		{3.0, "3", "3"},
		{ts, "2024-03-01T12:30:00Z", "2024-03-01 12:30:00"},
		{true, "true", "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, Key(tt.value))
		assert.Equal(t, tt.label, Label(tt.value))
	}
	assert.Equal(t, NullLabel, LabelForKey(NullKey))
}

func TestDistinct(t *testing.T) {
	col := Nullable("c", TypeText, "b", "a", nil, "b", "a")

	assert.Equal(t, []string{"b", "a", NullKey}, Distinct(col))
	assert.Equal(t, 2, CountDistinct(col))
}

func TestDistinct_NegativeZero(t *testing.T) {
	col := Float("AVG_PING", 0, math.Copysign(0, -1), 1)

	assert.Equal(t, "0", Key(math.Copysign(0, -1)))
	assert.Equal(t, []string{"0", "1"}, Distinct(col))
	assert.Equal(t, 2, CountDistinct(col))
}

func TestRanges(t *testing.T) {
	lo, hi, ok := FloatRange(Nullable("f", TypeFloat, 3.0, nil, -1.0, 7.5))
	require.True(t, ok)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.5, hi)

	_, _, ok = FloatRange(Float("empty"))
	assert.False(t, ok)

	a := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	tlo, thi, ok := TimeRange(Nullable("t", TypeTime, b, nil, a))
	require.True(t, ok)
	assert.Equal(t, a, tlo)
	assert.Equal(t, b, thi)
}
