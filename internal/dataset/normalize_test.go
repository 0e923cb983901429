package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{in: "2024-03-01T10:00:00Z", ok: true, want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-03-01 10:00:00", ok: true, want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-03-01 10:00:00.250", ok: true, want: time.Date(2024, 3, 1, 10, 0, 0, 250_000_000, time.UTC)},
		{in: "2024-03-01", ok: true, want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2024/03/01", ok: true, want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "01/03/2024 2:15pm", ok: true, want: time.Date(2024, 3, 1, 14, 15, 0, 0, time.UTC)},
		{in: "  2024-03-01T10:00  ", ok: true, want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{in: "1700000000"},
		{in: "12.5"},
		{in: "router-7"},
		{in: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTime(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestParseTime_KeepsOffset(t *testing.T) {
	got, ok := ParseTime("2024-03-01T10:00:00+02:00")
	require.True(t, ok)
	_, offset := got.Zone()
	assert.Equal(t, 2*3600, offset)
	assert.Equal(t, 10, Naive(got).Hour())
	assert.Equal(t, time.UTC, Naive(got).Location())
}

func TestNormalize(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	ds := MustNew(
		Nullable("when", TypeText, "2024-03-01T10:00:00+02:00", nil, "2024-03-02 08:00"),
		Text("host", "a", "2024-01-01", "c"),
		Time("zoned", time.Date(2024, 1, 1, 9, 0, 0, 0, cet), time.Date(2024, 1, 1, 9, 0, 0, 0, cet), time.Date(2024, 1, 1, 9, 0, 0, 0, cet)),
		Nullable("blank", TypeText, nil, nil, nil),
		Text("ids", "1", "2", "3"),
	)

	out := Normalize(ds)

	when, _ := out.Column("when")
	assert.Equal(t, TypeTime, when.Type)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), when.Values[0])
	assert.Nil(t, when.Values[1])

	host, _ := out.Column("host")
	assert.Equal(t, TypeText, host.Type)

	zoned, _ := out.Column("zoned")
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), zoned.Values[0])

	blank, _ := out.Column("blank")
	assert.Equal(t, TypeText, blank.Type)

	ids, _ := out.Column("ids")
	assert.Equal(t, TypeText, ids.Type)

	orig, _ := ds.Column("when")
	assert.Equal(t, TypeText, orig.Type, "input must not be modified")
	origZoned, _ := ds.Column("zoned")
	assert.Equal(t, cet, origZoned.Values[0].(time.Time).Location())
}
