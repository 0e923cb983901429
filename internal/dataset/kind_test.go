package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestClassify(t *testing.T) {
	times := make([]time.Time, 12)
	texts := make([]string, 12)
	for i := range times {
		times[i] = time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC)
		texts[i] = string(rune('a' + i))
	}

	tests := []struct {
		name      string
		col       Column
		threshold int
		want      Kind
	}{
		{name: "nine distinct numbers", col: Float("n", seq(9)...), want: KindCategorical},
		{name: "ten distinct numbers", col: Float("n", seq(10)...), want: KindNumeric},
		{name: "repeated values", col: Float("n", append(seq(9), seq(9)...)...), want: KindCategorical},
		{name: "category storage", col: Category("c", texts...), want: KindCategorical},
		{name: "many times", col: Time("t", times...), want: KindTemporal},
		{name: "many strings", col: Text("s", texts...), want: KindTextual},
		{name: "empty column", col: Float("e"), want: KindCategorical},
		{name: "custom threshold", col: Float("n", seq(9)...), threshold: 5, want: KindNumeric},
		{name: "nulls not counted", col: Nullable("n", TypeFloat, 1.0, 2.0, nil), want: KindCategorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.col, tt.threshold))
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindCategorical, KindNumeric, KindTemporal, KindTextual} {
		got, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("bogus")
	assert.False(t, ok)
}
