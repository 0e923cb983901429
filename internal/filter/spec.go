package filter

import (
	"time"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
)

// Spec is the viewer's constraint on one column. Only the fields matching
// Kind are read.
type Spec struct {
	Kind dataset.Kind `json:"kind"`

	// Allowed holds the keys (see dataset.Key) of the categorical values that
	// pass. A nil slice selects every observed value; an empty one selects none.
	Allowed []string `json:"allowed,omitempty"`

	// Min and Max bound a numeric column. A nil bound is the observed one.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// Start and End are the first and last day of a temporal range.
	// Both must be set for the range to apply.
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`

	// Pattern is a regular expression searched for in the cell text.
	Pattern string `json:"pattern,omitempty"`
}

// Categories returns a categorical spec allowing the given keys.
func Categories(keys ...string) Spec {
	allowed := make([]string, len(keys))
	copy(allowed, keys)
	return Spec{Kind: dataset.KindCategorical, Allowed: allowed}
}

// Range returns a numeric spec for the closed interval [lo, hi].
func Range(lo, hi float64) Spec {
	return Spec{Kind: dataset.KindNumeric, Min: &lo, Max: &hi}
}

// Days returns a temporal spec covering the days from start through end.
func Days(start, end time.Time) Spec {
	return Spec{Kind: dataset.KindTemporal, Start: &start, End: &end}
}

// Pattern returns a textual spec searching for expr.
func Pattern(expr string) Spec {
	return Spec{Kind: dataset.KindTextual, Pattern: expr}
}

// Config is the complete widget state for one render.
type Config struct {
	// Enabled mirrors the "Add filters" toggle. When false Filter is the identity.
	Enabled bool `json:"enabled"`

	// Columns is the selection in display order. Unknown names are skipped.
	Columns []string `json:"columns,omitempty"`

	// Specs holds per-column edits. A missing entry uses the column's default.
	Specs map[string]Spec `json:"specs,omitempty"`

	// Threshold is the categorical cardinality threshold; 0 means
	// dataset.DefaultCategoricalThreshold.
	Threshold int `json:"threshold,omitempty"`
}

// Option is one choice of a categorical widget.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Widget describes the control the UI renders for one selected column,
// bound to the column's observed values.
type Widget struct {
	Column string       `json:"column"`
	Kind   dataset.Kind `json:"kind"`

	// Empty is set when the column holds no non-null values; range widgets
	// then carry no bounds.
	Empty bool `json:"empty,omitempty"`

	Options []Option `json:"options,omitempty"`

	Min  float64 `json:"min,omitempty"`
	Max  float64 `json:"max,omitempty"`
	Step float64 `json:"step,omitempty"`

	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`

	Default   Spec `json:"default"`
	Effective Spec `json:"effective"`
}

// Result is the outcome of Run.
type Result struct {
	Data    *dataset.Dataset
	Widgets []Widget
	Notes   []string
}
