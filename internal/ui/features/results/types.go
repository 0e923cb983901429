// Package results provides the Pinger results feature for the UI.
package results

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/filter"
)

// dateLayout is the wire format of date inputs.
const dateLayout = "2006-01-02"

// LookupSignals is the widget state posted on every interaction.
type LookupSignals struct {
	Device  string        `json:"device"`
	Filters FilterSignals `json:"filters"`
}

// FilterSignals mirrors the filter controls.
type FilterSignals struct {
	Enabled bool                     `json:"enabled"`
	Columns []string                 `json:"columns"`
	Values  map[string]WidgetSignals `json:"values"`
}

// WidgetSignals is the state of one column's widget. Only the fields of
// Kind are meaningful.
type WidgetSignals struct {
	Kind       string   `json:"kind"`
	Categories []string `json:"categories,omitempty"`
	Min        Number   `json:"min"`
	Max        Number   `json:"max"`
	Start      string   `json:"start,omitempty"`
	End        string   `json:"end,omitempty"`
	Pattern    string   `json:"pattern"`
}

// Number is a signal value that may arrive as a JSON number or a numeric
// string. Empty and null are unset.
type Number struct {
	Value float64
	Valid bool
}

// NewNumber returns a set Number.
func NewNumber(v float64) Number { return Number{Value: v, Valid: true} }

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = Number{}
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		*n = Number{}
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	*n = NewNumber(f)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n Number) ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// FilterConfig converts the posted widget state into a filter configuration.
// Widgets whose state cannot be read fall back to their default.
func (s LookupSignals) FilterConfig(threshold int) filter.Config {
	cfg := filter.Config{
		Enabled:   s.Filters.Enabled,
		Columns:   s.Filters.Columns,
		Threshold: threshold,
	}
	for _, col := range s.Filters.Columns {
		w, ok := s.Filters.Values[SignalKey(col)]
		if !ok {
			continue
		}
		spec, ok := w.Spec()
		if !ok {
			continue
		}
		if cfg.Specs == nil {
			cfg.Specs = make(map[string]filter.Spec)
		}
		cfg.Specs[col] = spec
	}
	return cfg
}

// Spec returns the filter spec of the widget state. ok is false when the
// kind is unknown.
func (w WidgetSignals) Spec() (filter.Spec, bool) {
	kind, ok := dataset.ParseKind(w.Kind)
	if !ok {
		return filter.Spec{}, false
	}
	spec := filter.Spec{Kind: kind}
	switch kind {
	case dataset.KindCategorical:
		if w.Categories == nil {
			return spec, true
		}
		spec.Allowed = make([]string, 0, len(w.Categories))
		for _, v := range w.Categories {
			spec.Allowed = append(spec.Allowed, decodeKey(v))
		}
	case dataset.KindNumeric:
		spec.Min, spec.Max = w.Min.ptr(), w.Max.ptr()
	case dataset.KindTemporal:
		spec.Start, spec.End = parseDate(w.Start), parseDate(w.End)
	case dataset.KindTextual:
		spec.Pattern = w.Pattern
	}
	return spec, true
}

// widgetSignals returns the widget state that reproduces spec.
func widgetSignals(spec filter.Spec) WidgetSignals {
	w := WidgetSignals{Kind: spec.Kind.String()}
	switch spec.Kind {
	case dataset.KindCategorical:
		w.Categories = make([]string, 0, len(spec.Allowed))
		for _, k := range spec.Allowed {
			w.Categories = append(w.Categories, encodeKey(k))
		}
	case dataset.KindNumeric:
		if spec.Min != nil {
			w.Min = NewNumber(*spec.Min)
		}
		if spec.Max != nil {
			w.Max = NewNumber(*spec.Max)
		}
	case dataset.KindTemporal:
		w.Start, w.End = formatDate(spec.Start), formatDate(spec.End)
	case dataset.KindTextual:
		w.Pattern = spec.Pattern
	}
	return w
}

// encodeKey makes a category key safe for an HTML option value.
// plainSignalKey matches column names usable as a datastar signal key as-is.
var plainSignalKey = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// escapedPrefix starts every escaped signal key. Plain names never start
// with it, so escaped and plain keys cannot collide.
const escapedPrefix = "x_"

// SignalKey returns the key of column under filters.values. Names holding
// characters a signal path cannot carry, like dots, dashes or spaces, are
// hex encoded.
func SignalKey(column string) string {
	if plainSignalKey.MatchString(column) && !strings.HasPrefix(column, escapedPrefix) {
		return column
	}
	return escapedPrefix + hex.EncodeToString([]byte(column))
}

func encodeKey(key string) string {
	return url.QueryEscape(key)
}

func decodeKey(value string) string {
	key, err := url.QueryUnescape(value)
	if err != nil {
		return value
	}
	return key
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
