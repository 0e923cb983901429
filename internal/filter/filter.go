package filter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
)

// predicate reports whether a cell passes a column's spec.
type predicate func(v any) bool

// Filter returns the rows of ds matching cfg. It is Run(ds, cfg).Data.
func Filter(ds *dataset.Dataset, cfg Config) *dataset.Dataset {
	return Run(ds, cfg).Data
}

// Run filters ds and describes the widget for every selected column.
// With cfg.Enabled false the input is returned unchanged and no widgets are built.
func Run(ds *dataset.Dataset, cfg Config) Result {
	if !cfg.Enabled || ds == nil {
		return Result{Data: ds}
	}

	work := dataset.Normalize(ds.Clone())

	var (
		res   Result
		preds []predicate
		cols  []dataset.Column
		seen  = make(map[string]bool, len(cfg.Columns))
	)
	for _, name := range cfg.Columns {
		if seen[name] {
			continue
		}
		seen[name] = true

		col, ok := work.Column(name)
		if !ok {
			res.Notes = append(res.Notes, fmt.Sprintf("column %q does not exist and was skipped", name))
			continue
		}

		spec, edited := cfg.Specs[name]
		w, pred, note := build(col, dataset.Classify(col, cfg.Threshold), spec, edited)
		res.Widgets = append(res.Widgets, w)
		if note != "" {
			res.Notes = append(res.Notes, note)
		}
		if pred != nil {
			preds = append(preds, pred)
			cols = append(cols, col)
		}
	}

	if len(preds) == 0 {
		res.Data = work
		return res
	}

	keep := make([]int, 0, work.NumRows())
rows:
	for r := 0; r < work.NumRows(); r++ {
		for i, pred := range preds {
			if !pred(cols[i].Values[r]) {
				continue rows
			}
		}
		keep = append(keep, r)
	}
	res.Data = work.Take(keep)
	return res
}

// build returns the widget for col and the predicate of its effective spec.
// A nil predicate means the column filters nothing.
func build(col dataset.Column, kind dataset.Kind, spec Spec, edited bool) (Widget, predicate, string) {
	var note string
	if edited && spec.Kind != kind {
		if converted, convNote, ok := categoriesFor(col, kind, spec); ok {
			spec, note = converted, convNote
		} else {
			note = fmt.Sprintf("filter for %q expects a %s value, using the default", col.Name, kind)
			edited = false
		}
	}

	w := Widget{Column: col.Name, Kind: kind}
	var pred predicate
	switch kind {
	case dataset.KindCategorical:
		pred = buildCategorical(&w, col, spec, edited)
	case dataset.KindNumeric:
		pred = buildNumeric(&w, col, spec, edited)
	case dataset.KindTemporal:
		pred = buildTemporal(&w, col, spec, edited)
	default:
		var patternNote string
		pred, patternNote = buildTextual(&w, spec, edited)
		if patternNote != "" {
			note = patternNote
		}
	}
	return w, pred, note
}

func buildCategorical(w *Widget, col dataset.Column, spec Spec, edited bool) predicate {
	keys := dataset.Distinct(col)
	w.Empty = dataset.CountDistinct(col) == 0
	w.Options = make([]Option, len(keys))
	for i, k := range keys {
		w.Options[i] = Option{Key: k, Label: dataset.LabelForKey(k)}
	}
	w.Default = Categories(keys...)
	w.Effective = w.Default

	if !edited || spec.Allowed == nil {
		return nil
	}
	w.Effective = Categories(spec.Allowed...)

	allowed := make(map[string]struct{}, len(spec.Allowed))
	for _, k := range spec.Allowed {
		allowed[k] = struct{}{}
	}
	return func(v any) bool {
		_, ok := allowed[dataset.Key(v)]
		return ok
	}
}

func buildNumeric(w *Widget, col dataset.Column, spec Spec, edited bool) predicate {
	lo, hi, ok := dataset.FloatRange(col)
	if !ok {
		w.Empty = true
		w.Default = Spec{Kind: dataset.KindNumeric}
		w.Effective = w.Default
		return nil
	}
	w.Min, w.Max, w.Step = lo, hi, (hi-lo)/100
	w.Default = Range(lo, hi)

	minV, maxV := lo, hi
	if edited {
		if spec.Min != nil {
			minV = *spec.Min
		}
		if spec.Max != nil {
			maxV = *spec.Max
		}
	}
	w.Effective = Range(minV, maxV)

	if minV <= lo && maxV >= hi {
		return nil
	}
	return func(v any) bool {
		f, ok := v.(float64)
		if !ok || dataset.IsNull(v) {
			return false
		}
		return f >= minV && f <= maxV
	}
}

func buildTemporal(w *Widget, col dataset.Column, spec Spec, edited bool) predicate {
	lo, hi, ok := dataset.TimeRange(col)
	if !ok {
		w.Empty = true
		w.Default = Spec{Kind: dataset.KindTemporal}
		w.Effective = w.Default
		return nil
	}
	first, last := Day(lo), Day(hi)
	w.Start, w.End = first, last
	w.Default = Days(first, last)
	w.Effective = w.Default

	if !edited {
		return nil
	}
	if spec.Start == nil || spec.End == nil {
		w.Effective = spec
		return nil
	}
	start, end := Day(*spec.Start), Day(*spec.End)
	w.Effective = Days(start, end)

	if !start.After(first) && !end.Before(last) {
		return nil
	}
	return func(v any) bool {
		t, ok := v.(time.Time)
		if !ok {
			return false
		}
		d := Day(t)
		return !d.Before(start) && !d.After(end)
	}
}

func buildTextual(w *Widget, spec Spec, edited bool) (predicate, string) {
	w.Default = Pattern("")
	w.Effective = w.Default
	if !edited || spec.Pattern == "" {
		return nil, ""
	}
	w.Effective = Pattern(spec.Pattern)

	match, note := matcher(spec.Pattern, w.Column)
	return func(v any) bool {
		if dataset.IsNull(v) {
			return false
		}
		return match(dataset.Key(v))
	}, note
}

// matcher compiles pattern, falling back to a substring match with a note
// when it is not a valid regular expression.
func matcher(pattern, column string) (func(string) bool, string) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		note := fmt.Sprintf("%q is not a valid regular expression for %q, matching it as plain text", pattern, column)
		return func(s string) bool { return strings.Contains(s, pattern) }, note
	}
	return re.MatchString, ""
}

// categoriesFor turns a range or pattern given for a categorical column into
// the set of observed keys it matches. Small result sets classify most
// columns as categorical, and a range still has to narrow them.
// It reports false when spec cannot be expressed as a key set.
func categoriesFor(col dataset.Column, kind dataset.Kind, spec Spec) (Spec, string, bool) {
	if kind != dataset.KindCategorical {
		return Spec{}, "", false
	}
	all := Spec{Kind: dataset.KindCategorical}

	var (
		match predicate
		note  string
	)
	switch spec.Kind {
	case dataset.KindNumeric:
		lo, hi, ok := dataset.FloatRange(col)
		if !ok {
			return Spec{}, "", false
		}
		minV, maxV := lo, hi
		if spec.Min != nil {
			minV = *spec.Min
		}
		if spec.Max != nil {
			maxV = *spec.Max
		}
		if minV <= lo && maxV >= hi {
			return all, "", true
		}
		match = func(v any) bool {
			f, ok := v.(float64)
			return ok && !dataset.IsNull(v) && f >= minV && f <= maxV
		}
	case dataset.KindTemporal:
		lo, hi, ok := dataset.TimeRange(col)
		if !ok {
			return Spec{}, "", false
		}
		if spec.Start == nil || spec.End == nil {
			return all, "", true
		}
		start, end := Day(*spec.Start), Day(*spec.End)
		if !start.After(Day(lo)) && !end.Before(Day(hi)) {
			return all, "", true
		}
		match = func(v any) bool {
			t, ok := v.(time.Time)
			if !ok {
				return false
			}
			d := Day(t)
			return !d.Before(start) && !d.After(end)
		}
	case dataset.KindTextual:
		if spec.Pattern == "" {
			return all, "", true
		}
		var m func(string) bool
		m, note = matcher(spec.Pattern, col.Name)
		match = func(v any) bool {
			return !dataset.IsNull(v) && m(dataset.Key(v))
		}
	default:
		return Spec{}, "", false
	}

	keys := make([]string, 0)
	seen := make(map[string]bool)
	for _, v := range col.Values {
		k := dataset.Key(v)
		if !seen[k] && match(v) {
			keys = append(keys, k)
		}
		seen[k] = true
	}
	return Categories(keys...), note, true
}

// Day truncates t to midnight of its wall-clock date, dropping the zone.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
