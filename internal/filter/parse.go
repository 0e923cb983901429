package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
)

// ParseAssignment parses a command-line filter of the form column=value.
//
//	HOST=~^edge-        textual pattern
//	AVG_PING=10..40     numeric range, either bound may be omitted
//	END_DATE=2024-05-01..2024-05-31
//	                    temporal day range
//	STATUS=ok,degraded  categorical set; the word null selects null cells
func ParseAssignment(s string) (string, Spec, error) {
	column, value, ok := strings.Cut(s, "=")
	column = strings.TrimSpace(column)
	if !ok || column == "" {
		return "", Spec{}, fmt.Errorf("invalid filter %q: expected column=value", s)
	}

	if pattern, isPattern := strings.CutPrefix(value, "~"); isPattern {
		return column, Pattern(pattern), nil
	}

	if lo, hi, isRange := strings.Cut(value, ".."); isRange {
		spec, err := parseRange(strings.TrimSpace(lo), strings.TrimSpace(hi))
		if err != nil {
			return "", Spec{}, fmt.Errorf("invalid filter %q: %w", s, err)
		}
		return column, spec, nil
	}

	var keys []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == dataset.NullLabel {
			part = dataset.NullKey
		}
		keys = append(keys, part)
	}
	return column, Categories(keys...), nil
}

func parseRange(lo, hi string) (Spec, error) {
	if lo == "" && hi == "" {
		return Spec{}, fmt.Errorf("range needs at least one bound")
	}

	spec := Spec{Kind: dataset.KindNumeric}
	numeric := true
	if lo != "" {
		f, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			numeric = false
		} else {
			spec.Min = &f
		}
	}
	if hi != "" && numeric {
		f, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			numeric = false
		} else {
			spec.Max = &f
		}
	}
	if numeric {
		return spec, nil
	}

	start, okStart := dataset.ParseTime(lo)
	end, okEnd := dataset.ParseTime(hi)
	if !okStart || !okEnd {
		return Spec{}, fmt.Errorf("range bounds must both be numbers or both be dates")
	}
	return Days(dataset.Naive(start), dataset.Naive(end)), nil
}

// ParseAssignments builds an enabled Config from command-line filters,
// selecting the columns in the order they are given.
func ParseAssignments(assignments []string, threshold int) (Config, error) {
	cfg := Config{
		Enabled:   len(assignments) > 0,
		Specs:     make(map[string]Spec, len(assignments)),
		Threshold: threshold,
	}
	for _, a := range assignments {
		column, spec, err := ParseAssignment(a)
		if err != nil {
			return Config{}, err
		}
		if _, dup := cfg.Specs[column]; !dup {
			cfg.Columns = append(cfg.Columns, column)
		}
		cfg.Specs[column] = spec
	}
	return cfg, nil
}
