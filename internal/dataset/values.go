package dataset

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// NullKey is the reserved key of a null cell. It cannot collide with the key
// of any string value a warehouse returns for a text column.
const NullKey = "\x00"

// NullLabel is the display form of a null cell.
const NullLabel = "null"

// DisplayTimeLayout is the layout used when showing temporal values.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// IsNull reports whether v is a null cell. NaN floats count as null.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	default:
		return false
	}
}

// Key returns the canonical string key of a cell. Equal cells have equal keys.
func Key(v any) string {
	if IsNull(v) {
		return NullKey
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == 0 {
			x = 0 // -0 and 0 are one value
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// Label returns the human-readable form of a cell.
func Label(v any) string {
	if IsNull(v) {
		return NullLabel
	}
	if t, ok := v.(time.Time); ok {
		if t.Nanosecond() != 0 {
			return t.Format(DisplayTimeLayout + ".000")
		}
		return t.Format(DisplayTimeLayout)
	}
	return Key(v)
}

// LabelForKey returns the display label of a categorical key.
func LabelForKey(key string) string {
	if key == NullKey {
		return NullLabel
	}
	return key
}

// Distinct returns the keys of the column's values in first-seen order,
// including NullKey when the column holds nulls.
func Distinct(c Column) []string {
	seen := make(map[string]struct{}, len(c.Values))
	keys := make([]string, 0)
	for _, v := range c.Values {
		k := Key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// CountDistinct returns the number of distinct non-null values.
func CountDistinct(c Column) int {
	seen := make(map[string]struct{}, len(c.Values))
	for _, v := range c.Values {
		if IsNull(v) {
			continue
		}
		seen[Key(v)] = struct{}{}
	}
	return len(seen)
}

// FloatRange returns the minimum and maximum non-null values of a float column.
// ok is false when the column holds no non-null numbers.
func FloatRange(c Column) (lo, hi float64, ok bool) {
	for _, v := range c.Values {
		f, isFloat := v.(float64)
		if !isFloat || math.IsNaN(f) {
			continue
		}
		if !ok {
			lo, hi, ok = f, f, true
			continue
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	return lo, hi, ok
}

// TimeRange returns the earliest and latest non-null values of a time column.
func TimeRange(c Column) (lo, hi time.Time, ok bool) {
	for _, v := range c.Values {
		t, isTime := v.(time.Time)
		if !isTime {
			continue
		}
		if !ok {
			lo, hi, ok = t, t, true
			continue
		}
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	return lo, hi, ok
}
