package dataset

import "time"

// Normalize returns a dataset in which every text column whose non-null
// values all parse as timestamps has become a time column, and every time
// column holds offset-naive values. A column that fails to parse keeps its
// type; this is never an error. The input is not modified.
func Normalize(d *Dataset) *Dataset {
	if d == nil {
		return nil
	}
	out := d
	for i, col := range d.columns {
		var next Column
		var changed bool
		switch col.Type {
		case TypeText:
			next, changed = upgradeTemporal(col)
		case TypeTime:
			next, changed = stripZones(col)
		}
		if changed {
			out = out.replace(i, next)
		}
	}
	return out
}

// upgradeTemporal parses every non-null value of a text column. A column
// with no non-null values is left as text.
func upgradeTemporal(col Column) (Column, bool) {
	values := make([]any, len(col.Values))
	parsed := 0
	for i, v := range col.Values {
		if IsNull(v) {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return col, false
		}
		t, ok := ParseTime(s)
		if !ok {
			return col, false
		}
		values[i] = Naive(t)
		parsed++
	}
	if parsed == 0 {
		return col, false
	}
	return Column{Name: col.Name, Type: TypeTime, Values: values}, true
}

func stripZones(col Column) (Column, bool) {
	needed := false
	for _, v := range col.Values {
		if t, ok := v.(time.Time); ok && t.Location() != time.UTC {
			needed = true
			break
		}
	}
	if !needed {
		return col, false
	}
	values := make([]any, len(col.Values))
	for i, v := range col.Values {
		if t, ok := v.(time.Time); ok {
			values[i] = Naive(t)
		} else {
			values[i] = v
		}
	}
	return Column{Name: col.Name, Type: TypeTime, Values: values}, true
}
