package dataset

import (
	"database/sql"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// numericTypeNames are database type names whose string values are decimals.
var numericTypeNames = []string{"DECIMAL", "NUMERIC", "NUMBER", "FIXED", "REAL", "FLOAT", "DOUBLE", "INT"}

// FromRows scans a result set into a Dataset. It does not close rows.
func FromRows(rows *sql.Rows) (*Dataset, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	raw := make([][]any, len(types))
	for rows.Next() {
		dest := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range dest {
			raw[i] = append(raw[i], copyBytes(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	cols := make([]Column, len(types))
	for i, ct := range types {
		cols[i] = buildColumn(ct.Name(), isNumericType(ct.DatabaseTypeName()), raw[i])
	}
	return New(cols...)
}

// FromRecords builds a text-typed dataset from a header and string records,
// as read from a CSV file. Columns whose values all parse as numbers become
// float columns; empty cells are null.
func FromRecords(header []string, records [][]string) (*Dataset, error) {
	cols := make([]Column, len(header))
	for c, name := range header {
		raw := make([]any, len(records))
		for r, rec := range records {
			if c < len(rec) && rec[c] != "" {
				raw[r] = rec[c]
			}
		}
		cols[c] = buildColumn(name, true, raw)
	}
	return New(cols...)
}

func isNumericType(name string) bool {
	upper := strings.ToUpper(name)
	for _, n := range numericTypeNames {
		if strings.Contains(upper, n) {
			return true
		}
	}
	return false
}

// sql.RawBytes style buffers may be reused by the driver.
func copyBytes(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

type floater interface {
	Float64() float64
}

// toFloat converts numeric driver values. Strings convert only when
// numericStrings is set.
func toFloat(v any, numericStrings bool) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint8:
		return float64(x), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, true
	case floater:
		return x.Float64(), true
	case string:
		if !numericStrings {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// buildColumn chooses the storage type from the non-null values: all numbers
// gives float, all times gives time, all bools gives category, otherwise text.
func buildColumn(name string, numericStrings bool, raw []any) Column {
	allFloat, allTime, allBool := true, true, true
	nonNull := 0
	for _, v := range raw {
		if v == nil {
			continue
		}
		nonNull++
		if _, ok := toFloat(v, numericStrings); !ok {
			allFloat = false
		}
		if _, ok := v.(time.Time); !ok {
			allTime = false
		}
		if _, ok := v.(bool); !ok {
			allBool = false
		}
	}

	values := make([]any, len(raw))
	switch {
	case nonNull == 0:
		return Column{Name: name, Type: TypeText, Values: values}
	case allTime:
		copy(values, raw)
		return Column{Name: name, Type: TypeTime, Values: values}
	case allBool:
		for i, v := range raw {
			if v != nil {
				values[i] = strconv.FormatBool(v.(bool))
			}
		}
		return Column{Name: name, Type: TypeCategory, Values: values}
	case allFloat:
		for i, v := range raw {
			if v != nil {
				values[i], _ = toFloat(v, numericStrings)
			}
		}
		return Column{Name: name, Type: TypeFloat, Values: values}
	default:
		for i, v := range raw {
			if v != nil {
				values[i] = textValue(v)
			}
		}
		return Column{Name: name, Type: TypeText, Values: values}
	}
}

func textValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
