// Package speedtest reads a device's network speed-test results from the
// configured warehouse and shapes them for charting.
package speedtest

import (
	"fmt"
	"regexp"
	"strings"
)

// Default names of the results table and its columns.
const (
	DefaultTable           = "IOT.PINGER.SPEED_TESTS_RESULTS"
	DefaultDeviceColumn    = "DEVICE_UUID"
	DefaultTimestampColumn = "END_DATE"
)

var (
	// DefaultColumns is the projection of a lookup.
	DefaultColumns = []string{"END_DATE", "AVG_UPLOAD_SPEED", "AVG_DOWNLOAD_SPEED", "AVG_PING"}

	// DefaultChartSeries are the columns plotted against the timestamp.
	DefaultChartSeries = []string{"AVG_UPLOAD_SPEED", "AVG_DOWNLOAD_SPEED"}
)

// identifierPattern matches plain SQL names, optionally qualified with dots.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)*$`)

// Query describes the read-only lookup of one device's results.
type Query struct {
	Table           string
	DeviceColumn    string
	TimestampColumn string
	Columns         []string
	ChartSeries     []string
	// Limit caps the number of rows; 0 means no limit.
	Limit int
}

// DefaultQuery returns the lookup against the pinger results table.
func DefaultQuery() Query {
	return Query{
		Table:           DefaultTable,
		DeviceColumn:    DefaultDeviceColumn,
		TimestampColumn: DefaultTimestampColumn,
		Columns:         append([]string(nil), DefaultColumns...),
		ChartSeries:     append([]string(nil), DefaultChartSeries...),
	}
}

// WithDefaults fills unset fields from DefaultQuery.
func (q Query) WithDefaults() Query {
	d := DefaultQuery()
	if q.Table == "" {
		q.Table = d.Table
	}
	if q.DeviceColumn == "" {
		q.DeviceColumn = d.DeviceColumn
	}
	if q.TimestampColumn == "" {
		q.TimestampColumn = d.TimestampColumn
	}
	if len(q.Columns) == 0 {
		q.Columns = d.Columns
	}
	if q.ChartSeries == nil {
		q.ChartSeries = d.ChartSeries
	}
	return q
}

// Validate rejects names that are not plain identifiers, since they are
// interpolated into the SQL text.
func (q Query) Validate() error {
	names := []struct{ what, name string }{
		{"table", q.Table},
		{"device column", q.DeviceColumn},
		{"timestamp column", q.TimestampColumn},
	}
	for _, n := range names {
		if !identifierPattern.MatchString(n.name) {
			return fmt.Errorf("invalid %s %q", n.what, n.name)
		}
	}
	if len(q.Columns) == 0 {
		return fmt.Errorf("no columns selected")
	}
	for _, c := range append(append([]string(nil), q.Columns...), q.ChartSeries...) {
		if !identifierPattern.MatchString(c) {
			return fmt.Errorf("invalid column %q", c)
		}
	}
	if q.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", q.Limit)
	}
	return nil
}

// SQL renders the lookup with the given bind placeholder for the device.
func (q Query) SQL(placeholder string) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(q.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(q.Table)
	sb.WriteString(" WHERE ")
	sb.WriteString(q.DeviceColumn)
	sb.WriteString(" = ")
	sb.WriteString(placeholder)
	sb.WriteString(" ORDER BY ")
	sb.WriteString(q.TimestampColumn)
	sb.WriteString(" DESC")
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}
	return sb.String()
}
