package speedtest

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
)

// Point is one sample of a series.
type Point struct {
	X time.Time
	Y float64
}

// Series is one line of the results chart.
type Series struct {
	Column string
	Label  string
	Points []Point
}

var titleCaser = cases.Title(language.English)

// Label turns a column name such as AVG_UPLOAD_SPEED into "Avg Upload Speed".
func Label(column string) string {
	return titleCaser.String(strings.ReplaceAll(strings.ToLower(column), "_", " "))
}

// Chart builds one series per chart column of q, plotted against the
// timestamp column in ascending time order. Rows where either value is null
// are skipped. Columns missing from ds produce no series.
func Chart(ds *dataset.Dataset, q Query) []Series {
	q = q.WithDefaults()
	ds = dataset.Normalize(ds)

	xs, ok := ds.Column(q.TimestampColumn)
	if !ok || xs.Type != dataset.TypeTime {
		return nil
	}

	var out []Series
	for _, name := range q.ChartSeries {
		ys, ok := ds.Column(name)
		if !ok || ys.Type != dataset.TypeFloat {
			continue
		}
		s := Series{Column: name, Label: Label(name)}
		for i, x := range xs.Values {
			t, okX := x.(time.Time)
			y, okY := ys.Values[i].(float64)
			if !okX || !okY || dataset.IsNull(y) {
				continue
			}
			s.Points = append(s.Points, Point{X: t, Y: y})
		}
		sort.SliceStable(s.Points, func(a, b int) bool {
			return s.Points[a].X.Before(s.Points[b].X)
		})
		out = append(out, s)
	}
	return out
}

// Bounds returns the extent of all points in series. ok is false when there
// are no points.
func Bounds(series []Series) (minX, maxX time.Time, minY, maxY float64, ok bool) {
	for _, s := range series {
		for _, p := range s.Points {
			if !ok {
				minX, maxX, minY, maxY, ok = p.X, p.X, p.Y, p.Y, true
				continue
			}
			if p.X.Before(minX) {
				minX = p.X
			}
			if p.X.After(maxX) {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return minX, maxX, minY, maxY, ok
}
