package speedtest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartFormat selects the chart renderer.
type ChartFormat string

// Supported chart formats.
const (
	ChartSVG ChartFormat = "svg"
	ChartPNG ChartFormat = "png"
)

// Default chart size in pixels.
const (
	DefaultChartWidth  = 960
	DefaultChartHeight = 360
)

// ErrNoPoints is returned by RenderChart when no series has a point.
var ErrNoPoints = errors.New("no data points to chart")

var seriesColors = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
}

// RenderChart draws series as a time-series line chart.
// Zero width or height selects the default size. Nothing is written to w
// when rendering fails.
func RenderChart(w io.Writer, series []Series, format ChartFormat, width, height int) error {
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}

	minX, maxX, minY, maxY, ok := Bounds(series)
	if !ok {
		return ErrNoPoints
	}

	var cs []chart.Series
	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]time.Time, 0, len(s.Points)+1)
		ys := make([]float64, 0, len(s.Points)+1)
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		// go-chart needs two x values to build a range.
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(time.Second))
			ys = append(ys, ys[0])
		}
		col := seriesColors[i%len(seriesColors)]
		cs = append(cs, chart.TimeSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    3,
			},
		})
	}

	yAxis := chart.YAxis{}
	if minY == maxY {
		yAxis.Range = &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1}
	}

	xAxis := chart.XAxis{ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02")}
	if !minX.Before(maxX) {
		// Every point shares one instant; go-chart rejects a zero-width x range.
		xAxis.Range = &chart.ContinuousRange{
			Min: chart.TimeToFloat64(minX.Add(-time.Hour)),
			Max: chart.TimeToFloat64(maxX.Add(time.Hour)),
		}
		xAxis.ValueFormatter = chart.TimeValueFormatterWithFormat("2006-01-02 15:04")
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     cs,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	provider := chart.SVG
	switch format {
	case ChartSVG, "":
	case ChartPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("unknown chart format %q", format)
	}

	// Render into memory so a failed chart writes nothing to w.
	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
