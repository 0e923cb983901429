package speedtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, "Avg Upload Speed", Label("AVG_UPLOAD_SPEED"))
	assert.Equal(t, "Ping", Label("ping"))
}

func TestChart(t *testing.T) {
	ds := dataset.MustNew(
		dataset.Nullable("END_DATE", dataset.TypeText, "2024-05-03 10:00:00", "2024-05-01 10:00:00", "2024-05-02 10:00:00"),
		dataset.Nullable("AVG_UPLOAD_SPEED", dataset.TypeFloat, 30.0, 10.0, nil),
		dataset.Float("AVG_DOWNLOAD_SPEED", 300, 100, 200),
		dataset.Float("AVG_PING", 1, 2, 3),
	)

	series := Chart(ds, DefaultQuery())
	require.Len(t, series, 2)

	up := series[0]
	assert.Equal(t, "AVG_UPLOAD_SPEED", up.Column)
	assert.Equal(t, "Avg Upload Speed", up.Label)
	assert.Equal(t, []Point{
		{X: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Y: 10},
		{X: time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC), Y: 30},
	}, up.Points)

	down := series[1]
	require.Len(t, down.Points, 3)
	assert.Equal(t, 100.0, down.Points[0].Y)
	assert.Equal(t, 300.0, down.Points[2].Y)

	minX, maxX, minY, maxY, ok := Bounds(series)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), minX)
	assert.Equal(t, time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC), maxX)
	assert.Equal(t, 10.0, minY)
	assert.Equal(t, 300.0, maxY)
}

func TestChart_MissingColumns(t *testing.T) {
	ds := dataset.MustNew(dataset.Float("AVG_PING", 1, 2))
	assert.Empty(t, Chart(ds, DefaultQuery()))
	assert.Empty(t, Chart(nil, DefaultQuery()))

	_, _, _, _, ok := Bounds(nil)
	assert.False(t, ok)
}
