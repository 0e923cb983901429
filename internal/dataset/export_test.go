package dataset

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture() *Dataset {
	return MustNew(
		Time("END_DATE",
			time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		),
		Nullable("AVG_PING", TypeFloat, 12.5, nil),
		Text("HOST", "edge-1", "edge-2"),
	)
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, ExportXLSX, f)
	assert.Equal(t, "speed_tests_abc.xlsx", f.FileName("abc"))

	_, err = ParseExportFormat("pdf")
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportFixture()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"END_DATE", "AVG_PING", "HOST"},
		{"2024-05-02 09:00:00", "12.5", "edge-1"},
		{"2024-05-01 09:00:00", "", "edge-2"},
	}, records)
}

func TestWriteArrow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportArrow.Write(&buf, exportFixture()))

	reader, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer reader.Release()

	schema := reader.Schema()
	require.Equal(t, 3, schema.NumFields())
	assert.Equal(t, arrow.FLOAT64, schema.Field(1).Type.ID())
	assert.Equal(t, arrow.TIMESTAMP, schema.Field(0).Type.ID())

	require.True(t, reader.Next())
	rec := reader.Record()
	assert.Equal(t, int64(2), rec.NumRows())

	ping := rec.Column(1).(*array.Float64)
	assert.Equal(t, 12.5, ping.Value(0))
	assert.True(t, ping.IsNull(1))

	host := rec.Column(2).(*array.String)
	assert.Equal(t, "edge-2", host.Value(1))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportFixture()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(XLSXSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"END_DATE", "AVG_PING", "HOST"}, rows[0])
	assert.Equal(t, "12.5", rows[1][1])
	assert.Equal(t, "edge-2", rows[2][2])
}
