package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/xuri/excelize/v2"
)

// ExportFormat names a download format for a dataset.
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportArrow ExportFormat = "arrow"
	ExportXLSX  ExportFormat = "xlsx"
)

// ExportFormats lists the supported export formats.
var ExportFormats = []ExportFormat{ExportCSV, ExportArrow, ExportXLSX}

// ParseExportFormat validates a format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ExportFormats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (expected csv, arrow or xlsx)", s)
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportArrow:
		return "application/vnd.apache.arrow.stream"
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

// FileName returns the download name of an export for the given base name.
func (f ExportFormat) FileName(base string) string {
	return fmt.Sprintf("speed_tests_%s.%s", base, f)
}

// Write serializes d in format f.
func (f ExportFormat) Write(w io.Writer, d *Dataset) error {
	switch f {
	case ExportArrow:
		return WriteArrow(w, d)
	case ExportXLSX:
		return WriteXLSX(w, d)
	default:
		return WriteCSV(w, d)
	}
}

// WriteCSV writes a header row followed by one record per row. Nulls are empty.
func WriteCSV(w io.Writer, d *Dataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(d.Names()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, d.NumColumns())
	for r := 0; r < d.NumRows(); r++ {
		for c, col := range d.columns {
			record[c] = csvValue(col.Values[r])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvValue(v any) string {
	if IsNull(v) {
		return ""
	}
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02 15:04:05.999999999")
	}
	return Key(v)
}

// ArrowSchema maps the dataset's columns to a nullable Arrow schema.
func ArrowSchema(d *Dataset) *arrow.Schema {
	fields := make([]arrow.Field, d.NumColumns())
	for i, col := range d.columns {
		fields[i] = arrow.Field{Name: col.Name, Type: arrowType(col.Type), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(t Type) arrow.DataType {
	switch t {
	case TypeFloat:
		return arrow.PrimitiveTypes.Float64
	case TypeTime:
		return &arrow.TimestampType{Unit: arrow.Microsecond}
	default:
		return arrow.BinaryTypes.String
	}
}

// WriteArrow writes the dataset as a single-record Arrow IPC stream.
func WriteArrow(w io.Writer, d *Dataset) error {
	mem := memory.NewGoAllocator()
	schema := ArrowSchema(d)

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for c, col := range d.columns {
		fb := builder.Field(c)
		for _, v := range col.Values {
			if IsNull(v) {
				fb.AppendNull()
				continue
			}
			switch b := fb.(type) {
			case *array.Float64Builder:
				b.Append(v.(float64))
			case *array.TimestampBuilder:
				b.Append(arrow.Timestamp(v.(time.Time).UnixMicro()))
			case *array.StringBuilder:
				b.Append(Key(v))
			}
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := writer.Write(rec); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write arrow record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close arrow stream: %w", err)
	}
	return nil
}

// XLSXSheet is the name of the worksheet written by WriteXLSX.
const XLSXSheet = "results"

// WriteXLSX writes the dataset to a single-sheet workbook.
func WriteXLSX(w io.Writer, d *Dataset) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, d.NumColumns())
	for i, name := range d.Names() {
		header[i] = name
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r := 0; r < d.NumRows(); r++ {
		row := make([]any, d.NumColumns())
		for c, col := range d.columns {
			if v := col.Values[r]; !IsNull(v) {
				row[c] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
