package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/pingerdash/internal/dataset"
)

// renderDataset writes ds as a table, csv or markdown. total is the row
// count before filtering.
func renderDataset(w io.Writer, ds *dataset.Dataset, total int, format string) error {
	switch format {
	case "csv":
		return dataset.WriteCSV(w, ds)
	case "md":
		return renderMarkdown(w, ds, total)
	default:
		return renderTable(w, ds, total)
	}
}

func renderTable(w io.Writer, ds *dataset.Dataset, total int) error {
	if ds.NumRows() == 0 {
		_, _ = fmt.Fprintf(w, "(0 of %d rows)\n", total)
		return nil
	}

	t := newDatasetTable(w, ds)
	t.SetStyle(table.StyleLight)
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", ds.NumRows(), total)
	return nil
}

func renderMarkdown(w io.Writer, ds *dataset.Dataset, total int) error {
	if ds.NumRows() == 0 {
		_, _ = fmt.Fprintf(w, "(0 of %d rows)\n", total)
		return nil
	}

	newDatasetTable(w, ds).RenderMarkdown()
	_, _ = fmt.Fprintf(w, "\nShowing %d of %d rows\n", ds.NumRows(), total)
	return nil
}

func newDatasetTable(w io.Writer, ds *dataset.Dataset) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	names := ds.Names()
	header := make(table.Row, len(names))
	for i, name := range names {
		header[i] = name
	}
	t.AppendHeader(header)

	for i := 0; i < ds.NumRows(); i++ {
		values := ds.Row(i)
		row := make(table.Row, len(values))
		for j, v := range values {
			row[j] = dataset.Label(v)
		}
		t.AppendRow(row)
	}
	return t
}
