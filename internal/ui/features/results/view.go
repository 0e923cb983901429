package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/url"
	"strconv"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/device"
	"github.com/leapstack-labs/pingerdash/internal/filter"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/results/components"
)

// NoChartMessage replaces the chart when no row can be plotted.
const NoChartMessage = "No data to chart"

var exportLabels = map[dataset.ExportFormat]string{
	dataset.ExportCSV:   "Download CSV",
	dataset.ExportArrow: "Download Arrow",
	dataset.ExportXLSX:  "Download Excel",
}

// buildView filters ds with the posted widget state and assembles the
// #results-view fragment.
func buildView(sig LookupSignals, id device.ID, ds *dataset.Dataset, q speedtest.Query, threshold int) components.ViewData {
	res := filter.Run(ds, sig.FilterConfig(threshold))

	view := components.ViewData{
		Device:        id.String(),
		Notes:         res.Notes,
		FilterEnabled: sig.Filters.Enabled,
		Total:         ds.NumRows(),
		Shown:         res.Data.NumRows(),
	}

	selected := make(map[string]bool, len(sig.Filters.Columns))
	for _, c := range sig.Filters.Columns {
		selected[c] = true
	}
	for _, name := range ds.Names() {
		view.Columns = append(view.Columns, components.ColumnChoice{Name: name, Selected: selected[name]})
	}

	values := make(map[string]WidgetSignals, len(res.Widgets))
	for _, w := range res.Widgets {
		view.Widgets = append(view.Widgets, widgetView(w))
		values[SignalKey(w.Column)] = widgetSignals(w.Effective)
	}
	if len(values) > 0 {
		b, err := json.Marshal(map[string]any{"filters": map[string]any{"values": values}})
		if err == nil {
			view.Signals = string(b)
		}
	}

	view.ChartSVG, view.ChartMessage = renderChart(res.Data, q)
	view.Table = tableView(res.Data)
	view.Exports = exportLinks(sig)
	return view
}

func widgetView(w filter.Widget) components.WidgetView {
	key := SignalKey(w.Column)
	v := components.WidgetView{
		Column: w.Column,
		Kind:   w.Kind.String(),
		Key:    key,
		Path:   "filters.values." + key,
		Empty:  w.Empty,
	}
	switch w.Kind {
	case dataset.KindCategorical:
		allowed := make(map[string]bool)
		all := w.Effective.Allowed == nil
		for _, k := range w.Effective.Allowed {
			allowed[k] = true
		}
		for _, o := range w.Options {
			v.Options = append(v.Options, components.OptionView{
				Value:    encodeKey(o.Key),
				Label:    o.Label,
				Selected: all || allowed[o.Key],
			})
		}
	case dataset.KindNumeric:
		if !w.Empty {
			v.Min = formatFloat(w.Min)
			v.Max = formatFloat(w.Max)
		}
		v.Step = "any"
		if w.Step > 0 {
			v.Step = formatFloat(w.Step)
		}
	case dataset.KindTemporal:
		if !w.Empty {
			v.Start = w.Start.Format(dateLayout)
			v.End = w.End.Format(dateLayout)
		}
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func renderChart(ds *dataset.Dataset, q speedtest.Query) (template.HTML, string) {
	var buf bytes.Buffer
	err := speedtest.RenderChart(&buf, speedtest.Chart(ds, q), speedtest.ChartSVG, 0, 0)
	switch {
	case errors.Is(err, speedtest.ErrNoPoints):
		return "", NoChartMessage
	case err != nil:
		return "", "Chart unavailable: " + err.Error()
	}
	// The SVG is generated by the chart renderer, never from user input.
	return template.HTML(buf.String()), "" //nolint:gosec
}

func tableView(ds *dataset.Dataset) components.TableView {
	t := components.TableView{Columns: ds.Names()}
	for i := 0; i < ds.NumRows(); i++ {
		row := ds.Row(i)
		cells := make([]components.Cell, len(row))
		for j, v := range row {
			cells[j] = components.Cell{Text: dataset.Label(v), Null: dataset.IsNull(v)}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func exportLinks(sig LookupSignals) []components.ExportLink {
	b, err := json.Marshal(sig)
	if err != nil {
		return nil
	}
	links := make([]components.ExportLink, 0, len(dataset.ExportFormats))
	for _, f := range dataset.ExportFormats {
		q := url.Values{}
		q.Set("format", string(f))
		q.Set("datastar", string(b))
		links = append(links, components.ExportLink{
			Label: exportLabels[f],
			Href:  "/api/results/export?" + q.Encode(),
		})
	}
	return links
}
