// Package components renders the Pinger results feature.
package components

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/common"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("results").ParseFS(templateFS, "templates/*.html"))

// PanelData is the full results tab.
type PanelData struct {
	// Signals seeds the page's datastar signals when missing.
	Signals string
	Recent  []string
	Notice  NoticeData
	View    ViewData
}

// ViewData is the fragment re-rendered on every interaction.
type ViewData struct {
	Device string
	Error  string
	Notes  []string

	FilterEnabled bool
	Columns       []ColumnChoice
	Widgets       []WidgetView

	ChartSVG     template.HTML
	ChartMessage string

	Table TableView
	Total int
	Shown int

	Exports []ExportLink

	// Signals resets the widget signals to the values the server applied.
	Signals string
}

// ColumnChoice is one entry of the "Filter data on" select.
type ColumnChoice struct {
	Name     string
	Selected bool
}

// WidgetView is one filter control.
type WidgetView struct {
	Column string
	Kind   string
	// Key is the column's signal key, safe in element ids.
	Key string
	// Path is the datastar signal path of the widget's state.
	Path  string
	Empty bool

	Options []OptionView

	Min  string
	Max  string
	Step string

	Start string
	End   string
}

// OptionView is one categorical choice.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// TableView is the raw result table.
type TableView struct {
	Columns []string
	Rows    [][]Cell
}

// Cell is one rendered table value.
type Cell struct {
	Text string
	Null bool
}

// ExportLink downloads the filtered rows in one format.
type ExportLink struct {
	Label string
	Href  string
}

// NoticeData is the banner shown when the results source changes.
type NoticeData struct {
	Message string
	// Refresh re-runs the current lookup when the banner is inserted.
	Refresh bool
}

// Panel renders the results tab.
func Panel(data PanelData) templ.Component {
	return common.Template(templates, "results_panel", data)
}

// View renders the #results-view fragment.
func View(data ViewData) templ.Component {
	return common.Template(templates, "results_view", data)
}

// Notice renders the #results-notice fragment.
func Notice(data NoticeData) templ.Component {
	return common.Template(templates, "results_notice", data)
}
