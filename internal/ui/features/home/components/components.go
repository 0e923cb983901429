// Package components renders the landing page that hosts both tabs.
package components

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/common"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("home").ParseFS(templateFS, "templates/*.html"))

// Tab is one in-page tab and the component it shows.
type Tab struct {
	ID    string
	Label string
	Body  templ.Component
}

// Tabs renders tabs with the first one selected.
func Tabs(tabs ...Tab) templ.Component {
	if len(tabs) == 0 {
		return common.Join()
	}
	parts := []templ.Component{common.Template(templates, "home_open", struct {
		Tab  string
		Tabs []Tab
	}{tabs[0].ID, tabs})}
	for _, t := range tabs {
		parts = append(parts,
			common.Template(templates, "tab_open", t.ID),
			t.Body,
			common.Template(templates, "tab_close", nil),
		)
	}
	parts = append(parts, common.Template(templates, "home_close", nil))
	return common.Join(parts...)
}
