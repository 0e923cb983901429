// Package components holds the page shell shared by all features.
package components

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/common"
	"github.com/leapstack-labs/pingerdash/internal/ui/resources"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("layout").Funcs(template.FuncMap{
	"static": resources.StaticPath,
}).ParseFS(templateFS, "templates/*.html"))

// DatastarScript is the client bundle that drives SSE patches.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// PageData describes the shell around a page body.
type PageData struct {
	Title string
	Path  string
	// Init is an optional datastar expression run when the page loads.
	Init string
}

type shellData struct {
	PageData
	Tabs     []common.Tab
	Datastar string
}

// Page renders a full HTML document with body inside the app shell.
func Page(data PageData, body templ.Component) templ.Component {
	shell := shellData{
		PageData: data,
		Tabs:     common.Tabs(data.Path),
		Datastar: DatastarScript,
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := templates.ExecuteTemplate(w, "page_head", shell); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		return templates.ExecuteTemplate(w, "page_foot", shell)
	})
}

// Alert renders an inline message. Kind is "error", "warning" or "info".
func Alert(kind, message string) templ.Component {
	return common.Template(templates, "alert", struct{ Kind, Message string }{kind, message})
}
