// Package components renders the Wi-Fi QR code feature.
package components

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/common"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("wifi").ParseFS(templateFS, "templates/*.html"))

// PanelData is the full Wi-Fi tab.
type PanelData struct {
	Signals string
	Auths   []string
	Result  ResultData
}

// ResultData is the #wifi-result fragment. Image is empty until a code
// was generated.
type ResultData struct {
	Error string
	Image template.URL

	// Download is the form action that returns the PNG.
	Download string
	SSID     string
	Auth     string
	Password string
	Hidden   bool
}

// Panel renders the Wi-Fi tab.
func Panel(data PanelData) templ.Component {
	return common.Template(templates, "wifi_panel", data)
}

// Result renders the #wifi-result fragment.
func Result(data ResultData) templ.Component {
	return common.Template(templates, "wifi_result", data)
}
