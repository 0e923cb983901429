// Package home provides the landing page feature for the UI.
package home

import (
	"net/http"

	"github.com/a-h/templ"
)

// PanelFunc renders a feature's tab for the current request.
type PanelFunc func(r *http.Request) templ.Component

// Tab IDs used as the value of the tab signal.
const (
	TabResults = "results"
	TabWifi    = "wifi"
)
