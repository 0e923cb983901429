package home

import (
	"net/http"

	commonComponents "github.com/leapstack-labs/pingerdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/home/components"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	results    PanelFunc
	wifi       PanelFunc
	updatesURL string
}

// NewHandlers creates a new Handlers instance. updatesURL is the SSE stream
// the page subscribes to on load; empty disables it.
func NewHandlers(results, wifi PanelFunc, updatesURL string) *Handlers {
	return &Handlers{results: results, wifi: wifi, updatesURL: updatesURL}
}

// HomePage renders both tabs on one page.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	data := commonComponents.PageData{Title: "Home", Path: "/"}
	if h.updatesURL != "" {
		data.Init = "@get('" + h.updatesURL + "')"
	}

	body := components.Tabs(
		components.Tab{ID: TabResults, Label: "Pinger Results", Body: h.results(r)},
		components.Tab{ID: TabWifi, Label: "Wi-Fi QR Code Generator", Body: h.wifi(r)},
	)
	if err := commonComponents.Page(data, body).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
