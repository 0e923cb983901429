// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	homeFeature "github.com/leapstack-labs/pingerdash/internal/ui/features/home"
	resultsFeature "github.com/leapstack-labs/pingerdash/internal/ui/features/results"
	resultsComponents "github.com/leapstack-labs/pingerdash/internal/ui/features/results/components"
	wifiFeature "github.com/leapstack-labs/pingerdash/internal/ui/features/wifi"
	wifiComponents "github.com/leapstack-labs/pingerdash/internal/ui/features/wifi/components"
	"github.com/leapstack-labs/pingerdash/internal/ui/notifier"
	"github.com/leapstack-labs/pingerdash/internal/ui/resources"
	"github.com/leapstack-labs/pingerdash/internal/wifi"
)

// Deps holds what the feature handlers need.
type Deps struct {
	Fetcher      resultsFeature.Fetcher
	Query        speedtest.Query
	Threshold    int
	QR           wifi.Options
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	Logger       *slog.Logger
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	results := resultsFeature.NewHandlers(deps.Fetcher, deps.Query, deps.Threshold, deps.SessionStore, deps.Notifier, deps.Logger)
	wifiHandlers := wifiFeature.NewHandlers(deps.QR, deps.Logger)

	home := homeFeature.NewHandlers(
		func(r *http.Request) templ.Component { return resultsComponents.Panel(results.PanelData(r)) },
		func(*http.Request) templ.Component { return wifiComponents.Panel(wifiHandlers.PanelData()) },
		resultsFeature.UpdatesPath,
	)

	// Feature routes
	if err := homeFeature.SetupRoutes(router, home); err != nil {
		return err
	}

	if err := resultsFeature.SetupRoutes(router, results); err != nil {
		return err
	}

	if err := wifiFeature.SetupRoutes(router, wifiHandlers); err != nil {
		return err
	}

	return nil
}
