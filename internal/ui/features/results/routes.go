package results

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the results feature.
func SetupRoutes(router chi.Router, handlers *Handlers) error {
	router.Get("/results", handlers.ResultsPage)
	router.Post("/api/results/lookup", handlers.Lookup)
	router.Get(UpdatesPath, handlers.Updates)
	router.Get("/api/results/export", handlers.Export)

	return nil
}
