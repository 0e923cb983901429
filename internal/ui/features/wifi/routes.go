package wifi

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures routes for the Wi-Fi feature.
func SetupRoutes(router chi.Router, handlers *Handlers) error {
	router.Get("/wifi", handlers.WifiPage)
	router.Post("/api/wifi/generate", handlers.Generate)
	router.Post(DownloadPath, handlers.QRPNG)

	return nil
}
