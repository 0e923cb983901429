package home

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pingerdash/internal/ui/features"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/results"
	resultsComponents "github.com/leapstack-labs/pingerdash/internal/ui/features/results/components"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/wifi"
	wifiComponents "github.com/leapstack-labs/pingerdash/internal/ui/features/wifi/components"
	qr "github.com/leapstack-labs/pingerdash/internal/wifi"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestHandlers(t *testing.T, updatesURL string) *Handlers {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	resultsHandlers := results.NewHandlers(fixture.Fetcher, fixture.Query, 0, fixture.SessionStore, fixture.Notifier, nil)
	wifiHandlers := wifi.NewHandlers(qr.DefaultOptions(), nil)

	return NewHandlers(
		func(r *http.Request) templ.Component { return resultsComponents.Panel(resultsHandlers.PanelData(r)) },
		func(*http.Request) templ.Component { return wifiComponents.Panel(wifiHandlers.PanelData()) },
		updatesURL,
	)
}

// =============================================================================
// HomePage Tests
// =============================================================================

func TestHomePage(t *testing.T) {
	tests := []struct {
		name       string
		updatesURL string
		wantBody   []string
		notInBody  []string
	}{
		{
			name:       "renders both tabs with live updates",
			updatesURL: results.UpdatesPath,
			wantBody: []string{
				"<!doctype html>",
				"<title>Home - pingerdash</title>",
				"Welcome to the Multi-Feature App",
				`data-signals__ifmissing="{tab: 'results'}"`,
				`data-show="$tab == 'results'"`,
				`data-show="$tab == 'wifi'"`,
				"Please enter the device UUID",
				"SSID (Wi-Fi Network Name)",
				`data-init="@get(&#39;/api/results/updates&#39;)"`,
				`href="/results"`,
				`href="/wifi"`,
			},
		},
		{
			name:      "without updates stream",
			wantBody:  []string{"Pinger Results", "Wi-Fi QR Code Generator"},
			notInBody: []string{`data-init="@get`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestHandlers(t, tt.updatesURL)

			rec := httptest.NewRecorder()
			h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want, "response should contain %q", want)
			}
			for _, unwanted := range tt.notInBody {
				assert.NotContains(t, body, unwanted)
			}
		})
	}
}

func TestSetupRoutes(t *testing.T) {
	router := chi.NewRouter()
	require.NoError(t, SetupRoutes(router, setupTestHandlers(t, "")))
	assert.True(t, router.Match(chi.NewRouteContext(), http.MethodGet, "/"))
}
