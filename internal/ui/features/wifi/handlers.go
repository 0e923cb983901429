package wifi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/pingerdash/internal/ui/features/common/components"
	wifiComponents "github.com/leapstack-labs/pingerdash/internal/ui/features/wifi/components"
	"github.com/leapstack-labs/pingerdash/internal/wifi"
)

// DownloadPath returns the QR code as a PNG attachment.
const DownloadPath = "/api/wifi/qr.png"

// Handlers provides HTTP handlers for the Wi-Fi feature.
type Handlers struct {
	options wifi.Options
	logger  *slog.Logger
}

// NewHandlers creates a new Handlers instance rendering codes with opts.
func NewHandlers(opts wifi.Options, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{options: opts, logger: logger}
}

// PanelData returns the initial state of the Wi-Fi tab.
func (h *Handlers) PanelData() wifiComponents.PanelData {
	b, _ := json.Marshal(DefaultSignals())
	auths := make([]string, len(wifi.Auths))
	for i, a := range wifi.Auths {
		auths[i] = string(a)
	}
	return wifiComponents.PanelData{Signals: string(b), Auths: auths}
}

// WifiPage renders the Wi-Fi tab on its own.
func (h *Handlers) WifiPage(w http.ResponseWriter, r *http.Request) {
	page := components.Page(components.PageData{
		Title: "Wi-Fi QR Code Generator",
		Path:  "/wifi",
	}, wifiComponents.Panel(h.PanelData()))
	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Generate validates the posted form and patches the #wifi-result fragment
// with the QR code or the validation message.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var sig Signals
	readErr := datastar.ReadSignals(r, &sig)

	sse := datastar.NewSSE(w, r)
	if readErr != nil {
		_ = sse.PatchElementTempl(wifiComponents.Result(wifiComponents.ResultData{Error: "Failed to read request: " + readErr.Error()}))
		return
	}

	result := h.generate(sig.Wifi)
	if err := sse.PatchElementTempl(wifiComponents.Result(result)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) generate(form FormSignals) wifiComponents.ResultData {
	creds, err := form.Credentials()
	if err != nil {
		return wifiComponents.ResultData{Error: err.Error()}
	}
	png, err := wifi.PNG(creds.Payload(), h.options)
	if err != nil {
		h.logger.Error("failed to render QR code", "error", err)
		return wifiComponents.ResultData{Error: "Failed to render QR code: " + err.Error()}
	}
	h.logger.Debug("rendered QR code", "ssid", creds.SSID, "auth", string(creds.Auth), "bytes", len(png))

	// The data URI is built from our own PNG bytes.
	image := template.URL("data:" + wifi.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(png)) //nolint:gosec
	return wifiComponents.ResultData{
		Image:    image,
		Download: DownloadPath,
		SSID:     creds.SSID,
		Auth:     string(creds.Auth),
		Password: creds.Password,
		Hidden:   creds.Hidden,
	}
}

// QRPNG returns the QR code of the posted form as a PNG attachment.
func (h *Handlers) QRPNG(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	creds, err := formSignals(r.PostForm.Get).Credentials()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	png, err := wifi.PNG(creds.Payload(), h.options)
	if err != nil {
		h.logger.Error("failed to render QR code", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", wifi.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", wifi.DownloadName))
	_, _ = w.Write(png)
}
