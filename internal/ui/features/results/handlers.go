package results

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/device"
	"github.com/leapstack-labs/pingerdash/internal/filter"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	commonComponents "github.com/leapstack-labs/pingerdash/internal/ui/features/common/components"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/results/components"
	"github.com/leapstack-labs/pingerdash/internal/ui/notifier"
)

// UpdatesPath is the long-lived SSE endpoint pages subscribe to.
const UpdatesPath = "/api/results/updates"

// Fetcher loads the speed tests of one device.
type Fetcher interface {
	Fetch(ctx context.Context, id device.ID) (*dataset.Dataset, error)
}

// Handlers provides HTTP handlers for the results feature.
type Handlers struct {
	fetcher      Fetcher
	query        speedtest.Query
	threshold    int
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance. threshold is the categorical
// cardinality threshold; 0 selects the default.
func NewHandlers(fetcher Fetcher, query speedtest.Query, threshold int, sessionStore sessions.Store, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		fetcher:      fetcher,
		query:        query.WithDefaults(),
		threshold:    threshold,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
	}
}

// PanelData returns the initial state of the results tab for r.
func (h *Handlers) PanelData(r *http.Request) components.PanelData {
	sig := LookupSignals{Filters: FilterSignals{Columns: []string{}, Values: map[string]WidgetSignals{}}}
	b, _ := json.Marshal(sig)
	return components.PanelData{
		Signals: string(b),
		Recent:  recentDevices(h.sessionStore, r),
	}
}

// ResultsPage renders the results tab on its own.
func (h *Handlers) ResultsPage(w http.ResponseWriter, r *http.Request) {
	page := commonComponents.Page(commonComponents.PageData{
		Title: "Pinger Results",
		Path:  "/results",
		Init:  "@get('" + UpdatesPath + "')",
	}, components.Panel(h.PanelData(r)))
	if err := page.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Lookup validates the posted device, runs the filters and patches the
// #results-view fragment.
func (h *Handlers) Lookup(w http.ResponseWriter, r *http.Request) {
	var sig LookupSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(components.View(components.ViewData{Error: "Failed to read request: " + err.Error()}))
		return
	}

	view := h.lookupView(r.Context(), sig)

	// The session cookie has to go out before the SSE headers.
	if view.Device != "" && view.Error == "" {
		if err := rememberDevice(h.sessionStore, w, r, view.Device); err != nil {
			h.logger.Warn("failed to save recent devices", "error", err)
		}
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(components.View(view)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) lookupView(ctx context.Context, sig LookupSignals) components.ViewData {
	id, err := device.Parse(sig.Device)
	switch {
	case errors.Is(err, device.ErrEmpty):
		return components.ViewData{}
	case err != nil:
		return components.ViewData{Error: device.InvalidMessage}
	}

	ds, err := h.fetcher.Fetch(ctx, id)
	if err != nil {
		h.logger.Error("failed to fetch speed tests", "device", id.String(), "error", err)
		return components.ViewData{Error: "Failed to load speed tests: " + err.Error()}
	}
	h.logger.Debug("fetched speed tests", "device", id.String(), "rows", ds.NumRows())
	return buildView(sig, id, ds, h.query, h.threshold)
}

// Updates is the long-lived SSE endpoint. Each notifier event patches the
// notice banner, which re-runs the current lookup on arrival.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	if h.notifier == nil {
		<-r.Context().Done()
		return
	}

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-updates:
			if !ok {
				return
			}
			notice := components.NoticeData{Message: noticeMessage(ev), Refresh: true}
			if err := sse.PatchElementTempl(components.Notice(notice)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func noticeMessage(ev notifier.Event) string {
	reason := ev.Reason
	if reason == "" {
		reason = "Results source updated"
	}
	msg := fmt.Sprintf("%s at %s", reason, ev.At.Format("15:04:05"))
	if ev.Rows >= 0 {
		msg += fmt.Sprintf(" (%d rows)", ev.Rows)
	}
	return msg + "."
}

// Export downloads the filtered rows. The widget state travels in the
// datastar query parameter the same way a GET action sends it.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	format, err := dataset.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var sig LookupSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		http.Error(w, "invalid signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	id, err := device.Parse(sig.Device)
	if err != nil {
		http.Error(w, device.InvalidMessage, http.StatusBadRequest)
		return
	}

	ds, err := h.fetcher.Fetch(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to fetch speed tests", "device", id.String(), "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := format.Write(&buf, filter.Filter(ds, sig.FilterConfig(h.threshold))); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName(id.String())))
	_, _ = w.Write(buf.Bytes())
}
