// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pingerdash/internal/cli/testutil"
	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/device"
	"github.com/leapstack-labs/pingerdash/internal/seed"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	logtest "github.com/leapstack-labs/pingerdash/internal/testutil"
	"github.com/leapstack-labs/pingerdash/internal/ui/notifier"
	"github.com/leapstack-labs/pingerdash/pkg/adapter"
	"github.com/leapstack-labs/pingerdash/pkg/adapters/sqlite"
)

// Devices present in the seeded fixture.
const (
	DemoDevice  = testutil.DemoDevice
	OtherDevice = testutil.OtherDevice
	// UnknownDevice is a valid UUID with no speed tests.
	UnknownDevice = "00000000-0000-4000-8000-000000000000"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Adapter      adapter.Adapter
	Loader       *seed.Loader
	Fetcher      *speedtest.Fetcher
	Query        speedtest.Query
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	SeedsDir     string
}

// SetupTestFixture creates an in-memory SQLite target seeded with the demo
// speed tests, plus a fetcher, notifier and session store around it.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := logtest.NewTestLogger(t)
	ctx := context.Background()

	seedsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(seedsDir, seed.DemoTable+".csv"), []byte(testutil.DemoResultsCSV), 0o600))

	adp := sqlite.New(logger)
	require.NoError(t, adp.Connect(ctx, adapter.Config{Type: "sqlite", Path: ":memory:"}))
	t.Cleanup(func() { _ = adp.Close() })

	loader := seed.NewLoader(adp, logger)
	_, err := loader.LoadDir(ctx, seedsDir)
	require.NoError(t, err)

	q := speedtest.Query{Table: seed.DemoTable}.WithDefaults()
	fetcher, err := speedtest.NewFetcher(adp, q, speedtest.WithLogger(logger))
	require.NoError(t, err)

	return &TestFixture{
		Adapter:      adp,
		Loader:       loader,
		Fetcher:      fetcher,
		Query:        q,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		SeedsDir:     seedsDir,
	}
}

// FailingFetcher is a fetcher whose every lookup fails with Err.
type FailingFetcher struct {
	Err error
}

// Fetch implements the results fetcher.
func (f FailingFetcher) Fetch(context.Context, device.ID) (*dataset.Dataset, error) {
	if f.Err == nil {
		return nil, errors.New("warehouse unavailable")
	}
	return nil, f.Err
}

// DatastarRequest builds a POST carrying signals as a JSON body the way the
// datastar client sends them.
func DatastarRequest(method, target, signals string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(signals))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return req
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(r *http.Request, timeout time.Duration) (*http.Request, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	return r.WithContext(ctx), cancel
}

// NewTestNotifier creates a notifier for testing.
func NewTestNotifier() *notifier.Notifier {
	return notifier.New()
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
