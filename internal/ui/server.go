// Package ui provides the web dashboard for pingerdash.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/pingerdash/internal/seed"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	"github.com/leapstack-labs/pingerdash/internal/ui/features/results"
	"github.com/leapstack-labs/pingerdash/internal/ui/notifier"
	"github.com/leapstack-labs/pingerdash/internal/ui/router"
	"github.com/leapstack-labs/pingerdash/internal/wifi"
)

// reloadDebounce collapses bursts of file events into one reload.
const reloadDebounce = 200 * time.Millisecond

// Server is the main UI server.
type Server struct {
	fetcher      results.Fetcher
	query        speedtest.Query
	threshold    int
	qr           wifi.Options
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	seedsDir     string
	loader       *seed.Loader
	logger       *slog.Logger
	notifier     *notifier.Notifier

	reloadMu sync.Mutex
}

// Config holds configuration for the UI server.
type Config struct {
	Fetcher   results.Fetcher
	Query     speedtest.Query
	Threshold int
	QR        wifi.Options
	Port      int
	// Watch reloads SeedsDir into the target through Loader when a CSV
	// file changes, then tells open pages to refresh.
	Watch         bool
	SeedsDir      string
	Loader        *seed.Loader
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		fetcher:      cfg.Fetcher,
		query:        cfg.Query,
		threshold:    cfg.Threshold,
		qr:           cfg.QR,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		seedsDir:     cfg.SeedsDir,
		loader:       cfg.Loader,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Handler builds the routed HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	err := router.SetupRoutes(r, router.Deps{
		Fetcher:      s.fetcher,
		Query:        s.query,
		Threshold:    s.threshold,
		QR:           s.qr,
		SessionStore: s.sessionStore,
		Notifier:     s.notifier,
		Logger:       s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch && s.seedsDir != "" {
		eg.Go(func() error {
			return s.watchSeeds(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchSeeds watches the seeds directory for CSV changes.
func (s *Server) watchSeeds(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.seedsDir); err != nil {
		s.logger.Error("failed to watch seeds directory", "dir", s.seedsDir, "error", err)
		// Serve without watching
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				// New subdirectories are watched too.
				_ = watchDirRecursive(watcher, event.Name)
			}
			if !isSeedEvent(event) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				s.logger.Debug("seed file changed, reloading", "file", name)
				s.ReloadSeeds(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isSeedEvent(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// ReloadSeeds loads the seeds directory into the target and notifies all
// SSE clients. Without a loader clients are told to re-query only.
func (s *Server) ReloadSeeds(ctx context.Context) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.loader == nil {
		s.notifier.Broadcast(notifier.Event{Reason: "Results source changed", Rows: -1})
		return
	}

	loaded, err := s.loader.LoadDir(ctx, s.seedsDir)
	if err != nil {
		s.logger.Error("seed reload failed", "dir", s.seedsDir, "error", err)
		return
	}

	rows := 0
	for _, r := range loaded {
		rows += r.Rows
	}
	s.logger.Info("seeds reloaded", "files", len(loaded), "rows", rows)
	s.notifier.Broadcast(notifier.Event{Reason: "Seed data reloaded", Rows: rows})
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
