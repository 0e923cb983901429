package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/leapstack-labs/pingerdash/internal/seed"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	"github.com/leapstack-labs/pingerdash/internal/ui"
	"github.com/leapstack-labs/pingerdash/pkg/adapter"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the pingerdash web dashboard",
		Long: `Start a local web server with two tabs:

- Pinger Results: look up a device by UUID, filter its speed tests,
  chart upload and download speeds and download the rows
- Wi-Fi QR Code Generator: turn network credentials into a QR code

With --watch the seeds directory is reloaded into the target whenever a
CSV file changes and open pages refresh their results.`,
		Example: `  # Start on the configured port
  pingerdash serve

  # Start on a custom port
  pingerdash serve --port 3000

  # Start without auto-opening a browser
  pingerdash serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload seeds when CSV files change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger
	uiCfg := cfg.GetUIConfig()

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := uiCfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	fetcher, err := speedtest.NewFetcher(cmdCtx.Adapter, cfg.Query(),
		speedtest.WithLogger(logger),
		speedtest.WithTimeout(cfg.QueryTimeout()),
	)
	if err != nil {
		return err
	}

	// Seeds can only be reloaded into writable local targets.
	var loader *seed.Loader
	if watch {
		if info, err := os.Stat(cfg.SeedsDir); err != nil || !info.IsDir() {
			logger.Debug("seeds directory not found, not watching", "dir", cfg.SeedsDir)
			watch = false
		} else if !adapter.IsReadOnly(cmdCtx.Adapter.Name()) {
			loader = seed.NewLoader(cmdCtx.Adapter, logger)
		}
	}

	secret := uiCfg.SessionSecret
	if secret == "" {
		secret = generateSessionSecret()
		logger.Debug("no ui.session_secret configured, sessions reset on restart")
	}

	server := ui.NewServer(ui.Config{
		Fetcher:       fetcher,
		Query:         cfg.Query(),
		Threshold:     cfg.Filter.CategoricalThreshold,
		QR:            cfg.QROptions(),
		Port:          port,
		Watch:         watch,
		SeedsDir:      cfg.SeedsDir,
		Loader:        loader,
		SessionSecret: secret,
		Logger:        logger,
	})

	url := fmt.Sprintf("http://localhost:%d", port)
	if autoOpen {
		go openBrowser(url)
	}

	r := cmdCtx.Renderer
	r.Success("Serving pingerdash on " + url)
	r.Muted("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// generateSessionSecret returns a random key for the session cookie store.
func generateSessionSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "pingerdash-dev-secret-change-in-production" //nolint:gosec
	}
	return hex.EncodeToString(b)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
