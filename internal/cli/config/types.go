// Package config provides configuration management for the pingerdash CLI.
//
// Shared defaults and target validation live in internal/config; this
// package layers the koanf loader and CLI-specific sections on top.
package config

import (
	"time"

	sharedcfg "github.com/leapstack-labs/pingerdash/internal/config"
	"github.com/leapstack-labs/pingerdash/internal/filter"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	"github.com/leapstack-labs/pingerdash/internal/wifi"
	"github.com/leapstack-labs/pingerdash/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing pkg/core.
type TargetConfig = core.TargetConfig

// ResultsConfig describes where speed-test results live in the target.
type ResultsConfig struct {
	Table           string        `koanf:"table"`
	DeviceColumn    string        `koanf:"device_column"`
	TimestampColumn string        `koanf:"timestamp_column"`
	Columns         []string      `koanf:"columns"`
	ChartSeries     []string      `koanf:"chart_series"`
	Limit           int           `koanf:"limit"`
	QueryTimeout    time.Duration `koanf:"query_timeout"`
}

// FilterConfig holds dataframe filter settings.
type FilterConfig struct {
	CategoricalThreshold int `koanf:"categorical_threshold"`
}

// QRConfig holds QR rendering settings.
type QRConfig struct {
	ErrorCorrection string `koanf:"error_correction"`
	BoxSize         int    `koanf:"box_size"`
	Border          int    `koanf:"border"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     DefaultPort,
		AutoOpen: true,
		Watch:    true,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := *c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	return &ui
}

// Config holds all CLI configuration options.
type Config struct {
	SeedsDir     string               `koanf:"seeds_dir"`
	Environment  string               `koanf:"environment"`
	Verbose      bool                 `koanf:"verbose"`
	OutputFormat string               `koanf:"output"`
	Target       *TargetConfig        `koanf:"target"`
	Results      ResultsConfig        `koanf:"results"`
	Filter       FilterConfig         `koanf:"filter"`
	QR           QRConfig             `koanf:"qr"`
	UI           *UIConfig            `koanf:"ui"`
	Environments map[string]EnvConfig `koanf:"environments"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	SeedsDir string         `koanf:"seeds_dir"`
	Target   *TargetConfig  `koanf:"target"`
	Results  *ResultsConfig `koanf:"results"`
}

// Default configuration values.
const (
	DefaultSeedsDir     = sharedcfg.DefaultSeedsDir
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPort         = 8765
	DefaultQueryTimeout = speedtest.DefaultTimeout
)

// Query returns the results lookup described by the config.
func (c *Config) Query() speedtest.Query {
	q := speedtest.Query{
		Table:           c.Results.Table,
		DeviceColumn:    c.Results.DeviceColumn,
		TimestampColumn: c.Results.TimestampColumn,
		Columns:         c.Results.Columns,
		ChartSeries:     c.Results.ChartSeries,
		Limit:           c.Results.Limit,
	}
	if q.Table == "" && c.Target != nil {
		q.Table = sharedcfg.DefaultResultsTable(c.Target.Type)
	}
	return q.WithDefaults()
}

// QueryTimeout returns the per-lookup timeout.
func (c *Config) QueryTimeout() time.Duration {
	if c.Results.QueryTimeout <= 0 {
		return DefaultQueryTimeout
	}
	return c.Results.QueryTimeout
}

// QROptions returns the QR rendering options.
func (c *Config) QROptions() wifi.Options {
	return wifi.Options{
		Level:   c.QR.ErrorCorrection,
		BoxSize: c.QR.BoxSize,
		Border:  c.QR.Border,
	}
}

// FilterFor returns an enabled filter config with the configured threshold.
func (c *Config) FilterFor(columns []string, specs map[string]filter.Spec) filter.Config {
	return filter.Config{
		Enabled:   true,
		Columns:   columns,
		Specs:     specs,
		Threshold: c.Filter.CategoricalThreshold,
	}
}
