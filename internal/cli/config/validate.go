package config

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/pingerdash/internal/wifi"
)

// Validate checks the loaded configuration for values that cannot work.
func (c *Config) Validate() error {
	if err := c.Query().Validate(); err != nil {
		return fmt.Errorf("invalid results configuration: %w", err)
	}
	if c.Filter.CategoricalThreshold < 0 {
		return fmt.Errorf("filter.categorical_threshold must not be negative")
	}
	if c.QR.ErrorCorrection != "" {
		if _, err := wifi.ParseLevel(c.QR.ErrorCorrection); err != nil {
			return fmt.Errorf("invalid qr configuration: %w", err)
		}
	}
	if c.QR.BoxSize < 0 {
		return fmt.Errorf("qr.box_size must not be negative")
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("unknown output format %q (expected auto, text, markdown or json)", c.OutputFormat)
	}
	return nil
}

// ValidateSeedsDir checks that the seeds directory exists.
func (c *Config) ValidateSeedsDir() error {
	if _, err := os.Stat(c.SeedsDir); os.IsNotExist(err) {
		return fmt.Errorf("seeds directory does not exist: %s\nHint: Create the directory or use --seeds-dir to specify a different path", c.SeedsDir)
	}
	return nil
}
