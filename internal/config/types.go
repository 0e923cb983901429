// Package config provides shared configuration defaults and validation for
// pingerdash. It is decoupled from CLI concerns so the web server and tests
// can use it directly.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pingerdash/pkg/adapter"
	"github.com/leapstack-labs/pingerdash/pkg/core"
)

// ValidateTarget checks that the target names a registered adapter and
// carries the fields that adapter needs.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	switch strings.ToLower(t.Type) {
	case "snowflake":
		if t.Account == "" {
			return fmt.Errorf("snowflake target requires an account")
		}
	case "postgres":
		if t.Database == "" {
			return fmt.Errorf("postgres target requires a database")
		}
	}
	return nil
}
