package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	sharedcfg "github.com/leapstack-labs/pingerdash/internal/config"
	"github.com/leapstack-labs/pingerdash/pkg/core"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// EnvPrefix prefixes every environment variable read by the loader.
// A double underscore separates nested keys: PINGERDASH_TARGET__PASSWORD
// sets target.password.
const EnvPrefix = "PINGERDASH_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// inferProjectRoot determines the project root.
// Priority:
//  1. Directory of an explicit --config file
//  2. Search upward from CWD for pingerdash.yaml
//  3. Current working directory
func inferProjectRoot(cfgFile string) string {
	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}

	cwd, _ := os.Getwd()
	if cwd == "" {
		return "."
	}
	if root := sharedcfg.FindProjectRoot(cwd, maxUpwardSearchLevels); root != "" {
		return root
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty, in-memory or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// defaults is the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"seeds_dir":                    DefaultSeedsDir,
		"verbose":                      false,
		"output":                       DefaultOutput,
		"results.query_timeout":        DefaultQueryTimeout.String(),
		"filter.categorical_threshold": 10,
		"qr.error_correction":          "L",
		"qr.box_size":                  10,
		"qr.border":                    4,
		"ui.port":                      DefaultPort,
		"ui.auto_open":                 true,
		"ui.watch":                     true,
	}
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	return LoadConfigWithTarget(cfgFile, "", flags)
}

// LoadConfigWithTarget loads configuration with an optional environment override.
// The targetOverride parameter names the entry of environments whose target is used.
// The flags parameter allows CLI flags to override config file and env var values.
func LoadConfigWithTarget(cfgFile string, targetOverride string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	projectRoot := inferProjectRoot(cfgFile)

	// Paths given as flags are relative to CWD, not the project root.
	var flagSeedsDir, flagDatabase string
	if flags != nil {
		if flags.Changed("seeds-dir") {
			if v, _ := flags.GetString("seeds-dir"); v != "" {
				flagSeedsDir, _ = filepath.Abs(v)
			}
		}
		if flags.Changed("database") {
			if v, _ := flags.GetString("database"); v != "" {
				flagDatabase = resolvePathRelativeTo(v, mustGetwd())
			}
		}
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = cfgFile
	if configFileUsed == "" {
		configFileUsed = sharedcfg.FindConfigFile(projectRoot)
	}
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (PINGERDASH_ prefix)
	// Transform: PINGERDASH_SEEDS_DIR -> seeds_dir, PINGERDASH_UI__PORT -> ui.port
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")

			switch key {
			case "config", "target":
				// Consumed before loading.
				return "", nil
			case "database":
				return "target.database", posflag.FlagVal(flags, f)
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Resolve relative paths against the project root
	cfg.ProjectRoot = projectRoot
	if flagSeedsDir != "" {
		cfg.SeedsDir = flagSeedsDir
	} else {
		cfg.SeedsDir = resolvePathRelativeTo(cfg.SeedsDir, projectRoot)
	}

	// Determine which environment to use for target selection
	envForTarget := cfg.Environment
	if targetOverride != "" {
		envForTarget = targetOverride
	}

	if envForTarget != "" {
		// An unknown environment falls back to the base target.
		if envCfg, ok := cfg.Environments[envForTarget]; ok {
			if envCfg.SeedsDir != "" && flagSeedsDir == "" {
				cfg.SeedsDir = resolvePathRelativeTo(envCfg.SeedsDir, projectRoot)
			}
			if envCfg.Target != nil {
				cfg.Target = MergeTargetConfig(cfg.Target, envCfg.Target)
			}
			if envCfg.Results != nil {
				cfg.Results = MergeResultsConfig(cfg.Results, *envCfg.Results)
			}
		}
	}

	// Initialize default target if not specified
	if cfg.Target == nil {
		cfg.Target = &core.TargetConfig{
			Type:     sharedcfg.DefaultTargetType,
			Database: sharedcfg.DefaultDatabase,
		}
	}

	// Apply defaults based on target type
	sharedcfg.ApplyTargetDefaults(cfg.Target)

	// Expand environment variables in target
	expandTargetEnvVars(cfg.Target)
	cfg.UI = cfg.GetUIConfig()
	cfg.UI.SessionSecret = expandEnvVars(cfg.UI.SessionSecret)

	if flagDatabase != "" {
		cfg.Target.Database = flagDatabase
	} else if cfg.Target.Type == "duckdb" || cfg.Target.Type == "sqlite" {
		cfg.Target.Database = resolvePathRelativeTo(cfg.Target.Database, projectRoot)
	}

	// Validate target configuration
	if err := sharedcfg.ValidateTarget(cfg.Target); err != nil {
		return nil, fmt.Errorf("invalid target configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

func mustGetwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig or LoadConfigWithTarget is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR}
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

// expandTargetEnvVars expands environment variables in sensitive target fields.
func expandTargetEnvVars(t *core.TargetConfig) {
	if t == nil {
		return
	}
	t.Password = expandEnvVars(t.Password)
	t.User = expandEnvVars(t.User)
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
	t.Account = expandEnvVars(t.Account)
	t.Warehouse = expandEnvVars(t.Warehouse)
	t.Role = expandEnvVars(t.Role)
}

// MergeTargetConfig merges two target configs, with override taking precedence.
func MergeTargetConfig(base, override *core.TargetConfig) *core.TargetConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a copy of base
	merged := &core.TargetConfig{
		Type:      base.Type,
		Database:  base.Database,
		Host:      base.Host,
		Port:      base.Port,
		User:      base.User,
		Password:  base.Password,
		Schema:    base.Schema,
		Account:   base.Account,
		Warehouse: base.Warehouse,
		Role:      base.Role,
		Options:   make(map[string]string),
		Params:    make(map[string]any),
	}

	// Copy base options
	for k, v := range base.Options {
		merged.Options[k] = v
	}

	// Copy base params
	for k, v := range base.Params {
		merged.Params[k] = v
	}

	// Apply overrides
	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.User != "" {
		merged.User = override.User
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	if override.Schema != "" {
		merged.Schema = override.Schema
	}
	if override.Account != "" {
		merged.Account = override.Account
	}
	if override.Warehouse != "" {
		merged.Warehouse = override.Warehouse
	}
	if override.Role != "" {
		merged.Role = override.Role
	}

	// Merge options
	for k, v := range override.Options {
		merged.Options[k] = v
	}

	// Merge params (override takes precedence)
	for k, v := range override.Params {
		merged.Params[k] = v
	}

	return merged
}

// MergeResultsConfig applies the non-zero fields of override on top of base.
func MergeResultsConfig(base, override ResultsConfig) ResultsConfig {
	if override.Table != "" {
		base.Table = override.Table
	}
	if override.DeviceColumn != "" {
		base.DeviceColumn = override.DeviceColumn
	}
	if override.TimestampColumn != "" {
		base.TimestampColumn = override.TimestampColumn
	}
	if len(override.Columns) > 0 {
		base.Columns = override.Columns
	}
	if len(override.ChartSeries) > 0 {
		base.ChartSeries = override.ChartSeries
	}
	if override.Limit != 0 {
		base.Limit = override.Limit
	}
	if override.QueryTimeout != 0 {
		base.QueryTimeout = override.QueryTimeout
	}
	return base
}
