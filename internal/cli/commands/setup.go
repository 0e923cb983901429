package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/pingerdash/internal/cli/config"
	"github.com/leapstack-labs/pingerdash/internal/cli/output"
	intconfig "github.com/leapstack-labs/pingerdash/internal/config"
	"github.com/leapstack-labs/pingerdash/pkg/adapter"
	"github.com/leapstack-labs/pingerdash/pkg/core"
	"github.com/spf13/cobra"

	// Register the supported warehouse adapters.
	_ "github.com/leapstack-labs/pingerdash/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/pingerdash/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/pingerdash/pkg/adapters/snowflake"
	_ "github.com/leapstack-labs/pingerdash/pkg/adapters/sqlite"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Adapter  adapter.Adapter
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a connected adapter and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	adp, err := connectTarget(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = adp.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Adapter:  adp,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutAdapter creates a CommandContext without a connection.
// Useful for commands that don't need database access.
func NewCommandContextWithoutAdapter(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	target := &core.TargetConfig{
		Type:     getEnvOrDefault("PINGERDASH_TARGET__TYPE", intconfig.DefaultTargetType),
		Database: getEnvOrDefault("PINGERDASH_TARGET__DATABASE", intconfig.DefaultDatabase),
	}
	intconfig.ApplyTargetDefaults(target)

	return &config.Config{
		SeedsDir:     getEnvOrDefault("PINGERDASH_SEEDS_DIR", intconfig.DefaultSeedsDir),
		Verbose:      os.Getenv("PINGERDASH_VERBOSE") == "true",
		OutputFormat: os.Getenv("PINGERDASH_OUTPUT"),
		Target:       target,
		Filter:       config.FilterConfig{CategoricalThreshold: 10},
		UI:           config.DefaultUIConfig(),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// connectTarget opens the configured warehouse.
func connectTarget(ctx context.Context, cfg *config.Config, logger *slog.Logger) (adapter.Adapter, error) {
	if cfg.Target == nil {
		return nil, fmt.Errorf("no target configured")
	}
	adp, err := adapter.NewAdapter(cfg.Target.AdapterConfig(), logger)
	if err != nil {
		return nil, err
	}
	if err := adp.Connect(ctx, cfg.Target.AdapterConfig()); err != nil {
		return nil, fmt.Errorf("failed to connect to %s target: %w", cfg.Target.Type, err)
	}
	logger.Debug("connected to target", slog.String("type", cfg.Target.Type))
	return adp, nil
}
