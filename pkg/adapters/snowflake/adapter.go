// Package snowflake provides a Snowflake warehouse adapter for pingerdash.
// Speed-test results are produced into Snowflake in production.
package snowflake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/pingerdash/pkg/adapter"
	"github.com/leapstack-labs/pingerdash/pkg/core"
	"github.com/snowflakedb/gosnowflake"
)

// Params holds Snowflake-specific configuration from target.params.
type Params struct {
	Application  string        `mapstructure:"application"`
	LoginTimeout time.Duration `mapstructure:"login_timeout"`
	QueryTag     string        `mapstructure:"query_tag"`
}

// ParseParams decodes the free-form params map from the target config.
func ParseParams(raw map[string]any) (*Params, error) {
	params := &Params{Application: "pingerdash"}
	if len(raw) == 0 {
		return params, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           params,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	return params, nil
}

// Adapter implements the adapter.Adapter interface for Snowflake.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new Snowflake adapter instance.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:       adapter.DiscardLogger(logger),
			Placeholders: core.PlaceholderQuestion,
		},
	}
}

// Name returns the registered adapter type.
func (a *Adapter) Name() string {
	return "snowflake"
}

// Connect establishes a connection to Snowflake.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return err
	}
	a.Logger.Debug("connecting to snowflake",
		slog.String("account", cfg.Account),
		slog.String("warehouse", cfg.Warehouse))
	return a.Open(ctx, "snowflake", dsn, cfg)
}

// buildDSN converts the adapter config into a gosnowflake DSN.
func buildDSN(cfg adapter.Config) (string, error) {
	if cfg.Account == "" {
		return "", fmt.Errorf("snowflake target requires account")
	}
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return "", fmt.Errorf("invalid snowflake params: %w", err)
	}

	sfCfg := &gosnowflake.Config{
		Account:      cfg.Account,
		User:         cfg.Username,
		Password:     cfg.Password,
		Database:     cfg.Database,
		Schema:       cfg.Schema,
		Warehouse:    cfg.Warehouse,
		Role:         cfg.Role,
		Application:  params.Application,
		LoginTimeout: params.LoginTimeout,
	}
	if params.QueryTag != "" {
		tag := params.QueryTag
		sfCfg.Params = map[string]*string{"query_tag": &tag}
	}

	dsn, err := gosnowflake.DSN(sfCfg)
	if err != nil {
		return "", fmt.Errorf("failed to build snowflake DSN: %w", err)
	}
	return dsn, nil
}

var _ adapter.Adapter = (*Adapter)(nil)
