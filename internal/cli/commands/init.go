package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/pingerdash/internal/cli/output"
	intconfig "github.com/leapstack-labs/pingerdash/internal/config"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Force      bool
	TargetType string
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new pingerdash project",
		Long: `Initialize a new pingerdash project with a configuration file and demo data.

This creates:
  - pingerdash.yaml configuration file
  - seeds/ directory with demo speed tests
  - .gitignore for local database files

The duckdb and sqlite targets work offline after 'pingerdash seed'.
The snowflake target reads IOT.PINGER.SPEED_TESTS_RESULTS directly.`,
		Example: `  # Initialize in current directory
  pingerdash init

  # Initialize in a new directory with a SQLite target
  pingerdash init my-dashboard --target-type sqlite

  # Point at the Snowflake warehouse
  pingerdash init --target-type snowflake

  # Force overwrite existing config
  pingerdash init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing configuration")
	cmd.Flags().StringVar(&opts.TargetType, "target-type", intconfig.DefaultTargetType, "Target type: duckdb, sqlite, postgres or snowflake")

	_ = cmd.RegisterFlagCompletionFunc("target-type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"duckdb", "sqlite", "postgres", "snowflake"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInit(r *output.Renderer, dir string, opts *InitOptions) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	content, err := scaffoldConfig(opts.TargetType)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	files, err := copyTemplate("minimal", dir, opts.Force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	r.Header(2, "Configuration")
	r.StatusLine(intconfig.ConfigFileName, "success", opts.TargetType+" target")
	for _, f := range files {
		if !f.isSeed() {
			reportScaffoldFile(r, f)
		}
	}

	r.Println("")
	r.Header(2, "Seeds")
	for _, f := range files {
		if f.isSeed() {
			reportScaffoldFile(r, f)
		}
	}

	r.Println("")
	r.Success("pingerdash project initialized!")
	r.Println("")
	r.Println("Next steps:")
	if opts.TargetType != "snowflake" {
		r.Println("  pingerdash seed                 Load the demo speed tests")
	}
	r.Println("  pingerdash results --device ID  Show a device's speed tests")
	r.Println("  pingerdash serve                Open the dashboard")

	return nil
}

// scaffoldTarget is the target section written by init.
type scaffoldTarget struct {
	Type      string `yaml:"type"`
	Database  string `yaml:"database,omitempty"`
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
	User      string `yaml:"user,omitempty"`
	Password  string `yaml:"password,omitempty"`
	Schema    string `yaml:"schema,omitempty"`
	Account   string `yaml:"account,omitempty"`
	Warehouse string `yaml:"warehouse,omitempty"`
	Role      string `yaml:"role,omitempty"`
}

type scaffoldResults struct {
	Table       string   `yaml:"table"`
	Columns     []string `yaml:"columns"`
	ChartSeries []string `yaml:"chart_series"`
}

type scaffold struct {
	SeedsDir string          `yaml:"seeds_dir"`
	Target   scaffoldTarget  `yaml:"target"`
	Results  scaffoldResults `yaml:"results"`
	Filter   struct {
		CategoricalThreshold int `yaml:"categorical_threshold"`
	} `yaml:"filter"`
	QR struct {
		ErrorCorrection string `yaml:"error_correction"`
		BoxSize         int    `yaml:"box_size"`
		Border          int    `yaml:"border"`
	} `yaml:"qr"`
	UI struct {
		Port     int  `yaml:"port"`
		AutoOpen bool `yaml:"auto_open"`
		Watch    bool `yaml:"watch"`
	} `yaml:"ui"`
}

// scaffoldConfig renders pingerdash.yaml for a target type.
func scaffoldConfig(targetType string) ([]byte, error) {
	target := scaffoldTarget{Type: targetType}
	switch targetType {
	case "duckdb":
		target.Database = intconfig.DefaultDatabase
	case "sqlite":
		target.Database = "pingerdash.db"
	case "postgres":
		target.Host = "localhost"
		target.Port = 5432
		target.Database = "pingerdash"
		target.User = "${PGUSER}"
		target.Password = "${PGPASSWORD}"
	case "snowflake":
		target.Account = "${SNOWFLAKE_ACCOUNT}"
		target.User = "${SNOWFLAKE_USER}"
		target.Password = "${SNOWFLAKE_PASSWORD}"
		target.Database = "IOT"
		target.Schema = "PINGER"
		target.Warehouse = "${SNOWFLAKE_WAREHOUSE}"
		target.Role = "${SNOWFLAKE_ROLE}"
	default:
		return nil, fmt.Errorf("unsupported target type %q (expected duckdb, sqlite, postgres or snowflake)", targetType)
	}

	s := scaffold{
		SeedsDir: intconfig.DefaultSeedsDir,
		Target:   target,
		Results: scaffoldResults{
			Table:       intconfig.DefaultResultsTable(targetType),
			Columns:     speedtest.DefaultColumns,
			ChartSeries: speedtest.DefaultChartSeries,
		},
	}
	s.Filter.CategoricalThreshold = 10
	s.QR.ErrorCorrection = "L"
	s.QR.BoxSize = 10
	s.QR.Border = 4
	s.UI.Port = 8765
	s.UI.AutoOpen = true
	s.UI.Watch = true

	var buf bytes.Buffer
	buf.WriteString("# pingerdash project configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reportScaffoldFile(r *output.Renderer, f scaffoldFile) {
	if f.Kept {
		r.StatusLine(f.Path, "skipped", "already exists")
		return
	}
	r.StatusLine(f.Path, "success", "")
}
