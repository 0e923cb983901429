package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/pingerdash/internal/cli/output"
	"github.com/leapstack-labs/pingerdash/internal/seed"
	"github.com/spf13/cobra"
)

// SeedOptions holds options for the seed command.
type SeedOptions struct {
	Pattern string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo speed tests from CSV files",
		Long: `Load CSV files from the seeds directory into the configured target.

Each file replaces the table named after it. The demo schema for
speed_tests_results is migrated first, so a fresh DuckDB, SQLite or
Postgres target can serve the dashboard without a warehouse.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Load all seeds (auto-detect output format)
  pingerdash seed

  # Load seeds as JSON
  pingerdash seed --output json

  # Load seeds from a specific directory
  pingerdash seed --seeds-dir ./data/seeds

  # Only top-level files
  pingerdash seed --pattern "*.csv"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Pattern, "pattern", seed.DefaultPattern, "Glob of seed files below the seeds directory")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	effectiveMode := r.EffectiveMode()

	files, err := discoverSeeds(cfg.SeedsDir, opts.Pattern)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		switch effectiveMode {
		case output.ModeJSON:
			return r.JSON(output.SeedOutput{
				Seeds:   []output.SeedInfo{},
				Summary: output.SeedSummary{TotalSeeds: 0, TotalRows: 0},
			})
		case output.ModeMarkdown:
			r.Println(output.FormatHeader(1, "Seeds"))
			r.Println("")
			r.Println("No seed files found in " + cfg.SeedsDir)
		default:
			r.Header(1, "Seeds")
			r.Muted("No seed files found in " + cfg.SeedsDir)
		}
		return nil
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Show spinner for TTY mode
	var spinner *output.Spinner
	if effectiveMode == output.ModeText {
		spinner = r.NewSpinner("Loading seeds...")
		spinner.Start()
	}

	loader := seed.NewLoader(cmdCtx.Adapter, cmdCtx.Logger)
	ctx := cmd.Context()

	migrated, err := loader.Migrate(ctx)
	var results []seed.Result
	if err == nil {
		results, err = loader.Load(ctx, files)
	}
	if err != nil {
		if spinner != nil {
			spinner.Fail("Failed to load seeds")
		}
		return err
	}

	if spinner != nil {
		spinner.Success("Seeds loaded successfully")
	}

	// Output based on mode
	summary := summarizeSeeds(results, migrated)
	switch effectiveMode {
	case output.ModeJSON:
		return seedJSON(r, results, summary)
	case output.ModeMarkdown:
		return seedMarkdown(r, cfg.SeedsDir, results, summary)
	default:
		return seedText(r, cfg.SeedsDir, results, summary)
	}
}

// discoverSeeds lists the seed files, treating a missing directory as empty.
func discoverSeeds(dir, pattern string) ([]seed.File, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return seed.Discover(dir, pattern)
}

func summarizeSeeds(results []seed.Result, migrated bool) output.SeedSummary {
	s := output.SeedSummary{TotalSeeds: len(results), Migrated: migrated}
	for _, res := range results {
		s.TotalRows += res.Rows
	}
	return s
}

// seedText outputs seed results in styled text format.
func seedText(r *output.Renderer, seedsDir string, results []seed.Result, summary output.SeedSummary) error {
	r.Println("")
	r.Header(2, "Loaded Seeds")

	for _, res := range results {
		r.StatusLine(res.File.Table, "success", fmt.Sprintf("%d rows from %s", res.Rows, relPath(seedsDir, res.File.Path)))
	}

	r.Println("")
	if summary.Migrated {
		r.Muted("Applied demo schema migrations")
	}
	r.Muted(fmt.Sprintf("Source: %s (%d rows)", seedsDir, summary.TotalRows))
	return nil
}

// seedMarkdown outputs seed results in markdown format.
func seedMarkdown(r *output.Renderer, seedsDir string, results []seed.Result, summary output.SeedSummary) error {
	r.Println(output.FormatHeader(1, "Seeds Loaded"))
	r.Println("")

	for _, res := range results {
		r.Println(output.FormatKeyValue("Table", res.File.Table))
		r.Println(output.FormatKeyValue("File", relPath(seedsDir, res.File.Path)))
		r.Println(output.FormatKeyValue("Rows", fmt.Sprint(res.Rows)))
		r.Println("")
	}

	r.Println(output.FormatKeyValue("Source Directory", seedsDir))
	r.Printf("**Total Seeds:** %d\n", summary.TotalSeeds)
	r.Printf("**Total Rows:** %d\n", summary.TotalRows)
	return nil
}

// seedJSON outputs seed results in JSON format.
func seedJSON(r *output.Renderer, results []seed.Result, summary output.SeedSummary) error {
	seeds := make([]output.SeedInfo, 0, len(results))
	for _, res := range results {
		absPath, _ := filepath.Abs(res.File.Path)
		seeds = append(seeds, output.SeedInfo{
			Name:     res.File.Table,
			FilePath: absPath,
			Rows:     res.Rows,
		})
	}

	return r.JSON(output.SeedOutput{Seeds: seeds, Summary: summary})
}

func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
