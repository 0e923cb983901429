package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/pingerdash/internal/cli/output"
	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/device"
	"github.com/leapstack-labs/pingerdash/internal/filter"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ResultsOptions holds options for the results command.
type ResultsOptions struct {
	Device  string
	Filters []string
	Format  string
	Chart   string
	Export  string
}

// NewResultsCommand creates the results command.
func NewResultsCommand() *cobra.Command {
	opts := &ResultsOptions{}

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show the speed tests of a device",
		Long: `Fetch the speed-test results of one device from the target, newest first.

Filters narrow the rows the same way the dashboard widgets do:

  HOST=~^edge-                   rows whose text matches a regular expression
  AVG_PING=10..40                numeric range, either bound may be omitted
  END_DATE=2024-05-01..2024-05-31
                                 inclusive day range
  STATUS=ok,null                 categorical values, null selects empty cells

When --device is omitted on a terminal the device UUID is prompted for.`,
		Example: `  # Print a device's results as a table
  pingerdash results --device 123e4567-e89b-12d3-a456-426614174000

  # Only fast tests in May, as JSON
  pingerdash results -d 123e4567e89b12d3a456426614174000 \
    --filter AVG_DOWNLOAD_SPEED=200.. --filter END_DATE=2024-05-01..2024-05-31 --format json

  # Save the chart and an Excel export
  pingerdash results -d 123e4567-e89b-12d3-a456-426614174000 --chart speeds.svg --export rows.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResults(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Device, "device", "d", "", "Device UUID to look up")
	cmd.Flags().StringArrayVarP(&opts.Filters, "filter", "f", nil, "Filter as column=value (repeatable)")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format: table, json, csv, md (default: from --output)")
	cmd.Flags().StringVar(&opts.Chart, "chart", "", "Write the speed chart to a .png or .svg file")
	cmd.Flags().StringVar(&opts.Export, "export", "", "Write the rows to a .csv, .arrow or .xlsx file")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return resultFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

var resultFormats = []string{"table", "json", "csv", "md"}

func runResults(cmd *cobra.Command, opts *ResultsOptions) error {
	cfg := getConfig()

	format, err := resolveResultsFormat(opts.Format, output.Mode(cfg.OutputFormat))
	if err != nil {
		return err
	}
	filterCfg, err := filter.ParseAssignments(opts.Filters, cfg.Filter.CategoricalThreshold)
	if err != nil {
		return err
	}

	text := opts.Device
	if text == "" {
		if !isTerminal(os.Stdin) {
			return fmt.Errorf("--device is required when stdin is not a terminal")
		}
		text, err = promptDevice(cmd, cfg.ProjectRoot)
		if err != nil {
			return err
		}
	}
	id, err := device.Parse(text)
	if err != nil {
		return fmt.Errorf("%s: %w", device.InvalidMessage, err)
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	q := cfg.Query()
	fetcher, err := speedtest.NewFetcher(cmdCtx.Adapter, q,
		speedtest.WithLogger(cmdCtx.Logger),
		speedtest.WithTimeout(cfg.QueryTimeout()),
	)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	var spinner *output.Spinner
	if format == "table" {
		spinner = r.NewSpinner("Fetching speed tests...")
		spinner.Start()
	}
	ds, err := fetcher.Fetch(cmd.Context(), id)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	res := filter.Run(ds, filterCfg)
	for _, note := range res.Notes {
		r.Warning(note)
	}

	if opts.Chart != "" {
		if err := writeChart(opts.Chart, res.Data, q); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(r.ErrWriter(), "Chart written to "+opts.Chart)
	}
	if opts.Export != "" {
		if err := writeExport(opts.Export, res.Data); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(r.ErrWriter(), "Rows written to "+opts.Export)
	}

	if format == "json" {
		return r.JSON(resultsOutput(id, q.Table, ds, res))
	}
	return renderDataset(r.Writer(), res.Data, ds.NumRows(), format)
}

// resolveResultsFormat picks the --format value, falling back to the
// global output mode.
func resolveResultsFormat(format string, mode output.OutputMode) (string, error) {
	switch strings.ToLower(format) {
	case "":
		switch mode {
		case output.ModeJSON:
			return "json", nil
		case output.ModeMarkdown:
			return "md", nil
		default:
			return "table", nil
		}
	case "table", "json", "csv":
		return strings.ToLower(format), nil
	case "md", "markdown":
		return "md", nil
	default:
		return "", fmt.Errorf("unknown format %q (expected %s)", format, strings.Join(resultFormats, ", "))
	}
}

// promptDevice asks for a device UUID until a valid one is entered.
func promptDevice(cmd *cobra.Command, projectRoot string) (string, error) {
	rlCfg := &readline.Config{
		Prompt:          "device> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          cmd.ErrOrStderr(),
	}
	if projectRoot != "" {
		rlCfg.HistoryFile = filepath.Join(projectRoot, ".pingerdash_history")
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Enter the UUID of the device to look up")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", fmt.Errorf("no device given")
		}
		if err != nil {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := device.Parse(line); err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), device.InvalidMessage)
			continue
		}
		return line, nil
	}
}

func writeChart(path string, ds *dataset.Dataset, q speedtest.Query) error {
	var format speedtest.ChartFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		format = speedtest.ChartSVG
	case ".png":
		format = speedtest.ChartPNG
	default:
		return fmt.Errorf("chart file %s must end in .png or .svg", path)
	}

	return writeOutputFile(path, func(w io.Writer) error {
		if err := speedtest.RenderChart(w, speedtest.Chart(ds, q), format, 0, 0); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		return nil
	})
}

func writeExport(path string, ds *dataset.Dataset) error {
	format, err := dataset.ParseExportFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}
	return writeOutputFile(path, func(w io.Writer) error {
		if err := format.Write(w, ds); err != nil {
			return fmt.Errorf("failed to export rows: %w", err)
		}
		return nil
	})
}

// writeOutputFile creates path and fills it with write. A partial file is
// removed when writing fails.
func writeOutputFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) //nolint:gosec // user-chosen output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func resultsOutput(id device.ID, table string, all *dataset.Dataset, res filter.Result) output.ResultsOutput {
	out := output.ResultsOutput{
		Device:  id.String(),
		Table:   table,
		Columns: res.Data.Names(),
		Rows:    make([]map[string]any, 0, res.Data.NumRows()),
		Total:   all.NumRows(),
		Shown:   res.Data.NumRows(),
		Notes:   res.Notes,
	}
	for i := 0; i < res.Data.NumRows(); i++ {
		row := make(map[string]any, len(out.Columns))
		for j, v := range res.Data.Row(i) {
			if dataset.IsNull(v) {
				v = nil
			}
			row[out.Columns[j]] = v
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
