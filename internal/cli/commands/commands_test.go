package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pingerdash/internal/cli/config"
	"github.com/leapstack-labs/pingerdash/internal/cli/output"
	"github.com/leapstack-labs/pingerdash/internal/cli/testutil"
	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/internal/speedtest"
	"github.com/leapstack-labs/pingerdash/internal/wifi"
)

func TestNewSeedCommand(t *testing.T) {
	cmd := NewSeedCommand()

	assert.Equal(t, "seed", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("pattern"))
}

func TestNewResultsCommand(t *testing.T) {
	cmd := NewResultsCommand()

	assert.Equal(t, "results", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"device", "filter", "format", "chart", "export"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "d", cmd.Flags().Lookup("device").Shorthand)
}

func TestNewWifiCommand(t *testing.T) {
	cmd := NewWifiCommand()

	assert.Equal(t, "wifi", cmd.Use)
	for _, flag := range []string{"ssid", "auth", "password", "hidden", "out", "level", "box-size", "border"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "WPA3-SAE", cmd.Flags().Lookup("auth").DefValue)
	assert.Equal(t, "wifi_qr_code.png", cmd.Flags().Lookup("out").DefValue)
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Aliases, "ui")
	for _, flag := range []string{"port", "no-browser", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

// setupProject creates a seeded sqlite project in the working directory
// and loads its config. Columns with two or more distinct values filter as
// ranges.
func setupProject(t *testing.T) string {
	t.Helper()
	return seedProject(t, "filter:\n  categorical_threshold: 2\n")
}

// seedProject is setupProject with caller-supplied extra config.
func seedProject(t *testing.T, extraConfig ...string) string {
	t.Helper()

	dir := testutil.SetupTestProject(t, extraConfig...)
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	_, err = execute(t, NewSeedCommand())
	require.NoError(t, err)
	return dir
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestResults_JSON(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewResultsCommand(), "--device", testutil.DemoDevice, "--format", "json")
	require.NoError(t, err)

	var res output.ResultsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, testutil.DemoDevice, res.Device)
	assert.Equal(t, "speed_tests_results", res.Table)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 3, res.Shown)
	assert.Equal(t, []string{"END_DATE", "AVG_UPLOAD_SPEED", "AVG_DOWNLOAD_SPEED", "AVG_PING"}, res.Columns)
	require.Len(t, res.Rows, 3)
	assert.Nil(t, res.Rows[1]["AVG_PING"], "missing ping is null")
}

func TestResults_Filter(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewResultsCommand(),
		"--device", strings.ReplaceAll(testutil.DemoDevice, "-", ""),
		"--filter", "AVG_UPLOAD_SPEED=40..",
		"--format", "json")
	require.NoError(t, err)

	var res output.ResultsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Shown)
	assert.Empty(t, res.Notes)
}

func TestResults_RangeFilterOnFewRows(t *testing.T) {
	seedProject(t)

	out, err := execute(t, NewResultsCommand(),
		"-d", testutil.DemoDevice,
		"--filter", "AVG_UPLOAD_SPEED=40..",
		"--filter", "END_DATE=2024-05-02..2024-05-03",
		"--format", "json")
	require.NoError(t, err)

	var res output.ResultsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Shown, "only the 2024-05-03 test uploads at 40 or more")
	assert.Empty(t, res.Notes)
}

func TestWriteOutputFile_RemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")

	err := writeOutputFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "END_DATE\n")
		return errors.New("disk full")
	})
	require.EqualError(t, err, "disk full")
	assert.NoFileExists(t, path)

	empty := dataset.MustNew(dataset.Time("END_DATE"), dataset.Float("AVG_UPLOAD_SPEED"))
	chartPath := filepath.Join(t.TempDir(), "speeds.svg")
	require.Error(t, writeChart(chartPath, empty, speedtest.DefaultQuery()))
	assert.NoFileExists(t, chartPath)

	require.NoError(t, writeOutputFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "END_DATE\n")
		return err
	}))
	assert.FileExists(t, path)
}

func TestResults_TableAndMarkdown(t *testing.T) {
	setupProject(t)

	out, err := execute(t, NewResultsCommand(), "-d", testutil.OtherDevice, "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "AVG_DOWNLOAD_SPEED")
	assert.Contains(t, out, "(1 of 1 rows)")

	out, err = execute(t, NewResultsCommand(), "-d", testutil.OtherDevice, "--format", "md")
	require.NoError(t, err)
	assert.Contains(t, out, "| END_DATE |")
	assert.Contains(t, out, "Showing 1 of 1 rows")
	testutil.AssertNoANSI(t, out)
}

func TestResults_ChartAndExport(t *testing.T) {
	dir := setupProject(t)
	chartPath := filepath.Join(dir, "speeds.svg")
	exportPath := filepath.Join(dir, "rows.csv")

	_, err := execute(t, NewResultsCommand(), "-d", testutil.DemoDevice, "--format", "csv",
		"--chart", chartPath, "--export", exportPath)
	require.NoError(t, err)

	svg, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	rows, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(rows)), "\n"), 4, "header plus three rows")
}

func TestResults_Errors(t *testing.T) {
	setupProject(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid device", []string{"-d", "not-a-uuid"}, "The entered UUID is invalid"},
		{"bad format", []string{"-d", testutil.DemoDevice, "--format", "xml"}, "unknown format"},
		{"bad filter", []string{"-d", testutil.DemoDevice, "--filter", "AVG_PING"}, "expected column=value"},
		{"bad chart extension", []string{"-d", testutil.DemoDevice, "--chart", "out.gif"}, ".png or .svg"},
		{"bad export extension", []string{"-d", testutil.DemoDevice, "--export", "out.json"}, "unknown export format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewResultsCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveResultsFormat(t *testing.T) {
	tests := []struct {
		format string
		mode   output.OutputMode
		want   string
	}{
		{"", output.ModeAuto, "table"},
		{"", output.ModeJSON, "json"},
		{"", output.ModeMarkdown, "md"},
		{"markdown", output.ModeText, "md"},
		{"CSV", output.ModeJSON, "csv"},
	}
	for _, tt := range tests {
		got, err := resolveResultsFormat(tt.format, tt.mode)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "format %q mode %q", tt.format, tt.mode)
	}
}

func TestRenderDataset_Nulls(t *testing.T) {
	ds := dataset.MustNew(dataset.Nullable("AVG_PING", dataset.TypeFloat, 11.8, nil))

	var buf bytes.Buffer
	require.NoError(t, renderDataset(&buf, ds, 5, "table"))
	assert.Contains(t, buf.String(), dataset.NullLabel)
	assert.Contains(t, buf.String(), "(2 of 5 rows)")
}

func TestWifi(t *testing.T) {
	t.Chdir(t.TempDir())
	config.ResetConfig()

	out, err := execute(t, NewWifiCommand(), "--ssid", "Guest", "--auth", "open", "--password", "ignored", "--box-size", "2", "--border", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "wifi_qr_code.png")

	f, err := os.Open("wifi_qr_code.png")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	require.NoError(t, err)
	modules, err := wifi.Modules("WIFI:T:OPEN;S:Guest;P:;H:false;;", "L")
	require.NoError(t, err)
	assert.Equal(t, 2*len(modules), img.Bounds().Dx())
	assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestWifi_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	config.ResetConfig()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing ssid", []string{"--password", "x"}, "SSID is required!"},
		{"missing password", []string{"--ssid", "Office"}, "Password is required for selected authentication!"},
		{"unknown auth", []string{"--ssid", "Office", "--auth", "WEP"}, "unknown authentication type"},
		{"bad level", []string{"--ssid", "Office", "--password", "x", "--level", "Z"}, "unknown error correction level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewWifiCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	_, err := os.Stat("wifi_qr_code.png")
	assert.True(t, os.IsNotExist(err), "nothing written on error")
}
