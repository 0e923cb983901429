// Package main provides tests for the pingerdash CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/leapstack-labs/pingerdash/internal/cli"
	"github.com/leapstack-labs/pingerdash/internal/cli/config"
	"github.com/leapstack-labs/pingerdash/internal/cli/output"
	"github.com/leapstack-labs/pingerdash/internal/cli/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "pingerdash") {
		t.Errorf("version output should contain 'pingerdash', got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	for _, expected := range []string{"serve", "results", "wifi", "seed", "init", "completion"} {
		if !strings.Contains(out, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, out)
		}
	}
}

func TestSeedAndResults(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)
	t.Cleanup(config.ResetConfig)

	if _, err := run(t, "seed"); err != nil {
		t.Fatalf("seed command error = %v", err)
	}

	out, err := run(t, "results", "--device", testutil.DemoDevice, "--output", "json")
	if err != nil {
		t.Fatalf("results command error = %v", err)
	}

	var res output.ResultsOutput
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("results output is not JSON: %v\n%s", err, out)
	}
	if res.Total != 3 || res.Shown != 3 {
		t.Errorf("expected 3 of 3 rows, got %d of %d", res.Shown, res.Total)
	}
}

func TestResultsWithoutDeviceOffTTY(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetConfig)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	defer func() { _ = w.Close() }()
	stdin := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = stdin }()

	_, err = run(t, "results")
	if err == nil || !strings.Contains(err.Error(), "--device is required") {
		t.Errorf("expected a missing device error, got %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			if err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
			if !strings.Contains(out, "pingerdash") {
				t.Errorf("completion %s should mention pingerdash", shell)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := run(t, "unknown-command"); err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
