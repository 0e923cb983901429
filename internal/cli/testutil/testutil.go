// Package testutil provides fixtures for CLI tests: a seeded demo project
// and output assertions.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// DemoDevice has three speed tests in the project created by SetupTestProject.
const DemoDevice = "123e4567-e89b-12d3-a456-426614174000"

// OtherDevice has one speed test in the project created by SetupTestProject.
const OtherDevice = "9b2f6c1e-4d3a-4f7b-8c2d-1e0f3a5b7c9d"

// DemoResultsCSV is the speed_tests_results seed written by SetupTestProject.
// The second row has no ping.
const DemoResultsCSV = `DEVICE_UUID,START_DATE,END_DATE,AVG_UPLOAD_SPEED,AVG_DOWNLOAD_SPEED,AVG_PING
123e4567-e89b-12d3-a456-426614174000,2024-05-01 09:59:30,2024-05-01 10:00:00,41.2,212.5,11.8
123e4567-e89b-12d3-a456-426614174000,2024-05-02 09:59:30,2024-05-02 10:00:00,39.9,205.1,
123e4567-e89b-12d3-a456-426614174000,2024-05-03 09:59:30,2024-05-03 10:00:00,43.0,220.0,10.9
9b2f6c1e-4d3a-4f7b-8c2d-1e0f3a5b7c9d,2024-05-01 12:00:00,2024-05-01 12:00:30,12.0,80.0,35.5
`

// projectConfig targets a sqlite database inside the project directory.
const projectConfig = `target:
  type: sqlite
  database: pingerdash.db
`

// SetupTestProject creates a temporary project with a sqlite target and
// the demo speed-test seed. Extra YAML is appended to pingerdash.yaml.
func SetupTestProject(t *testing.T, extraConfig ...string) string {
	t.Helper()

	tmpDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tmpDir, "seeds"), 0o755); err != nil {
		t.Fatalf("failed to create seeds directory: %v", err)
	}

	cfg := projectConfig
	for _, extra := range extraConfig {
		cfg += extra
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "pingerdash.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to create pingerdash.yaml: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "seeds", "speed_tests_results.csv"),
		[]byte(DemoResultsCSV), 0o644); err != nil {
		t.Fatalf("failed to create speed_tests_results.csv: %v", err)
	}

	return tmpDir
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that piped output carries no terminal styling.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
