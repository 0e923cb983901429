// Package seed loads CSV files of demo speed-test results into a local
// warehouse so the dashboard can run without access to the production one.
package seed

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/leapstack-labs/pingerdash/internal/dataset"
	"github.com/leapstack-labs/pingerdash/pkg/adapter"
)

// DefaultPattern selects the seed files below the seeds directory.
const DefaultPattern = "**/*.csv"

// insertBatch is the number of rows per INSERT statement.
const insertBatch = 200

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// File is a discovered seed file and the table it loads into.
type File struct {
	Path  string
	Table string
}

// Result reports one loaded file.
type Result struct {
	File File
	Rows  int
}

// Discover returns the CSV files below dir matching pattern, sorted by path.
// The table name is the file name without its extension.
func Discover(dir, pattern string) ([]File, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("seeds directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("seeds directory %s is not a directory", dir)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("pattern matching failed: %w", err)
	}
	sort.Strings(matches)

	files := make([]File, 0, len(matches))
	for _, m := range matches {
		table := strings.TrimSuffix(filepath.Base(m), filepath.Ext(m))
		if !tableNamePattern.MatchString(table) {
			return nil, fmt.Errorf("seed file %s: %q is not a valid table name", m, table)
		}
		files = append(files, File{Path: m, Table: table})
	}
	return files, nil
}

// Loader writes seed files into a connected adapter.
type Loader struct {
	adapter adapter.Adapter
	logger  *slog.Logger
}

// NewLoader returns a loader for adp.
func NewLoader(adp adapter.Adapter, logger *slog.Logger) *Loader {
	return &Loader{adapter: adp, logger: adapter.DiscardLogger(logger)}
}

// Migrate applies the demo schema when the adapter has a goose dialect.
// It reports whether migrations ran.
func (l *Loader) Migrate(ctx context.Context) (bool, error) {
	dialect, ok := gooseDialects[l.adapter.Name()]
	if !ok {
		return false, nil
	}
	db, err := sqlDB(l.adapter)
	if err != nil {
		return false, err
	}
	if err := MigrateWithDB(ctx, db, dialect); err != nil {
		return false, err
	}
	l.logger.Debug("applied demo schema", slog.String("adapter", l.adapter.Name()))
	return true, nil
}

// Load migrates the demo schema and replaces the contents of each file's table.
func (l *Loader) Load(ctx context.Context, files []File) ([]Result, error) {
	if adapter.IsReadOnly(l.adapter.Name()) {
		return nil, fmt.Errorf("seeding is not supported for the %s adapter; it is read-only", l.adapter.Name())
	}
	if _, err := l.Migrate(ctx); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(files))
	for _, f := range files {
		n, err := l.loadFile(ctx, f)
		if err != nil {
			return results, fmt.Errorf("failed to load %s: %w", f.Path, err)
		}
		l.logger.Info("loaded seed", slog.String("table", f.Table), slog.Int("rows", n))
		results = append(results, Result{File: f, Rows: n})
	}
	return results, nil
}

// LoadDir discovers and loads every seed file below dir.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]Result, error) {
	files, err := Discover(dir, DefaultPattern)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, files)
}

func (l *Loader) loadFile(ctx context.Context, f File) (int, error) {
	header, records, err := readCSV(f.Path)
	if err != nil {
		return 0, err
	}

	if csvLoader, ok := l.adapter.(adapter.CSVLoader); ok {
		if err := csvLoader.LoadCSV(ctx, f.Table, f.Path); err != nil {
			return 0, err
		}
		return len(records), nil
	}

	ds, err := dataset.FromRecords(header, records)
	if err != nil {
		return 0, err
	}
	if err := l.adapter.Exec(ctx, createTableSQL(f.Table, ds)); err != nil {
		return 0, err
	}
	if err := l.adapter.Exec(ctx, "DELETE FROM "+f.Table); err != nil {
		return 0, err
	}
	return len(records), l.insert(ctx, f.Table, header, records)
}

func (l *Loader) insert(ctx context.Context, table string, header []string, records [][]string) error {
	for start := 0; start < len(records); start += insertBatch {
		end := min(start+insertBatch, len(records))

		var sb strings.Builder
		fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", table, strings.Join(header, ", "))
		args := make([]any, 0, (end-start)*len(header))
		for r, rec := range records[start:end] {
			if r > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('(')
			for c := range header {
				if c > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(l.adapter.Placeholder(len(args) + 1))
				var v any
				if c < len(rec) && rec[c] != "" {
					v = rec[c]
				}
				args = append(args, v)
			}
			sb.WriteByte(')')
		}
		if err := l.adapter.Exec(ctx, sb.String(), args...); err != nil {
			return err
		}
	}
	return nil
}

// createTableSQL declares float columns as DOUBLE PRECISION and the rest as TEXT.
func createTableSQL(table string, ds *dataset.Dataset) string {
	cols := make([]string, 0, ds.NumColumns())
	for _, c := range ds.Columns() {
		typ := "TEXT"
		if c.Type == dataset.TypeFloat {
			typ = "DOUBLE PRECISION"
		}
		cols = append(cols, c.Name+" "+typ)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(cols, ", "))
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, nil, err
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if !tableNamePattern.MatchString(header[i]) {
			return nil, nil, fmt.Errorf("invalid column name %q", h)
		}
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return header, records, nil
}

func sqlDB(adp adapter.Adapter) (*sql.DB, error) {
	provider, ok := adp.(adapter.DBProvider)
	if !ok {
		return nil, fmt.Errorf("adapter %s does not expose a database handle", adp.Name())
	}
	db, ok := provider.SQLDB().(*sql.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("adapter %s is not connected", adp.Name())
	}
	return db, nil
}
