package core

import (
	"database/sql"
	"strconv"
)

// AdapterConfig holds configuration for connecting to a warehouse.
type AdapterConfig struct {
	Type      string
	Path      string
	Host      string
	Port      int
	Database  string
	Username  string
	Password  string
	Schema    string
	Account   string
	Warehouse string
	Role      string
	Options   map[string]string
	Params    map[string]any
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}

// PlaceholderStyle is the bind parameter syntax a driver expects.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for every parameter (DuckDB, SQLite, Snowflake).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, ... (PostgreSQL).
	PlaceholderDollar
)

// Format returns the placeholder for the 1-based parameter index.
func (p PlaceholderStyle) Format(index int) string {
	switch p {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default:
		return "?"
	}
}
