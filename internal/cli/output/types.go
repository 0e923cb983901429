package output

// SeedInfo describes one loaded seed file.
type SeedInfo struct {
	Name     string `json:"name"`
	FilePath string `json:"file_path"`
	Rows     int    `json:"rows"`
}

// SeedSummary totals a seed run.
type SeedSummary struct {
	TotalSeeds int  `json:"total_seeds"`
	TotalRows  int  `json:"total_rows"`
	Migrated   bool `json:"migrated"`
}

// SeedOutput is the JSON shape of the seed command.
type SeedOutput struct {
	Seeds   []SeedInfo  `json:"seeds"`
	Summary SeedSummary `json:"summary"`
}

// ResultsOutput is the JSON shape of the results command.
type ResultsOutput struct {
	Device  string           `json:"device"`
	Table   string           `json:"table"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Total   int              `json:"total_rows"`
	Shown   int              `json:"filtered_rows"`
	Notes   []string         `json:"notes,omitempty"`
}

// WifiOutput is the JSON shape of the wifi command.
type WifiOutput struct {
	SSID    string `json:"ssid"`
	Auth    string `json:"auth"`
	Hidden  bool   `json:"hidden"`
	Payload string `json:"payload"`
	File    string `json:"file,omitempty"`
}
