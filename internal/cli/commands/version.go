package commands

import (
	"fmt"
	"runtime"

	"github.com/leapstack-labs/pingerdash/internal/cli/output"
	"github.com/leapstack-labs/pingerdash/pkg/adapter"
	"github.com/spf13/cobra"
)

// versionInfo is the JSON shape of the version command.
type versionInfo struct {
	Version  string   `json:"version"`
	Go       string   `json:"go"`
	Adapters []string `json:"adapters"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the pingerdash version and the warehouse adapters compiled in.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := NewCommandContextWithoutAdapter(cmd).Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(versionInfo{
					Version:  version,
					Go:       runtime.Version(),
					Adapters: adapter.ListAdapters(),
				})
			}

			r.Printf("pingerdash v%s\n", version)
			r.Println("Speed-test dashboard and Wi-Fi QR generator for Pinger devices")
			r.Println("")
			r.Println("Adapters:")
			for _, info := range adapter.Registered() {
				line := "  " + info.Name
				if info.Description != "" {
					line = fmt.Sprintf("  %-10s %s", info.Name, info.Description)
				}
				if info.ReadOnly {
					line += " (read-only)"
				}
				r.Println(line)
			}
			return nil
		},
	}
}
