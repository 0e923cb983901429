// Package main is the pingerdash command.
package main

import (
	"os"

	"github.com/leapstack-labs/pingerdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
