// Package main is the entry point for the gold-calc CLI.
package main

import (
	"os"

	"gold-calc/cmd/cli/cmd"
	"gold-calc/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
