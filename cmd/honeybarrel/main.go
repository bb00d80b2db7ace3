// Package main is the entry point for the honeybarrel CLI.
package main

import (
	"os"

	"github.com/honeybarrel/backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
