// Package main provides the entry point for kvmesh-cli.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/kvmesh-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
