// Package main is the micbridge command line tool.
//
// Usage:
//
//	micbridge [flags] <command>
//
// Commands:
//
//	run      - Install the panel and keep it in sync with the device
//	status   - Show the controlled microphones
//	panel    - Print the panel document
//	remove   - Remove the panel from the device
//	init     - Write a configuration file
//	version  - Show version information
//
// Configuration is read from ~/.micbridge/config.yaml unless --config is given.
package main

import (
	"fmt"
	"os"

	"github.com/leandrodaf/micbridge/cmd/micbridge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
