// ABOUTME: Entry point for nutrition CLI.
// ABOUTME: Reports command failures on stderr without a fatal exit status.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := Execute(); err != nil {
		// Failures are reported but do not change the exit status.
		color.New(color.FgRed).Fprintf(os.Stderr, "An error occurred: %v\n", err)
	}
}
