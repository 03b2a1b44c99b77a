// Package main provides the rccgen CLI tool for compiling class-name
// convention stylesheets into typed Go component libraries.
package main

import (
	"errors"
	"fmt"
	"os"
)

// errFailed signals a failed run whose details were already printed
var errFailed = errors.New("run failed")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
