package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/rccgen/internal/emit"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/rccgen
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of rccgen",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rccgen %s (manifest %s, runtime %s)\n", version, emit.ManifestVersion, emit.DefaultRuntime)
	},
}
