package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .rccgen.yaml config file",
	Long:  `Create the config file (--config, default .rccgen.yaml) with the default settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = defaultConfigPath
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# rccgen configuration
# Precedence: flags > RCCGEN_* environment (and .env) > this file > defaults

# Shared settings
package: ""              # empty derives the package from the output directory
debug-prefix: "S."
verbose: false

# Generation settings
generate:
  source: .
  include:
    - "**/*.css"
    - "**/*.scss"
    - "**/*.sass"
    - "**/*.less"
  exclude: []
  respect-gitignore: true
  output-dir: ""         # empty writes each artifact next to its stylesheet
  format: go             # go | json
  output-suffix: .rcc    # button.css -> button.rcc.go
  style-only: false
  style-only-patterns: []

# Change cache
cache:
  disabled: false
  folder: .rcc-tmp
  root: ""               # defaults to generate.source

# Pre-processors
precompile:
  sass: sass
  less: lessc

# Check settings
check:
  strict: false
  output-format: issues  # issues | summary | full | json
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
