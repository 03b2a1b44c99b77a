package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/rccgen"
	"github.com/yacobolo/rccgen/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report naming problems and extension cycles",
	Long: `Compile every stylesheet without writing artifacts and report hyphenated
component names, malformed tokens and recursive extensions with their
positions, in golangci-lint format.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	addSourceFlags(f)
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show the (rccparse) suffix on issues")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	config := buildGenerateConfig()
	opts := buildCheckOptions()

	result, err := rccgen.Check(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if !opts.Quiet {
		format := report.DetermineOutputFormat(opts.OutputFormat)
		if err := report.Write(cmd.OutOrStdout(), *result, format, report.Options{
			UseColors:       opts.Color,
			PrintLines:      opts.PrintLines,
			PrintLinterName: opts.PrintLinterName,
		}); err != nil {
			return err
		}
	}

	if checkFailed(*result, opts.Strict) {
		return errFailed
	}
	return nil
}

// checkFailed applies the exit policy: errors always fail, warnings only
// in strict mode
func checkFailed(result report.Result, strict bool) bool {
	if strict {
		return len(result.Issues) > 0
	}
	return result.Errors() > 0
}
