package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yacobolo/rccgen"
	"github.com/yacobolo/rccgen/internal/report"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate component libraries from stylesheets",
	Long: `Compile every stylesheet into a Go file (or a JSON manifest) declaring its
class names, a component library and typed props for each component.
Unchanged stylesheets are skipped using the change cache.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	addSourceFlags(generateCmd.Flags())
	addGenerateFlags(generateCmd.Flags())
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	config := buildGenerateConfig()

	result, err := rccgen.Generate(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if !getBoolWithFallback("quiet", false) {
		useColors := report.ShouldUseColors(getBoolWithFallback("color", false))
		printGenerateResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result, useColors)
	}

	if len(result.Errors) > 0 {
		return errFailed
	}
	return nil
}

func printGenerateResult(out, errOut io.Writer, result *rccgen.GenerateResult, useColors bool) {
	fmt.Fprintf(out, "%s Generated %d files (%d unchanged)\n",
		report.RenderStyle(report.StyleGreen, "✓", useColors), result.FilesGenerated, result.FilesSkipped)
	fmt.Fprintf(out, "  Files scanned: %d\n", result.FilesScanned)
	fmt.Fprintf(out, "  Components: %d\n", result.ComponentsGenerated)

	for _, fr := range result.Files {
		if fr.Removed != "" {
			fmt.Fprintf(out, "  Removed %s\n", fr.Removed)
		}
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  %s %s\n", report.RenderStyle(report.StyleYellow, "Warning:", useColors), w)
	}

	for _, err := range result.Errors {
		fmt.Fprintf(errOut, "%s %v\n", report.RenderStyle(report.StyleRed, "Error:", useColors), err)
	}
}
