package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/rccgen"
	"github.com/yacobolo/rccgen/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild stylesheets as they change",
	Long: `Build every stylesheet, then watch the source directory and rebuild each
stylesheet when it changes, reporting components added and removed.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addSourceFlags(watchCmd.Flags())
	addGenerateFlags(watchCmd.Flags())
}

func runWatch(cmd *cobra.Command, _ []string) error {
	config := buildGenerateConfig()
	quiet := getBoolWithFallback("quiet", false)
	useColors := report.ShouldUseColors(getBoolWithFallback("color", false))
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", config.SourceDir)
	}
	return rccgen.Watch(ctx, config, func(e rccgen.WatchEvent) {
		if !quiet {
			printWatchEvent(out, e, useColors)
		}
	})
}

func printWatchEvent(w io.Writer, e rccgen.WatchEvent, useColors bool) {
	switch {
	case e.Err != nil:
		fmt.Fprintf(w, "%s %v\n", report.RenderStyle(report.StyleRed, "✗", useColors), e.Err)
		return
	case e.Result == nil:
		fmt.Fprintf(w, "%s %s removed\n", report.RenderStyle(report.StyleGray, "-", useColors), e.Path)
	case e.Result.Skipped:
		fmt.Fprintf(w, "%s %s unchanged\n", report.RenderStyle(report.StyleGray, "=", useColors), e.Path)
	default:
		fmt.Fprintf(w, "%s %s -> %s\n", report.RenderStyle(report.StyleGreen, "✓", useColors), e.Path, e.Result.Output)
	}

	if len(e.Added) > 0 {
		fmt.Fprintf(w, "    + %s\n", strings.Join(e.Added, ", "))
	}
	if len(e.Removed) > 0 {
		fmt.Fprintf(w, "    - %s\n", strings.Join(e.Removed, ", "))
	}
	if e.Result != nil {
		for _, warning := range e.Result.Warnings {
			fmt.Fprintf(w, "    %s %s\n", report.RenderStyle(report.StyleYellow, "Warning:", useColors), warning)
		}
	}
}
