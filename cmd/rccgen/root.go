package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rccgen",
	Short: "Class-name convention compiler for Go projects",
	Long: `Compile stylesheets written in the rcc naming convention into typed
component libraries. Btn--primary declares a boolean flag, Btn--lg_as_size a
value of the size flag and DeleteBtn_ext_Btn an extension.`,
	// Default behavior: run generate when no subcommand is given.
	// loadConfig must be called here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().String("package", "", "Go package name (default: derived from the output directory)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")

	addSourceFlags(rootCmd.Flags())
	addGenerateFlags(rootCmd.Flags())

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
