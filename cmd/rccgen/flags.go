package main

import (
	"github.com/spf13/pflag"

	"github.com/yacobolo/rccgen"
)

// addSourceFlags registers the flags that select stylesheets
func addSourceFlags(f *pflag.FlagSet) {
	f.String("source", ".", "Source stylesheet directory")
	f.StringSlice("include", rccgen.DefaultIncludes, "Glob patterns for stylesheets to include")
	f.StringSlice("exclude", nil, "Glob patterns for stylesheets to skip")
	f.Bool("respect-gitignore", true, "Skip files ignored by .gitignore")
	addPrecompileFlags(f)
}

// addPrecompileFlags registers the pre-processor commands
func addPrecompileFlags(f *pflag.FlagSet) {
	f.String("sass", "sass", "Command compiling .scss and .sass files")
	f.String("less", "lessc", "Command compiling .less files")
}

// addGenerateFlags registers the flags that shape the artifacts
func addGenerateFlags(f *pflag.FlagSet) {
	f.String("output-dir", "", "Output directory (default: next to each stylesheet)")
	f.String("format", rccgen.FormatGo, "Artifact format: go|json")
	f.String("output-suffix", rccgen.DefaultOutputSuffix, "Suffix between the stylesheet stem and the extension")
	f.Bool("style-only", false, "Emit class names only, no component library")
	f.StringSlice("style-only-patterns", nil, "Glob patterns for stylesheets emitted style-only")
	f.String("debug-prefix", "", "Component display name prefix (default: S.)")
	f.Bool("no-cache", false, "Regenerate every artifact")
	f.String("cache-folder", "", "Change cache folder (default: .rcc-tmp)")
}
