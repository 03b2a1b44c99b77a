package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/rccgen"
)

const (
	defaultConfigPath = ".rccgen.yaml"
	envPrefix         = "RCCGEN_"
)

var k = koanf.New(".")

// configSections are the nested blocks of .rccgen.yaml
var configSections = map[string]bool{
	"generate":   true,
	"check":      true,
	"cache":      true,
	"precompile": true,
}

// flagKeys maps flag names to their config key. Flags not listed use their
// own name as a top-level key.
var flagKeys = map[string]string{
	"source":              "generate.source",
	"include":             "generate.include",
	"exclude":             "generate.exclude",
	"respect-gitignore":   "generate.respect-gitignore",
	"output-dir":          "generate.output-dir",
	"format":              "generate.format",
	"output-suffix":       "generate.output-suffix",
	"style-only":          "generate.style-only",
	"style-only-patterns": "generate.style-only-patterns",
	"no-cache":            "cache.disabled",
	"cache-folder":        "cache.folder",
	"sass":                "precompile.sass",
	"less":                "precompile.less",
	"strict":              "check.strict",
	"output-format":       "check.output-format",
	"print-lines":         "check.print-lines",
	"print-linter-name":   "check.print-linter-name",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 4. CLI flags. A flag left at its default only fills keys no other
	// source has set.
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, interface{}) {
		return flagKey(f.Name), posflag.FlagVal(cmd.Flags(), f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. .env next to the config file; existing variables win
	dotenv := filepath.Join(filepath.Dir(configPath), ".env")
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return fmt.Errorf("loading %s: %w", dotenv, err)
		}
	}

	// 3. Environment variables (RCCGEN_* prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	RCCGEN_GENERATE_OUTPUT_DIR -> generate.output-dir
//	RCCGEN_CACHE_DISABLED      -> cache.disabled
//	RCCGEN_DEBUG_PREFIX        -> debug-prefix
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if section, rest, ok := strings.Cut(key, "_"); ok && configSections[section] {
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(key, "_", "-")
}

func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return name
}

// buildGenerateConfig constructs the library's Config struct from koanf state.
func buildGenerateConfig() rccgen.Config {
	return rccgen.Config{
		SourceDir:         getStringWithFallback("generate.source", "."),
		Includes:          getStringsWithFallback("generate.include", rccgen.DefaultIncludes),
		Excludes:          getStringsWithFallback("generate.exclude", nil),
		RespectGitignore:  getBoolWithFallback("generate.respect-gitignore", true),
		OutputDir:         getStringWithFallback("generate.output-dir", ""),
		PackageName:       getStringWithFallback("package", ""),
		Format:            getStringWithFallback("generate.format", rccgen.FormatGo),
		OutputSuffix:      getStringWithFallback("generate.output-suffix", rccgen.DefaultOutputSuffix),
		StyleOnly:         getBoolWithFallback("generate.style-only", false),
		StyleOnlyPatterns: getStringsWithFallback("generate.style-only-patterns", nil),
		DebugPrefix:       getStringWithFallback("debug-prefix", ""),
		Cache: rccgen.CacheConfig{
			Disabled: getBoolWithFallback("cache.disabled", false),
			Folder:   getStringWithFallback("cache.folder", ""),
			Root:     getStringWithFallback("cache.root", ""),
		},
		Precompile: rccgen.PrecompileConfig{
			Sass: getStringWithFallback("precompile.sass", ""),
			Less: getStringWithFallback("precompile.less", ""),
		},
		Verbose: getBoolWithFallback("verbose", false),
	}
}

// checkOptions are the check command settings outside rccgen.Config
type checkOptions struct {
	Strict          bool
	OutputFormat    string
	PrintLines      bool
	PrintLinterName bool
	Quiet           bool
	Color           bool
}

func buildCheckOptions() checkOptions {
	return checkOptions{
		Strict:          getBoolWithFallback("check.strict", false),
		OutputFormat:    getStringWithFallback("check.output-format", ""),
		PrintLines:      getBoolWithFallback("check.print-lines", true),
		PrintLinterName: getBoolWithFallback("check.print-linter-name", true),
		Quiet:           getBoolWithFallback("quiet", false),
		Color:           getBoolWithFallback("color", false),
	}
}

// getStringWithFallback returns the value at key, or defaultVal when unset or empty.
func getStringWithFallback(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback returns the list at key, or defaultVal when unset or empty.
func getStringsWithFallback(key string, defaultVal []string) []string {
	if v := k.Strings(key); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback returns the value at key, or defaultVal when unset.
func getBoolWithFallback(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}
