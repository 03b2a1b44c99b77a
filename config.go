package rccgen

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yacobolo/rccgen/internal/changecache"
	"github.com/yacobolo/rccgen/internal/precompile"
	"github.com/yacobolo/rccgen/rcc"
)

// Output formats
const (
	FormatGo   = "go"
	FormatJSON = "json"
)

// DefaultOutputSuffix is appended to the stylesheet stem: button.css
// becomes button.rcc.go.
const DefaultOutputSuffix = ".rcc"

// DefaultIncludes matches every supported stylesheet below the source dir.
var DefaultIncludes = []string{"**/*.css", "**/*.scss", "**/*.sass", "**/*.less"}

// Config holds generator configuration
type Config struct {
	SourceDir         string   // "web/styles"
	Includes          []string // doublestar patterns relative to SourceDir
	Excludes          []string // doublestar patterns relative to SourceDir
	OutputDir         string   // empty writes each artifact next to its source
	PackageName       string   // empty derives it from the output directory
	Format            string   // "go" or "json"
	OutputSuffix      string   // ".rcc"
	StyleOnly         bool     // emit the style surface only
	StyleOnlyPatterns []string // sources emitted style-only
	DebugPrefix       string   // component display name prefix, "S."
	Cache             CacheConfig
	Precompile        PrecompileConfig
	RespectGitignore  bool
	Verbose           bool
}

// CacheConfig configures the change cache
type CacheConfig struct {
	Disabled bool
	Folder   string // ".rcc-tmp"
	Root     string // defaults to SourceDir
}

// PrecompileConfig names the Sass and Less compilers
type PrecompileConfig struct {
	Sass string // "sass"
	Less string // "lessc"
}

// withDefaults fills in unset fields
func (c Config) withDefaults() Config {
	if c.SourceDir == "" {
		c.SourceDir = "."
	}
	if len(c.Includes) == 0 {
		c.Includes = DefaultIncludes
	}
	if c.Format == "" {
		c.Format = FormatGo
	}
	if c.OutputSuffix == "" {
		c.OutputSuffix = DefaultOutputSuffix
	}
	if c.DebugPrefix == "" {
		c.DebugPrefix = rcc.DefaultDebugPrefix
	}
	if c.Cache.Folder == "" {
		c.Cache.Folder = changecache.DefaultFolder
	}
	if c.Cache.Root == "" {
		c.Cache.Root = c.SourceDir
	}
	return c
}

func (c Config) validate() error {
	switch c.Format {
	case FormatGo, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q, expected %q or %q", c.Format, FormatGo, FormatJSON)
	}
	if c.PackageName != "" && !isIdentifier(c.PackageName) {
		return fmt.Errorf("invalid package name %q", c.PackageName)
	}
	return nil
}

func (c Config) newCache() *changecache.Cache {
	return changecache.New(changecache.Options{
		Disabled: c.Cache.Disabled,
		Folder:   c.Cache.Folder,
		Root:     c.Cache.Root,
	})
}

func (c Config) newCompiler() *precompile.Compiler {
	return precompile.New(precompile.Config{
		Sass: c.Precompile.Sass,
		Less: c.Precompile.Less,
	})
}

// outputDir is where the artifact of source is written
func (c Config) outputDir(source string) string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Dir(source)
}

// outputFileName is the artifact file name of source, e.g. "button.rcc.go"
func (c Config) outputFileName(source string) string {
	ext := ".go"
	if c.Format == FormatJSON {
		ext = ".json"
	}
	return changecache.Stem(source) + c.OutputSuffix + ext
}

// packageName is the Go package of artifacts written to dir
func (c Config) packageName(dir string) string {
	if c.PackageName != "" {
		return c.PackageName
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	var b strings.Builder
	for _, r := range strings.ToLower(filepath.Base(abs)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return "styles"
	}
	return name
}

// relPath returns path relative to the source dir, slash separated
func (c Config) relPath(path string) string {
	rel, err := filepath.Rel(c.SourceDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if !unicode.IsLetter(r) && r != '_' && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return s != ""
}
