package rccgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yacobolo/rccgen/internal/changecache"
	"github.com/yacobolo/rccgen/internal/emit"
	"github.com/yacobolo/rccgen/internal/extract"
	"github.com/yacobolo/rccgen/internal/precompile"
	"github.com/yacobolo/rccgen/rcc"
)

// FileResult describes the build of one stylesheet
type FileResult struct {
	Source     string
	Output     string // artifact path
	Skipped    bool   // unchanged since the last build
	Removed    string // stale artifact deleted after the output was renamed
	StyleOnly  bool
	Model      *rcc.Model // nil when Skipped
	Tokens     int
	Components int
	Warnings   []string

	tokens []string
}

// componentNames returns the components of the built stylesheet. A skipped
// file carries no model, so its tokens are resolved on demand.
func (fr *FileResult) componentNames() []string {
	if fr.Model != nil {
		return fr.Model.ComponentNames()
	}
	if fr.StyleOnly {
		return nil
	}
	model, err := rcc.Build(fr.tokens)
	if err != nil {
		return nil
	}
	return model.ComponentNames()
}

// GenerateResult contains generation stats
type GenerateResult struct {
	FilesScanned        int
	FilesGenerated      int
	FilesSkipped        int
	ComponentsGenerated int
	Files               []*FileResult
	Warnings            []string
	Errors              []error
}

// Generate is the main entry point. Every stylesheet is built on its own:
// a file that fails is reported in Errors and the others still build.
func Generate(ctx context.Context, config Config) (*GenerateResult, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	result := &GenerateResult{}

	// 1. Scan style files
	filter := newFileFilter(config)
	files, stats, err := scanStyleFiles(config, filter)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesScanned = len(files)

	if config.Verbose {
		fmt.Printf("Found %d style files (skipped %d)\n", len(files), stats.FilesSkipped)
	}

	// 2. Build each file
	b := newBuilder(config, filter)
	outputs := make(map[string]string)              // artifact -> source
	components := make(map[string]map[string]string) // output dir -> component -> source

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		output := filepath.Join(config.outputDir(file), config.outputFileName(file))
		if prev, ok := outputs[output]; ok {
			result.Errors = append(result.Errors, fmt.Errorf("%s: output %s is already generated from %s", file, output, prev))
			continue
		}
		outputs[output] = file

		fr, err := b.build(ctx, file)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		result.Files = append(result.Files, fr)
		result.Warnings = append(result.Warnings, fr.Warnings...)
		result.ComponentsGenerated += fr.Components
		if fr.Skipped {
			result.FilesSkipped++
		} else {
			result.FilesGenerated++
		}

		// 3. Go artifacts sharing a package must not declare the same props type
		if config.Format == FormatGo && !fr.StyleOnly {
			dir := config.outputDir(file)
			if components[dir] == nil {
				components[dir] = make(map[string]string)
			}
			for _, name := range fr.componentNames() {
				if prev, ok := components[dir][name]; ok {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("%s: component %s is also declared in %s, generated types will clash", file, name, prev))
					continue
				}
				components[dir][name] = file
			}
		}
	}

	if config.Verbose {
		fmt.Printf("Generated %d files, %d unchanged, %d failed\n",
			result.FilesGenerated, result.FilesSkipped, len(result.Errors))
	}

	return result, nil
}

// CompileFile builds a single stylesheet, writing its artifact unless the
// change cache shows it is up to date.
func CompileFile(ctx context.Context, config Config, path string) (*FileResult, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return newBuilder(config, newFileFilter(config)).build(ctx, path)
}

// Compile parses compiled CSS text into a resolved model. Warnings are
// prefixed with resource.
func Compile(css, resource string) (*rcc.Model, []string, error) {
	return resolve(extract.ClassNames(css), resource, false)
}

// resolve turns class tokens into a model. A style-only model skips component
// parsing, so it has no components and cannot fail.
func resolve(tokens []string, resource string, styleOnly bool) (*rcc.Model, []string, error) {
	if styleOnly {
		return rcc.StyleModel(tokens), nil, nil
	}
	model, err := rcc.Build(tokens)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", resource, err)
	}
	return model, formatWarnings(resource, model.Warnings), nil
}

func formatWarnings(resource string, warnings []rcc.Warning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, fmt.Sprintf("%s: %s", resource, w))
	}
	return out
}

// LoadFile reads, pre-compiles and resolves one stylesheet without writing
// anything.
func LoadFile(ctx context.Context, config Config, path string) (*rcc.Model, []string, error) {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return nil, nil, err
	}
	b := newBuilder(config, newFileFilter(config))
	tokens, err := b.tokens(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return resolve(tokens, config.relPath(path), false)
}

// builder carries what every file build of one run shares
type builder struct {
	config   Config
	filter   *fileFilter
	cache    *changecache.Cache
	compiler *precompile.Compiler
}

func newBuilder(config Config, filter *fileFilter) *builder {
	return &builder{
		config:   config,
		filter:   filter,
		cache:    config.newCache(),
		compiler: config.newCompiler(),
	}
}

// build runs one stylesheet through the pipeline:
// read, precompile, extract, cache check, resolve, emit
func (b *builder) build(ctx context.Context, path string) (*FileResult, error) {
	if b.config.Verbose {
		fmt.Printf("Compiling %s\n", path)
	}

	tokens, err := b.tokens(ctx, path)
	if err != nil {
		return nil, b.fail(path, err)
	}
	resource := b.config.relPath(path)

	dir := b.config.outputDir(path)
	fr := &FileResult{
		Source:    path,
		Output:    filepath.Join(dir, b.config.outputFileName(path)),
		StyleOnly: b.filter.styleOnly(path),
		Tokens:    len(tokens),
		tokens:    tokens,
	}
	pkg := b.config.packageName(dir)

	decision, err := b.cache.Check(path, tokens, changecache.Settings{
		OutputFileName: filepath.Base(fr.Output),
		StyleOnly:      fr.StyleOnly,
		DebugPrefix:    b.config.DebugPrefix,
		PackageName:    pkg,
	})
	if err != nil && b.config.Verbose {
		fmt.Printf("Cache unavailable for %s: %v\n", path, err)
	}

	if !decision.Regenerate {
		if _, statErr := os.Stat(fr.Output); statErr == nil {
			fr.Skipped = true
			if b.config.Verbose {
				fmt.Printf("Skipped %s (unchanged)\n", path)
			}
			return fr, nil
		}
	}

	model, warnings, err := resolve(tokens, resource, fr.StyleOnly)
	if err != nil {
		return nil, b.fail(path, err)
	}
	fr.Model = model
	fr.Tokens = len(model.Tokens)
	fr.Components = len(model.ComponentNames())
	fr.Warnings = warnings

	content, err := b.render(model, emit.Options{
		Resource:    resource,
		PackageName: pkg,
		StyleOnly:   fr.StyleOnly,
		DebugPrefix: b.config.DebugPrefix,
	})
	if err != nil {
		return nil, b.fail(path, fmt.Errorf("%s: %w", path, err))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, b.fail(path, fmt.Errorf("%s: failed to create output directory: %w", path, err))
	}
	if err := os.WriteFile(fr.Output, content, 0644); err != nil {
		return nil, b.fail(path, fmt.Errorf("%s: write failed: %w", path, err))
	}

	if decision.StaleArtifact != "" {
		stale := filepath.Join(dir, decision.StaleArtifact)
		if err := os.Remove(stale); err == nil {
			fr.Removed = stale
		}
	}

	if b.config.Verbose {
		fmt.Printf("Generated %s\n", fr.Output)
	}
	return fr, nil
}

// fail drops the cache record of path so a failed file is rebuilt, and
// reported, on the next run
func (b *builder) fail(path string, err error) error {
	if ferr := b.cache.Forget(path); ferr != nil {
		return errors.Join(err, ferr)
	}
	return err
}

// tokens reads, pre-compiles and extracts the class tokens of one stylesheet
func (b *builder) tokens(ctx context.Context, path string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	css, err := b.compiler.Compile(ctx, source, path)
	if err != nil {
		return nil, err
	}
	return extract.ClassNames(css), nil
}

func (b *builder) render(model *rcc.Model, opts emit.Options) ([]byte, error) {
	if b.config.Format == FormatJSON {
		var buf bytes.Buffer
		if err := emit.WriteManifest(&buf, emit.NewManifest(model, opts)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return emit.GoFile(model, opts)
}
