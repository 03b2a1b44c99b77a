// Package precompile turns Sass and Less sources into plain CSS by running the
// external compilers. Plain CSS passes through unchanged.
package precompile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for files that are not stylesheets.
var ErrUnsupported = errors.New("unsupported stylesheet extension")

// Config holds the compiler commands. A command may carry arguments,
// e.g. "npx sass".
type Config struct {
	Sass string // default "sass"
	Less string // default "lessc"
}

// Compiler runs the configured pre-processors.
type Compiler struct {
	sass []string
	less []string
}

// New creates a compiler, filling in default commands.
func New(cfg Config) *Compiler {
	if cfg.Sass == "" {
		cfg.Sass = "sass"
	}
	if cfg.Less == "" {
		cfg.Less = "lessc"
	}
	return &Compiler{
		sass: strings.Fields(cfg.Sass),
		less: strings.Fields(cfg.Less),
	}
}

// Extensions lists the stylesheet extensions the compiler accepts.
var Extensions = []string{".css", ".scss", ".sass", ".less"}

// Supported reports whether path has a stylesheet extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Compile returns the CSS for source. path selects the pre-processor and is
// used to resolve relative imports.
func (c *Compiler) Compile(ctx context.Context, source []byte, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return string(source), nil
	case ".scss":
		return c.run(ctx, c.sass, source, path, "--stdin", "--no-source-map", "--load-path", filepath.Dir(path))
	case ".sass":
		return c.run(ctx, c.sass, source, path, "--stdin", "--indented", "--no-source-map", "--load-path", filepath.Dir(path))
	case ".less":
		return c.run(ctx, c.less, source, path, "--include-path="+filepath.Dir(path), "-")
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

func (c *Compiler) run(ctx context.Context, command []string, source []byte, path string, args ...string) (string, error) {
	bin, err := exec.LookPath(command[0])
	if err != nil {
		return "", fmt.Errorf("failed to find %s for %s: %w", command[0], path, err)
	}

	cmd := exec.CommandContext(ctx, bin, append(command[1:], args...)...)
	cmd.Stdin = bytes.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed for %s: %w\n%s", command[0], path, err, stderr.String())
	}
	return stdout.String(), nil
}
