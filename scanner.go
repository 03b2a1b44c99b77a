package rccgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/rccgen/internal/precompile"
)

// ScanStats tracks what scanning found and skipped
type ScanStats struct {
	FilesDiscovered int
	FilesSkipped    int // excluded, ignored or unsupported
	FilesScanned    int
}

// fileFilter decides which stylesheets take part in a build
type fileFilter struct {
	cfg       Config
	gitIgnore *ignore.GitIgnore
	cacheDir  string
}

func newFileFilter(cfg Config) *fileFilter {
	f := &fileFilter{
		cfg:      cfg,
		cacheDir: filepath.Clean(filepath.Join(cfg.Cache.Root, cfg.Cache.Folder)),
	}
	if cfg.RespectGitignore {
		f.gitIgnore = loadGitIgnore(cfg.Cache.Root)
	}
	return f
}

// loadGitIgnore loads <root>/.gitignore.
// A missing .gitignore is fine, nothing is ignored then.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile determines if a file should be excluded from the build
//
// Three-layer filtering:
// 1. Pattern check: unsupported extensions and the cache folder
// 2. Excludes from the configuration
// 3. Gitignore check, when enabled
func (f *fileFilter) shouldSkipFile(path string) bool {
	if !precompile.Supported(path) {
		return true
	}
	if rel, err := filepath.Rel(f.cacheDir, filepath.Clean(path)); err == nil && !strings.HasPrefix(rel, "..") {
		return true
	}

	rel := f.cfg.relPath(path)
	for _, pattern := range f.cfg.Excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	if f.gitIgnore != nil {
		if rootRel, err := filepath.Rel(f.cfg.Cache.Root, path); err == nil && f.gitIgnore.MatchesPath(filepath.ToSlash(rootRel)) {
			return true
		}
	}

	return false
}

// included reports whether path matches one of the include patterns
func (f *fileFilter) included(path string) bool {
	rel := f.cfg.relPath(path)
	for _, pattern := range f.cfg.Includes {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), rel); ok {
			return true
		}
	}
	return false
}

// relevant reports whether a changed file should trigger a rebuild
func (f *fileFilter) relevant(path string) bool {
	return f.included(path) && !f.shouldSkipFile(path)
}

// styleOnly reports whether source is emitted style-only
func (f *fileFilter) styleOnly(source string) bool {
	if f.cfg.StyleOnly {
		return true
	}
	rel := f.cfg.relPath(source)
	for _, pattern := range f.cfg.StyleOnlyPatterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// scanStyleFiles finds all stylesheets matching includes, sorted
func scanStyleFiles(cfg Config, filter *fileFilter) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range cfg.Includes {
		// Use doublestar for ** glob support
		fullPattern := filepath.Join(cfg.SourceDir, pattern)
		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if filter.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}
