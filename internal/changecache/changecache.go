// Package changecache records what was last generated for each stylesheet so
// unchanged sources can be skipped on the next build.
package changecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultFolder is the cache folder under the project root.
const DefaultFolder = ".rcc-tmp"

const (
	cacheDir    = "rcc-cache"
	recordExt   = ".rcc.json"
	defaultStem = ".rcc"
)

// Record is the persisted state for one source file.
type Record struct {
	ClassNames      []string `json:"classNames"`
	OutputFileName  string   `json:"outputFileName"`
	ExportStyleOnly bool     `json:"exportStyleOnly"`
	DevDebugPrefix  string   `json:"devDebugPrefix"`
	PackageName     string   `json:"packageName,omitempty"`
}

// Settings are the generation settings that invalidate a record when changed.
type Settings struct {
	OutputFileName string
	StyleOnly      bool
	DebugPrefix    string
	PackageName    string
}

// Decision tells the caller whether to regenerate a source.
type Decision struct {
	Regenerate bool
	// StaleArtifact is the previous output file name when it differs from the
	// current one, so the caller can remove the old artifact.
	StaleArtifact string
}

// FS is the file-system access the cache needs.
type FS interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
	Remove(path string) error
}

// OSFS implements FS on the local disk.
type OSFS struct{}

func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (OSFS) WriteFile(path string, data []byte) error { return os.WriteFile(path, data, 0644) }

func (OSFS) MkdirAll(path string) error { return os.MkdirAll(path, 0755) }

func (OSFS) Remove(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Options configures a Cache.
type Options struct {
	Disabled bool
	Folder   string // defaults to DefaultFolder
	Root     string // project root; record paths mirror source paths below it
	FS       FS     // defaults to OSFS
}

// Cache decides whether a source needs regenerating.
type Cache struct {
	disabled bool
	root     string
	folder   string
	fs       FS
}

// New creates a cache.
func New(opts Options) *Cache {
	c := &Cache{
		disabled: opts.Disabled,
		root:     opts.Root,
		folder:   opts.Folder,
		fs:       opts.FS,
	}
	if c.folder == "" {
		c.folder = DefaultFolder
	}
	if c.fs == nil {
		c.fs = OSFS{}
	}
	return c
}

// Disabled reports whether the cache is off.
func (c *Cache) Disabled() bool {
	return c.disabled
}

// Stem strips the stylesheet and CSS module extensions:
// "button.module.scss" becomes "button".
func Stem(source string) string {
	name := filepath.Base(source)
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".css", ".scss", ".sass", ".less":
		name = strings.TrimSuffix(name, ext)
		name = strings.TrimSuffix(name, ".module")
	}
	return name
}

// DefaultOutputName derives the record name for a stylesheet:
// "button.module.scss" becomes "button.rcc".
func DefaultOutputName(source string) string {
	return Stem(source) + defaultStem
}

// RecordPath returns where the record for source is stored:
// <root>/<folder>/rcc-cache/<source dir relative to root>/<name>.rcc.json.
func (c *Cache) RecordPath(source string) string {
	dir := filepath.Dir(source)
	if rel, err := filepath.Rel(c.root, dir); err == nil && !strings.HasPrefix(rel, "..") {
		dir = rel
	} else {
		dir = filepath.Base(dir)
	}
	return filepath.Join(c.root, c.folder, cacheDir, dir, DefaultOutputName(source)+recordExt)
}

// Check compares the tokens and settings of a build against the stored record
// and persists the new state when they differ. Unreadable or malformed
// records count as a miss.
func (c *Cache) Check(source string, tokens []string, s Settings) (Decision, error) {
	if c.disabled {
		return Decision{Regenerate: true}, nil
	}

	path := c.RecordPath(source)
	var d Decision

	if prev, ok := c.load(path); ok {
		if prev.OutputFileName == s.OutputFileName &&
			prev.ExportStyleOnly == s.StyleOnly &&
			prev.DevDebugPrefix == s.DebugPrefix &&
			prev.PackageName == s.PackageName &&
			slices.Equal(prev.ClassNames, tokens) {
			return Decision{}, nil
		}
		if prev.OutputFileName != "" && prev.OutputFileName != s.OutputFileName {
			d.StaleArtifact = prev.OutputFileName
		}
	} else if err := c.fs.MkdirAll(filepath.Dir(path)); err != nil {
		return Decision{Regenerate: true}, fmt.Errorf("create cache folder: %w", err)
	}

	d.Regenerate = true
	data, err := json.Marshal(Record{
		ClassNames:      tokens,
		OutputFileName:  s.OutputFileName,
		ExportStyleOnly: s.StyleOnly,
		DevDebugPrefix:  s.DebugPrefix,
		PackageName:     s.PackageName,
	})
	if err != nil {
		return d, fmt.Errorf("encode cache record: %w", err)
	}
	if err := c.fs.WriteFile(path, data); err != nil {
		return d, fmt.Errorf("write cache record: %w", err)
	}
	return d, nil
}

// Forget removes the record of source, so the next build regenerates it.
func (c *Cache) Forget(source string) error {
	if c.disabled {
		return nil
	}
	return c.fs.Remove(c.RecordPath(source))
}

func (c *Cache) load(path string) (Record, bool) {
	var r Record
	if !c.fs.Exists(path) {
		return r, false
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return r, false
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, false
	}
	return r, true
}
