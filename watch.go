package rccgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
)

// watchDebounce collects bursts of file events into one rebuild
const watchDebounce = 100 * time.Millisecond

// watchModels bounds how many stylesheets' component sets are remembered
const watchModels = 512

// WatchEvent reports the rebuild of one stylesheet
type WatchEvent struct {
	Path    string
	Result  *FileResult // nil when the build failed or the file was removed
	Err     error
	Added   []string // components new since the previous build
	Removed []string // components gone since the previous build
}

type watcher struct {
	config  Config
	filter  *fileFilter
	builder *builder
	fsw     *fsnotify.Watcher
	models  *lru.Cache[string, []string] // source -> component names
	onBuild func(WatchEvent)
}

// Watch builds every stylesheet, then rebuilds stylesheets as they change
// until ctx is cancelled. onBuild is called after each build, one at a time.
func Watch(ctx context.Context, config Config, onBuild func(WatchEvent)) error {
	config = config.withDefaults()
	if err := config.validate(); err != nil {
		return err
	}

	w, err := newWatcher(config, onBuild)
	if err != nil {
		return err
	}
	defer w.fsw.Close()

	if err := w.addDirs(config.SourceDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", config.SourceDir, err)
	}

	files, _, err := scanStyleFiles(config, w.filter)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	for _, file := range files {
		w.rebuild(ctx, file)
	}

	return w.loop(ctx)
}

func newWatcher(config Config, onBuild func(WatchEvent)) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	models, err := lru.New[string, []string](watchModels)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if onBuild == nil {
		onBuild = func(WatchEvent) {}
	}
	filter := newFileFilter(config)
	return &watcher{
		config:  config,
		filter:  filter,
		builder: newBuilder(config, filter),
		fsw:     fsw,
		models:  models,
		onBuild: onBuild,
	}, nil
}

// addDirs watches root and every directory below it, skipping hidden
// directories, node_modules and the cache folder
func (w *watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
			return filepath.SkipDir
		}
		if filepath.Clean(path) == w.filter.cacheDir {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *watcher) loop(ctx context.Context) error {
	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirs(event.Name); err != nil && w.config.Verbose {
						fmt.Printf("Failed to watch %s: %v\n", event.Name, err)
					}
					continue
				}
			}
			if !w.filter.relevant(event.Name) {
				continue
			}
			pending[event.Name] = true
			debounce.Reset(watchDebounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if w.config.Verbose {
				fmt.Printf("Watcher error: %v\n", err)
			}

		case <-debounce.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			sort.Strings(paths)
			for _, path := range paths {
				w.rebuild(ctx, path)
			}
		}
	}
}

// rebuild compiles path and reports which components changed
func (w *watcher) rebuild(ctx context.Context, path string) {
	previous, known := w.models.Get(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		w.models.Remove(path)
		w.onBuild(WatchEvent{Path: path, Removed: previous})
		return
	}

	fr, err := w.builder.build(ctx, path)
	if err != nil {
		w.onBuild(WatchEvent{Path: path, Err: err})
		return
	}

	current := previous
	if !fr.Skipped || !known {
		current = fr.componentNames()
	}
	w.models.Add(path, current)
	w.onBuild(WatchEvent{
		Path:    path,
		Result:  fr,
		Added:   difference(current, previous),
		Removed: difference(previous, current),
	})
}

// difference returns the names in a missing from b
func difference(a, b []string) []string {
	var out []string
	for _, name := range a {
		if !slices.Contains(b, name) {
			out = append(out, name)
		}
	}
	return out
}
