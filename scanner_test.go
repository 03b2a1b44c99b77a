package rccgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanStyleFiles(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{
		"button.css",
		"forms/input.module.scss",
		"forms/legacy/old.css",
		"theme.less",
		"notes.txt",
		"vendor/reset.css",
		".rcc-tmp/rcc-cache/ghost.css",
	} {
		writeFile(t, filepath.Join(src, name), ".A {}")
	}
	writeFile(t, filepath.Join(src, ".gitignore"), "vendor/\n")

	tests := []struct {
		name   string
		config Config
		want   []string
	}{
		{
			name:   "default includes",
			config: Config{SourceDir: src},
			want:   []string{"button.css", "forms/input.module.scss", "forms/legacy/old.css", "theme.less", "vendor/reset.css"},
		},
		{
			name:   "excludes",
			config: Config{SourceDir: src, Excludes: []string{"**/legacy/**", "*.less"}},
			want:   []string{"button.css", "forms/input.module.scss", "vendor/reset.css"},
		},
		{
			name:   "gitignore",
			config: Config{SourceDir: src, RespectGitignore: true},
			want:   []string{"button.css", "forms/input.module.scss", "forms/legacy/old.css", "theme.less"},
		},
		{
			name:   "explicit includes",
			config: Config{SourceDir: src, Includes: []string{"forms/**/*.css", "*.txt"}},
			want:   []string{"forms/legacy/old.css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config.withDefaults()
			files, stats, err := scanStyleFiles(cfg, newFileFilter(cfg))
			require.NoError(t, err)

			rel := make([]string, len(files))
			for i, f := range files {
				rel[i] = cfg.relPath(f)
			}
			assert.Equal(t, tt.want, rel)
			assert.Equal(t, len(tt.want), stats.FilesScanned)
		})
	}
}

func TestFileFilterStyleOnly(t *testing.T) {
	cfg := Config{SourceDir: "styles", StyleOnlyPatterns: []string{"tokens/**"}}.withDefaults()
	filter := newFileFilter(cfg)

	assert.True(t, filter.styleOnly(filepath.Join("styles", "tokens", "colors.css")))
	assert.False(t, filter.styleOnly(filepath.Join("styles", "button.css")))

	cfg.StyleOnly = true
	assert.True(t, newFileFilter(cfg).styleOnly(filepath.Join("styles", "button.css")))
}

func TestFileFilterRelevant(t *testing.T) {
	cfg := Config{SourceDir: "styles", Excludes: []string{"legacy/**"}}.withDefaults()
	filter := newFileFilter(cfg)

	assert.True(t, filter.relevant(filepath.Join("styles", "a", "button.css")))
	assert.False(t, filter.relevant(filepath.Join("styles", "legacy", "old.css")))
	assert.False(t, filter.relevant(filepath.Join("styles", "button.rcc.go")))
	assert.False(t, filter.relevant(filepath.Join("styles", ".rcc-tmp", "x.css")))
}
