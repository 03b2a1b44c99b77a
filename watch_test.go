package rccgen

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	card := filepath.Join(src, "card.css")
	writeFile(t, card, ".Card {}\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan WatchEvent, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Config{SourceDir: src, OutputDir: out, PackageName: "ui"}, func(e WatchEvent) {
			events <- e
		})
	}()

	next := func() WatchEvent {
		t.Helper()
		select {
		case e := <-events:
			return e
		case <-ctx.Done():
			t.Fatal("timed out waiting for a build")
			return WatchEvent{}
		}
	}

	initial := next()
	require.NoError(t, initial.Err)
	assert.Equal(t, card, initial.Path)
	assert.Equal(t, []string{"Card"}, initial.Added)
	assert.Empty(t, initial.Removed)
	assert.FileExists(t, filepath.Join(out, "card.rcc.go"))

	writeFile(t, card, ".Card {}\n.Panel {}\n")

	changed := next()
	require.NoError(t, changed.Err)
	assert.Equal(t, card, changed.Path)
	assert.Equal(t, []string{"Panel"}, changed.Added)
	assert.Empty(t, changed.Removed)
	require.NotNil(t, changed.Result)
	assert.Equal(t, 2, changed.Result.Components)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchAfterGenerate(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	card := filepath.Join(src, "card.css")
	writeFile(t, card, ".Card {}\n.Card--flat {}\n")

	config := Config{SourceDir: src, OutputDir: out, PackageName: "ui"}
	_, err := Generate(context.Background(), config)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan WatchEvent, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, config, func(e WatchEvent) {
			events <- e
		})
	}()

	select {
	case e := <-events:
		require.NoError(t, e.Err)
		require.NotNil(t, e.Result)
		assert.True(t, e.Result.Skipped)
		assert.Equal(t, []string{"Card"}, e.Added, "an unchanged file still reports its components")
	case <-ctx.Done():
		t.Fatal("timed out waiting for a build")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{"empty", nil, nil, nil},
		{"all new", []string{"A", "B"}, nil, []string{"A", "B"}},
		{"none new", []string{"A"}, []string{"A", "B"}, nil},
		{"some new", []string{"A", "C", "D"}, []string{"C"}, []string{"A", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, difference(tt.a, tt.b))
		})
	}
}
