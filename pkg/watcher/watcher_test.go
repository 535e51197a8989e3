package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.stl")
	require.NoError(t, os.WriteFile(path, []byte("solid a\nendsolid a\n"), 0644))

	fw, err := NewFileWatcher(150*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	var calls atomic.Int32
	changed := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{path}, func(p string) {
		calls.Add(1)
		changed <- p
	}))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("solid b\nendsolid b\n"), 0644))
	}

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no change callback")
	}

	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "nope.stl")}, func(string) {})
	assert.ErrorContains(t, err, "failed to watch")
}

func TestCloseIsIdempotent(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, nil)
	require.NoError(t, err)
	fw.Start()

	require.NoError(t, fw.Close())
	assert.NoError(t, fw.Close())
}

func TestWatcherFollowsRenameSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.scad")
	require.NoError(t, os.WriteFile(path, []byte("cube(1);\n"), 0644))

	fw, err := NewFileWatcher(50*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	wait := func(what string) {
		t.Helper()
		select {
		case p := <-changed:
			assert.Equal(t, path, p)
		case <-time.After(3 * time.Second):
			t.Fatalf("no callback after %s", what)
		}
	}

	// Write a sibling and move it over the watched file, as editors do
	tmp := filepath.Join(dir, ".model.scad.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("cube(2);\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))
	wait("rename")

	// The watch now follows the new file
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("cube(3);\n"), 0644))
	wait("write after rename")
}
