package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/errors"
)

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.rs"), []byte("fn main() {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0644))
	return dir
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestOpenDirectory(t *testing.T) {
	t.Run("lists directories first, sorted", func(t *testing.T) {
		dir := makeTree(t)
		v := New()
		require.NoError(t, v.OpenDirectory(dir))

		assert.Equal(t, dir, v.Root())
		assert.Equal(t, []string{"docs", "src", ".hidden", "README.md", "main.rs"}, names(v.Entries()))
		assert.True(t, v.Entries()[0].IsDir)
		assert.False(t, v.Entries()[4].IsDir)
	})

	t.Run("missing directory keeps previous state", func(t *testing.T) {
		dir := makeTree(t)
		v := New()
		require.NoError(t, v.OpenDirectory(dir))

		err := v.OpenDirectory(filepath.Join(dir, "no-such-dir"))
		require.Error(t, err)
		assert.True(t, errors.IsFileNotFound(err))
		assert.Equal(t, dir, v.Root())
		assert.Len(t, v.Entries(), 5)
	})

	t.Run("hides dot-files when configured", func(t *testing.T) {
		dir := makeTree(t)
		v := New()
		v.SetShowHidden(false)
		require.NoError(t, v.OpenDirectory(dir))
		assert.NotContains(t, names(v.Entries()), ".hidden")
	})

	t.Run("applies ignore patterns", func(t *testing.T) {
		dir := makeTree(t)
		v := New()
		v.SetIgnorePatterns([]glob.Glob{glob.MustCompile("*.md")})
		require.NoError(t, v.OpenDirectory(dir))
		assert.NotContains(t, names(v.Entries()), "README.md")
		assert.Contains(t, names(v.Entries()), "main.rs")
	})
}

func TestRefresh(t *testing.T) {
	dir := makeTree(t)
	v := New()
	require.NoError(t, v.OpenDirectory(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), nil, 0644))
	assert.Len(t, v.Entries(), 5)

	require.NoError(t, v.Refresh())
	assert.Contains(t, names(v.Entries()), "extra.txt")

	empty := New()
	require.NoError(t, empty.Refresh())
}

func TestParent(t *testing.T) {
	dir := makeTree(t)
	v := New()
	require.NoError(t, v.OpenDirectory(filepath.Join(dir, "src")))
	assert.Equal(t, dir, v.Parent())

	assert.Empty(t, New().Parent())
}

func TestCreateFile(t *testing.T) {
	t.Run("creates and appends to snapshot", func(t *testing.T) {
		dir := makeTree(t)
		v := New()
		require.NoError(t, v.OpenDirectory(dir))

		entry, err := v.CreateFile("  notes.txt  ")
		require.NoError(t, err)
		assert.Equal(t, "notes.txt", entry.Name)
		assert.FileExists(t, entry.Path)

		// Appended without re-sorting the snapshot.
		last := v.Entries()[len(v.Entries())-1]
		assert.Equal(t, "notes.txt", last.Name)
	})

	t.Run("rejects blank names", func(t *testing.T) {
		dir := makeTree(t)
		v := New()
		require.NoError(t, v.OpenDirectory(dir))

		_, err := v.CreateFile("   ")
		require.Error(t, err)
		var fileErr *errors.FileError
		require.True(t, errors.As(err, &fileErr))
		assert.Equal(t, errors.InvalidPath, fileErr.Kind())
	})

	t.Run("rejects path separators", func(t *testing.T) {
		dir := makeTree(t)
		v := New()
		require.NoError(t, v.OpenDirectory(dir))

		_, err := v.CreateFile("sub/notes.txt")
		require.Error(t, err)
	})

	t.Run("does not truncate existing files", func(t *testing.T) {
		dir := makeTree(t)
		v := New()
		require.NoError(t, v.OpenDirectory(dir))

		_, err := v.CreateFile("main.rs")
		require.Error(t, err)
		assert.True(t, errors.IsFileExists(err))

		data, readErr := os.ReadFile(filepath.Join(dir, "main.rs"))
		require.NoError(t, readErr)
		assert.Equal(t, "fn main() {}", string(data))
	})

	t.Run("requires an open directory", func(t *testing.T) {
		_, err := New().CreateFile("notes.txt")
		require.Error(t, err)
	})
}

func TestConcurrentRefreshAndEntries(t *testing.T) {
	dir := makeTree(t)
	v := New()
	require.NoError(t, v.OpenDirectory(dir))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			assert.NoError(t, v.Refresh())
		}
	}()

	for i := 0; i < 200; i++ {
		for _, e := range v.Entries() {
			assert.NotEmpty(t, e.Name)
		}
		_ = v.Root()
	}
	<-done
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0644))

	select {
	case change := <-w.Changes():
		assert.Equal(t, filepath.Join(dir, "new.txt"), change.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	w.Stop()
	assert.False(t, w.IsRunning())

	// The event loop closes the channel on its way out; drain it.
	for range w.Changes() {
	}
}

func TestWatcherStopDuringEvents(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range w.Changes() {
		}
	}()

	// Keep events flowing while the watcher shuts down underneath them.
	for i := 0; i < 50; i++ {
		name := filepath.Join(dir, fmt.Sprintf("f%d.txt", i))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0644))
		if i == 25 {
			w.Stop()
		}
	}

	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatal("changes channel never closed after Stop")
	}
	assert.False(t, w.IsRunning())
}
