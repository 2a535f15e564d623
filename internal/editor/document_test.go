package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/errors"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads file contents", func(t *testing.T) {
		path := writeFixture(t, "a.txt", "hello\nworld\n")

		doc := New()
		require.NoError(t, doc.Load(path))

		assert.Equal(t, "hello\nworld\n", doc.Text())
		assert.Equal(t, path, doc.Path())
		assert.False(t, doc.Dirty())
	})

	t.Run("missing file leaves state untouched", func(t *testing.T) {
		path := writeFixture(t, "a.txt", "original")
		doc := New()
		require.NoError(t, doc.Load(path))

		err := doc.Load(filepath.Join(t.TempDir(), "missing.txt"))
		require.Error(t, err)
		assert.True(t, errors.IsFileNotFound(err))

		assert.Equal(t, "original", doc.Text())
		assert.Equal(t, path, doc.Path())
	})

	t.Run("rejects non-UTF-8 content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "binary")
		require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0644))

		doc := New()
		err := doc.Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidEncoding(err))
		assert.Empty(t, doc.Path())
	})
}

func TestSave(t *testing.T) {
	t.Run("unbound save is a no-op", func(t *testing.T) {
		doc := New()
		doc.SetAutosave(false)
		require.NoError(t, doc.SetText("scratch"))
		require.NoError(t, doc.Save())
		assert.Empty(t, doc.Path())
	})

	t.Run("save writes to bound path", func(t *testing.T) {
		path := writeFixture(t, "a.txt", "old")
		doc := New()
		doc.SetAutosave(false)
		require.NoError(t, doc.Load(path))
		require.NoError(t, doc.SetText("new"))
		assert.True(t, doc.Dirty())

		require.NoError(t, doc.Save())
		assert.False(t, doc.Dirty())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})
}

func TestSaveAs(t *testing.T) {
	doc := New()
	doc.SetAutosave(false)
	require.NoError(t, doc.SetText("content"))

	require.Error(t, doc.SaveAs(""))

	path := filepath.Join(t.TempDir(), "saved.txt")
	require.NoError(t, doc.SaveAs(path))
	assert.Equal(t, path, doc.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestAutosave(t *testing.T) {
	t.Run("writes through on every change", func(t *testing.T) {
		path := writeFixture(t, "a.txt", "")
		doc := New()
		require.NoError(t, doc.Load(path))

		for _, text := range []string{"h", "he", "hel", "hello"} {
			require.NoError(t, doc.SetText(text))
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, text, string(data))
			assert.False(t, doc.Dirty())
		}
	})

	t.Run("no write when unbound", func(t *testing.T) {
		doc := New()
		require.NoError(t, doc.SetText("nowhere to go"))
		assert.True(t, doc.Dirty())
	})

	t.Run("unchanged text does not mark dirty", func(t *testing.T) {
		path := writeFixture(t, "a.txt", "same")
		doc := New()
		doc.SetAutosave(false)
		require.NoError(t, doc.Load(path))
		require.NoError(t, doc.SetText("same"))
		assert.False(t, doc.Dirty())
	})
}
