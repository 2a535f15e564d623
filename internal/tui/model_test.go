package tui

import (
	"os"
	"path/filepath"
	"testing"

	alsrt "github.com/alecthomas/assert"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/config"
	"quill/internal/tui/common"
)

func testModel(t *testing.T) *Model {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.rs"), []byte("fn main() {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain text\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0755))

	cfg := config.New()
	cfg.Editor.DefaultDirectory = dir

	m, err := New(cfg, "")
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitialization(t *testing.T) {
	m := testModel(t)

	assert.Equal(t, common.Browse, m.Mode())
	assert.NotEmpty(t, m.CurrentDir())
	assert.Len(t, m.Browser().Entries(), 3)
	assert.Empty(t, m.Document().Path())
}

func TestBrowseNavigation(t *testing.T) {
	t.Run("cursor movement", func(t *testing.T) {
		m := testModel(t)

		model, _ := m.Update(keyMsg("j"))
		assert.Equal(t, 1, model.(*Model).fileList.Cursor())

		model, _ = model.Update(keyMsg("k"))
		assert.Equal(t, 0, model.(*Model).fileList.Cursor())
	})

	t.Run("cursor stays in bounds", func(t *testing.T) {
		m := testModel(t)

		var model tea.Model = m
		for i := 0; i < 10; i++ {
			model, _ = model.Update(keyMsg("j"))
		}
		assert.Equal(t, 2, model.(*Model).fileList.Cursor())
	})

	t.Run("descend into directory", func(t *testing.T) {
		m := testModel(t)
		root := m.CurrentDir()

		// src/ sorts first
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, filepath.Join(root, "src"), model.(*Model).CurrentDir())

		model, _ = model.Update(keyMsg("h"))
		assert.Equal(t, root, model.(*Model).CurrentDir())
	})
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	alsrt.True(t, isQuit)
}

func TestOpenFile(t *testing.T) {
	m := testModel(t)

	// main.rs is the first file after the src/ directory
	var model tea.Model = m
	model, _ = model.Update(keyMsg("j"))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// The load command delivers the document as a message.
	model, _ = model.Update(cmd())

	doc := model.(*Model).Document()
	assert.Equal(t, filepath.Join(m.CurrentDir(), "main.rs"), doc.Path())
	assert.Equal(t, "fn main() {}\n", doc.Text())
}

func TestEditModeRequiresOpenFile(t *testing.T) {
	m := testModel(t)

	model, _ := m.Update(keyMsg("i"))
	assert.Equal(t, common.Browse, model.(*Model).Mode())
}

func TestCommandMode(t *testing.T) {
	t.Run("enter and cancel", func(t *testing.T) {
		m := testModel(t)

		model, _ := m.Update(keyMsg(":"))
		assert.Equal(t, common.Command, model.(*Model).Mode())
		assert.Equal(t, ":", model.(*Model).CommandBuffer())

		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, common.Browse, model.(*Model).Mode())
		assert.Empty(t, model.(*Model).CommandBuffer())
	})

	t.Run("quit command", func(t *testing.T) {
		m := testModel(t)

		var model tea.Model = m
		model, _ = model.Update(keyMsg(":"))
		model, _ = model.Update(keyMsg("q"))
		_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		alsrt.True(t, isQuit)
	})

	t.Run("new file command", func(t *testing.T) {
		m := testModel(t)

		var model tea.Model = m
		model, _ = model.Update(keyMsg(":"))
		for _, r := range "new scratch.txt" {
			model, _ = model.Update(keyMsg(string(r)))
		}
		model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		model, _ = model.Update(cmd())

		assert.FileExists(t, filepath.Join(m.CurrentDir(), "scratch.txt"))
		entries := model.(*Model).fileList.Entries()
		alsrt.Equal(t, "scratch.txt", entries[len(entries)-1].Name)
	})

	t.Run("set autosave", func(t *testing.T) {
		m := testModel(t)

		var model tea.Model = m
		model, _ = model.Update(keyMsg(":"))
		for _, r := range "set autosave off" {
			model, _ = model.Update(keyMsg(string(r)))
		}
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.False(t, model.(*Model).Document().Autosave())
	})

	t.Run("unknown command", func(t *testing.T) {
		m := testModel(t)

		var model tea.Model = m
		model, _ = model.Update(keyMsg(":"))
		model, _ = model.Update(keyMsg("x"))
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

		assert.Contains(t, model.(*Model).StatusView(), "unknown command")
	})
}

func TestHelpToggle(t *testing.T) {
	m := testModel(t)

	model, _ := m.Update(keyMsg("?"))
	assert.True(t, model.(*Model).ShowHelp())

	model, _ = model.Update(keyMsg("?"))
	assert.False(t, model.(*Model).ShowHelp())
}

func TestView(t *testing.T) {
	t.Run("browse mode lists files", func(t *testing.T) {
		m := testModel(t)
		got := m.View()

		assert.Contains(t, got, "Quill")
		assert.Contains(t, got, "main.rs")
		assert.Contains(t, got, "src/")
		assert.Contains(t, got, "Select a file")
	})

	t.Run("empty directory", func(t *testing.T) {
		cfg := config.New()
		cfg.Editor.DefaultDirectory = t.TempDir()

		m, err := New(cfg, "")
		require.NoError(t, err)
		t.Cleanup(m.Close)

		assert.Contains(t, m.View(), "No files found")
	})

	t.Run("unknown grammar degrades to plain text", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("plain\n"), 0644))

		cfg := config.New()
		cfg.Editor.DefaultDirectory = dir
		cfg.Highlight.Grammar = "klingon"

		m, err := New(cfg, path)
		require.NoError(t, err)
		t.Cleanup(m.Close)

		assert.Equal(t, "plain\n", m.Document().Text())
		assert.Contains(t, m.View(), "plain")
	})

	t.Run("opens file given on the command line", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "start.rs")
		require.NoError(t, os.WriteFile(path, []byte("fn start() {}\n"), 0644))

		cfg := config.New()
		cfg.Editor.DefaultDirectory = dir

		m, err := New(cfg, path)
		require.NoError(t, err)
		t.Cleanup(m.Close)

		assert.Equal(t, path, m.Document().Path())
	})
}
