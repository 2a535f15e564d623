// Package tui is the terminal frontend for Quill: a two-pane layout
// with the directory listing on the left and the open file on the
// right, shown as a highlighted preview in browse mode and as an
// editable textarea in edit mode.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quill/internal/browser"
	"quill/internal/config"
	"quill/internal/editor"
	"quill/internal/highlight"
	"quill/internal/log"
	"quill/internal/tui/common"
	"quill/internal/tui/components"
	"quill/internal/tui/messages"
	"quill/internal/tui/styles"
	"quill/internal/tui/views"
)

type Model struct {
	// Core state
	mode      common.Mode
	view      *browser.DirectoryView
	doc       *editor.Document
	decorator *highlight.Decorator
	watcher   *browser.Watcher

	// Components
	fileList *components.FileList
	status   *components.StatusBar
	textarea textarea.Model

	// Command mode state
	commandBuffer string

	autosave bool
	showHelp bool
	width    int
	height   int
}

// New builds the TUI model from the launch configuration. The browser
// opens the configured default directory, falling back to the working
// directory. A non-empty openPath is loaded into the buffer up front.
func New(cfg *config.Config, openPath string) (*Model, error) {
	styles.Load(styles.Palette{
		Primary:  cfg.Theme.Primary,
		Success:  cfg.Theme.Success,
		Warning:  cfg.Theme.Warning,
		Error:    cfg.Theme.Error,
		Info:     cfg.Theme.Info,
		Emphasis: cfg.Theme.Emphasis,
		Border:   cfg.Theme.Border,
	})

	decorator, err := highlight.New(cfg.Highlight.Grammar, cfg.Highlight.Style)
	if err != nil {
		log.LogWithFields(
			log.F("grammar", cfg.Highlight.Grammar),
			log.F("error", err),
		).Warn("grammar unavailable, highlighting disabled")
		decorator = highlight.Plain()
	}

	view := browser.New()
	view.SetShowHidden(cfg.Browser.ShowHidden)
	view.SetIgnorePatterns(cfg.IgnoreMatchers())

	dir := cfg.Editor.DefaultDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		dir = wd
	}
	if err := view.OpenDirectory(dir); err != nil {
		return nil, err
	}

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0

	doc := editor.New()
	doc.SetAutosave(cfg.Editor.Autosave)

	fileList := components.NewFileList()
	fileList.SetEntries(view.Entries())
	fileList.SetCurrentDir(view.Root())

	m := &Model{
		mode:      common.Browse,
		view:      view,
		doc:       doc,
		decorator: decorator,
		fileList:  fileList,
		status:    components.NewStatusBar(),
		textarea:  ta,
		autosave:  cfg.Editor.Autosave,
	}

	// A broken watcher degrades to manual refresh only.
	if watcher, err := browser.NewWatcher(); err == nil {
		if err := watcher.Watch(dir); err == nil && watcher.Start() == nil {
			m.watcher = watcher
		}
	} else {
		log.LogWithFields(log.F("error", err)).Warn("directory watcher unavailable")
	}

	if openPath != "" {
		if err := m.doc.Load(openPath); err != nil {
			m.status.SetText(styles.Theme.Error.Render(err.Error()))
		} else {
			m.textarea.SetValue(m.doc.Text())
			m.status.SetText("opened " + openPath)
		}
	}

	return m, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForChange())
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width/2 - 4)
		m.textarea.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case messages.FileLoadedMsg:
		m.status.SetLoading(false)
		if msg.Err != nil {
			m.status.SetText(styles.Theme.Error.Render(msg.Err.Error()))
			return m, nil
		}
		msg.Doc.SetAutosave(m.autosave)
		m.doc = msg.Doc
		m.textarea.SetValue(m.doc.Text())
		m.status.SetText(fmt.Sprintf("opened %s", msg.Path))
		return m, nil

	case messages.FileCreatedMsg:
		if msg.Err != nil {
			m.status.SetText(styles.Theme.Error.Render(msg.Err.Error()))
			return m, nil
		}
		m.fileList.SetEntries(m.view.Entries())
		m.status.SetText(fmt.Sprintf("created %s", msg.Entry.Name))
		return m, nil

	case messages.DirectoryChangedMsg:
		if err := m.view.Refresh(); err == nil {
			m.fileList.SetEntries(m.view.Entries())
		}
		return m, m.waitForChange()

	case messages.ErrorMsg:
		m.status.SetText(styles.Theme.Error.Render(msg.Err.Error()))
		return m, nil
	}

	return m, m.status.Update(msg)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case common.Command:
		return m.handleCommandKeys(msg)
	case common.Edit:
		return m.handleEditKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit
	case "j", "down":
		m.fileList.MoveCursor(1)
	case "k", "up":
		m.fileList.MoveCursor(-1)
	case "h", "left":
		return m, m.openDirectory(m.view.Parent())
	case "l", "right", "enter":
		entry := m.fileList.CurrentEntry()
		if entry == nil {
			break
		}
		if entry.IsDir {
			return m, m.openDirectory(entry.Path)
		}
		m.status.SetLoading(true)
		m.status.SetText("loading " + entry.Name)
		return m, loadFileCmd(entry.Path)
	case "i", "tab":
		if m.doc.Path() != "" {
			m.mode = common.Edit
			return m, m.textarea.Focus()
		}
		m.status.SetText("open a file first")
	case "n":
		m.mode = common.Command
		m.commandBuffer = ":new "
	case ":":
		m.mode = common.Command
		m.commandBuffer = ":"
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.mode = common.Browse
		m.textarea.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	if err := m.doc.SetText(m.textarea.Value()); err != nil {
		m.status.SetText(styles.Theme.Error.Render(err.Error()))
	} else if m.doc.Dirty() {
		m.status.SetText(styles.Theme.Warning.Render("modified (autosave off)"))
	} else {
		m.status.SetText("saved " + m.doc.Path())
	}
	return m, cmd
}

func (m *Model) handleCommandKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = common.Browse
		m.commandBuffer = ""
		return m, nil
	case "enter":
		cmd := strings.TrimPrefix(m.commandBuffer, ":")
		m.mode = common.Browse
		m.commandBuffer = ""
		return m, m.executeCommand(cmd)
	case "backspace":
		if len(m.commandBuffer) > 1 {
			m.commandBuffer = m.commandBuffer[:len(m.commandBuffer)-1]
		}
	default:
		if len(msg.Runes) == 1 || msg.String() == " " {
			m.commandBuffer += msg.String()
		}
	}
	return m, nil
}

func (m *Model) executeCommand(cmd string) tea.Cmd {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "q", "quit":
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return tea.Quit
	case "w", "write":
		if err := m.doc.Save(); err != nil {
			m.status.SetText(styles.Theme.Error.Render(err.Error()))
		} else {
			m.status.SetText("saved " + m.doc.Path())
		}
	case "wq":
		if err := m.doc.Save(); err != nil {
			m.status.SetText(styles.Theme.Error.Render(err.Error()))
			return nil
		}
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return tea.Quit
	case "e", "edit":
		if len(fields) != 2 {
			m.status.SetText(styles.Theme.Error.Render("usage: :e PATH"))
			return nil
		}
		m.status.SetLoading(true)
		return loadFileCmd(fields[1])
	case "new":
		if len(fields) < 2 {
			m.status.SetText(styles.Theme.Error.Render("usage: :new NAME"))
			return nil
		}
		entry, err := m.view.CreateFile(strings.Join(fields[1:], " "))
		return func() tea.Msg {
			return messages.FileCreatedMsg{Entry: entry, Err: err}
		}
	case "set":
		m.executeSet(fields[1:])
	default:
		m.status.SetText(styles.Theme.Error.Render("unknown command: " + fields[0]))
	}
	return nil
}

func (m *Model) executeSet(args []string) {
	if len(args) != 2 || args[0] != "autosave" {
		m.status.SetText(styles.Theme.Error.Render("usage: :set autosave on|off"))
		return
	}
	switch args[1] {
	case "on":
		m.autosave = true
	case "off":
		m.autosave = false
	default:
		m.status.SetText(styles.Theme.Error.Render("usage: :set autosave on|off"))
		return
	}
	m.doc.SetAutosave(m.autosave)
	m.status.SetText("autosave " + args[1])
}

func (m *Model) openDirectory(dir string) tea.Cmd {
	if dir == "" || dir == m.view.Root() {
		return nil
	}
	if err := m.view.OpenDirectory(dir); err != nil {
		m.status.SetText(styles.Theme.Error.Render(err.Error()))
		return nil
	}
	m.fileList.SetEntries(m.view.Entries())
	m.fileList.SetCurrentDir(m.view.Root())
	m.fileList.SetCursor(0)

	if m.watcher != nil {
		if err := m.watcher.Watch(dir); err != nil {
			log.LogWithFields(log.F("directory", dir), log.F("error", err)).Warn("failed to watch directory")
		}
	}
	return nil
}

// loadFileCmd reads the file off the Update loop and delivers the
// loaded document as a message.
func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		doc := editor.New()
		if err := doc.Load(path); err != nil {
			return messages.FileLoadedMsg{Path: path, Err: err}
		}
		return messages.FileLoadedMsg{Path: path, Doc: doc}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Changes()
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return messages.DirectoryChangedMsg{Change: change}
	}
}

// Close releases the directory watcher.
func (m *Model) Close() {
	if m.watcher != nil && m.watcher.IsRunning() {
		m.watcher.Stop()
	}
}

// Getters for the view layer

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) CurrentDir() string {
	return m.view.Root()
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) CommandBuffer() string {
	return m.commandBuffer
}

func (m *Model) BrowserView() string {
	return m.fileList.View()
}

func (m *Model) EditorView() string {
	if m.mode == common.Edit {
		return m.textarea.View()
	}
	if m.doc.Path() == "" {
		return styles.Theme.Help.Render("Select a file and press Enter to preview it.")
	}
	return m.highlightedPreview()
}

func (m *Model) StatusView() string {
	return m.status.View()
}

// Document exposes the open document, mainly for tests.
func (m *Model) Document() *editor.Document {
	return m.doc
}

// Browser exposes the directory view, mainly for tests.
func (m *Model) Browser() *browser.DirectoryView {
	return m.view
}

// highlightedPreview renders the open document through the decorator,
// one lipgloss style per fragment.
func (m *Model) highlightedPreview() string {
	var sb strings.Builder
	for _, f := range m.decorator.DecorateOrPlain(m.doc.Text()) {
		if f.Color == "" {
			sb.WriteString(f.Text)
			continue
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(f.Color)).Render(f.Text))
	}
	return sb.String()
}
