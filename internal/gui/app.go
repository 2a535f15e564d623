// Package gui is the desktop frontend for Quill: a file browser on the
// left, the text editor with its highlighted preview in the middle, and
// the appearance settings panel on the right when toggled.
package gui

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"quill/internal/browser"
	"quill/internal/config"
	"quill/internal/editor"
	"quill/internal/highlight"
	"quill/internal/log"
	"quill/internal/settings"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config

	view       *browser.DirectoryView
	doc        *editor.Document
	decorator  *highlight.Decorator
	appearance *settings.Appearance
	watcher    *browser.Watcher

	fileList      *widget.List
	entry         *widget.Entry
	preview       *widget.TextGrid
	pathLabel     *widget.Label
	statusLabel   *widget.Label
	settingsPanel fyne.CanvasObject

	// File to load once the window is built, from the command line.
	startFile string

	// Guards against OnChanged loops while programmatically setting
	// the editor text.
	applyingText bool
}

// NewApp creates a new GUI application
func NewApp(cfg *config.Config, openPath string) (*App, error) {
	decorator, err := highlight.New(cfg.Highlight.Grammar, cfg.Highlight.Style)
	if err != nil {
		log.Warnf("Grammar unavailable, highlighting disabled: %v", err)
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

	doc := editor.New()
	doc.SetAutosave(cfg.Editor.Autosave)

	a := &App{
		fyneApp:    app.NewWithID("io.github.quill"),
		cfg:        cfg,
		view:       view,
		doc:        doc,
		decorator:  decorator,
		appearance: settings.New(),
		startFile:  openPath,
	}

	a.fyneApp.Settings().SetTheme(newQuillTheme(a.appearance))
	a.mainWindow = a.fyneApp.NewWindow("Quill")

	// A broken watcher degrades to the manual refresh button.
	if watcher, err := browser.NewWatcher(); err == nil {
		if watcher.Watch(dir) == nil && watcher.Start() == nil {
			a.watcher = watcher
		}
	} else {
		log.Warnf("Directory watcher unavailable: %v", err)
	}

	return a, nil
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run starts the GUI application
func (a *App) Run() {
	a.setupMainWindow()

	if a.startFile != "" {
		a.openFile(a.startFile)
	}

	if a.watcher != nil {
		go a.watchChanges()
	}
	a.mainWindow.SetOnClosed(func() {
		if a.watcher != nil {
			a.watcher.Stop()
		}
	})

	a.mainWindow.Show()
	a.fyneApp.Run()
}

// setupMainWindow sets up the main window content
func (a *App) setupMainWindow() {
	a.mainWindow.Resize(fyne.NewSize(1100, 700))

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			a.chooseDirectory()
		}),
		widget.NewToolbarAction(theme.FileTextIcon(), func() {
			a.chooseFile()
		}),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			a.promptNewFile()
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			a.saveDocument()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			a.refreshListing()
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			a.toggleSettings()
		}),
		widget.NewToolbarAction(theme.HelpIcon(), func() {
			dialog.ShowInformation("About Quill",
				"Quill is a minimal text editor with a built-in file\n"+
					"browser and syntax-highlighted preview. Changes are\n"+
					"saved back to the open file as you type.",
				a.mainWindow)
		}),
	)

	a.settingsPanel = a.createSettingsPanel()
	a.settingsPanel.Hide()

	content := container.NewBorder(
		toolbar,
		a.createStatusBar(),
		a.createBrowserPanel(),
		a.settingsPanel,
		a.createEditorPanel(),
	)

	a.mainWindow.SetContent(content)
}

// createStatusBar creates a status bar to display app status information
func (a *App) createStatusBar() fyne.CanvasObject {
	a.statusLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{})
	a.setStatus("Ready")
	return a.statusLabel
}

func (a *App) setStatus(text string) {
	if a.statusLabel != nil {
		a.statusLabel.SetText(text)
	}
}

// toggleSettings shows or hides the appearance panel.
func (a *App) toggleSettings() {
	if a.appearance.TogglePanel() {
		a.settingsPanel.Show()
	} else {
		a.settingsPanel.Hide()
	}
}

// chooseDirectory opens a folder picker and browses into the result.
func (a *App) chooseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		a.openDirectory(uri.Path())
	}, a.mainWindow)
}

// chooseFile opens a file picker and loads the result into the buffer.
func (a *App) chooseFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		a.openFile(path)
	}, a.mainWindow)
}

func (a *App) openDirectory(dir string) {
	if err := a.view.OpenDirectory(dir); err != nil {
		a.ShowError("Failed to open directory", err)
		return
	}
	if a.watcher != nil {
		if err := a.watcher.Watch(dir); err != nil {
			log.Warnf("Failed to watch %s: %v", dir, err)
		}
	}
	a.pathLabel.SetText(a.view.Root())
	a.fileList.Refresh()
	a.setStatus("Browsing " + dir)
}

func (a *App) refreshListing() {
	if err := a.view.Refresh(); err != nil {
		a.ShowError("Failed to refresh directory", err)
		return
	}
	a.fileList.Refresh()
}

func (a *App) saveDocument() {
	if a.doc.Path() == "" {
		a.saveDocumentAs()
		return
	}
	if err := a.doc.Save(); err != nil {
		a.ShowError("Failed to save file", err)
		return
	}
	a.setStatus("Saved " + a.doc.Path())
}

func (a *App) saveDocumentAs() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := a.doc.SaveAs(path); err != nil {
			a.ShowError("Failed to save file", err)
			return
		}
		a.setStatus("Saved " + path)
		a.refreshListing()
	}, a.mainWindow)
}

// watchChanges refreshes the listing when the filesystem changes
// underneath the open directory.
func (a *App) watchChanges() {
	for range a.watcher.Changes() {
		if err := a.view.Refresh(); err != nil {
			continue
		}
		a.fileList.Refresh()
	}
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithFields(log.F("title", title), log.F("error", err)).Error("gui error")
	dialog.ShowError(err, a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}
