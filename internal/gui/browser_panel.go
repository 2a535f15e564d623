package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// createBrowserPanel builds the sidebar: current path, parent button,
// and the directory listing.
func (a *App) createBrowserPanel() fyne.CanvasObject {
	a.pathLabel = widget.NewLabel(a.view.Root())
	a.pathLabel.Truncation = fyne.TextTruncateEllipsis

	a.fileList = widget.NewList(
		func() int {
			return len(a.view.Entries())
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Template entry name"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			entries := a.view.Entries()
			if id < 0 || id >= len(entries) {
				return
			}
			entry := entries[id]

			icon := obj.(*fyne.Container).Objects[0].(*widget.Icon)
			label := obj.(*fyne.Container).Objects[1].(*widget.Label)

			if entry.IsDir {
				icon.SetResource(theme.FolderIcon())
			} else {
				icon.SetResource(theme.DocumentIcon())
			}
			label.SetText(entry.Name)
		},
	)

	a.fileList.OnSelected = func(id widget.ListItemID) {
		entries := a.view.Entries()
		if id < 0 || id >= len(entries) {
			return
		}
		entry := entries[id]
		a.fileList.Unselect(id)

		if entry.IsDir {
			a.openDirectory(entry.Path)
			return
		}
		a.openFile(entry.Path)
	}

	upButton := widget.NewButtonWithIcon("Up", theme.NavigateBackIcon(), func() {
		a.openDirectory(a.view.Parent())
	})

	newFileButton := widget.NewButtonWithIcon("New File", theme.ContentAddIcon(), func() {
		a.promptNewFile()
	})

	panel := container.NewBorder(
		container.NewVBox(a.pathLabel, container.NewHBox(upButton, newFileButton)),
		nil, nil, nil,
		a.fileList,
	)

	// Fixed-width sidebar next to the stretching editor pane.
	return container.NewGridWrap(fyne.NewSize(260, 600), panel)
}

// promptNewFile asks for a file name and creates it in the open
// directory. The new entry is appended to the listing without a full
// re-read.
func (a *App) promptNewFile() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("notes.txt")

	dialog.ShowForm("New File", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
		func(confirmed bool) {
			if !confirmed {
				return
			}
			entry, err := a.view.CreateFile(nameEntry.Text)
			if err != nil {
				a.ShowError("Failed to create file", err)
				return
			}
			a.fileList.Refresh()
			a.setStatus("Created " + entry.Name)
		},
		a.mainWindow)
}
