package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"quill/internal/highlight"
)

// createEditorPanel builds the center pane: the editable text entry on
// top of a read-only highlighted preview of the same buffer.
func (a *App) createEditorPanel() fyne.CanvasObject {
	a.entry = widget.NewMultiLineEntry()
	a.entry.SetPlaceHolder("Open a file from the sidebar, or just start typing…")
	a.entry.Wrapping = fyne.TextWrapOff
	a.entry.OnChanged = func(text string) {
		if a.applyingText {
			return
		}
		if err := a.doc.SetText(text); err != nil {
			a.setStatus("Save failed: " + err.Error())
		} else if a.doc.Path() == "" {
			a.setStatus("Unsaved buffer")
		} else if a.doc.Dirty() {
			a.setStatus("Modified (autosave off)")
		} else {
			a.setStatus("Saved " + a.doc.Path())
		}
		a.updatePreview()
	}

	a.preview = widget.NewTextGrid()
	a.preview.ShowLineNumbers = true

	split := container.NewVSplit(
		a.entry,
		container.NewScroll(a.preview),
	)
	split.Offset = 0.55

	return split
}

// openFile loads path into the document and mirrors it into the editor
// widgets. A failed load leaves the current buffer in place.
func (a *App) openFile(path string) {
	if err := a.doc.Load(path); err != nil {
		a.ShowError("Failed to open file", err)
		return
	}

	a.applyingText = true
	a.entry.SetText(a.doc.Text())
	a.applyingText = false

	a.updatePreview()
	a.mainWindow.SetTitle("Quill — " + path)
	a.setStatus("Opened " + path)
}

// updatePreview re-highlights the buffer into the preview grid.
func (a *App) updatePreview() {
	text := a.doc.Text()
	a.preview.SetText(text)
	applyFragments(a.preview, a.decorator.DecorateOrPlain(text))
	a.preview.Refresh()
}

// applyFragments colors the grid cell ranges covered by each fragment.
// Fragments arrive in document order and concatenate to the grid text,
// so a single row/column walk covers them all.
func applyFragments(grid *widget.TextGrid, fragments []highlight.Fragment) {
	row, col := 0, 0
	for _, f := range fragments {
		startRow, startCol := row, col
		endRow, endCol := row, col
		for _, r := range f.Text {
			if r == '\n' {
				row++
				col = 0
				continue
			}
			endRow, endCol = row, col
			col++
		}

		if f.Color == "" {
			continue
		}
		c, err := parseHex(f.Color)
		if err != nil {
			continue
		}
		grid.SetStyleRange(startRow, startCol, endRow, endCol,
			&widget.CustomTextGridStyle{FGColor: c})
	}
}
