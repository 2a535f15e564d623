// Package editor holds the text buffer backing the Quill editor pane.
//
// A Document is a plain UTF-8 string plus the path it was loaded from.
// With autosave enabled (the default) every SetText writes the buffer
// straight back to disk, so the on-disk file tracks the pane keystroke
// by keystroke.
package editor

import (
	"os"
	"unicode/utf8"

	"quill/internal/errors"
	"quill/internal/log"
)

// Document is a single in-memory text buffer bound to at most one file.
type Document struct {
	text       string
	sourcePath string
	dirty      bool
	autosave   bool
}

// New returns an empty, unbound document with autosave enabled.
func New() *Document {
	return &Document{autosave: true}
}

// SetAutosave toggles the write-through save on SetText.
func (d *Document) SetAutosave(enabled bool) {
	d.autosave = enabled
}

// Autosave reports whether write-through saving is enabled.
func (d *Document) Autosave() bool {
	return d.autosave
}

// Text returns the current buffer contents.
func (d *Document) Text() string {
	return d.text
}

// Path returns the file the document is bound to, or "" when unbound.
func (d *Document) Path() string {
	return d.sourcePath
}

// Dirty reports whether the buffer has unsaved changes.
// With autosave on this is only true transiently while a save is failing.
func (d *Document) Dirty() bool {
	return d.dirty
}

// Load replaces the buffer with the contents of path and binds the
// document to it. On any failure the document keeps its previous text,
// path, and dirty state.
func (d *Document) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := errors.FileAccessDenied
		if os.IsNotExist(err) {
			kind = errors.FileNotFound
		}
		return errors.NewFileError("failed to read file", path, kind, err)
	}

	if !utf8.Valid(data) {
		return errors.NewFileError("file is not valid UTF-8", path, errors.InvalidEncoding, nil)
	}

	d.text = string(data)
	d.sourcePath = path
	d.dirty = false

	log.LogWithFields(
		log.F("path", path),
		log.F("bytes", len(data)),
	).Debug("loaded file into buffer")
	return nil
}

// Save writes the buffer to its bound file. A document with no bound
// path saves nowhere and reports success, matching the pane's behavior
// before any file has been opened.
func (d *Document) Save() error {
	if d.sourcePath == "" {
		return nil
	}
	return d.writeTo(d.sourcePath)
}

// SaveAs writes the buffer to path and rebinds the document to it.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return errors.NewFileError("save path must not be empty", "", errors.InvalidPath, nil)
	}
	if err := d.writeTo(path); err != nil {
		return err
	}
	d.sourcePath = path
	return nil
}

// SetText replaces the buffer contents. When autosave is enabled and the
// document is bound to a file, the new contents are written through
// immediately; a failed write leaves the buffer updated and dirty.
func (d *Document) SetText(text string) error {
	if text == d.text {
		return nil
	}
	d.text = text
	d.dirty = true

	if d.autosave && d.sourcePath != "" {
		return d.Save()
	}
	return nil
}

func (d *Document) writeTo(path string) error {
	if err := os.WriteFile(path, []byte(d.text), 0644); err != nil {
		kind := errors.FileAccessDenied
		if os.IsNotExist(err) {
			kind = errors.FileNotFound
		}
		return errors.NewFileError("failed to write file", path, kind, err)
	}
	d.dirty = false
	return nil
}
