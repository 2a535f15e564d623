package messages

import (
	"quill/internal/browser"
	"quill/internal/editor"
)

type ErrorMsg struct {
	Err error
}

// FileLoadedMsg carries a freshly loaded document, built off the Update
// loop so large files don't block rendering.
type FileLoadedMsg struct {
	Path string
	Doc  *editor.Document
	Err  error
}

type FileCreatedMsg struct {
	Entry browser.Entry
	Err   error
}

// DirectoryChangedMsg reports an external filesystem event under the
// open directory, delivered from the browser watcher.
type DirectoryChangedMsg struct {
	Change browser.Change
}
