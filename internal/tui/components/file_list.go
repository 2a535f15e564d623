package components

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"quill/internal/browser"
	"quill/internal/tui/styles"
)

// FileList renders the sidebar directory listing with a movable cursor.
type FileList struct {
	entries    []browser.Entry
	cursor     int
	currentDir string
}

func NewFileList() *FileList {
	return &FileList{}
}

// SetEntries replaces the listing and keeps the cursor in range.
func (fl *FileList) SetEntries(entries []browser.Entry) {
	fl.entries = entries
	if fl.cursor >= len(entries) {
		fl.cursor = len(entries) - 1
	}
	if fl.cursor < 0 {
		fl.cursor = 0
	}
}

func (fl *FileList) SetCurrentDir(dir string) {
	fl.currentDir = dir
}

func (fl *FileList) View() string {
	var s strings.Builder

	s.WriteString(styles.Theme.Help.Render("Directory: "+fl.currentDir) + "\n\n")

	if len(fl.entries) == 0 {
		s.WriteString("No files found\n")
		return s.String()
	}

	for i, entry := range fl.entries {
		cursor := " "
		if i == fl.cursor {
			cursor = ">"
		}

		if entry.IsDir {
			s.WriteString(fmt.Sprintf("%s %s\n",
				cursor,
				styles.Theme.Directory.Render(entry.Name+"/")))
			continue
		}

		details := ""
		if info, err := os.Stat(entry.Path); err == nil {
			details = fmt.Sprintf("  %8s", humanize.Bytes(uint64(info.Size())))
		}
		s.WriteString(fmt.Sprintf("%s %s%s\n",
			cursor,
			styles.Theme.File.Render(entry.Name),
			styles.Theme.Help.Render(details)))
	}

	return s.String()
}

// MoveCursor shifts the cursor by delta, staying inside the listing.
func (fl *FileList) MoveCursor(delta int) {
	newPos := fl.cursor + delta
	if newPos >= 0 && newPos < len(fl.entries) {
		fl.cursor = newPos
	}
}

func (fl *FileList) Cursor() int {
	return fl.cursor
}

func (fl *FileList) SetCursor(pos int) {
	if pos >= 0 && pos < len(fl.entries) {
		fl.cursor = pos
	}
}

// CurrentEntry returns the entry under the cursor, or nil when the
// listing is empty.
func (fl *FileList) CurrentEntry() *browser.Entry {
	if fl.cursor >= 0 && fl.cursor < len(fl.entries) {
		return &fl.entries[fl.cursor]
	}
	return nil
}

func (fl *FileList) Entries() []browser.Entry {
	return fl.entries
}
