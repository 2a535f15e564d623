// Package browser provides the sidebar directory listing for Quill.
//
// A DirectoryView holds a snapshot of one directory's entries, sorted
// directories-first. The snapshot only changes on OpenDirectory, Refresh,
// or an explicit mutation such as CreateFile; external filesystem changes
// are surfaced through the Watcher, which callers feed back into Refresh.
package browser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"

	"quill/internal/errors"
	"quill/internal/log"
)

// Entry is a single file or subdirectory in the listed directory.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// DirectoryView lists one directory and serves entry operations on it.
// It is safe for concurrent use: the GUI refreshes it from the watcher
// goroutine while list callbacks read entries on the interface thread.
type DirectoryView struct {
	mu      sync.RWMutex
	root    string
	entries []Entry

	showHidden bool
	ignore     []glob.Glob
}

// New returns a view with no directory open. Hidden files are shown
// until SetShowHidden says otherwise.
func New() *DirectoryView {
	return &DirectoryView{showHidden: true}
}

// SetShowHidden controls whether dot-files appear in listings.
// Takes effect on the next OpenDirectory or Refresh.
func (v *DirectoryView) SetShowHidden(show bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showHidden = show
}

// SetIgnorePatterns installs compiled glob matchers; entries whose base
// name matches any of them are left out of listings.
func (v *DirectoryView) SetIgnorePatterns(patterns []glob.Glob) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ignore = patterns
}

// Root returns the currently open directory, or "" when none is open.
func (v *DirectoryView) Root() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.root
}

// Entries returns a copy of the current snapshot, so callers can keep
// iterating it while the view refreshes underneath them.
func (v *DirectoryView) Entries() []Entry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	entries := make([]Entry, len(v.entries))
	copy(entries, v.entries)
	return entries
}

// OpenDirectory points the view at dir and lists it. On failure the view
// keeps its previous root and entries.
func (v *DirectoryView) OpenDirectory(dir string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	entries, err := v.list(dir)
	if err != nil {
		return err
	}
	v.root = dir
	v.entries = entries

	log.LogWithFields(
		log.F("directory", dir),
		log.F("entries", len(entries)),
	).Debug("opened directory")
	return nil
}

// Refresh re-lists the open directory. With no directory open it does
// nothing.
func (v *DirectoryView) Refresh() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.root == "" {
		return nil
	}
	entries, err := v.list(v.root)
	if err != nil {
		return err
	}
	v.entries = entries
	return nil
}

// Parent returns the path one level above the open directory. At the
// filesystem root it returns the root itself.
func (v *DirectoryView) Parent() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.root == "" {
		return ""
	}
	return filepath.Dir(v.root)
}

// CreateFile creates an empty file named name in the open directory and
// appends it to the snapshot without a full re-list. The name is
// trimmed; an empty result is rejected, and an existing file of the
// same name is reported rather than truncated.
func (v *DirectoryView) CreateFile(name string) (Entry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, errors.NewFileError("file name must not be empty", "", errors.InvalidPath, nil)
	}
	if strings.ContainsRune(name, os.PathSeparator) {
		return Entry{}, errors.NewFileError("file name must not contain path separators", name, errors.InvalidPath, nil)
	}
	if v.root == "" {
		return Entry{}, errors.NewFileError("no directory open", "", errors.InvalidPath, nil)
	}

	path := filepath.Join(v.root, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return Entry{}, errors.NewFileError("file already exists", path, errors.FileExists, err)
		}
		return Entry{}, errors.NewFileError("failed to create file", path, errors.FileCreateFailed, err)
	}
	if err := f.Close(); err != nil {
		return Entry{}, errors.NewFileError("failed to create file", path, errors.FileCreateFailed, err)
	}

	entry := Entry{Name: name, Path: path, IsDir: false}
	v.entries = append(v.entries, entry)

	log.LogWithFields(log.F("path", path)).Info("created file")
	return entry, nil
}

// list reads dir and returns its filtered, sorted entries.
// Entries that cannot be typed are skipped with a warning rather than
// failing the whole listing.
func (v *DirectoryView) list(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		kind := errors.FileAccessDenied
		if os.IsNotExist(err) {
			kind = errors.FileNotFound
		}
		return nil, errors.NewFileError("failed to read directory", dir, kind, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if !v.showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if v.ignored(name) {
			continue
		}

		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			// Resolve symlinks so linked directories browse as directories.
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				log.LogWithFields(
					log.F("entry", name),
					log.F("error", err),
				).Warn("skipping unreadable entry")
				continue
			}
			isDir = info.IsDir()
		}

		entries = append(entries, Entry{
			Name:  name,
			Path:  filepath.Join(dir, name),
			IsDir: isDir,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func (v *DirectoryView) ignored(name string) bool {
	for _, g := range v.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}
