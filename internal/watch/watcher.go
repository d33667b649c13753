// Package watch re-runs contract checks when source or contract files
// change, using fsnotify over the module tree.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDefault is the default settle interval for file events.
// Editors fire bursts of writes; one timer absorbs them into one run.
const debounceDefault = 300 * time.Millisecond

// Watcher triggers a callback when relevant files under root change.
type Watcher struct {
	root     string
	onChange func()
	debounce time.Duration
}

// New creates a watcher over the module tree at root.
func New(root string, onChange func()) *Watcher {
	return &Watcher{
		root:     root,
		onChange: onChange,
		debounce: debounceDefault,
	}
}

// Run watches the tree and invokes onChange after each settled burst of
// changes. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := addTree(watcher, w.root); err != nil {
		return err
	}

	// Single debounce timer, reset on each event. No goroutines are
	// created per event.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	dirty := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timer.C:
			if dirty {
				dirty = false
				w.onChange()
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories must be registered before their files
			// produce events.
			if event.Has(fsnotify.Create) && isDir(event.Name) && !skipDir(filepath.Base(event.Name)) {
				_ = addTree(watcher, event.Name)
			}
			if !relevantFile(event.Name) {
				continue
			}
			dirty = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_ = err
		}
	}
}

// addTree registers root and every non-skipped directory under it.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Directories can vanish between the event and the walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// relevantFile reports whether a change to this path should trigger a
// re-check: Go sources and contract/graph YAML files.
func relevantFile(p string) bool {
	name := filepath.Base(p)
	switch {
	case strings.HasSuffix(name, ".go"):
		return !strings.HasSuffix(name, "_test.go")
	case strings.HasSuffix(name, ".yml"), strings.HasSuffix(name, ".yaml"):
		return true
	default:
		return false
	}
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	return name == "vendor" || name == "testdata"
}
