// Package watcher reports batched file changes under a set of paths.
package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Change is a batch of files modified during one debounce window.
type Change struct {
	Files []string // sorted, absolute or as given in Paths
}

// Options configures a Watcher.
type Options struct {
	Paths      []string      // files or directories; directories are watched recursively
	IgnoreDirs []string      // directory base names never descended into
	Extensions []string      // file extensions to report, e.g. ".rs"; empty reports all
	Debounce   time.Duration // quiet period before a batch is emitted
}

// Watcher monitors source paths for changes using fsnotify.
type Watcher struct {
	Changes <-chan Change // Read-only external channel

	opts    Options
	changes chan Change // Internal write channel
	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher. Call Start to begin watching.
func New(opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Changes: ch,
		opts:    opts,
		changes: ch,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start registers every configured path and begins watching. On error the
// watcher is closed and must not be stopped.
func (w *Watcher) Start() error {
	for _, p := range w.opts.Paths {
		if err := w.addTree(p); err != nil {
			w.watcher.Close()
			return err
		}
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. Pending changes are
// delivered only if the channel has room; Stop never waits for a reader.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

// addTree adds root and, when it is a directory, every non-ignored
// directory below it.
func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignoredDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]struct{})
	var last time.Time
	ticker := time.NewTicker(w.opts.Debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				// Drain pending on close without waiting for a reader.
				if c, ok := batch(pending); ok {
					select {
					case w.changes <- c:
					default:
					}
				}
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.ignoredDir(filepath.Base(event.Name)) {
						_ = w.addTree(event.Name)
					}
					continue
				}
			}

			if !w.relevant(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = struct{}{}
				last = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			if len(pending) > 0 && time.Since(last) >= w.opts.Debounce {
				if !w.emit(pending) {
					return
				}
				pending = make(map[string]struct{})
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

// emit sends pending as one change. It returns false when the watcher was
// stopped while waiting for a reader.
func (w *Watcher) emit(pending map[string]struct{}) bool {
	c, ok := batch(pending)
	if !ok {
		return true
	}
	select {
	case w.changes <- c:
		return true
	case <-w.stop:
		return false
	}
}

func batch(pending map[string]struct{}) (Change, bool) {
	if len(pending) == 0 {
		return Change{}, false
	}
	files := make([]string, 0, len(pending))
	for f := range pending {
		files = append(files, f)
	}
	sort.Strings(files)
	return Change{Files: files}, true
}

func (w *Watcher) ignoredDir(name string) bool {
	return slices.Contains(w.opts.IgnoreDirs, name)
}

// relevant reports whether a change to name should trigger a batch.
func (w *Watcher) relevant(name string) bool {
	for _, dir := range strings.Split(filepath.ToSlash(filepath.Dir(name)), "/") {
		if w.ignoredDir(dir) {
			return false
		}
	}
	if len(w.opts.Extensions) == 0 {
		return true
	}
	return slices.Contains(w.opts.Extensions, filepath.Ext(name))
}
