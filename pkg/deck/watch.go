package deck

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Dicklesworthstone/tumble/pkg/config"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to a deck file or directory.
type Watcher struct {
	fs       *fsnotify.Watcher
	target   string
	isDir    bool
	debounce time.Duration
}

// NewWatcher watches path. Files are watched through their directory so
// editors that replace the file on save are still seen.
func NewWatcher(path string, isDir bool) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	dir := abs
	if !isDir {
		dir = filepath.Dir(abs)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{fs: fw, target: abs, isDir: isDir, debounce: DefaultDebounce}, nil
}

// Wait blocks until a relevant change has settled and returns the changed
// file. It returns an error once the watcher is closed.
func (w *Watcher) Wait() (string, error) {
	var (
		changed string
		timer   <-chan time.Time
	)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return "", fsnotify.ErrClosed
			}
			if !w.relevant(ev) {
				continue
			}
			changed = ev.Name
			timer = time.After(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return "", fsnotify.ErrClosed
			}
			return "", err
		case <-timer:
			return changed, nil
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if w.isDir {
		return isDeckFile(filepath.Base(name)) || filepath.Base(name) == config.FileName
	}
	return name == w.target || filepath.Base(name) == config.FileName
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
