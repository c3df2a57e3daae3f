// Package corpus watches a course material directory and emits events
// for the ingestion pipeline. Files dropped into the directory become
// ingest events; removed files become delete events so their chunks can
// be cascaded out of the index.
package corpus

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Mantaka-Work/Ai-powered-learning-platform/internal/logger"
)

// Op is the kind of corpus change.
type Op int

const (
	// OpIngest signals a new or rewritten file to (re-)ingest.
	OpIngest Op = iota

	// OpDelete signals a removed file whose material should be deleted.
	OpDelete
)

// Event is one observed corpus change.
type Event struct {
	// Path is the absolute file path.
	Path string

	// Op is the change kind.
	Op Op
}

// Default extensions watched when none are configured.
var defaultExtensions = []string{".md", ".txt", ".pdf", ".py", ".js", ".ts", ".java", ".c", ".cpp", ".go", ".rs"}

// Watcher monitors a corpus directory with fsnotify.
type Watcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
}

// NewWatcher creates a new corpus watcher. extensions limits which
// files produce events; nil applies the default material extensions.
func NewWatcher(extensions []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = defaultExtensions
	}

	return &Watcher{
		watcher:    w,
		extensions: extensions,
	}, nil
}

// Watch starts monitoring the directory and emits events until the
// context is cancelled. The returned channel is closed on cancellation.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan Event, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	events := make(chan Event, 100)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isWatchedExtension(event.Name) {
					continue
				}

				var op Op
				switch {
				case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
					op = OpIngest
				case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
					op = OpDelete
				default:
					continue
				}

				select {
				case events <- Event{Path: event.Name, Op: op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("corpus watch error: %v", err)
			}
		}
	}()

	return events, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// isWatchedExtension checks if the file has a watched extension.
func (w *Watcher) isWatchedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
