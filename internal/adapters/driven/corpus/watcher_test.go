package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForEvent drains the channel until an event for path with the
// given op arrives, or the deadline passes.
func waitForEvent(t *testing.T, events <-chan Event, path string, op Op) Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("event channel closed before expected event")
			}
			if ev.Path == path && ev.Op == op {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event on %s", path)
		}
	}
}

func TestNewWatcher_DefaultsExtensions(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	assert.True(t, w.isWatchedExtension("notes.md"))
	assert.True(t, w.isWatchedExtension("solution.py"))
	assert.False(t, w.isWatchedExtension("image.png"))
}

func TestWatch_EmitsIngestOnCreate(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{".md"})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "lecture.md")
	require.NoError(t, os.WriteFile(path, []byte("# Lecture"), 0600))

	ev := waitForEvent(t, events, path, OpIngest)
	assert.Equal(t, OpIngest, ev.Op)
}

func TestWatch_EmitsDeleteOnRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lecture.md")
	require.NoError(t, os.WriteFile(path, []byte("# Lecture"), 0600))

	w, err := NewWatcher([]string{".md"})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	waitForEvent(t, events, path, OpDelete)
}

func TestWatch_IgnoresUnwatchedExtensions(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{".md"})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("png"), 0600))
	watched := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(watched, []byte("# Notes"), 0600))

	// The first matching event must be for the watched file; the png
	// never surfaces.
	ev := waitForEvent(t, events, watched, OpIngest)
	assert.Equal(t, watched, ev.Path)
}

func TestWatch_MissingDirectoryFails(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Watch(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestWatch_CancelClosesChannel(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := w.Watch(ctx, dir)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
