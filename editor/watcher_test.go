package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) (*watcher, chan *FileWatchEvent) {
	t.Helper()
	events := make(chan *FileWatchEvent, 16)
	w, err := newWatcher(func(ev tcell.Event) error {
		events <- ev.(*FileWatchEvent)
		return nil
	})
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w, events
}

func TestWatcherFollowsSaveAs(t *testing.T) {
	w, _ := newTestWatcher(t)
	dirA, dirB := t.TempDir(), t.TempDir()
	a := filepath.Join(dirA, "a.txt")
	b := filepath.Join(dirB, "b.txt")
	id, other := uuid.New(), uuid.New()

	w.Watch(id, a)
	w.Watch(other, filepath.Join(dirA, "c.txt"))
	require.Equal(t, 2, w.dirs[dirA])
	require.Equal(t, []uuid.UUID{id}, w.owners(a))

	w.Watch(id, b)
	require.Equal(t, 1, w.dirs[dirA])
	require.Equal(t, 1, w.dirs[dirB])
	require.Empty(t, w.owners(a))
	require.Equal(t, []uuid.UUID{id}, w.owners(b))

	w.Unwatch(id)
	w.Unwatch(id)
	require.NotContains(t, w.dirs, dirB)
	require.Equal(t, 1, w.dirs[dirA])
}

func TestWatcherPostsBufferID(t *testing.T) {
	w, events := newTestWatcher(t)
	path := writeTemp(t, "a.txt", "one\n")
	id := uuid.New()
	w.Watch(id, path)

	require.NoError(t, os.WriteFile(path, []byte("two\n"), 0644))
	select {
	case ev := <-events:
		require.Equal(t, id, ev.ID)
		require.Equal(t, path, ev.Path)
		require.NotZero(t, ev.Op&(fsnotify.Write|fsnotify.Create))
	case <-time.After(2 * time.Second):
		t.Fatal("no event for watched file")
	}
}
