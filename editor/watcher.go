package editor

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"tedit/log"
)

const watchDebounce = 100 * time.Millisecond

// FileWatchEvent carries a change to the file behind buffer ID to the main
// event loop. Path is where the change was seen.
type FileWatchEvent struct {
	tcell.EventTime
	ID   uuid.UUID
	Path string
	Op   fsnotify.Op
}

// watcher watches the directories holding open files. Directories rather
// than files are watched so that files replaced by rename are still seen.
// Buffers are tracked by ID so a save-as only moves the ID to a new path.
type watcher struct {
	fs   *fsnotify.Watcher
	post func(tcell.Event) error

	mu    sync.Mutex
	dirs  map[string]int
	paths map[uuid.UUID]string
}

func newWatcher(post func(tcell.Event) error) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{
		fs:    fw,
		post:  post,
		dirs:  make(map[string]int),
		paths: make(map[uuid.UUID]string),
	}
	go w.loop()
	return w, nil
}

// Watch starts reporting changes to path for buffer id. Watching an id
// again moves it to the new path.
func (w *watcher) Watch(id uuid.UUID, path string) {
	path = filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if old, ok := w.paths[id]; ok {
		if old == path {
			return
		}
		w.release(filepath.Dir(old))
		delete(w.paths, id)
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			log.Warn(log.CatWatcher, "watch failed", "dir", dir, "error", err)
			return
		}
		log.Debug(log.CatWatcher, "watching", "dir", dir)
	}
	w.dirs[dir]++
	w.paths[id] = path
}

// Unwatch stops reporting changes for buffer id.
func (w *watcher) Unwatch(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if path, ok := w.paths[id]; ok {
		delete(w.paths, id)
		w.release(filepath.Dir(path))
	}
}

// release drops one reference to dir. Callers hold mu.
func (w *watcher) release(dir string) {
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fs.Remove(dir)
	}
}

// owners returns the buffers watching path.
func (w *watcher) owners(path string) []uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	var ids []uuid.UUID
	for id, p := range w.paths {
		if p == path {
			ids = append(ids, id)
		}
	}
	return ids
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

func (w *watcher) loop() {
	// Debounce: collect events and send after quiet period
	debounceTimer := time.NewTimer(watchDebounce)
	debounceTimer.Stop()
	pending := make(map[string]fsnotify.Op)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			pending[filepath.Clean(event.Name)] |= event.Op
			debounceTimer.Reset(watchDebounce)

		case <-debounceTimer.C:
			for path, op := range pending {
				for _, id := range w.owners(path) {
					ev := &FileWatchEvent{ID: id, Path: path, Op: op}
					ev.SetEventNow()
					if err := w.post(ev); err != nil {
						log.Debug(log.CatWatcher, "event dropped", "path", path, "id", id, "error", err)
					}
				}
			}
			pending = make(map[string]fsnotify.Op)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatWatcher, "watcher error", "error", err)
		}
	}
}
