package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"tedit/buffer"
	"tedit/clipboardx"
	"tedit/command"
	"tedit/config"
	"tedit/fileio"
	"tedit/highlight"
	"tedit/log"
	"tedit/ui"
)

const (
	messageTimeout = 4 * time.Second
	// saveGrace ignores watcher events caused by our own saves.
	saveGrace = time.Second
)

// Options are command-line overrides applied to every opened file.
type Options struct {
	Syntax      string
	TabSize     int
	LiteralTabs *bool
}

// file is an open buffer and what the editor knows about it on disk.
type file struct {
	buf      *buffer.Buffer
	doc      fileio.Document // encoding and line ending; Content is not kept
	lastSave time.Time
	external bool
}

func (f *file) name() string {
	if f.buf.Path == "" {
		return "untitled"
	}
	return filepath.Base(f.buf.Path)
}

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	opts   Options
	langs  *highlight.Registry
	clip   *clipboardx.Clipboard

	files  []*file
	panes  []*pane
	active int
	split  splitDir

	bar         *ui.BufferBar
	status      *ui.StatusBar
	prompt      *ui.Prompt
	help        *ui.Help
	pairChoices []buffer.Pair

	watcher *watcher

	quit         bool
	quitPending  bool // true after first Ctrl+Q with unsaved changes
	closePending bool // same for Ctrl+W on a modified buffer

	messageTime time.Time
}

func New(cfg *config.Config, opts Options) *Editor {
	e := &Editor{
		cfg:    cfg,
		opts:   opts,
		langs:  highlight.NewRegistry(),
		clip:   clipboardx.New(),
		bar:    ui.NewBufferBar(),
		status: ui.NewStatusBar(),
	}
	e.bar.OnSwitch = func(i int) { e.showFile(e.files[i]) }
	return e
}

func (e *Editor) Run(paths []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	screen.EnablePaste()
	e.screen = screen

	if w, err := newWatcher(screen.PostEvent); err != nil {
		log.Warn(log.CatWatcher, "file watching disabled", "error", err)
	} else {
		e.watcher = w
	}

	for _, p := range paths {
		if err := e.openFile(p); err != nil {
			e.setError(err.Error())
		}
	}
	if len(e.files) == 0 {
		e.openEmpty()
	}

	var pasting bool
	var pasted []rune
	for !e.quit {
		e.clearExpiredMessage()
		e.render()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventPaste:
			pasting = ev.Start()
			if !pasting && len(pasted) > 0 {
				e.apply(command.Paste{Text: string(pasted)})
				pasted = pasted[:0]
			}
		case *tcell.EventKey:
			if pasting && ev.Key() == tcell.KeyRune {
				pasted = append(pasted, ev.Rune())
				continue
			}
			if pasting && ev.Key() == tcell.KeyEnter {
				pasted = append(pasted, '\n')
				continue
			}
			e.handleKey(ev)
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *FileWatchEvent:
			e.handleFileWatchEvent(ev)
		}
	}

	if e.watcher != nil {
		e.watcher.Close()
	}
	screen.Clear()
	screen.Fini()
	return nil
}

// tabPolicy resolves tabs for a file: language and .editorconfig first,
// then command-line flags.
func (e *Editor) tabPolicy(path string, tok highlight.Tokenizer) buffer.TabPolicy {
	p := e.cfg.TabPolicy(path, tok.Name())
	if e.opts.TabSize > 0 {
		p.Width = e.opts.TabSize
	}
	if e.opts.LiteralTabs != nil {
		p.Literal = *e.opts.LiteralTabs
	}
	return p
}

func (e *Editor) syntaxFor(path string) highlight.Tokenizer {
	if e.opts.Syntax != "" {
		if tok, ok := e.langs.ByName(e.opts.Syntax); ok {
			return tok
		}
		e.setError("unknown syntax " + strconv.Quote(e.opts.Syntax) + "; built in: " + strings.Join(e.langs.Names(), ", "))
	}
	if path == "" {
		return highlight.PlainText
	}
	return e.langs.ForFile(path)
}

func (e *Editor) newFile(path string, doc fileio.Document) *file {
	tok := e.syntaxFor(path)
	buf := buffer.New(e.tabPolicy(path, tok))
	buf.Path = path
	buf.SetSyntax(tok)
	buf.Load(doc.Content)
	doc.Content = ""
	return &file{buf: buf, doc: doc}
}

// openFile opens path, or switches to it when it is already open. A path
// that does not exist yet gives an empty buffer that saves there.
func (e *Editor) openFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	for _, f := range e.files {
		if f.buf.Path == abs {
			e.showFile(f)
			return nil
		}
	}

	doc, err := fileio.Read(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		doc = fileio.Document{}
		if ec := config.FindEditorConfig(abs); ec != nil {
			doc = ec.NewDocument()
		}
		e.setMessage("New file " + filepath.Base(abs))
	case err != nil:
		return err
	}

	f := e.newFile(abs, doc)
	e.files = append(e.files, f)
	if e.watcher != nil {
		e.watcher.Watch(f.buf.ID, abs)
	}
	e.showFile(f)
	log.Info(log.CatFile, "opened", "path", abs, "id", f.buf.ID, "syntax", f.buf.Syntax().Name())
	return nil
}

func (e *Editor) openEmpty() {
	f := e.newFile("", fileio.Document{})
	e.files = append(e.files, f)
	e.showFile(f)
}

// showFile puts f in the active pane.
func (e *Editor) showFile(f *file) {
	if len(e.panes) == 0 {
		e.panes = []*pane{{f: f}}
		e.active = 0
		return
	}
	p := e.activePane()
	if p.f != f {
		p.f = f
		p.scrollX, p.scrollY = 0, 0
	}
}

func (e *Editor) activePane() *pane {
	if len(e.panes) == 0 {
		return nil
	}
	return e.panes[e.active]
}

func (e *Editor) activeFile() *file {
	if p := e.activePane(); p != nil {
		return p.f
	}
	return nil
}

func (e *Editor) fileIndex(f *file) int {
	for i, g := range e.files {
		if g == f {
			return i
		}
	}
	return -1
}

// apply runs cmd on the active buffer and reports the outcome.
func (e *Editor) apply(cmd command.Command) {
	f := e.activeFile()
	if f == nil {
		return
	}
	// Leaving a plain find never edits, so a binary file may still do it.
	if cmd.ChangesContent() && f.doc.Binary && f.buf.SearchMode() != buffer.SearchFinding {
		e.setError("binary file is read-only")
		return
	}

	out, err := command.Apply(f.buf, cmd)
	if out.HasClipboard {
		e.clip.Write(out.Clipboard)
	}
	if out.Damaged {
		log.Debug(log.CatUI, "damage", "first", out.Damage.First, "last", out.Damage.Last, "delta", out.Damage.Delta)
	}
	if err != nil {
		e.reportError(cmd, err)
	}
}

func (e *Editor) reportError(cmd command.Command, err error) {
	var ambiguous *buffer.AmbiguousPairError
	switch {
	case errors.Is(err, buffer.ErrEmptyHistory) && cmd.ID() == command.Undo.ID():
		e.setMessage("nothing left to undo")
	case errors.Is(err, buffer.ErrEmptyHistory) && cmd.ID() == command.Redo.ID():
		e.setMessage("nothing left to redo")
	case errors.As(err, &ambiguous):
		e.pairChoices = ambiguous.Choices
		e.setMessage(pairChoiceMessage(ambiguous.Choices))
	default:
		e.setError(err.Error())
	}
}

func pairChoiceMessage(choices []buffer.Pair) string {
	msg := "Select inside:"
	for _, p := range choices {
		msg += " " + p.String()
	}
	return msg
}

// choosePair resolves a pending ambiguous pair selection with the typed rune.
func (e *Editor) choosePair(r rune) bool {
	for _, p := range e.pairChoices {
		if r == p.Open || r == p.Close {
			e.pairChoices = nil
			e.clearMessage()
			e.apply(command.SelectInsidePair{Kind: &p})
			return true
		}
	}
	return false
}

func (e *Editor) paste() {
	text := e.clip.Read()
	if text == "" {
		e.setMessage("clipboard is empty")
		return
	}
	e.apply(command.Paste{Text: text})
}

// save writes the active file. A buffer without a path asks for one first.
func (e *Editor) save(f *file) {
	if f.buf.Path == "" {
		e.promptSaveAs(f)
		return
	}
	if f.doc.Binary {
		e.setError("binary file is read-only")
		return
	}
	if err := e.write(f); err != nil {
		e.setError(err.Error())
		return
	}
	e.setMessage("Saved " + f.name())
}

func (e *Editor) write(f *file) error {
	cfg := *e.cfg
	if ec := config.FindEditorConfig(f.buf.Path); ec != nil {
		cfg = ec.ApplySave(cfg)
	}
	opts := fileio.SaveOptions{
		TrimTrailingWhitespace: cfg.TrimTrailingSpace,
		InsertFinalNewline:     cfg.InsertFinalNewline,
	}

	content := f.buf.Content()
	doc := f.doc
	doc.Content = content
	f.lastSave = time.Now()
	if err := fileio.Write(f.buf.Path, doc, opts); err != nil {
		return err
	}

	// The buffer follows what went to disk, as one undoable step.
	if prepared := fileio.Prepare(content, opts); prepared != content {
		if err := f.buf.Reload(prepared); err != nil {
			return err
		}
	} else {
		f.buf.MarkSaved()
	}
	f.external = false
	return nil
}

// reload replaces the buffer with the file on disk as one undoable edit.
func (e *Editor) reload(f *file) {
	if f.buf.Path == "" {
		return
	}
	doc, err := fileio.Read(f.buf.Path)
	if err != nil {
		e.setError(err.Error())
		return
	}
	if err := f.buf.Reload(doc.Content); err != nil {
		e.setError(err.Error())
		return
	}
	doc.Content = ""
	f.doc = doc
	f.external = false
	e.setMessage("↻ " + f.name() + " (reloaded)")
}

func (e *Editor) promptSaveAs(f *file) {
	p := ui.NewPrompt("Save as: ")
	p.OnSubmit = func(name string) {
		e.prompt = nil
		if name == "" {
			return
		}
		abs, err := filepath.Abs(name)
		if err != nil {
			e.setError(err.Error())
			return
		}
		old := f.buf.Path
		f.buf.Path = abs
		if err := e.write(f); err != nil {
			f.buf.Path = old
			e.setError(err.Error())
			return
		}
		if e.watcher != nil {
			e.watcher.Watch(f.buf.ID, abs)
		}
		if tok := e.syntaxFor(abs); tok != f.buf.Syntax() {
			f.buf.SetSyntax(tok)
		}
		f.buf.SetTabPolicy(e.tabPolicy(abs, f.buf.Syntax()))
		e.setMessage("Saved " + f.name())
	}
	p.OnCancel = func() { e.prompt = nil }
	e.prompt = p
}

func (e *Editor) promptOpen() {
	p := ui.NewPrompt("Open: ")
	p.OnSubmit = func(name string) {
		e.prompt = nil
		if name == "" {
			return
		}
		if err := e.openFile(name); err != nil {
			e.setError(err.Error())
		}
	}
	p.OnCancel = func() { e.prompt = nil }
	e.prompt = p
}

func (e *Editor) promptGotoLine() {
	p := ui.NewPrompt("Go to line: ")
	p.Numeric = true
	p.OnSubmit = func(value string) {
		e.prompt = nil
		n, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		e.apply(command.GotoLine{Line: n})
	}
	p.OnCancel = func() { e.prompt = nil }
	e.prompt = p
}

// splitPane shows the active file in a new pane next to the current one.
func (e *Editor) splitPane(dir splitDir) {
	p := e.activePane()
	if p == nil {
		return
	}
	np := &pane{f: p.f, scrollY: p.scrollY, scrollX: p.scrollX}
	e.panes = append(e.panes[:e.active+1], append([]*pane{np}, e.panes[e.active+1:]...)...)
	e.active++
	e.split = dir
}

func (e *Editor) nextPane() {
	if len(e.panes) > 1 {
		e.active = (e.active + 1) % len(e.panes)
	}
}

// cycleBuffer shows the next or previous open file in the active pane.
func (e *Editor) cycleBuffer(delta int) {
	n := len(e.files)
	if n < 2 {
		return
	}
	i := e.fileIndex(e.activeFile())
	e.showFile(e.files[((i+delta)%n+n)%n])
}

// close closes the active pane, or the active file when only one pane is
// left. A modified file needs a second press.
func (e *Editor) close() {
	if len(e.panes) > 1 {
		e.panes = append(e.panes[:e.active], e.panes[e.active+1:]...)
		e.active = min(e.active, len(e.panes)-1)
		if len(e.panes) == 1 {
			e.split = splitNone
		}
		return
	}

	f := e.activeFile()
	if f == nil {
		return
	}
	if f.buf.Modified() && !e.closePending {
		e.closePending = true
		e.setError(f.name() + " has unsaved changes. Press Ctrl+W again to discard.")
		return
	}
	e.closePending = false

	i := e.fileIndex(f)
	e.files = append(e.files[:i], e.files[i+1:]...)
	if e.watcher != nil {
		e.watcher.Unwatch(f.buf.ID)
	}
	if len(e.files) == 0 {
		e.panes = nil
		e.openEmpty()
		return
	}
	e.activePane().f = e.files[min(i, len(e.files)-1)]
}

func (e *Editor) handleQuit() {
	dirty := 0
	for _, f := range e.files {
		if f.buf.Modified() {
			dirty++
		}
	}
	if dirty > 0 && !e.quitPending {
		e.quitPending = true
		e.setError(fmt.Sprintf("%d file(s) have unsaved changes. Press Ctrl+Q again to quit.", dirty))
		return
	}
	e.quit = true
}

func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	f := e.fileByID(ev.ID)
	if f == nil || f.buf.Path != ev.Path {
		// Closed, or renamed by save-as since the event was queued.
		return
	}
	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && !exists(ev.Path):
		e.setError("Warning: " + f.name() + " was deleted externally")

	case ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
		if time.Since(f.lastSave) < saveGrace {
			return
		}
		if f.buf.Modified() {
			f.external = true
			e.setError("⚠ " + f.name() + " was modified externally! (unsaved changes)")
			return
		}
		e.reload(f)
	}
}

func (e *Editor) fileByID(id uuid.UUID) *file {
	for _, f := range e.files {
		if f.buf.ID == id {
			return f
		}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (e *Editor) setMessage(msg string) {
	e.status.Message = msg
	e.status.IsError = false
	e.messageTime = time.Now()
}

func (e *Editor) setError(msg string) {
	log.Debug(log.CatUI, "status error", "message", msg)
	e.status.Message = msg
	e.status.IsError = true
	e.messageTime = time.Now()
}

func (e *Editor) clearMessage() {
	e.status.Message = ""
	e.status.IsError = false
}

func (e *Editor) clearExpiredMessage() {
	if e.status.Message != "" && time.Since(e.messageTime) > messageTimeout {
		e.clearMessage()
	}
}
