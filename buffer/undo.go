package buffer

import (
	"unicode"
	"unicode/utf8"
)

type EditKind int

const (
	EditInsert EditKind = iota
	EditBackspace
	EditDelete
	EditNewline
	EditCompound
	EditReplace
	EditReload
)

func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "insert"
	case EditBackspace:
		return "backspace"
	case EditDelete:
		return "delete"
	case EditNewline:
		return "newline"
	case EditCompound:
		return "compound"
	case EditReplace:
		return "replace"
	case EditReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change replaces Removed at At with Inserted. The changes of a record are
// applied in order, each against the text left by the previous one.
type Change struct {
	At       Position
	Removed  string
	Inserted string
}

func (c Change) removedRange() Range {
	return Range{Start: c.At, End: EndOf(c.At, c.Removed)}
}

func (c Change) insertedRange() Range {
	return Range{Start: c.At, End: EndOf(c.At, c.Inserted)}
}

type EditRecord struct {
	Kind    EditKind
	Changes []Change
	Before  State
	After   State

	seq    int
	sealed bool
}

// History holds the undo and redo stacks of one buffer.
type History struct {
	undos    []*EditRecord
	redos    []*EditRecord
	nextSeq  int
	savedSeq int
}

func NewHistory() *History {
	return &History{nextSeq: 1}
}

// Record pushes rec, or folds it into the previous record when both are
// single-rune edits of the same kind that touch. The redo stack is cleared.
func (h *History) Record(rec *EditRecord) {
	h.dropRedos()
	if prev := h.top(); prev != nil && !prev.sealed && h.merge(prev, rec) {
		prev.After = rec.After
		h.renew(prev)
		return
	}
	h.renew(rec)
	if rec.Kind == EditNewline || rec.Kind == EditReload {
		rec.sealed = true
	}
	h.undos = append(h.undos, rec)
}

func (h *History) merge(prev, cur *EditRecord) bool {
	if prev.Kind != cur.Kind || len(prev.Changes) != 1 || len(cur.Changes) != 1 {
		return false
	}
	p, c := &prev.Changes[0], cur.Changes[0]
	switch cur.Kind {
	case EditInsert:
		if c.Removed != "" || utf8.RuneCountInString(c.Inserted) != 1 {
			return false
		}
		if !c.At.Equal(EndOf(p.At, p.Inserted)) {
			return false
		}
		last, _ := utf8.DecodeLastRuneInString(p.Inserted)
		next, _ := utf8.DecodeRuneInString(c.Inserted)
		if unicode.IsSpace(last) && !unicode.IsSpace(next) {
			return false
		}
		p.Inserted += c.Inserted
		return true
	case EditBackspace:
		if c.Inserted != "" || p.Inserted != "" || c.Removed == "\n" || utf8.RuneCountInString(c.Removed) != 1 {
			return false
		}
		if !EndOf(c.At, c.Removed).Equal(p.At) {
			return false
		}
		p.At = c.At
		p.Removed = c.Removed + p.Removed
		return true
	case EditDelete:
		if c.Inserted != "" || p.Inserted != "" || c.Removed == "\n" || utf8.RuneCountInString(c.Removed) != 1 {
			return false
		}
		if !c.At.Equal(p.At) {
			return false
		}
		p.Removed += c.Removed
		return true
	}
	return false
}

// Seal stops the most recent record from absorbing further edits.
func (h *History) Seal() {
	if rec := h.top(); rec != nil {
		rec.sealed = true
	}
}

// Amend lets the caller extend the most recent record in place, as the
// replace session does on every keystroke.
func (h *History) Amend(fn func(rec *EditRecord)) bool {
	rec := h.top()
	if rec == nil {
		return false
	}
	h.dropRedos()
	fn(rec)
	h.renew(rec)
	return true
}

// Discard removes the most recent record without touching the text. The
// caller must already have reverted its changes.
func (h *History) Discard() {
	if len(h.undos) > 0 {
		h.undos = h.undos[:len(h.undos)-1]
	}
}

func (h *History) Top() *EditRecord { return h.top() }

func (h *History) CanUndo() bool { return len(h.undos) > 0 }
func (h *History) CanRedo() bool { return len(h.redos) > 0 }
func (h *History) UndoLen() int { return len(h.undos) }

// PopUndo moves the most recent record onto the redo stack and returns it.
func (h *History) PopUndo() (*EditRecord, error) {
	rec := h.top()
	if rec == nil {
		return nil, ErrEmptyHistory
	}
	rec.sealed = true
	h.undos = h.undos[:len(h.undos)-1]
	h.redos = append(h.redos, rec)
	return rec, nil
}

// PopRedo moves the most recent undone record back onto the undo stack.
func (h *History) PopRedo() (*EditRecord, error) {
	if len(h.redos) == 0 {
		return nil, ErrEmptyHistory
	}
	rec := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]
	h.undos = append(h.undos, rec)
	return rec, nil
}

// Unpop reverses a PopUndo or PopRedo whose application failed.
func (h *History) Unpop(undo bool) {
	if undo {
		if rec, err := h.PopRedo(); err == nil {
			rec.sealed = true
		}
		return
	}
	_, _ = h.PopUndo()
}

// MarkSaved remembers the current state as the one on disk.
func (h *History) MarkSaved() {
	h.Seal()
	h.savedSeq = h.topSeq()
}

// Modified reports whether the text differs from the last saved state.
func (h *History) Modified() bool {
	return h.topSeq() != h.savedSeq
}

func (h *History) Clear() {
	h.undos = nil
	h.redos = nil
	h.savedSeq = 0
}

func (h *History) top() *EditRecord {
	if len(h.undos) == 0 {
		return nil
	}
	return h.undos[len(h.undos)-1]
}

func (h *History) topSeq() int {
	if rec := h.top(); rec != nil {
		return rec.seq
	}
	return 0
}

func (h *History) renew(rec *EditRecord) {
	rec.seq = h.nextSeq
	h.nextSeq++
}

func (h *History) dropRedos() {
	for _, rec := range h.redos {
		if rec.seq == h.savedSeq {
			// the saved state is no longer reachable
			h.savedSeq = -1
		}
	}
	h.redos = nil
}
