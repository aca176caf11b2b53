package buffer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"tedit/highlight"
	"tedit/log"
)

// TabPolicy decides what a tab typed or pasted into the buffer becomes.
type TabPolicy struct {
	Width   int
	Literal bool
}

func (p TabPolicy) width() int {
	if p.Width < 1 {
		return 1
	}
	return p.Width
}

// Unit is the text inserted by one level of indentation.
func (p TabPolicy) Unit() string {
	if p.Literal {
		return "\t"
	}
	return strings.Repeat(" ", p.width())
}

// Expand applies the policy to incoming text.
func (p TabPolicy) Expand(s string) string {
	if p.Literal || !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", p.width()))
}

// Damage is the window of lines touched since it was last taken, in current
// line numbers, plus the net change in line count.
type Damage struct {
	First, Last int
	Delta       int
}

type Buffer struct {
	ID   uuid.UUID
	Path string
	// PageLines is the page height used by PageUp and PageDown.
	PageLines int

	text    *Text
	cursor  Position
	anchor  *Position
	goalCol int

	history *History
	tabs    TabPolicy
	syntax  highlight.Tokenizer
	spans   *highlight.LineCache
	search  Search

	damage    Damage
	damaged   bool
	lastQuery string
}

func New(tabs TabPolicy) *Buffer {
	b := &Buffer{
		ID:        uuid.New(),
		PageLines: 20,
		text:      NewText(""),
		goalCol:   -1,
		history:   NewHistory(),
		tabs:      tabs,
	}
	b.SetSyntax(highlight.PlainText)
	return b
}

// NewFromContent creates a buffer holding content with an empty history.
func NewFromContent(content string, tabs TabPolicy) *Buffer {
	b := New(tabs)
	b.Load(content)
	return b
}

// Load replaces the whole text, as on first open. History is cleared and the
// buffer is considered saved.
func (b *Buffer) Load(content string) {
	b.endSearch()
	old := b.text.LineCount()
	b.text = NewText(content)
	b.cursor = Position{}
	b.anchor = nil
	b.goalCol = -1
	b.history.Clear()
	b.history.MarkSaved()
	b.spans.Invalidate(0, old-1, b.text.LineCount()-1)
	b.noteDamage(0, old-1, b.text.LineCount()-1)
}

// Reload brings the text in line with content read back from disk. The
// difference is recorded as one undoable edit so the previous text can be
// recovered.
func (b *Buffer) Reload(content string) error {
	b.endSearch()
	content = NormalizeNewlines(content)
	changes := diffChanges(b.text.String(), content)
	if len(changes) == 0 {
		b.history.MarkSaved()
		return nil
	}
	before := b.state()
	if err := b.applyChanges(changes); err != nil {
		log.ErrorErr(log.CatBuffer, "reload failed", err, "path", b.Path)
		return err
	}
	b.setState(State{Cursor: before.Cursor})
	b.history.Record(&EditRecord{Kind: EditReload, Changes: changes, Before: before, After: b.state()})
	b.history.MarkSaved()
	log.Debug(log.CatBuffer, "reloaded", "path", b.Path, "changes", len(changes))
	return nil
}

// diffChanges turns a line diff between two texts into changes ordered from
// the bottom of the document up, so each one can be applied at its original
// position.
func diffChanges(from, to string) []Change {
	dmp := diffmatchpatch.New()
	a, bb, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, bb, false), lines)

	var changes []Change
	var pending *Change
	pos := Position{}
	flush := func() {
		if pending != nil {
			changes = append(changes, *pending)
			pending = nil
		}
	}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			pos = EndOf(pos, d.Text)
		case diffmatchpatch.DiffDelete:
			if pending == nil {
				pending = &Change{At: pos}
			}
			pending.Removed += d.Text
			pos = EndOf(pos, d.Text)
		case diffmatchpatch.DiffInsert:
			if pending == nil {
				pending = &Change{At: pos}
			}
			pending.Inserted += d.Text
		}
	}
	flush()
	for i, j := 0, len(changes)-1; i < j; i, j = i+1, j-1 {
		changes[i], changes[j] = changes[j], changes[i]
	}
	return changes
}

// Content returns the full text for writing.
func (b *Buffer) Content() string { return b.text.String() }

func (b *Buffer) Text() *Text { return b.text }

func (b *Buffer) LineCount() int { return b.text.LineCount() }

func (b *Buffer) Line(i int) string { return b.text.Line(i) }

func (b *Buffer) Cursor() Position { return b.cursor }

// Selection returns the active selection, if any.
func (b *Buffer) Selection() (Selection, bool) {
	return b.state().Selection()
}

// SelectionOn returns the selected columns of line, with end == -1 meaning
// the selection runs past the end of the line.
func (b *Buffer) SelectionOn(line int) (start, end int, ok bool) {
	sel, has := b.Selection()
	if !has {
		return 0, 0, false
	}
	r := sel.Range()
	if line < r.Start.Line || line > r.End.Line {
		return 0, 0, false
	}
	if line == r.End.Line && r.End.Col == 0 && line != r.Start.Line {
		return 0, 0, false
	}
	start, end = 0, -1
	if line == r.Start.Line {
		start = r.Start.Col
	}
	if line == r.End.Line {
		end = r.End.Col
	}
	return start, end, true
}

// Modified reports whether the text differs from what was last saved.
func (b *Buffer) Modified() bool { return b.history.Modified() }

// MarkSaved records that the current text is what is on disk.
// An open search session is closed first.
func (b *Buffer) MarkSaved() {
	b.endSearch()
	b.history.MarkSaved()
}

func (b *Buffer) History() *History { return b.history }

func (b *Buffer) TabPolicy() TabPolicy { return b.tabs }

func (b *Buffer) SetTabPolicy(p TabPolicy) {
	if highlight.RequiresLiteralTabs(b.syntax) {
		p.Literal = true
	}
	b.tabs = p
}

func (b *Buffer) Syntax() highlight.Tokenizer { return b.syntax }

// SetSyntax switches the tokenizer and drops every cached span.
func (b *Buffer) SetSyntax(tok highlight.Tokenizer) {
	if tok == nil {
		tok = highlight.PlainText
	}
	b.syntax = tok
	b.spans = highlight.NewLineCache(tok)
	if highlight.RequiresLiteralTabs(tok) {
		b.tabs.Literal = true
	}
}

// Spans returns the highlight spans of line, tokenizing lazily.
func (b *Buffer) Spans(line int) []highlight.Span {
	return b.spans.Spans(b.text, line)
}

// TakeDamage returns and resets the damaged line window.
func (b *Buffer) TakeDamage() (Damage, bool) {
	d, ok := b.damage, b.damaged
	b.damage, b.damaged = Damage{}, false
	return d, ok
}

func (b *Buffer) noteDamage(first, oldLast, newLast int) {
	delta := newLast - oldLast
	if !b.damaged {
		b.damage = Damage{First: first, Last: newLast, Delta: delta}
		b.damaged = true
		return
	}
	if b.damage.Last > oldLast {
		b.damage.Last += delta
	}
	b.damage.First = min(b.damage.First, first)
	b.damage.Last = max(b.damage.Last, newLast)
	b.damage.Delta += delta
}

func (b *Buffer) state() State {
	s := State{Cursor: b.cursor}
	if b.anchor != nil {
		a := *b.anchor
		s.Anchor = &a
	}
	return s
}

func (b *Buffer) setState(s State) {
	b.cursor = b.text.Clamp(s.Cursor)
	b.anchor = nil
	if s.Anchor != nil {
		a := b.text.Clamp(*s.Anchor)
		b.anchor = &a
	}
	b.goalCol = -1
}

func (b *Buffer) selectRange(r Range) {
	a := r.Start
	b.anchor = &a
	b.cursor = r.End
	b.goalCol = -1
}

// applyChanges performs changes in order. If one fails, the ones already
// applied are reverted so the text is left as it was.
func (b *Buffer) applyChanges(changes []Change) error {
	for i, c := range changes {
		if err := b.applyChange(c); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := b.applyChange(inverse(changes[j])); rerr != nil {
					log.ErrorErr(log.CatBuffer, "rollback failed", rerr, "change", j)
				}
			}
			return err
		}
	}
	return nil
}

func (b *Buffer) applyChange(c Change) error {
	r := c.removedRange()
	got, err := b.text.Read(r)
	if err != nil {
		return err
	}
	if got != c.Removed {
		return fmt.Errorf("%w: text at %s does not match edit record", ErrOutOfBounds, r)
	}
	if _, err := b.text.Delete(r); err != nil {
		return err
	}
	ins, err := b.text.Insert(c.At, c.Inserted)
	if err != nil {
		// put back what was removed before reporting
		_, _ = b.text.Insert(c.At, c.Removed)
		return err
	}
	b.spans.Invalidate(c.At.Line, r.End.Line, ins.End.Line)
	b.noteDamage(c.At.Line, r.End.Line, ins.End.Line)
	return nil
}

func inverse(c Change) Change {
	return Change{At: c.At, Removed: c.Inserted, Inserted: c.Removed}
}

func inverseAll(changes []Change) []Change {
	out := make([]Change, len(changes))
	for i, c := range changes {
		out[len(changes)-1-i] = inverse(c)
	}
	return out
}

// edit applies changes, moves the cursor to after and records the result.
func (b *Buffer) edit(kind EditKind, changes []Change, after State) error {
	return b.editFrom(b.state(), kind, changes, after)
}

// editFrom is edit with the state undo returns to given explicitly, for
// commands that adjust the selection themselves before editing.
func (b *Buffer) editFrom(before State, kind EditKind, changes []Change, after State) error {
	if err := b.applyChanges(changes); err != nil {
		log.ErrorErr(log.CatBuffer, "edit rejected", err, "kind", kind)
		return err
	}
	b.setState(after)
	b.history.Record(&EditRecord{Kind: kind, Changes: changes, Before: before, After: b.state()})
	return nil
}

// Undo reverts the most recent edit record.
func (b *Buffer) Undo() error {
	b.endSearch()
	rec, err := b.history.PopUndo()
	if err != nil {
		return err
	}
	if err := b.applyChanges(inverseAll(rec.Changes)); err != nil {
		b.history.Unpop(true)
		log.ErrorErr(log.CatBuffer, "undo failed", err, "kind", rec.Kind)
		return err
	}
	b.setState(rec.Before)
	b.history.Seal()
	return nil
}

// Redo re-applies the most recently undone record.
func (b *Buffer) Redo() error {
	b.endSearch()
	rec, err := b.history.PopRedo()
	if err != nil {
		return err
	}
	if err := b.applyChanges(rec.Changes); err != nil {
		b.history.Unpop(false)
		log.ErrorErr(log.CatBuffer, "redo failed", err, "kind", rec.Kind)
		return err
	}
	b.setState(rec.After)
	b.history.Seal()
	return nil
}
