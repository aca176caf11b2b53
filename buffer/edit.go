package buffer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// InsertText types or pastes s at the cursor, replacing any selection. Tabs
// are expanded according to the tab policy.
func (b *Buffer) InsertText(s string) error {
	b.endSearch()
	s = b.tabs.Expand(NormalizeNewlines(s))
	if s == "" {
		return nil
	}
	kind := EditCompound
	switch {
	case s == "\n":
		kind = EditNewline
	case utf8.RuneCountInString(s) == 1:
		kind = EditInsert
	}
	return b.replaceSelection(kind, s)
}

// Paste inserts s as a single undo step.
func (b *Buffer) Paste(s string) error {
	b.endSearch()
	s = b.tabs.Expand(NormalizeNewlines(s))
	if s == "" {
		return nil
	}
	b.history.Seal()
	err := b.replaceSelection(EditCompound, s)
	b.history.Seal()
	return err
}

// Newline breaks the line at the cursor and carries over its indentation.
func (b *Buffer) Newline() error {
	b.endSearch()
	line := b.text.Line(b.cursor.Line)
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	if n := utf8.RuneCountInString(indent); n > b.cursor.Col {
		indent = string([]rune(indent)[:b.cursor.Col])
	}
	return b.replaceSelection(EditNewline, "\n"+indent)
}

func (b *Buffer) replaceSelection(kind EditKind, s string) error {
	at := b.cursor
	removed := ""
	if sel, ok := b.Selection(); ok {
		r := sel.Range()
		text, err := b.text.Read(r)
		if err != nil {
			return err
		}
		at, removed = r.Start, text
		kind = EditCompound
	}
	c := Change{At: at, Removed: removed, Inserted: s}
	return b.edit(kind, []Change{c}, State{Cursor: EndOf(at, s)})
}

// Backspace removes the selection, or the rune before the cursor. At the
// start of a line it joins the line with the previous one.
func (b *Buffer) Backspace() error {
	b.endSearch()
	if _, ok := b.Selection(); ok {
		return b.DeleteSelection()
	}
	from := b.prevPos(b.cursor)
	if from.Equal(b.cursor) {
		return nil
	}
	removed, err := b.text.Read(Range{Start: from, End: b.cursor})
	if err != nil {
		return err
	}
	return b.edit(EditBackspace, []Change{{At: from, Removed: removed}}, State{Cursor: from})
}

// Delete removes the selection, or the rune under the cursor.
func (b *Buffer) Delete() error {
	b.endSearch()
	if _, ok := b.Selection(); ok {
		return b.DeleteSelection()
	}
	to := b.nextPos(b.cursor)
	if to.Equal(b.cursor) {
		return nil
	}
	removed, err := b.text.Read(Range{Start: b.cursor, End: to})
	if err != nil {
		return err
	}
	at := b.cursor
	return b.edit(EditDelete, []Change{{At: at, Removed: removed}}, State{Cursor: at})
}

func (b *Buffer) DeleteSelection() error {
	sel, ok := b.Selection()
	if !ok {
		return nil
	}
	r := sel.Range()
	removed, err := b.text.Read(r)
	if err != nil {
		return err
	}
	return b.edit(EditCompound, []Change{{At: r.Start, Removed: removed}}, State{Cursor: r.Start})
}

// SelectedText returns the selected text.
func (b *Buffer) SelectedText() (string, bool) {
	sel, ok := b.Selection()
	if !ok {
		return "", false
	}
	text, err := b.text.Read(sel.Range())
	if err != nil {
		return "", false
	}
	return text, true
}

// Copy returns the selected text. Without a selection it returns the
// cursor's line with its line break.
func (b *Buffer) Copy() string {
	b.endSearch()
	if text, ok := b.SelectedText(); ok {
		return text
	}
	text, _ := b.text.Read(b.lineRange(b.cursor.Line))
	return text
}

// Cut removes and returns the selection, or the whole cursor line when
// nothing is selected. Undo brings back the cursor and selection as they
// were before the cut.
func (b *Buffer) Cut() (string, error) {
	b.endSearch()
	before := b.state()
	r := b.lineRange(b.cursor.Line)
	if sel, ok := b.Selection(); ok {
		r = sel.Range()
	}
	if r.Empty() {
		b.anchor = nil
		return "", nil
	}
	text, err := b.text.Read(r)
	if err != nil {
		return "", err
	}
	b.history.Seal()
	if err := b.editFrom(before, EditCompound, []Change{{At: r.Start, Removed: text}}, State{Cursor: r.Start}); err != nil {
		return "", err
	}
	b.history.Seal()
	return text, nil
}

// lineRange covers line i and its line break; the last line has none.
func (b *Buffer) lineRange(i int) Range {
	start := Position{Line: i}
	if i+1 < b.text.LineCount() {
		return Range{Start: start, End: Position{Line: i + 1}}
	}
	return Range{Start: start, End: Position{Line: i, Col: b.text.LineLen(i)}}
}

// selectedLines returns the first and last line touched by the selection, or
// the cursor line. A selection ending at column 0 does not include that line.
func (b *Buffer) selectedLines() (int, int) {
	sel, ok := b.Selection()
	if !ok {
		return b.cursor.Line, b.cursor.Line
	}
	r := sel.Range()
	last := r.End.Line
	if r.End.Col == 0 && last > r.Start.Line {
		last--
	}
	return r.Start.Line, last
}

// Indent adds one indentation unit to the start of every selected line.
func (b *Buffer) Indent() error {
	b.endSearch()
	first, last := b.selectedLines()
	unit := b.tabs.Unit()
	var changes []Change
	for i := first; i <= last; i++ {
		if b.text.LineLen(i) == 0 && first != last {
			continue
		}
		changes = append(changes, Change{At: Position{Line: i}, Inserted: unit})
	}
	if len(changes) == 0 {
		return nil
	}
	return b.editLines(changes)
}

// Unindent removes up to one indentation unit from every selected line.
func (b *Buffer) Unindent() error {
	b.endSearch()
	first, last := b.selectedLines()
	width := b.tabs.width()
	var changes []Change
	for i := first; i <= last; i++ {
		line := b.text.Line(i)
		n := 0
		if strings.HasPrefix(line, "\t") {
			n = 1
		} else {
			for n < width && n < len(line) && line[n] == ' ' {
				n++
			}
		}
		if n > 0 {
			changes = append(changes, Change{At: Position{Line: i}, Removed: line[:n]})
		}
	}
	if len(changes) == 0 {
		return nil
	}
	return b.editLines(changes)
}

// editLines applies column-0 changes and shifts the cursor and anchor on the
// touched lines to follow the text.
func (b *Buffer) editLines(changes []Change) error {
	shift := make(map[int]int, len(changes))
	for _, c := range changes {
		shift[c.At.Line] = utf8.RuneCountInString(c.Inserted) - utf8.RuneCountInString(c.Removed)
	}
	move := func(p Position) Position {
		p.Col = max(0, p.Col+shift[p.Line])
		return p
	}
	after := State{Cursor: move(b.cursor)}
	if b.anchor != nil {
		a := move(*b.anchor)
		after.Anchor = &a
	}
	b.history.Seal()
	if err := b.edit(EditCompound, changes, after); err != nil {
		return err
	}
	b.history.Seal()
	return nil
}

// prevPos is the position one rune before p, crossing line breaks.
func (b *Buffer) prevPos(p Position) Position {
	if p.Col > 0 {
		return Position{Line: p.Line, Col: p.Col - 1}
	}
	if p.Line > 0 {
		return Position{Line: p.Line - 1, Col: b.text.LineLen(p.Line - 1)}
	}
	return p
}

// nextPos is the position one rune after p, crossing line breaks.
func (b *Buffer) nextPos(p Position) Position {
	if p.Col < b.text.LineLen(p.Line) {
		return Position{Line: p.Line, Col: p.Col + 1}
	}
	if p.Line+1 < b.text.LineCount() {
		return Position{Line: p.Line + 1}
	}
	return p
}

// charClass returns 0 for whitespace, 1 for word runes and 2 for symbols.
func charClass(r rune) int {
	if unicode.IsSpace(r) {
		return 0
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return 1
	}
	return 2
}
