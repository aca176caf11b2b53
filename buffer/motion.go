package buffer

import (
	"errors"
	"unicode"
)

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	WordLeft
	WordRight
	LineStart
	LineEnd
	DocStart
	DocEnd
	PageUp
	PageDown
)

var directionNames = [...]string{
	"left", "right", "up", "down", "word-left", "word-right",
	"line-start", "line-end", "doc-start", "doc-end", "page-up", "page-down",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// Move moves the cursor. With extend the selection grows from its anchor,
// otherwise any selection collapses.
func (b *Buffer) Move(dir Direction, extend bool) {
	b.endSearch()
	b.history.Seal()

	if sel, ok := b.Selection(); ok && !extend && (dir == Left || dir == Right) {
		r := sel.Range()
		b.anchor = nil
		b.goalCol = -1
		if dir == Left {
			b.cursor = r.Start
		} else {
			b.cursor = r.End
		}
		return
	}

	from := b.cursor
	to := b.target(dir)
	if dir != Up && dir != Down && dir != PageUp && dir != PageDown {
		b.goalCol = -1
	}
	b.moveTo(from, to, extend)
}

func (b *Buffer) moveTo(from, to Position, extend bool) {
	if extend {
		if b.anchor == nil {
			a := from
			b.anchor = &a
		}
	} else {
		b.anchor = nil
	}
	b.cursor = b.text.Clamp(to)
}

func (b *Buffer) target(dir Direction) Position {
	c := b.cursor
	switch dir {
	case Left:
		return b.prevPos(c)
	case Right:
		return b.nextPos(c)
	case Up:
		return b.vertical(-1)
	case Down:
		return b.vertical(1)
	case PageUp:
		return b.vertical(-max(1, b.PageLines))
	case PageDown:
		return b.vertical(max(1, b.PageLines))
	case WordLeft:
		return b.wordLeft(c)
	case WordRight:
		return b.wordRight(c)
	case LineStart:
		indent := firstNonBlank(b.text.Line(c.Line))
		if c.Col == indent {
			return Position{Line: c.Line}
		}
		return Position{Line: c.Line, Col: indent}
	case LineEnd:
		return Position{Line: c.Line, Col: b.text.LineLen(c.Line)}
	case DocStart:
		return Position{}
	case DocEnd:
		return b.text.End()
	}
	return c
}

// vertical moves by n lines keeping the column the move started from.
func (b *Buffer) vertical(n int) Position {
	if b.goalCol < 0 {
		b.goalCol = b.cursor.Col
	}
	line := b.cursor.Line + n
	switch {
	case line < 0:
		b.goalCol = -1
		return Position{}
	case line >= b.text.LineCount():
		b.goalCol = -1
		return b.text.End()
	}
	return Position{Line: line, Col: min(b.goalCol, b.text.LineLen(line))}
}

func (b *Buffer) wordLeft(p Position) Position {
	if p.Col == 0 {
		return b.prevPos(p)
	}
	line := []rune(b.text.Line(p.Line))
	col := p.Col - 1
	for col > 0 && charClass(line[col]) == 0 {
		col--
	}
	cls := charClass(line[col])
	for col > 0 && charClass(line[col-1]) == cls {
		col--
	}
	return Position{Line: p.Line, Col: col}
}

func (b *Buffer) wordRight(p Position) Position {
	line := []rune(b.text.Line(p.Line))
	if p.Col >= len(line) {
		return b.nextPos(p)
	}
	col := p.Col
	cls := charClass(line[col])
	for col < len(line) && charClass(line[col]) == cls {
		col++
	}
	for col < len(line) && charClass(line[col]) == 0 {
		col++
	}
	return Position{Line: p.Line, Col: col}
}

func firstNonBlank(line string) int {
	n := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}

// SetCursor places the cursor at p, clamped to the text.
func (b *Buffer) SetCursor(p Position, extend bool) {
	b.endSearch()
	b.history.Seal()
	b.goalCol = -1
	b.moveTo(b.cursor, p, extend)
}

// Select sets an explicit selection from anchor to active.
func (b *Buffer) Select(anchor, active Position) {
	b.endSearch()
	b.history.Seal()
	a := b.text.Clamp(anchor)
	b.anchor = &a
	b.cursor = b.text.Clamp(active)
	b.goalCol = -1
}

func (b *Buffer) ClearSelection() {
	b.endSearch()
	b.anchor = nil
}

func (b *Buffer) SelectAll() {
	b.endSearch()
	b.history.Seal()
	b.selectRange(Range{End: b.text.End()})
}

// GotoLine moves to the start of the given 1-based line, clamped to the
// document.
func (b *Buffer) GotoLine(n int) {
	b.endSearch()
	b.history.Seal()
	line := min(max(n-1, 0), b.text.LineCount()-1)
	b.anchor = nil
	b.goalCol = -1
	b.cursor = Position{Line: line}
}

// GotoPair jumps to the delimiter matching the one under the cursor, or to
// the closer of the pair around it.
func (b *Buffer) GotoPair() error {
	b.endSearch()
	b.history.Seal()
	p, err := FindMatch(b.text, b.cursor, DefaultPairs)
	if err != nil {
		return err
	}
	b.anchor = nil
	b.goalCol = -1
	b.cursor = p
	return nil
}

// WidenToLines grows the selection to whole lines, including the final line
// break when there is a following line. Orientation is kept.
func (b *Buffer) WidenToLines() {
	b.endSearch()
	b.history.Seal()
	r := Range{Start: b.cursor, End: b.cursor}
	backward := false
	if sel, ok := b.Selection(); ok {
		r = sel.Range()
		backward = sel.Active.Before(sel.Anchor)
	}
	start := Position{Line: r.Start.Line}
	end := r.End
	if !(end.Col == 0 && end.Line > r.Start.Line) {
		if end.Line+1 < b.text.LineCount() {
			end = Position{Line: end.Line + 1}
		} else {
			end = Position{Line: end.Line, Col: b.text.LineLen(end.Line)}
		}
	}
	if backward {
		b.anchor = &end
		b.cursor = start
	} else {
		b.anchor = &start
		b.cursor = end
	}
	b.goalCol = -1
}

// WidenToPair selects pair contents around the selection. Calling it again
// adds the delimiters, and again after that moves out to the next pair.
// kind restricts the search to one pair; with nil every default pair counts
// and an *AmbiguousPairError asks for a choice.
func (b *Buffer) WidenToPair(kind *Pair) error {
	b.endSearch()
	b.history.Seal()
	r := Range{Start: b.cursor, End: b.cursor}
	if sel, ok := b.Selection(); ok {
		r = sel.Range()
	}

	if span, ok := b.contentsOf(r, kind); ok {
		b.selectRange(span.Outer())
		return nil
	}

	if kind == nil && r.Empty() {
		if rn, ok := b.text.RuneAt(r.Start); ok {
			_, isOpen := DefaultPairs.Opener(rn)
			_, isClose := DefaultPairs.Closer(rn)
			if isOpen || isClose {
				if m, err := FindMatch(b.text, r.Start, DefaultPairs); err == nil {
					ends := NewRange(r.Start, m)
					span := PairSpan{Open: ends.Start, Close: ends.End}
					if span.Contents().Empty() {
						b.selectRange(span.Outer())
					} else {
						b.selectRange(span.Contents())
					}
					return nil
				}
			}
		}
	}

	span, err := Enclosing(b.text, r, DefaultPairs, kind)
	if err != nil {
		var amb *AmbiguousPairError
		if errors.As(err, &amb) {
			return err
		}
		return ErrNoMatch
	}
	if span.Contents() == r {
		b.selectRange(span.Outer())
		return nil
	}
	b.selectRange(span.Contents())
	return nil
}

// contentsOf reports whether r is exactly the contents of a pair.
func (b *Buffer) contentsOf(r Range, kind *Pair) (PairSpan, bool) {
	if r.Empty() || r.Start.Col == 0 {
		return PairSpan{}, false
	}
	open := Position{Line: r.Start.Line, Col: r.Start.Col - 1}
	or, ok1 := b.text.RuneAt(open)
	cr, ok2 := b.text.RuneAt(r.End)
	if !ok1 || !ok2 {
		return PairSpan{}, false
	}
	var pair Pair
	if kind != nil {
		pair = *kind
	} else {
		p, ok := DefaultPairs.Opener(or)
		if !ok {
			return PairSpan{}, false
		}
		pair = p
	}
	if or != pair.Open || cr != pair.Close {
		return PairSpan{}, false
	}
	if !pair.Symmetric() {
		m, err := matchForward(b.text, open, pair)
		if err != nil || !m.Equal(r.End) {
			return PairSpan{}, false
		}
	}
	return PairSpan{Pair: pair, Open: open, Close: r.End}, true
}

// SelectWordOrLines selects the word under the cursor. A selection that
// already spans text widens to whole lines instead.
func (b *Buffer) SelectWordOrLines() {
	if _, ok := b.Selection(); ok {
		b.WidenToLines()
		return
	}
	b.endSearch()
	b.history.Seal()
	line := []rune(b.text.Line(b.cursor.Line))
	start, end := b.cursor.Col, b.cursor.Col
	isWord := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }
	for start > 0 && isWord(line[start-1]) {
		start--
	}
	for end < len(line) && isWord(line[end]) {
		end++
	}
	if start == end {
		b.WidenToLines()
		return
	}
	b.selectRange(Range{Start: Position{Line: b.cursor.Line, Col: start}, End: Position{Line: b.cursor.Line, Col: end}})
}
