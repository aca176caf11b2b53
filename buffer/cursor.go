package buffer

import "fmt"

// Position addresses a rune boundary in a Text. Col counts code points.
type Position struct {
	Line, Col int
}

func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Col == other.Col
}

// Compare returns -1, 0 or 1.
func (p Position) Compare(other Position) int {
	switch {
	case p.Before(other):
		return -1
	case p.Equal(other):
		return 0
	default:
		return 1
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Range is a half-open span [Start, End) with Start never after End.
type Range struct {
	Start, End Position
}

func NewRange(a, b Position) Range {
	if b.Before(a) {
		return Range{Start: b, End: a}
	}
	return Range{Start: a, End: b}
}

func (r Range) Empty() bool {
	return r.Start.Equal(r.End)
}

func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// Overlaps reports whether two ranges share at least one position.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Selection keeps the orientation of a selection: Anchor stays put while
// Active follows the cursor.
type Selection struct {
	Anchor, Active Position
}

func (s Selection) Range() Range {
	return NewRange(s.Anchor, s.Active)
}

func (s Selection) Empty() bool {
	return s.Anchor.Equal(s.Active)
}

// State is the cursor and selection snapshot stored with every edit record.
type State struct {
	Cursor Position
	Anchor *Position
}

func (s State) Selection() (Selection, bool) {
	if s.Anchor == nil || s.Anchor.Equal(s.Cursor) {
		return Selection{}, false
	}
	return Selection{Anchor: *s.Anchor, Active: s.Cursor}, true
}
