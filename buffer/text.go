package buffer

import (
	"strings"
	"unicode/utf8"
)

// Text is the line storage of one document. It always holds at least one
// line and never stores line terminators.
type Text struct {
	lines []string
}

func NewText(content string) *Text {
	return &Text{lines: strings.Split(NormalizeNewlines(content), "\n")}
}

// NormalizeNewlines converts CRLF and lone CR line breaks to LF.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (t *Text) LineCount() int { return len(t.lines) }

// Line returns the text of line i, or "" when i is out of range.
func (t *Text) Line(i int) string {
	if i < 0 || i >= len(t.lines) {
		return ""
	}
	return t.lines[i]
}

// LineLen returns the length of line i in runes.
func (t *Text) LineLen(i int) int {
	return utf8.RuneCountInString(t.Line(i))
}

// End is the position just past the last rune of the document.
func (t *Text) End() Position {
	last := len(t.lines) - 1
	return Position{Line: last, Col: t.LineLen(last)}
}

func (t *Text) Valid(p Position) bool {
	if p.Line < 0 || p.Line >= len(t.lines) || p.Col < 0 {
		return false
	}
	return p.Col <= t.LineLen(p.Line)
}

// Clamp moves p to the nearest valid position.
func (t *Text) Clamp(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(t.lines) {
		return t.End()
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := t.LineLen(p.Line); p.Col > n {
		p.Col = n
	}
	return p
}

// RuneAt returns the rune starting at p. It reports false at the end of a
// line or for an invalid position.
func (t *Text) RuneAt(p Position) (rune, bool) {
	if p.Line < 0 || p.Line >= len(t.lines) || p.Col < 0 {
		return 0, false
	}
	line := t.lines[p.Line]
	off := byteOffset(line, p.Col)
	if off >= len(line) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(line[off:])
	return r, true
}

func (t *Text) Read(r Range) (string, error) {
	if !t.Valid(r.Start) {
		return "", outOfBounds(r.Start)
	}
	if !t.Valid(r.End) {
		return "", outOfBounds(r.End)
	}
	if r.End.Before(r.Start) {
		r = NewRange(r.Start, r.End)
	}
	first := t.lines[r.Start.Line]
	if r.Start.Line == r.End.Line {
		return first[byteOffset(first, r.Start.Col):byteOffset(first, r.End.Col)], nil
	}
	var sb strings.Builder
	sb.WriteString(first[byteOffset(first, r.Start.Col):])
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(t.lines[i])
	}
	last := t.lines[r.End.Line]
	sb.WriteByte('\n')
	sb.WriteString(last[:byteOffset(last, r.End.Col)])
	return sb.String(), nil
}

// Insert places s at p and returns the range the new text occupies.
func (t *Text) Insert(p Position, s string) (Range, error) {
	if !t.Valid(p) {
		return Range{}, outOfBounds(p)
	}
	s = NormalizeNewlines(s)
	if s == "" {
		return Range{Start: p, End: p}, nil
	}
	line := t.lines[p.Line]
	off := byteOffset(line, p.Col)
	head, tail := line[:off], line[off:]

	parts := strings.Split(s, "\n")
	if len(parts) == 1 {
		t.lines[p.Line] = head + s + tail
		return Range{Start: p, End: Position{Line: p.Line, Col: p.Col + utf8.RuneCountInString(s)}}, nil
	}

	added := make([]string, len(parts))
	added[0] = head + parts[0]
	copy(added[1:], parts[1:])
	lastPart := parts[len(parts)-1]
	added[len(added)-1] = lastPart + tail

	lines := make([]string, 0, len(t.lines)+len(parts)-1)
	lines = append(lines, t.lines[:p.Line]...)
	lines = append(lines, added...)
	lines = append(lines, t.lines[p.Line+1:]...)
	t.lines = lines

	end := Position{Line: p.Line + len(parts) - 1, Col: utf8.RuneCountInString(lastPart)}
	return Range{Start: p, End: end}, nil
}

// Delete removes r and returns the removed text.
func (t *Text) Delete(r Range) (string, error) {
	removed, err := t.Read(r)
	if err != nil {
		return "", err
	}
	r = NewRange(r.Start, r.End)
	if r.Empty() {
		return "", nil
	}
	first := t.lines[r.Start.Line]
	last := t.lines[r.End.Line]
	joined := first[:byteOffset(first, r.Start.Col)] + last[byteOffset(last, r.End.Col):]
	if r.Start.Line == r.End.Line {
		t.lines[r.Start.Line] = joined
		return removed, nil
	}
	t.lines[r.Start.Line] = joined
	t.lines = append(t.lines[:r.Start.Line+1], t.lines[r.End.Line+1:]...)
	return removed, nil
}

func (t *Text) String() string {
	return strings.Join(t.lines, "\n")
}

// Lines returns a copy of the line slice.
func (t *Text) Lines() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// EndOf returns the position reached after inserting s at p.
func EndOf(p Position, s string) Position {
	nl := strings.Count(s, "\n")
	if nl == 0 {
		return Position{Line: p.Line, Col: p.Col + utf8.RuneCountInString(s)}
	}
	return Position{Line: p.Line + nl, Col: utf8.RuneCountInString(s[strings.LastIndexByte(s, '\n')+1:])}
}

// byteOffset converts a rune column into a byte offset within line. Columns
// past the end map to len(line).
func byteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}
	n := 0
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}
