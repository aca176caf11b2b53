package buffer

import "fmt"

type Pair struct {
	Open, Close rune
}

func (p Pair) String() string {
	return string(p.Open) + string(p.Close)
}

// Symmetric pairs use the same rune on both sides, like quotes.
func (p Pair) Symmetric() bool {
	return p.Open == p.Close
}

type PairTable []Pair

// DefaultPairs are matched by FindMatch and used by WidenToPair when no kind
// is given.
var DefaultPairs = PairTable{
	{Open: '(', Close: ')'},
	{Open: '[', Close: ']'},
	{Open: '{', Close: '}'},
	{Open: '<', Close: '>'},
}

// QuotePairs can only be asked for explicitly.
var QuotePairs = PairTable{
	{Open: '"', Close: '"'},
	{Open: '\'', Close: '\''},
}

func (t PairTable) Opener(r rune) (Pair, bool) {
	for _, p := range t {
		if p.Open == r {
			return p, true
		}
	}
	return Pair{}, false
}

func (t PairTable) Closer(r rune) (Pair, bool) {
	for _, p := range t {
		if p.Close == r {
			return p, true
		}
	}
	return Pair{}, false
}

// PairFor resolves either side of a delimiter, from the default or quote
// tables, into its pair. It is how a typed kind choice is interpreted.
func PairFor(r rune) (Pair, bool) {
	for _, table := range []PairTable{DefaultPairs, QuotePairs} {
		if p, ok := table.Opener(r); ok {
			return p, true
		}
		if p, ok := table.Closer(r); ok {
			return p, true
		}
	}
	return Pair{}, false
}

// PairSpan locates one concrete pair in a text.
type PairSpan struct {
	Pair        Pair
	Open, Close Position
}

// Contents is the range between the delimiters.
func (s PairSpan) Contents() Range {
	return Range{Start: after(s.Open), End: s.Close}
}

// Outer is the range including both delimiters.
func (s PairSpan) Outer() Range {
	return Range{Start: s.Open, End: after(s.Close)}
}

// FindMatch returns the counterpart of the delimiter at pos. When pos is not
// on a delimiter it returns the closer of the nearest pair around pos.
func FindMatch(t *Text, pos Position, table PairTable) (Position, error) {
	if !t.Valid(pos) {
		return Position{}, outOfBounds(pos)
	}
	if r, ok := t.RuneAt(pos); ok {
		if p, ok := table.Opener(r); ok && !p.Symmetric() {
			return matchForward(t, pos, p)
		}
		if p, ok := table.Closer(r); ok && !p.Symmetric() {
			return matchBackward(t, pos, p)
		}
	}
	span, err := enclosingOpener(t, pos, pos, table)
	if err != nil {
		return Position{}, err
	}
	return span.Close, nil
}

// Enclosing returns the innermost pair whose contents contain r. With a nil
// kind every pair in table is considered, and an *AmbiguousPairError is
// returned when the nearest candidates on either side disagree.
func Enclosing(t *Text, r Range, table PairTable, kind *Pair) (PairSpan, error) {
	if !t.Valid(r.Start) {
		return PairSpan{}, outOfBounds(r.Start)
	}
	if !t.Valid(r.End) {
		return PairSpan{}, outOfBounds(r.End)
	}
	if kind != nil {
		if kind.Symmetric() {
			return enclosingQuote(t, r, *kind)
		}
		table = PairTable{*kind}
	}

	fromOpen, errOpen := enclosingOpener(t, r.Start, r.End, table)
	fromClose, errClose := enclosingCloser(t, r.Start, r.End, table)
	switch {
	case errOpen != nil && errClose != nil:
		return PairSpan{}, errOpen
	case errOpen != nil:
		return fromClose, nil
	case errClose != nil:
		return fromOpen, nil
	case fromOpen == fromClose:
		return fromOpen, nil
	}
	return PairSpan{}, &AmbiguousPairError{Choices: []Pair{fromOpen.Pair, fromClose.Pair}}
}

// enclosingOpener walks backward from start for unmatched openers and
// returns the first one whose match lies at or after end.
func enclosingOpener(t *Text, start, end Position, table PairTable) (PairSpan, error) {
	depth := make(map[Pair]int, len(table))
	var found PairSpan
	ok := false
	scanBackward(t, start, func(p Position, r rune) bool {
		if pair, isClose := table.Closer(r); isClose && !pair.Symmetric() {
			depth[pair]++
			return true
		}
		pair, isOpen := table.Opener(r)
		if !isOpen || pair.Symmetric() {
			return true
		}
		if depth[pair] > 0 {
			depth[pair]--
			return true
		}
		closePos, err := matchForward(t, p, pair)
		if err != nil || closePos.Before(end) {
			return true
		}
		found, ok = PairSpan{Pair: pair, Open: p, Close: closePos}, true
		return false
	})
	if !ok {
		return PairSpan{}, ErrNoMatch
	}
	return found, nil
}

// enclosingCloser is the mirror of enclosingOpener.
func enclosingCloser(t *Text, start, end Position, table PairTable) (PairSpan, error) {
	depth := make(map[Pair]int, len(table))
	var found PairSpan
	ok := false
	scanForward(t, end, func(p Position, r rune) bool {
		if pair, isOpen := table.Opener(r); isOpen && !pair.Symmetric() {
			depth[pair]++
			return true
		}
		pair, isClose := table.Closer(r)
		if !isClose || pair.Symmetric() {
			return true
		}
		if depth[pair] > 0 {
			depth[pair]--
			return true
		}
		openPos, err := matchBackward(t, p, pair)
		if err != nil || !openPos.Before(start) {
			return true
		}
		found, ok = PairSpan{Pair: pair, Open: openPos, Close: p}, true
		return false
	})
	if !ok {
		return PairSpan{}, ErrNoMatch
	}
	return found, nil
}

// enclosingQuote finds quotes around r on a single line. A quote preceded
// by a backslash does not count.
func enclosingQuote(t *Text, r Range, kind Pair) (PairSpan, error) {
	if r.Start.Line != r.End.Line {
		return PairSpan{}, ErrNoMatch
	}
	line := []rune(t.Line(r.Start.Line))
	var quotes []int
	for i, c := range line {
		if c == kind.Open && (i == 0 || line[i-1] != '\\') {
			quotes = append(quotes, i)
		}
	}
	for i := 0; i+1 < len(quotes); i += 2 {
		open, closeCol := quotes[i], quotes[i+1]
		if open < r.Start.Col && closeCol >= r.End.Col {
			return PairSpan{
				Pair:  kind,
				Open:  Position{Line: r.Start.Line, Col: open},
				Close: Position{Line: r.Start.Line, Col: closeCol},
			}, nil
		}
	}
	return PairSpan{}, ErrNoMatch
}

func matchForward(t *Text, at Position, p Pair) (Position, error) {
	depth := 0
	var match Position
	ok := false
	scanForward(t, at, func(pos Position, r rune) bool {
		switch r {
		case p.Open:
			depth++
		case p.Close:
			depth--
			if depth == 0 {
				match, ok = pos, true
				return false
			}
		}
		return true
	})
	if !ok {
		return Position{}, fmt.Errorf("%w for %q at %s", ErrNoMatch, p.Open, at)
	}
	return match, nil
}

func matchBackward(t *Text, at Position, p Pair) (Position, error) {
	depth := 0
	var match Position
	ok := false
	scanBackward(t, after(at), func(pos Position, r rune) bool {
		switch r {
		case p.Close:
			depth++
		case p.Open:
			depth--
			if depth == 0 {
				match, ok = pos, true
				return false
			}
		}
		return true
	})
	if !ok {
		return Position{}, fmt.Errorf("%w for %q at %s", ErrNoMatch, p.Close, at)
	}
	return match, nil
}

// scanForward visits every rune at or after from until fn returns false.
func scanForward(t *Text, from Position, fn func(Position, rune) bool) {
	for line := from.Line; line < t.LineCount(); line++ {
		runes := []rune(t.Line(line))
		col := 0
		if line == from.Line {
			col = from.Col
		}
		for ; col < len(runes); col++ {
			if !fn(Position{Line: line, Col: col}, runes[col]) {
				return
			}
		}
	}
}

// scanBackward visits every rune strictly before from, nearest first.
func scanBackward(t *Text, from Position, fn func(Position, rune) bool) {
	for line := from.Line; line >= 0; line-- {
		runes := []rune(t.Line(line))
		col := len(runes) - 1
		if line == from.Line && from.Col-1 < col {
			col = from.Col - 1
		}
		for ; col >= 0; col-- {
			if !fn(Position{Line: line, Col: col}, runes[col]) {
				return
			}
		}
	}
}

func after(p Position) Position {
	return Position{Line: p.Line, Col: p.Col + 1}
}
