package highlight

import "unicode/utf8"

type Category uint8

const (
	Plain Category = iota
	Keyword
	Type
	Builtin
	Constant
	Identifier
	Variable
	String
	Comment
	Number
	Operator
	Preproc
	Heading
	Inserted
	Deleted
	TrailingWhitespace
)

var categoryNames = [...]string{
	"plain", "keyword", "type", "builtin", "constant", "identifier", "variable",
	"string", "comment", "number", "operator", "preproc", "heading",
	"inserted", "deleted", "trailing-whitespace",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Span classifies the runes [Start, End) of a line.
type Span struct {
	Line       int
	Start, End int
	Category   Category
}

// State carries what a tokenizer needs to know about the previous line.
// Zero means nothing is open.
type State uint8

// Tokenizer classifies one line at a time. Tokenize must cover every rune of
// line with exactly one span and must not panic.
type Tokenizer interface {
	Name() string
	Tokenize(line string, entry State) ([]Span, State)
}

// Source is the line storage a LineCache reads from.
type Source interface {
	Line(i int) string
	LineCount() int
}

// RequiresLiteralTabs reports whether text in tok's language must keep real
// tab characters, as Makefile recipes do.
func RequiresLiteralTabs(tok Tokenizer) bool {
	t, ok := tok.(interface{ LiteralTabs() bool })
	return ok && t.LiteralTabs()
}

type plainText struct{}

// PlainText highlights nothing except trailing whitespace.
var PlainText Tokenizer = plainText{}

func (plainText) Name() string { return "Plain" }

func (plainText) Tokenize(line string, entry State) ([]Span, State) {
	runes := []rune(line)
	var sp spans
	trail := trailingStart(runes)
	sp.add(0, trail, Plain)
	sp.add(trail, len(runes), TrailingWhitespace)
	return sp.list, 0
}

// spans accumulates spans, merging neighbours of the same category.
type spans struct {
	list []Span
}

func (s *spans) add(start, end int, cat Category) {
	if end <= start {
		return
	}
	if n := len(s.list); n > 0 && s.list[n-1].Category == cat && s.list[n-1].End == start {
		s.list[n-1].End = end
		return
	}
	s.list = append(s.list, Span{Start: start, End: end, Category: cat})
}

// trailingStart returns the index where trailing spaces and tabs begin.
func trailingStart(runes []rune) int {
	i := len(runes)
	for i > 0 && (runes[i-1] == ' ' || runes[i-1] == '\t') {
		i--
	}
	return i
}

// Covers reports whether spans tile [0, n) in order without gaps or
// overlaps.
func Covers(list []Span, n int) bool {
	at := 0
	for _, s := range list {
		if s.Start != at || s.End <= s.Start {
			return false
		}
		at = s.End
	}
	return at == n
}

// fallbackSpans is used when a tokenizer cannot classify a line.
func fallbackSpans(line string) []Span {
	n := utf8.RuneCountInString(line)
	if n == 0 {
		return nil
	}
	return []Span{{Start: 0, End: n, Category: Plain}}
}
