package highlight

import (
	"strings"
	"unicode"

	"tedit/log"
)

// Block is a construct that may run over several lines, such as a block
// comment or a raw string.
type Block struct {
	Open, Close string
	Category    Category
	// Escapes lets a backslash hide the next rune from Close.
	Escapes bool
}

// Lang describes one language for the lexical engine. Words are matched
// whole, constructs greedily from left to right.
type Lang struct {
	Title      string
	Extensions []string
	FileNames  []string

	Keywords  []string
	Types     []string
	Builtins  []string
	Constants []string

	LineComments []string
	Blocks       []Block
	// Strings lists single-line string delimiters; backslash escapes.
	Strings string
	// CharQuote starts a char literal only when one closes right away, so
	// that lifetimes and similar uses of the quote stay operators.
	CharQuote rune
	Operators string
	// IdentExtra holds runes beyond letters, digits and '_' allowed in
	// words.
	IdentExtra string
	// VarPrefix marks variables such as $HOME.
	VarPrefix rune
	// CommandPrefix marks commands such as \section.
	CommandPrefix rune
	// Preproc treats '#word' at the start of a line as a directive.
	Preproc bool
	// Markup only recognizes strings inside tags and makes tag names
	// keywords.
	Markup bool
	// Sections highlights a line starting with '[' as a heading.
	Sections bool
	// KeyColon and KeyEquals make the word before ':' or '=' a key.
	KeyColon  bool
	KeyEquals bool
	// KeyStrings makes a string followed by ':' a key.
	KeyStrings bool
	IgnoreCase bool
	// Tabs marks languages that need literal tab characters.
	Tabs bool

	words map[string]Category
}

func compile(l *Lang) *Lang {
	l.words = make(map[string]Category)
	for _, set := range []struct {
		words []string
		cat   Category
	}{
		{l.Constants, Constant},
		{l.Builtins, Builtin},
		{l.Types, Type},
		{l.Keywords, Keyword},
	} {
		for _, w := range set.words {
			if l.IgnoreCase {
				w = strings.ToLower(w)
			}
			l.words[w] = set.cat
		}
	}
	return l
}

func (l *Lang) Name() string { return l.Title }

func (l *Lang) LiteralTabs() bool { return l.Tabs }

func (l *Lang) Tokenize(line string, entry State) (out []Span, exit State) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatSyntax, "tokenizer panic", "lang", l.Title, "panic", r)
			out, exit = fallbackSpans(line), 0
		}
	}()
	lx := lexer{lang: l, runes: []rune(line)}
	lx.trail = trailingStart(lx.runes)
	exit = lx.run(entry)
	lx.out.add(lx.trail, len(lx.runes), TrailingWhitespace)
	return lx.out.list, exit
}

type lexer struct {
	lang  *Lang
	runes []rune
	trail int
	out   spans
	inTag bool
}

func (lx *lexer) run(entry State) State {
	i := 0
	if k := int(entry); k > 0 && k <= len(lx.lang.Blocks) {
		b := lx.lang.Blocks[k-1]
		end, closed := lx.findClose(0, b)
		if !closed {
			lx.out.add(0, lx.trail, b.Category)
			return entry
		}
		lx.out.add(0, end, b.Category)
		i = end
	}

	if lx.lang.Sections && i == 0 {
		if j := lx.skipSpace(0); j < lx.trail && lx.runes[j] == '[' {
			lx.out.add(0, lx.trail, Heading)
			return 0
		}
	}

	for i < lx.trail {
		next, state, stop := lx.step(i)
		if stop {
			return state
		}
		i = next
	}
	return 0
}

// step classifies the construct starting at i and returns where the next
// one starts. stop reports that the rest of the line has been consumed.
func (lx *lexer) step(i int) (int, State, bool) {
	l := lx.lang
	r := lx.runes[i]

	for _, c := range l.LineComments {
		if lx.hasPrefix(i, c) {
			lx.out.add(i, lx.trail, Comment)
			return lx.trail, 0, true
		}
	}

	for k, b := range l.Blocks {
		if !lx.hasPrefix(i, b.Open) {
			continue
		}
		end, closed := lx.findClose(i+len([]rune(b.Open)), b)
		if !closed {
			lx.out.add(i, lx.trail, b.Category)
			return lx.trail, State(k + 1), true
		}
		lx.out.add(i, end, b.Category)
		return end, 0, false
	}

	if strings.ContainsRune(l.Strings, r) && (!l.Markup || lx.inTag) {
		end := lx.stringEnd(i, r)
		cat := String
		if l.KeyStrings && lx.followedBy(end, ':') {
			cat = Keyword
		}
		lx.out.add(i, end, cat)
		return end, 0, false
	}

	if l.CharQuote != 0 && r == l.CharQuote {
		if end, ok := lx.charLiteral(i); ok {
			lx.out.add(i, end, String)
			return end, 0, false
		}
		lx.out.add(i, i+1, Operator)
		return i + 1, 0, false
	}

	if l.Preproc && r == '#' && lx.skipSpace(0) == i {
		end := max(lx.wordEnd(min(lx.skipSpace(i+1), lx.trail)), i+1)
		lx.out.add(i, end, Preproc)
		return end, 0, false
	}

	if (l.VarPrefix != 0 && r == l.VarPrefix) || (l.CommandPrefix != 0 && r == l.CommandPrefix) {
		cat := Variable
		if r == l.CommandPrefix {
			cat = Keyword
		}
		end := i + 1
		if end < lx.trail && (lx.runes[end] == '{' || lx.runes[end] == '(') {
			closer := '}'
			if lx.runes[end] == '(' {
				closer = ')'
			}
			for end < lx.trail && lx.runes[end] != closer {
				end++
			}
			end = min(end+1, lx.trail)
		} else {
			end = lx.wordEnd(end)
		}
		if end == i+1 {
			lx.out.add(i, end, Operator)
		} else {
			lx.out.add(i, end, cat)
		}
		return end, 0, false
	}

	if unicode.IsDigit(r) || (r == '.' && i+1 < lx.trail && unicode.IsDigit(lx.runes[i+1])) {
		end := i + 1
		for end < lx.trail {
			c := lx.runes[end]
			if isWordRune(c) || c == '.' {
				end++
				continue
			}
			if (c == '+' || c == '-') && (lx.runes[end-1] == 'e' || lx.runes[end-1] == 'E') {
				end++
				continue
			}
			break
		}
		lx.out.add(i, end, Number)
		return end, 0, false
	}

	if lx.isIdentStart(r) {
		end := lx.wordEnd(i)
		lx.out.add(i, end, lx.classifyWord(i, end))
		return end, 0, false
	}

	if l.Markup {
		switch r {
		case '<':
			lx.inTag = true
		case '>':
			lx.inTag = false
		}
	}
	if strings.ContainsRune(l.Operators, r) {
		lx.out.add(i, i+1, Operator)
	} else {
		lx.out.add(i, i+1, Plain)
	}
	return i + 1, 0, false
}

func (lx *lexer) classifyWord(start, end int) Category {
	l := lx.lang
	word := string(lx.runes[start:end])
	if l.Markup && start > 0 {
		prev := lx.runes[start-1]
		if prev == '<' || (prev == '/' && start > 1 && lx.runes[start-2] == '<') {
			return Keyword
		}
	}
	if l.IgnoreCase {
		word = strings.ToLower(word)
	}
	if cat, ok := l.words[word]; ok {
		return cat
	}
	if l.KeyColon && lx.followedBy(end, ':') {
		return Keyword
	}
	if l.KeyEquals && lx.followedBy(end, '=') {
		return Keyword
	}
	return Identifier
}

func (lx *lexer) hasPrefix(i int, s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if i >= len(lx.runes) || lx.runes[i] != r {
			return false
		}
		i++
	}
	return true
}

// findClose searches for b.Close from i and returns the index after it.
func (lx *lexer) findClose(i int, b Block) (int, bool) {
	for i < len(lx.runes) {
		if b.Escapes && lx.runes[i] == '\\' {
			i += 2
			continue
		}
		if lx.hasPrefix(i, b.Close) {
			return i + len([]rune(b.Close)), true
		}
		i++
	}
	return 0, false
}

// stringEnd returns the index after the closing quote, or the start of
// trailing whitespace for an unterminated string.
func (lx *lexer) stringEnd(i int, quote rune) int {
	j := i + 1
	for j < lx.trail {
		switch lx.runes[j] {
		case '\\':
			j += 2
			continue
		case quote:
			return j + 1
		}
		j++
	}
	return lx.trail
}

func (lx *lexer) charLiteral(i int) (int, bool) {
	q := lx.runes[i]
	if i+1 < lx.trail && lx.runes[i+1] == '\\' {
		for j := i + 2; j < lx.trail && j < i+12; j++ {
			if lx.runes[j] == q {
				return j + 1, true
			}
		}
		return 0, false
	}
	if i+2 < lx.trail && lx.runes[i+2] == q {
		return i + 3, true
	}
	return 0, false
}

func (lx *lexer) followedBy(i int, r rune) bool {
	j := lx.skipSpace(i)
	return j < len(lx.runes) && lx.runes[j] == r
}

func (lx *lexer) skipSpace(i int) int {
	for i < len(lx.runes) && (lx.runes[i] == ' ' || lx.runes[i] == '\t') {
		i++
	}
	return i
}

func (lx *lexer) wordEnd(i int) int {
	for i < lx.trail && (isWordRune(lx.runes[i]) || strings.ContainsRune(lx.lang.IdentExtra, lx.runes[i])) {
		i++
	}
	return i
}

func (lx *lexer) isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || strings.ContainsRune(lx.lang.IdentExtra, r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
