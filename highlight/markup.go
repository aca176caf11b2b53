package highlight

import "strings"

const inFence State = 1

type markdown struct{}

func (markdown) Name() string { return "Markdown" }

func (markdown) Tokenize(line string, entry State) ([]Span, State) {
	runes := []rune(line)
	trail := trailingStart(runes)
	var sp spans
	trimmed := strings.TrimLeft(line, " \t")
	isFence := strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")

	exit := State(0)
	switch {
	case entry == inFence:
		sp.add(0, trail, String)
		if !isFence {
			exit = inFence
		}
	case isFence:
		sp.add(0, trail, String)
		exit = inFence
	case strings.HasPrefix(trimmed, "#"):
		sp.add(0, trail, Heading)
	case strings.HasPrefix(trimmed, ">"):
		sp.add(0, trail, Comment)
	default:
		i := min(firstNonSpace(runes), trail)
		sp.add(0, i, Plain)
		if n := listMarker(runes[i:]); n > 0 {
			sp.add(i, i+n, Operator)
			i += n
		}
		inline(&sp, runes, i, trail)
	}
	sp.add(trail, len(runes), TrailingWhitespace)
	return sp.list, exit
}

// inline classifies code spans, emphasis and links in runes[i:end].
func inline(sp *spans, runes []rune, i, end int) {
	for i < end {
		r := runes[i]
		switch r {
		case '`', '*', '_':
			if j := indexRune(runes, r, i+1, end); j > i+1 {
				cat := Keyword
				if r == '`' {
					cat = String
				}
				sp.add(i, j+1, cat)
				i = j + 1
				continue
			}
		case '[':
			if j := indexRune(runes, ']', i+1, end); j > i && j+1 < end && runes[j+1] == '(' {
				if k := indexRune(runes, ')', j+2, end); k > j {
					sp.add(i, j+1, Constant)
					sp.add(j+1, k+1, Variable)
					i = k + 1
					continue
				}
			}
		}
		sp.add(i, i+1, Plain)
		i++
	}
}

func listMarker(runes []rune) int {
	if len(runes) >= 2 && strings.ContainsRune("-*+", runes[0]) && runes[1] == ' ' {
		return 1
	}
	n := 0
	for n < len(runes) && runes[n] >= '0' && runes[n] <= '9' {
		n++
	}
	if n > 0 && n+1 < len(runes) && (runes[n] == '.' || runes[n] == ')') && runes[n+1] == ' ' {
		return n + 1
	}
	return 0
}

func indexRune(runes []rune, r rune, from, end int) int {
	for i := from; i < end; i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func firstNonSpace(runes []rune) int {
	i := 0
	for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
		i++
	}
	return i
}

type diff struct{}

func (diff) Name() string { return "Diff" }

func (diff) Tokenize(line string, entry State) ([]Span, State) {
	runes := []rune(line)
	trail := trailingStart(runes)
	cat := Plain
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		cat = Heading
	case strings.HasPrefix(line, "@@"):
		cat = Preproc
	case strings.HasPrefix(line, "+"):
		cat = Inserted
	case strings.HasPrefix(line, "-"):
		cat = Deleted
	case strings.HasPrefix(line, "diff "), strings.HasPrefix(line, "index "):
		cat = Keyword
	}
	var sp spans
	sp.add(0, trail, cat)
	sp.add(trail, len(runes), TrailingWhitespace)
	return sp.list, 0
}
