package highlight

type cachedLine struct {
	spans []Span
	entry State
	exit  State
	valid bool
}

// LineCache memoizes tokenized lines. A line is re-tokenized when its text
// changed or when the state it is entered with differs from last time, so an
// edit that opens a block comment re-highlights exactly the lines it affects.
type LineCache struct {
	tok      Tokenizer
	lines    []cachedLine
	verified int
}

func NewLineCache(tok Tokenizer) *LineCache {
	if tok == nil {
		tok = PlainText
	}
	return &LineCache{tok: tok}
}

func (c *LineCache) Tokenizer() Tokenizer { return c.tok }

// Invalidate records that lines [first, oldLast] were replaced by lines
// [first, newLast].
func (c *LineCache) Invalidate(first, oldLast, newLast int) {
	if first < 0 {
		first = 0
	}
	if first > len(c.lines) {
		c.verified = min(c.verified, len(c.lines))
		return
	}
	tail := oldLast + 1
	if tail > len(c.lines) {
		tail = len(c.lines)
	}
	if tail < first {
		tail = first
	}
	fresh := make([]cachedLine, max(newLast-first+1, 0))
	rest := c.lines[tail:]
	lines := make([]cachedLine, 0, first+len(fresh)+len(rest))
	lines = append(lines, c.lines[:first]...)
	lines = append(lines, fresh...)
	lines = append(lines, rest...)
	c.lines = lines
	c.verified = min(c.verified, first)
}

// Reset drops every cached line.
func (c *LineCache) Reset() {
	c.lines = nil
	c.verified = 0
}

// Spans returns the spans of line i, tokenizing as far down as needed.
func (c *LineCache) Spans(src Source, i int) []Span {
	n := src.LineCount()
	if i < 0 || i >= n {
		return nil
	}
	if len(c.lines) != n {
		c.Reset()
		c.lines = make([]cachedLine, n)
	}
	for j := c.verified; j <= i; j++ {
		entry := State(0)
		if j > 0 {
			entry = c.lines[j-1].exit
		}
		cl := &c.lines[j]
		if cl.valid && cl.entry == entry {
			continue
		}
		list, exit := c.tok.Tokenize(src.Line(j), entry)
		*cl = cachedLine{spans: list, entry: entry, exit: exit, valid: true}
	}
	c.verified = max(c.verified, i+1)

	out := make([]Span, len(c.lines[i].spans))
	for k, s := range c.lines[i].spans {
		s.Line = i
		out[k] = s
	}
	return out
}

// exitState returns the state after line i, or zero if it has not been
// tokenized yet.
func (c *LineCache) exitState(i int) State {
	if i < 0 || i >= len(c.lines) || i >= c.verified {
		return 0
	}
	return c.lines[i].exit
}
