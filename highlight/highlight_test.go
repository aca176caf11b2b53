package highlight

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func catAt(t *testing.T, list []Span, col int) Category {
	t.Helper()
	for _, s := range list {
		if col >= s.Start && col < s.End {
			return s.Category
		}
	}
	t.Fatalf("no span covers column %d in %v", col, list)
	return Plain
}

func TestGoLineCategories(t *testing.T) {
	line := `x := "hi" // note`
	spans, exit := golang.Tokenize(line, 0)
	require.True(t, Covers(spans, utf8.RuneCountInString(line)))
	require.Equal(t, State(0), exit)
	require.Equal(t, Identifier, catAt(t, spans, 0))
	require.Equal(t, Operator, catAt(t, spans, 2))
	require.Equal(t, String, catAt(t, spans, 5))
	require.Equal(t, Comment, catAt(t, spans, 10))
	require.Equal(t, Comment, catAt(t, spans, 16))
}

func TestKeywordsAndTypes(t *testing.T) {
	spans, _ := golang.Tokenize("func main() int {", 0)
	require.Equal(t, Keyword, catAt(t, spans, 0))
	require.Equal(t, Identifier, catAt(t, spans, 5))
	require.Equal(t, Type, catAt(t, spans, 12))
}

func TestBlockCommentCarriesState(t *testing.T) {
	_, exit := golang.Tokenize("a /* b", 0)
	require.Equal(t, State(1), exit)

	spans, exit := golang.Tokenize("c */ d", exit)
	require.Equal(t, State(0), exit)
	require.Equal(t, Comment, catAt(t, spans, 0))
	require.Equal(t, Comment, catAt(t, spans, 3))
	require.Equal(t, Identifier, catAt(t, spans, 5))
}

func TestRawStringState(t *testing.T) {
	_, exit := golang.Tokenize("s := `abc", 0)
	require.Equal(t, State(2), exit)

	spans, exit := golang.Tokenize("still raw", exit)
	require.Equal(t, State(2), exit)
	require.Equal(t, []Span{{Start: 0, End: 9, Category: String}}, spans)
}

func TestTrailingWhitespaceSpan(t *testing.T) {
	spans, _ := PlainText.Tokenize("ab \t", 0)
	want := []Span{
		{Start: 0, End: 2, Category: Plain},
		{Start: 2, End: 4, Category: TrailingWhitespace},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}

	spans, _ = golang.Tokenize("x  ", 0)
	require.Equal(t, TrailingWhitespace, spans[len(spans)-1].Category)
	require.Equal(t, 1, spans[len(spans)-1].Start)
}

func TestEmptyLine(t *testing.T) {
	spans, exit := golang.Tokenize("", 0)
	require.Empty(t, spans)
	require.Equal(t, State(0), exit)
}

func TestMarkdownFence(t *testing.T) {
	_, exit := Markdown.Tokenize("```go", 0)
	require.Equal(t, inFence, exit)

	spans, exit := Markdown.Tokenize("x := 1", exit)
	require.Equal(t, inFence, exit)
	require.Equal(t, []Span{{Start: 0, End: 6, Category: String}}, spans)

	_, exit = Markdown.Tokenize("```", exit)
	require.Equal(t, State(0), exit)
}

func TestMarkdownInline(t *testing.T) {
	spans, _ := Markdown.Tokenize("# Title", 0)
	require.Equal(t, Heading, catAt(t, spans, 2))

	spans, _ = Markdown.Tokenize("- use `go` and [docs](x)", 0)
	require.Equal(t, Operator, catAt(t, spans, 0))
	require.Equal(t, String, catAt(t, spans, 7))
	require.Equal(t, Constant, catAt(t, spans, 16))
	require.Equal(t, Variable, catAt(t, spans, 22))
}

func TestDiffLines(t *testing.T) {
	for line, want := range map[string]Category{
		"+added":      Inserted,
		"-removed":    Deleted,
		"@@ -1 +1 @@": Preproc,
		"--- a/x":     Heading,
		"+++ b/x":     Heading,
		"diff --git":  Keyword,
		" context":    Plain,
	} {
		spans, _ := Diff.Tokenize(line, 0)
		require.Equal(t, want, catAt(t, spans, 1), line)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Chroma = false

	require.Equal(t, "Go", r.ForFile("/src/main.go").Name())
	require.Equal(t, Markdown, r.ForFile("README.md"))
	require.Equal(t, "Makefile", r.ForFile("proj/Makefile").Name())
	require.Equal(t, PlainText, r.ForFile("notes.zzz-unknown"))

	tok, ok := r.ByName("PYTHON")
	require.True(t, ok)
	require.Equal(t, "Python", tok.Name())

	_, ok = r.ByName("no-such-language")
	require.False(t, ok)

	require.Contains(t, r.Names(), "Rust")
}

func TestRequiresLiteralTabs(t *testing.T) {
	require.True(t, RequiresLiteralTabs(makefile))
	require.False(t, RequiresLiteralTabs(golang))
	require.False(t, RequiresLiteralTabs(PlainText))
}

func TestChromaFallback(t *testing.T) {
	c := NewChroma("go")
	require.NotNil(t, c)

	line := "package main  "
	spans, exit := c.Tokenize(line, 0)
	require.Equal(t, State(0), exit)
	require.True(t, Covers(spans, utf8.RuneCountInString(line)))
	require.Equal(t, Keyword, catAt(t, spans, 0))
	require.Equal(t, TrailingWhitespace, spans[len(spans)-1].Category)

	again, _ := c.Tokenize(line, 0)
	require.Equal(t, spans, again)

	require.Nil(t, NewChroma("definitely-not-a-lexer"))
}

func TestCategoryString(t *testing.T) {
	require.Equal(t, "keyword", Keyword.String())
	require.Equal(t, "trailing-whitespace", TrailingWhitespace.String())
	require.Equal(t, "unknown", Category(200).String())
}

func maxState(tok Tokenizer) int {
	switch tk := tok.(type) {
	case *Lang:
		return len(tk.Blocks)
	case markdown:
		return int(inFence)
	}
	return 0
}

func TestTokenize_Property_CoversAndDeterministic(t *testing.T) {
	toks := []Tokenizer{PlainText, Markdown, Diff}
	for _, l := range builtinLangs {
		toks = append(toks, l)
	}
	alphabet := []rune("ab1 _\t\"'`#/*\\<>!-[](){}$%:=.@é")

	for _, tok := range toks {
		t.Run(tok.Name(), func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				line := rapid.StringOf(rapid.RuneFrom(alphabet)).Draw(t, "line")
				entry := State(rapid.IntRange(0, maxState(tok)).Draw(t, "entry"))

				spans, exit := tok.Tokenize(line, entry)
				require.True(t, Covers(spans, utf8.RuneCountInString(line)), "spans %v do not cover %q", spans, line)
				require.LessOrEqual(t, int(exit), maxState(tok))
				for i := 1; i < len(spans); i++ {
					require.NotEqual(t, spans[i-1].Category, spans[i].Category, "adjacent spans share a category")
				}

				again, exit2 := tok.Tokenize(line, entry)
				require.Equal(t, spans, again)
				require.Equal(t, exit, exit2)
			})
		})
	}
}

type lines []string

func (l lines) Line(i int) string { return l[i] }
func (l lines) LineCount() int     { return len(l) }

type countingTokenizer struct {
	Tokenizer
	calls int
}

func (c *countingTokenizer) Tokenize(line string, entry State) ([]Span, State) {
	c.calls++
	return c.Tokenizer.Tokenize(line, entry)
}

func TestLineCacheFollowsState(t *testing.T) {
	src := lines{"a /*", "b", "c */ d"}
	c := NewLineCache(golang)

	spans := c.Spans(src, 2)
	require.Equal(t, Comment, catAt(t, spans, 0))
	for _, s := range spans {
		require.Equal(t, 2, s.Line)
	}

	src[0] = "a"
	c.Invalidate(0, 0, 0)
	require.Equal(t, Identifier, catAt(t, c.Spans(src, 1), 0))
	spans = c.Spans(src, 2)
	require.Equal(t, Identifier, catAt(t, spans, 0))
	require.Equal(t, Operator, catAt(t, spans, 2))
}

func TestLineCacheReusesUnaffectedLines(t *testing.T) {
	src := lines{"x", "y", "z"}
	tok := &countingTokenizer{Tokenizer: golang}
	c := NewLineCache(tok)

	c.Spans(src, 2)
	c.Spans(src, 2)
	require.Equal(t, 3, tok.calls)

	src[1] = "yy"
	c.Invalidate(1, 1, 1)
	c.Spans(src, 2)
	require.Equal(t, 4, tok.calls)
}

func TestLineCacheLineInsert(t *testing.T) {
	src := lines{"x", "y"}
	c := NewLineCache(golang)
	c.Spans(src, 1)

	src = lines{"x /*", "new", "y"}
	c.Invalidate(0, 0, 1)
	require.Equal(t, Comment, catAt(t, c.Spans(src, 2), 0))
	require.Equal(t, State(1), c.exitState(2))
	require.Nil(t, c.Spans(src, 3))
}
