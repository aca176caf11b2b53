package highlight

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	gocache "github.com/patrickmn/go-cache"

	"tedit/log"
)

const (
	lineCacheExpiration = 10 * time.Minute
	lineCacheCleanup    = 30 * time.Minute
)

// Chroma adapts a chroma lexer for languages without a built-in table. Each
// line is lexed on its own, so constructs spanning lines are not tracked.
type Chroma struct {
	lexer chroma.Lexer
	name  string
	cache *gocache.Cache
}

// NewChroma returns a tokenizer for the chroma lexer registered under name,
// or nil if there is none.
func NewChroma(name string) *Chroma {
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil
	}
	return newChroma(lexer)
}

// MatchChroma picks a chroma lexer by file name.
func MatchChroma(filename string) *Chroma {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return nil
	}
	return newChroma(lexer)
}

func newChroma(lexer chroma.Lexer) *Chroma {
	name := "chroma"
	if cfg := lexer.Config(); cfg != nil {
		name = cfg.Name
	}
	return &Chroma{
		lexer: chroma.Coalesce(lexer),
		name:  name,
		cache: gocache.New(lineCacheExpiration, lineCacheCleanup),
	}
}

func (c *Chroma) Name() string { return c.name }

func (c *Chroma) Tokenize(line string, entry State) (out []Span, exit State) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatSyntax, "chroma panic", "lexer", c.name, "panic", r)
			out, exit = fallbackSpans(line), 0
		}
	}()

	key := fmt.Sprintf("%s:%x", c.name, sha256.Sum256([]byte(line)))
	if cached, ok := c.cache.Get(key); ok {
		if list, ok := cached.([]Span); ok {
			return append([]Span(nil), list...), 0
		}
	}

	runes := []rune(line)
	trail := trailingStart(runes)
	iter, err := c.lexer.Tokenise(nil, line)
	if err != nil {
		log.Debug(log.CatSyntax, "chroma tokenise failed", "lexer", c.name, "error", err)
		return fallbackSpans(line), 0
	}

	var sp spans
	at := 0
	for _, tok := range iter.Tokens() {
		n := utf8.RuneCountInString(strings.ReplaceAll(tok.Value, "\n", ""))
		end := min(at+n, trail)
		sp.add(at, end, tokenCategory(tok.Type))
		at += n
		if at >= trail {
			break
		}
	}
	sp.add(min(at, trail), trail, Plain)
	sp.add(trail, len(runes), TrailingWhitespace)

	c.cache.Set(key, sp.list, gocache.DefaultExpiration)
	return append([]Span(nil), sp.list...), 0
}

func tokenCategory(t chroma.TokenType) Category {
	switch {
	case t == chroma.KeywordType:
		return Type
	case t == chroma.KeywordConstant:
		return Constant
	case t.InCategory(chroma.Keyword):
		return Keyword

	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return Builtin
	case t == chroma.NameClass || t == chroma.NameException:
		return Type
	case t == chroma.NameConstant:
		return Constant
	case t == chroma.NameVariable || t == chroma.NameVariableGlobal ||
		t == chroma.NameVariableInstance || t == chroma.NameVariableClass:
		return Variable
	case t == chroma.NameDecorator || t == chroma.NameTag:
		return Keyword

	case t.InSubCategory(chroma.LiteralString):
		return String
	case t.InSubCategory(chroma.LiteralNumber):
		return Number

	case t == chroma.CommentPreproc || t == chroma.CommentPreprocFile:
		return Preproc
	case t.InCategory(chroma.Comment):
		return Comment

	case t.InCategory(chroma.Operator):
		return Operator

	case t == chroma.GenericHeading || t == chroma.GenericSubheading:
		return Heading
	case t == chroma.GenericInserted:
		return Inserted
	case t == chroma.GenericDeleted:
		return Deleted

	case t.InCategory(chroma.Name):
		return Identifier
	default:
		return Plain
	}
}
