package highlight

import (
	"path/filepath"
	"sort"
	"strings"
)

var (
	Markdown Tokenizer = markdown{}
	Diff     Tokenizer = diff{}
)

// Registry maps file names to tokenizers.
type Registry struct {
	byExt  map[string]Tokenizer
	byFile map[string]Tokenizer
	byName map[string]Tokenizer
	// Chroma enables the chroma fallback for unknown files.
	Chroma bool
}

// NewRegistry returns a registry holding every built-in language.
func NewRegistry() *Registry {
	r := &Registry{
		byExt:  make(map[string]Tokenizer),
		byFile: make(map[string]Tokenizer),
		byName: make(map[string]Tokenizer),
		Chroma: true,
	}
	for _, l := range builtinLangs {
		r.Register(l, l.Extensions, l.FileNames)
	}
	r.Register(Markdown, []string{"md", "markdown"}, nil)
	r.Register(Diff, []string{"diff", "patch"}, nil)
	r.Register(PlainText, []string{"txt"}, nil)
	return r
}

// Register adds tok under its name, the given extensions (without the dot)
// and exact file names. Later registrations win.
func (r *Registry) Register(tok Tokenizer, exts, files []string) {
	r.byName[strings.ToLower(tok.Name())] = tok
	for _, e := range exts {
		r.byExt[e] = tok
	}
	for _, f := range files {
		r.byFile[f] = tok
	}
}

// ForFile picks a tokenizer for path. Exact file names win over extensions.
func (r *Registry) ForFile(path string) Tokenizer {
	base := filepath.Base(path)
	if tok, ok := r.byFile[base]; ok {
		return tok
	}
	if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
		if tok, ok := r.byExt[ext]; ok {
			return tok
		}
		if tok, ok := r.byExt[strings.ToLower(ext)]; ok {
			return tok
		}
	}
	if r.Chroma {
		if c := MatchChroma(base); c != nil {
			return c
		}
	}
	return PlainText
}

// ByName looks a tokenizer up by language name, case-insensitively. Names
// chroma knows are accepted too.
func (r *Registry) ByName(name string) (Tokenizer, bool) {
	if tok, ok := r.byName[strings.ToLower(name)]; ok {
		return tok, true
	}
	if tok, ok := r.byExt[strings.ToLower(name)]; ok {
		return tok, true
	}
	if r.Chroma {
		if c := NewChroma(name); c != nil {
			return c, true
		}
	}
	return nil, false
}

// Names lists the built-in language names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for _, tok := range r.byName {
		out = append(out, tok.Name())
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = NewRegistry()

// ForFile uses the default registry.
func ForFile(path string) Tokenizer { return defaultRegistry.ForFile(path) }

// ByName uses the default registry.
func ByName(name string) (Tokenizer, bool) { return defaultRegistry.ByName(name) }
