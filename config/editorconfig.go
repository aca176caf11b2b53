package config

import (
	"bufio"
	"cmp"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"tedit/buffer"
	"tedit/fileio"
	"tedit/log"
)

// EditorConfigSettings holds the .editorconfig properties tedit honours.
// Zero values and nil pointers mean the property was not set.
type EditorConfigSettings struct {
	IndentStyle            string
	IndentSize             int
	TabWidth               int
	EndOfLine              string
	Charset                string
	TrimTrailingWhitespace *bool
	InsertFinalNewline     *bool
}

// Apply overrides p with whatever indentation settings are present.
func (s *EditorConfigSettings) Apply(p buffer.TabPolicy) buffer.TabPolicy {
	if s.IndentStyle == "tab" || s.IndentStyle == "space" {
		p.Literal = s.IndentStyle == "tab"
	}
	if w := cmp.Or(s.IndentSize, s.TabWidth); w > 0 {
		p.Width = w
	}
	return p
}

// ApplySave overrides the save-time options of c for one file.
func (s *EditorConfigSettings) ApplySave(c Config) Config {
	if v := s.TrimTrailingWhitespace; v != nil {
		c.TrimTrailingSpace = *v
	}
	if v := s.InsertFinalNewline; v != nil {
		c.InsertFinalNewline = *v
	}
	return c
}

// NewDocument is the on-disk format for a file that does not exist yet.
func (s *EditorConfigSettings) NewDocument() fileio.Document {
	var doc fileio.Document
	if s.EndOfLine == "crlf" {
		doc.LineEnding = fileio.CRLF
	}
	switch s.Charset {
	case "utf-8-bom":
		doc.Encoding = fileio.UTF8BOM
	case "utf-16le":
		doc.Encoding = fileio.UTF16LE
	case "utf-16be":
		doc.Encoding = fileio.UTF16BE
	case "latin1":
		doc.Encoding = fileio.Latin1
	}
	return doc
}

type ecSection struct {
	glob  string
	props map[string]string
}

type ecFile struct {
	dir      string
	root     bool
	sections []ecSection
}

func readEditorConfig(dir string) (*ecFile, error) {
	f, err := os.Open(filepath.Join(dir, ".editorconfig"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ec := &ecFile{dir: dir}
	var cur *ecSection
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"), strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			ec.sections = append(ec.sections, ecSection{glob: line[1 : len(line)-1], props: map[string]string{}})
			cur = &ec.sections[len(ec.sections)-1]
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.ToLower(strings.TrimSpace(v))
		if cur == nil {
			ec.root = ec.root || (k == "root" && v == "true")
			continue
		}
		cur.props[k] = v
	}
	return ec, sc.Err()
}

// properties returns the merged properties of the sections matching abs.
// Later sections win.
func (ec *ecFile) properties(abs string) map[string]string {
	rel, err := filepath.Rel(ec.dir, abs)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	out := map[string]string{}
	for _, s := range ec.sections {
		if matchPattern(s.glob, rel) {
			for k, v := range s.props {
				out[k] = v
			}
		}
	}
	return out
}

// FindEditorConfig collects the .editorconfig files from the file's
// directory up to the nearest root = true, nearer files winning. It returns
// nil when no property applies.
func FindEditorConfig(filePath string) *EditorConfigSettings {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}

	var chain []*ecFile
	for dir := filepath.Dir(abs); ; {
		if ec, err := readEditorConfig(dir); err == nil {
			chain = append(chain, ec)
			if ec.root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	merged := map[string]string{}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].properties(abs) {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		return nil
	}
	log.Debug(log.CatConfig, "editorconfig", "path", filePath, "files", len(chain), "properties", len(merged))
	return settingsFromMap(merged)
}

// matchPattern reports whether the slash-separated path rel matches an
// editorconfig section glob. A glob without a slash matches the base name
// at any depth.
func matchPattern(glob, rel string) bool {
	if !strings.Contains(glob, "/") {
		glob = "**/" + glob
	}
	re, err := regexp.Compile("^" + globToRegexp(strings.TrimPrefix(glob, "/")) + "$")
	if err != nil {
		return false
	}
	return re.MatchString(rel)
}

// globToRegexp translates editorconfig glob syntax: * and ? stay inside a
// path segment, ** crosses segments, {a,b} picks alternatives and [...]
// is a character class.
func globToRegexp(glob string) string {
	var sb strings.Builder
	depth := 0
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case c == '*' && strings.HasPrefix(glob[i:], "**/"):
			sb.WriteString("(?:.*/)?")
			i += 2
		case c == '*' && strings.HasPrefix(glob[i:], "**"):
			sb.WriteString(".*")
			i++
		case c == '*':
			sb.WriteString("[^/]*")
		case c == '?':
			sb.WriteString("[^/]")
		case c == '{':
			depth++
			sb.WriteString("(?:")
		case c == '}' && depth > 0:
			depth--
			sb.WriteString(")")
		case c == ',' && depth > 0:
			sb.WriteString("|")
		case c == '[':
			end := strings.IndexByte(glob[i:], ']')
			if end < 0 {
				sb.WriteString(`\[`)
				continue
			}
			class := glob[i+1 : i+end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}
			sb.WriteString("[" + class + "]")
			i += end
		case c == '\\' && i+1 < len(glob):
			i++
			sb.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return sb.String()
}

func settingsFromMap(m map[string]string) *EditorConfigSettings {
	size := func(key string) int {
		n, err := strconv.Atoi(m[key])
		if err != nil || n < 1 {
			return 0
		}
		return n
	}
	flag := func(key string) *bool {
		v, ok := m[key]
		if !ok || (v != "true" && v != "false") {
			return nil
		}
		b := v == "true"
		return &b
	}

	s := &EditorConfigSettings{
		IndentStyle:            m["indent_style"],
		IndentSize:             size("indent_size"),
		TabWidth:               size("tab_width"),
		EndOfLine:              m["end_of_line"],
		Charset:                m["charset"],
		TrimTrailingWhitespace: flag("trim_trailing_whitespace"),
		InsertFinalNewline:     flag("insert_final_newline"),
	}
	if *s == (EditorConfigSettings{}) {
		return nil
	}
	return s
}
