package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tedit/log"
)

type SearchMode int

const (
	SearchIdle SearchMode = iota
	SearchFinding
	SearchReplacing
)

func (m SearchMode) String() string {
	switch m {
	case SearchFinding:
		return "find"
	case SearchReplacing:
		return "replace"
	default:
		return "idle"
	}
}

// Search is the find/replace session of one buffer.
type Search struct {
	mode    SearchMode
	query   string
	matches []Range
	current int
	origin  State

	// replace session
	originals   []Range
	replacement string
	recorded    bool
}

func (b *Buffer) SearchMode() SearchMode { return b.search.mode }

func (b *Buffer) Query() string { return b.search.query }

// Replacement is the replacement text typed so far.
func (b *Buffer) Replacement() string { return b.search.replacement }

// Matches returns the current match set and the index of the current match.
// While replacing the ranges cover the replacement text.
func (b *Buffer) Matches() ([]Range, int) {
	if b.search.mode == SearchReplacing {
		return b.replacedRanges(b.search.applied()), b.search.current
	}
	out := make([]Range, len(b.search.matches))
	copy(out, b.search.matches)
	return out, b.search.current
}

// FindBegin starts a new search from the current cursor and selection.
func (b *Buffer) FindBegin() {
	b.endSearch()
	b.history.Seal()
	b.search = Search{mode: SearchFinding, origin: b.state()}
}

// FindInput appends s to the query and rescans. Line breaks are dropped
// since matches never span lines.
func (b *Buffer) FindInput(s string) error {
	if b.search.mode != SearchFinding {
		return ErrNoActiveSearch
	}
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	if s == "" {
		return nil
	}
	b.search.query += s
	return b.rescan()
}

// FindBackspace removes the last rune of the query and rescans.
func (b *Buffer) FindBackspace() error {
	if b.search.mode != SearchFinding {
		return ErrNoActiveSearch
	}
	q := b.search.query
	if q == "" {
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(q)
	b.search.query = q[:len(q)-size]
	return b.rescan()
}

func (b *Buffer) rescan() error {
	s := &b.search
	s.matches = findAll(b.text, s.query)
	s.current = 0
	if len(s.matches) == 0 {
		b.setState(s.origin)
		if s.query == "" {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrNoMatch, s.query)
	}
	from := s.origin.Cursor
	if sel, ok := s.origin.Selection(); ok {
		from = sel.Range().Start
	}
	for i, m := range s.matches {
		if !m.Start.Before(from) {
			s.current = i
			break
		}
	}
	b.selectRange(s.matches[s.current])
	log.Debug(log.CatSearch, "rescan", "query", s.query, "matches", len(s.matches))
	return nil
}

// FindAdvance moves to the next or previous match, wrapping around. When no
// search is active it repeats the last accepted query from the cursor.
func (b *Buffer) FindAdvance(forward bool) error {
	s := &b.search
	switch s.mode {
	case SearchReplacing:
		return fmt.Errorf("%w: replace in progress", ErrNoActiveSearch)
	case SearchIdle:
		return b.findAgain(forward)
	}
	n := len(s.matches)
	if n == 0 {
		if s.query == "" {
			return ErrEmptyQuery
		}
		return fmt.Errorf("%w: %q", ErrNoMatch, s.query)
	}
	if forward {
		s.current = (s.current + 1) % n
	} else {
		s.current = (s.current - 1 + n) % n
	}
	b.selectRange(s.matches[s.current])
	return nil
}

func (b *Buffer) findAgain(forward bool) error {
	if b.lastQuery == "" {
		return ErrEmptyQuery
	}
	matches := findAll(b.text, b.lastQuery)
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q", ErrNoMatch, b.lastQuery)
	}
	from := b.cursor
	if sel, ok := b.Selection(); ok {
		from = sel.Range().Start
	}
	b.history.Seal()
	pick := -1
	if forward {
		for i, m := range matches {
			if from.Before(m.Start) {
				pick = i
				break
			}
		}
		if pick < 0 {
			pick = 0
		}
	} else {
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i].Start.Before(from) {
				pick = i
				break
			}
		}
		if pick < 0 {
			pick = len(matches) - 1
		}
	}
	b.selectRange(matches[pick])
	return nil
}

// FindRemoveMatch drops the current match from the set without touching the
// text. Removing the last one ends the search.
func (b *Buffer) FindRemoveMatch() error {
	s := &b.search
	if s.mode != SearchFinding {
		return ErrNoActiveSearch
	}
	if len(s.matches) == 0 {
		if s.query == "" {
			return ErrEmptyQuery
		}
		return fmt.Errorf("%w: %q", ErrNoMatch, s.query)
	}
	s.matches = append(s.matches[:s.current], s.matches[s.current+1:]...)
	if len(s.matches) == 0 {
		b.lastQuery = s.query
		b.search = Search{}
		b.anchor = nil
		return nil
	}
	s.current = min(s.current, len(s.matches)-1)
	b.selectRange(s.matches[s.current])
	return nil
}

// FindAccept ends the search keeping the current match selected. While
// replacing it commits the replacement.
func (b *Buffer) FindAccept() {
	switch b.search.mode {
	case SearchFinding:
		b.lastQuery = b.search.query
		b.search = Search{}
	case SearchReplacing:
		b.ReplaceCommit()
	}
}

// FindCancel ends the search and puts the cursor back where it started.
// While replacing it also reverts every replacement made.
func (b *Buffer) FindCancel() error {
	s := &b.search
	switch s.mode {
	case SearchFinding:
		origin := s.origin
		b.search = Search{}
		b.setState(origin)
	case SearchReplacing:
		origin := s.origin
		if s.recorded {
			rec := b.history.Top()
			if err := b.applyChanges(inverseAll(rec.Changes)); err != nil {
				log.ErrorErr(log.CatSearch, "cancel replace failed", err)
				return err
			}
			b.history.Discard()
		}
		b.search = Search{}
		b.setState(origin)
	}
	return nil
}

// ReplaceBegin switches a search with matches into replace mode.
func (b *Buffer) ReplaceBegin() error {
	s := &b.search
	if s.mode != SearchFinding {
		return ErrNoActiveSearch
	}
	if len(s.matches) == 0 {
		if s.query == "" {
			return ErrEmptyQuery
		}
		return fmt.Errorf("%w: %q", ErrNoMatch, s.query)
	}
	b.history.Seal()
	s.mode = SearchReplacing
	s.originals = s.matches
	s.matches = nil
	s.replacement = ""
	s.recorded = false
	s.origin = b.state()
	b.anchor = nil
	return nil
}

// ReplaceInput appends s to the replacement and applies it at every match.
func (b *Buffer) ReplaceInput(s string) error {
	if b.search.mode != SearchReplacing {
		return ErrNoActiveSearch
	}
	s = b.tabs.Expand(NormalizeNewlines(s))
	if s == "" {
		return nil
	}
	return b.applyReplacement(b.search.replacement + s)
}

// ReplaceBackspace removes the last rune of the replacement everywhere.
func (b *Buffer) ReplaceBackspace() error {
	if b.search.mode != SearchReplacing {
		return ErrNoActiveSearch
	}
	rep := b.search.replacement
	if rep == "" {
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(rep)
	return b.applyReplacement(rep[:len(rep)-size])
}

// ReplaceCommit keeps the replacement and ends the session.
func (b *Buffer) ReplaceCommit() error {
	if b.search.mode != SearchReplacing {
		return ErrNoActiveSearch
	}
	b.lastQuery = b.search.query
	b.search = Search{}
	b.history.Seal()
	return nil
}

// applyReplacement moves every match from the current replacement text to
// rep as one transaction. The whole session stays a single edit record that
// maps the original matches to the latest replacement.
func (b *Buffer) applyReplacement(rep string) error {
	s := &b.search
	old := s.applied()
	current := b.replacedRanges(old)

	changes := make([]Change, len(current))
	for i := range current {
		j := len(current) - 1 - i
		changes[i] = Change{At: current[j].Start, Removed: old, Inserted: rep}
	}
	for _, c := range changes {
		got, err := b.text.Read(c.removedRange())
		if err != nil || got != c.Removed {
			return fmt.Errorf("%w: match moved at %s", ErrOutOfBounds, c.At)
		}
	}

	before := b.state()
	if err := b.applyChanges(changes); err != nil {
		return err
	}
	s.replacement = rep
	b.anchor = nil
	b.cursor = b.replacedRanges(rep)[s.current].End

	session := make([]Change, len(s.originals))
	for i := range s.originals {
		j := len(s.originals) - 1 - i
		r := s.originals[j]
		session[i] = Change{At: r.Start, Removed: s.query, Inserted: rep}
	}
	if !s.recorded {
		b.history.Record(&EditRecord{Kind: EditReplace, Changes: session, Before: s.origin, After: b.state()})
		s.recorded = true
	} else {
		b.history.Amend(func(rec *EditRecord) {
			rec.Changes = session
			rec.After = b.state()
		})
	}
	log.Debug(log.CatSearch, "replace", "matches", len(changes), "from", before.Cursor)
	return nil
}

// applied is the text currently sitting at every match: the query until the
// first replacement keystroke.
func (s *Search) applied() string {
	if !s.recorded {
		return s.query
	}
	return s.replacement
}

// replacedRanges maps each original match to where its text sits once every
// match holds rep.
func (b *Buffer) replacedRanges(rep string) []Range {
	s := &b.search
	out := make([]Range, len(s.originals))
	lineShift := 0
	addedLines := strings.Count(rep, "\n")
	lastLine := -1
	var lastOrigEnd, lastCurEnd Position
	for i, r := range s.originals {
		var start Position
		if r.Start.Line == lastLine {
			start = Position{Line: lastCurEnd.Line, Col: lastCurEnd.Col + (r.Start.Col - lastOrigEnd.Col)}
		} else {
			start = Position{Line: r.Start.Line + lineShift, Col: r.Start.Col}
		}
		end := EndOf(start, rep)
		out[i] = Range{Start: start, End: end}
		lineShift += addedLines
		lastLine = r.End.Line
		lastOrigEnd, lastCurEnd = r.End, end
	}
	return out
}

// endSearch closes any open session before an unrelated command runs.
func (b *Buffer) endSearch() {
	switch b.search.mode {
	case SearchFinding:
		b.lastQuery = b.search.query
		b.search = Search{}
	case SearchReplacing:
		_ = b.ReplaceCommit()
	}
}

// findAll returns every non-overlapping occurrence of query, in order.
func findAll(t *Text, query string) []Range {
	if query == "" {
		return nil
	}
	qlen := utf8.RuneCountInString(query)
	var out []Range
	for i := 0; i < t.LineCount(); i++ {
		line := t.Line(i)
		off, col := 0, 0
		for {
			idx := strings.Index(line[off:], query)
			if idx < 0 {
				break
			}
			col += utf8.RuneCountInString(line[off : off+idx])
			start := Position{Line: i, Col: col}
			out = append(out, Range{Start: start, End: Position{Line: i, Col: col + qlen}})
			col += qlen
			off += idx + len(query)
		}
	}
	return out
}
