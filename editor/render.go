package editor

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tedit/buffer"
	"tedit/config"
	"tedit/highlight"
	"tedit/ui"
)

// bufferColToDisplayCol converts a buffer column (rune index) to display column (with tabs expanded and wide chars)
func bufferColToDisplayCol(line string, bufCol int, tabSize int) int {
	displayCol := 0
	for i, r := range []rune(line) {
		if i >= bufCol {
			break
		}
		displayCol += cellWidth(r, displayCol, tabSize)
	}
	return displayCol
}

// displayColToBufferCol converts a display column (visual position) to buffer column (rune index)
func displayColToBufferCol(line string, targetDisplayCol int, tabSize int) int {
	if targetDisplayCol <= 0 {
		return 0
	}
	displayCol := 0
	for i, r := range []rune(line) {
		if displayCol >= targetDisplayCol {
			return i
		}
		displayCol += cellWidth(r, displayCol, tabSize)
		// A wide rune or tab spanning the target counts as the target.
		if displayCol > targetDisplayCol {
			return i
		}
	}
	return utf8.RuneCountInString(line)
}

func cellWidth(r rune, at, tabSize int) int {
	if r == '\t' {
		if tabSize < 1 {
			tabSize = 1
		}
		return tabSize - at%tabSize
	}
	return max(runewidth.RuneWidth(r), 1)
}

func gutterWidth(lines int) int {
	digits := 1
	for ; lines >= 10; lines /= 10 {
		digits++
	}
	return digits + 1
}

func (e *Editor) render() {
	theme := e.cfg.GetTheme()
	defaultStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	e.screen.SetStyle(defaultStyle)
	e.screen.Clear()
	e.screen.HideCursor()

	w, h := e.screen.Size()
	if w <= 0 || h < 3 {
		e.screen.Show()
		return
	}

	e.bar.Theme = theme
	e.bar.Entries = e.bar.Entries[:0]
	for _, f := range e.files {
		e.bar.Entries = append(e.bar.Entries, ui.EntryFor(f.buf.Path, f.buf.Modified(), f.external))
	}
	e.bar.Active = e.fileIndex(e.activeFile())
	e.bar.Render(e.screen, 0, 0, w)

	areas, dividers := layoutPanes(rect{0, 1, w, h - 2}, len(e.panes), e.split)
	divider := tcell.StyleDefault.Background(theme.Background).Foreground(theme.PaneBorder)
	for _, d := range dividers {
		ch := '─'
		if e.split == splitVertical {
			ch = '│'
		}
		for y := d.y; y < d.y+d.h; y++ {
			for x := d.x; x < d.x+d.w; x++ {
				e.screen.SetContent(x, y, ch, nil, divider)
			}
		}
	}
	for i, p := range e.panes {
		e.renderPane(p, areas[i], i == e.active, theme)
	}

	if e.prompt != nil {
		e.prompt.Theme = theme
		e.prompt.Render(e.screen, 0, h-1, w)
	} else {
		e.updateStatus()
		e.status.Theme = theme
		e.status.Render(e.screen, 0, h-1, w)
	}
	if e.help != nil {
		e.screen.HideCursor()
		e.help.Theme = theme
		e.help.Render(e.screen, 0, 1, w, h-2)
	}
	e.screen.Show()
}

// cellHighlight is what overrides the syntax background of a cell.
type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlSelection
	hlMatch
	hlCurrentMatch
)

func (e *Editor) renderPane(p *pane, r rect, active bool, theme *config.ColorScheme) {
	buf := p.f.buf
	tabs := buf.TabPolicy().Width

	p.frame = r
	gutter := 0
	if e.cfg.LineNumbers {
		gutter = gutterWidth(buf.LineCount())
	}
	p.area = rect{r.x + gutter, r.y, max(r.w-gutter, 0), r.h}
	if active {
		buf.PageLines = max(p.area.h-1, 1)
	}
	e.ensureCursorVisible(p)

	bg := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	numStyle := bg.Foreground(theme.LineNumber)
	numActive := bg.Foreground(theme.LineNumberActive).Bold(true)

	var matches []buffer.Range
	current := -1
	if buf.SearchMode() != buffer.SearchIdle {
		matches, current = buf.Matches()
	}
	cursor := buf.Cursor()

	for row := 0; row < p.area.h; row++ {
		line := p.scrollY + row
		y := p.area.y + row
		if line >= buf.LineCount() {
			break
		}

		if gutter > 0 {
			st := numStyle
			if line == cursor.Line {
				st = numActive
			}
			num := fmt.Sprintf("%*d ", gutter-1, line+1)
			for i, ch := range num {
				e.screen.SetContent(r.x+i, y, ch, nil, st)
			}
		}

		text := buf.Line(line)
		spans := buf.Spans(line)
		selStart, selEnd, hasSel := buf.SelectionOn(line)
		lineMatches := matchesOn(matches, line)

		runes := []rune(text)
		si := 0
		dcol := 0
		for col := 0; col <= len(runes); col++ {
			hl := hlNone
			if hasSel && col >= selStart && (selEnd < 0 || col < selEnd) {
				hl = hlSelection
			}
			for _, mi := range lineMatches {
				if cellInRange(matches[mi], line, col) {
					hl = hlMatch
					if mi == current {
						hl = hlCurrentMatch
						break
					}
				}
			}

			if col == len(runes) {
				// Show a selected line break as one cell past the end.
				if hl == hlSelection && selEnd < 0 {
					e.setCell(p, y, dcol, ' ', 1, cellStyle(highlight.Plain, hl, theme))
				}
				break
			}

			for si < len(spans) && spans[si].End <= col {
				si++
			}
			cat := highlight.Plain
			if si < len(spans) && spans[si].Start <= col {
				cat = spans[si].Category
			}

			ch := runes[col]
			cw := cellWidth(ch, dcol, tabs)
			st := cellStyle(cat, hl, theme)
			if ch == '\t' {
				for k := 0; k < cw; k++ {
					e.setCell(p, y, dcol+k, ' ', 1, st)
				}
			} else {
				e.setCell(p, y, dcol, ch, cw, st)
			}
			dcol += cw
		}
	}

	if active && e.prompt == nil {
		cx := bufferColToDisplayCol(buf.Line(cursor.Line), cursor.Col, tabs) - p.scrollX
		cy := cursor.Line - p.scrollY
		if cx >= 0 && cx < p.area.w && cy >= 0 && cy < p.area.h {
			e.screen.ShowCursor(p.area.x+cx, p.area.y+cy)
		}
	}
}

// setCell draws at display column dcol of a pane row, honouring horizontal
// scroll and clipping.
func (e *Editor) setCell(p *pane, y, dcol int, ch rune, width int, st tcell.Style) {
	x := dcol - p.scrollX
	if x < 0 || x+width > p.area.w {
		return
	}
	e.screen.SetContent(p.area.x+x, y, ch, nil, st)
}

func cellStyle(cat highlight.Category, hl cellHighlight, theme *config.ColorScheme) tcell.Style {
	fg, _, attrs := highlight.Style(cat).Decompose()
	switch cat {
	case highlight.Plain, highlight.Identifier, highlight.Operator, highlight.TrailingWhitespace:
		fg = theme.Foreground
	}
	bg := theme.Background
	if cat == highlight.TrailingWhitespace {
		bg = theme.TrailingWhitespace
	}
	switch hl {
	case hlSelection:
		bg = theme.Selection
	case hlMatch:
		bg = theme.SearchMatch
	case hlCurrentMatch:
		bg = theme.SearchCurrent
		fg = theme.Background
	}
	return tcell.StyleDefault.Foreground(fg).Background(bg).Attributes(attrs)
}

// matchesOn returns the indexes of the ranges touching line.
func matchesOn(ranges []buffer.Range, line int) []int {
	var out []int
	for i, r := range ranges {
		if r.Start.Line <= line && line <= r.End.Line {
			out = append(out, i)
		}
	}
	return out
}

func cellInRange(r buffer.Range, line, col int) bool {
	p := buffer.Position{Line: line, Col: col}
	return !p.Before(r.Start) && p.Before(r.End)
}

func (e *Editor) ensureCursorVisible(p *pane) {
	buf := p.f.buf
	textW, textH := p.area.w, p.area.h
	if textW <= 0 || textH <= 0 {
		return
	}
	cursor := buf.Cursor()

	margin := min(e.cfg.ScrollMargin, textH/2)
	if cursor.Line-p.scrollY < margin {
		p.scrollY = max(cursor.Line-margin, 0)
	}
	if cursor.Line-p.scrollY > textH-1-margin {
		p.scrollY = cursor.Line - (textH - 1 - margin)
	}
	p.scrollY = max(min(p.scrollY, buf.LineCount()-1), 0)

	// Horizontal scrollX is in display columns
	cursorDisplayCol := bufferColToDisplayCol(buf.Line(cursor.Line), cursor.Col, buf.TabPolicy().Width)
	if cursorDisplayCol < p.scrollX {
		p.scrollX = cursorDisplayCol
	}
	rightLimit := max(min((textW*7)/10, textW-1), 1)
	if cursorDisplayCol > p.scrollX+rightLimit {
		p.scrollX = cursorDisplayCol - rightLimit
	}
}

// positionAt maps a screen cell inside the pane to a buffer position.
func (p *pane) positionAt(x, y int) buffer.Position {
	buf := p.f.buf
	line := min(max(p.scrollY+y-p.area.y, 0), buf.LineCount()-1)
	dcol := max(x-p.area.x, 0) + p.scrollX
	return buffer.Position{Line: line, Col: displayColToBufferCol(buf.Line(line), dcol, buf.TabPolicy().Width)}
}

func (e *Editor) updateStatus() {
	s := e.status
	f := e.activeFile()
	if f == nil {
		return
	}
	buf := f.buf
	cursor := buf.Cursor()

	s.Filename = f.name()
	s.Modified = buf.Modified()
	s.External = f.external
	s.ReadOnly = f.doc.Binary
	s.Line = cursor.Line
	s.Col = bufferColToDisplayCol(buf.Line(cursor.Line), cursor.Col, buf.TabPolicy().Width)
	s.Language = buf.Syntax().Name()
	s.Encoding = f.doc.Encoding.String()
	s.LineEnd = f.doc.LineEnding.String()
	if tp := buf.TabPolicy(); tp.Literal {
		s.TabInfo = fmt.Sprintf("Tabs: %d", tp.Width)
	} else {
		s.TabInfo = fmt.Sprintf("Spaces: %d", tp.Width)
	}

	s.SelChars, s.SelLines = 0, 0
	if sel, ok := buf.Selection(); ok {
		if text, ok := buf.SelectedText(); ok {
			s.SelChars = utf8.RuneCountInString(text)
		}
		r := sel.Range()
		s.SelLines = r.End.Line - r.Start.Line + 1
	}

	s.Mode, s.Search = searchStatus(buf)
}

// searchStatus describes the search session for the status bar.
func searchStatus(buf *buffer.Buffer) (mode, text string) {
	switch buf.SearchMode() {
	case buffer.SearchFinding:
		matches, current := buf.Matches()
		count := "[0]"
		if len(matches) > 0 {
			count = fmt.Sprintf("[%d/%d]", current+1, len(matches))
		}
		return "FIND", fmt.Sprintf("Find: %s %s", buf.Query(), count)
	case buffer.SearchReplacing:
		matches, _ := buf.Matches()
		return "REPLACE", fmt.Sprintf("Replace %q with: %s [%d]", buf.Query(), buf.Replacement(), len(matches))
	}
	return "EDIT", ""
}
