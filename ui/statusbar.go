package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tedit/config"
)

type StatusBar struct {
	Mode     string // "EDIT", "FIND" or "REPLACE"
	Filename string
	Modified bool
	External bool // changed on disk while modified here
	ReadOnly bool
	Line     int
	Col      int
	Language string
	Encoding string
	LineEnd  string
	TabInfo  string // "Tabs: 8" or "Spaces: 4"
	SelChars int    // 0 means no selection
	SelLines int

	// Search is shown in place of the file name while a search is open.
	Search string

	// Message is a temporary note that replaces the left side.
	Message string
	IsError bool

	Theme *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Mode:     "EDIT",
		Encoding: "UTF-8",
		LineEnd:  "LF",
	}
}

// Left is the text shown after the mode badge.
func (s *StatusBar) Left() string {
	if s.Message != "" {
		return s.Message
	}
	if s.Search != "" {
		return s.Search
	}
	name := s.Filename
	if name == "" {
		name = "untitled"
	}
	switch {
	case s.External:
		name = "!" + name
	case s.Modified:
		name = "*" + name
	}
	if s.ReadOnly {
		name += " [RO]"
	}
	return name
}

// Right is the right-aligned position and file info.
func (s *StatusBar) Right() string {
	tabInfo := s.TabInfo
	if tabInfo == "" {
		tabInfo = "Spaces: 4"
	}
	lang := s.Language
	if lang == "" {
		lang = "Plain"
	}
	pos := fmt.Sprintf("Ln %d, Col %d", s.Line+1, s.Col+1)
	if s.SelChars > 0 {
		pos = fmt.Sprintf("Sel: %d chars, %d lines │ %s", s.SelChars, s.SelLines, pos)
	}
	return fmt.Sprintf("%s │ %s │ %s │ %s │ %s ", pos, lang, s.Encoding, s.LineEnd, tabInfo)
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorWhite).Bold(true)
	leftStyle := style
	if s.Message != "" && s.IsError {
		leftStyle = style.Foreground(tcell.ColorRed).Bold(true)
	}

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := drawString(screen, x, y, x+width, " "+s.Mode+" ", modeStyle)
	col = drawString(screen, col, y, x+width, " ", style)
	col = drawString(screen, col, y, x+width, s.Left(), leftStyle)

	right := s.Right()
	rightStart := x + width - runewidth.StringWidth(right)
	if rightStart > col+2 {
		drawString(screen, rightStart, y, x+width, right, style)
	}
}

// drawString writes text from col, stopping at limit, and returns the
// column after the last cell written.
func drawString(screen tcell.Screen, col, y, limit int, text string, style tcell.Style) int {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if col+w > limit {
			break
		}
		screen.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}
