package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tedit/config"
)

type HelpEntry struct {
	Key  string
	Desc string
}

type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// Help is a modal overlay listing key bindings.
type Help struct {
	Title    string
	Sections []HelpSection
	Theme    *config.ColorScheme
	OnClose  func()

	scroll  int
	visible int
}

func NewHelp(title string, sections []HelpSection) *Help {
	return &Help{Title: title, Sections: sections}
}

type helpRow struct {
	header bool
	key    string
	desc   string
}

func (h *Help) rows() []helpRow {
	var rows []helpRow
	for i, s := range h.Sections {
		if i > 0 {
			rows = append(rows, helpRow{})
		}
		rows = append(rows, helpRow{header: true, key: s.Title})
		for _, e := range s.Entries {
			rows = append(rows, helpRow{key: e.Key, desc: e.Desc})
		}
	}
	return rows
}

func (h *Help) keyWidth() int {
	w := 0
	for _, s := range h.Sections {
		for _, e := range s.Entries {
			w = max(w, runewidth.StringWidth(e.Key))
		}
	}
	return w
}

func (h *Help) Render(screen tcell.Screen, x, y, width, height int) {
	theme := h.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}
	bgStyle := tcell.StyleDefault.Background(theme.PromptBg).Foreground(theme.PromptFg)
	borderStyle := bgStyle.Foreground(theme.PaneBorder)
	titleStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(theme.Background).Bold(true)
	headerStyle := bgStyle.Bold(true).Underline(true)
	keyStyle := bgStyle.Reverse(true)

	rows := h.rows()
	keyW := h.keyWidth()
	boxW := min(max(keyW+40, runewidth.StringWidth(h.Title)+6), width-2)
	boxH := min(len(rows)+4, height-2)
	if boxW < 10 || boxH < 5 {
		return
	}
	bx := x + (width-boxW)/2
	by := y + (height-boxH)/2

	for dy := 0; dy < boxH; dy++ {
		for dx := 0; dx < boxW; dx++ {
			ch := ' '
			switch {
			case dy == 0 || dy == boxH-1:
				ch = '─'
			case dx == 0 || dx == boxW-1:
				ch = '│'
			}
			screen.SetContent(bx+dx, by+dy, ch, nil, borderStyle)
		}
	}
	screen.SetContent(bx, by, '┌', nil, borderStyle)
	screen.SetContent(bx+boxW-1, by, '┐', nil, borderStyle)
	screen.SetContent(bx, by+boxH-1, '└', nil, borderStyle)
	screen.SetContent(bx+boxW-1, by+boxH-1, '┘', nil, borderStyle)

	title := " " + h.Title + " "
	drawString(screen, bx+(boxW-runewidth.StringWidth(title))/2, by, bx+boxW-1, title, titleStyle)

	h.visible = boxH - 4
	h.clampScroll(len(rows))
	limit := bx + boxW - 2
	for i := 0; i < h.visible && h.scroll+i < len(rows); i++ {
		r := rows[h.scroll+i]
		row := by + 2 + i
		if r.header {
			drawString(screen, bx+2, row, limit, r.key, headerStyle)
			continue
		}
		if r.key == "" {
			continue
		}
		col := bx + 2 + keyW - runewidth.StringWidth(r.key)
		drawString(screen, col, row, limit, r.key, keyStyle)
		drawString(screen, bx+2+keyW, row, limit, " : "+r.desc, bgStyle)
	}

	footer := " Esc or F1 to close "
	drawString(screen, bx+(boxW-runewidth.StringWidth(footer))/2, by+boxH-1, bx+boxW-1, footer, borderStyle)
}

func (h *Help) clampScroll(n int) {
	h.scroll = min(h.scroll, max(n-h.visible, 0))
	h.scroll = max(h.scroll, 0)
}

// HandleKey scrolls or closes the overlay. Every key is consumed.
func (h *Help) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyF1, tcell.KeyEnter:
		if h.OnClose != nil {
			h.OnClose()
		}
	case tcell.KeyUp:
		h.scroll--
	case tcell.KeyDown:
		h.scroll++
	case tcell.KeyPgUp:
		h.scroll -= max(h.visible, 1)
	case tcell.KeyPgDn:
		h.scroll += max(h.visible, 1)
	case tcell.KeyRune:
		if ev.Rune() == 'q' && h.OnClose != nil {
			h.OnClose()
		}
	}
	h.clampScroll(len(h.rows()))
	return true
}
