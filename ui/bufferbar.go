package ui

import (
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tedit/config"
)

// Entry is one open buffer in the bar.
type Entry struct {
	Title    string
	Modified bool
	External bool
}

// EntryFor titles a buffer by the base name of its path.
func EntryFor(path string, modified, external bool) Entry {
	title := filepath.Base(path)
	if path == "" || title == "." {
		title = "untitled"
	}
	return Entry{Title: title, Modified: modified, External: external}
}

func (e Entry) label() string {
	switch {
	case e.External:
		return "!" + e.Title
	case e.Modified:
		return "*" + e.Title
	}
	return e.Title
}

// BufferBar lists the open buffers on one row and scrolls to keep the
// active one visible.
type BufferBar struct {
	Entries   []Entry
	Active    int
	scrollOff int
	x, y, w   int

	Theme *config.ColorScheme

	OnSwitch func(index int)
}

func NewBufferBar() *BufferBar {
	return &BufferBar{}
}

// entryWidth is space + label + space, plus a separator between entries.
func (bb *BufferBar) entryWidth(i int) int {
	if i < 0 || i >= len(bb.Entries) {
		return 0
	}
	w := runewidth.StringWidth(bb.Entries[i].label()) + 2
	if i < len(bb.Entries)-1 {
		w++
	}
	return w
}

func (bb *BufferBar) clampScroll() {
	bb.scrollOff = max(0, min(bb.scrollOff, len(bb.Entries)-1))
}

func (bb *BufferBar) lastVisible(width int) int {
	remaining := width
	last := bb.scrollOff - 1
	for i := bb.scrollOff; i < len(bb.Entries); i++ {
		w := bb.entryWidth(i)
		if w > remaining {
			break
		}
		remaining -= w
		last = i
	}
	return last
}

func (bb *BufferBar) ensureActiveVisible(width int) {
	bb.clampScroll()
	if len(bb.Entries) == 0 || width <= 0 {
		return
	}
	bb.Active = max(0, min(bb.Active, len(bb.Entries)-1))
	if bb.Active < bb.scrollOff {
		bb.scrollOff = bb.Active
	}
	for bb.Active > bb.lastVisible(width) && bb.scrollOff < bb.Active {
		bb.scrollOff++
	}
}

func (bb *BufferBar) Render(screen tcell.Screen, x, y, width int) {
	bb.x, bb.y, bb.w = x, y, width
	bb.ensureActiveVisible(width)

	theme := bb.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}
	barStyle := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	activeStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, barStyle)
	}

	col := x
	for i := bb.scrollOff; i < len(bb.Entries) && col < x+width; i++ {
		style := barStyle
		if i == bb.Active {
			style = activeStyle
		}
		col = drawString(screen, col, y, x+width, " "+bb.Entries[i].label()+" ", style)
		if i < len(bb.Entries)-1 {
			col = drawString(screen, col, y, x+width, "│", barStyle)
		}
	}
}

// HandleMouse switches buffers on click and scrolls on the wheel.
func (bb *BufferBar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	if my != bb.y || mx < bb.x || mx >= bb.x+bb.w {
		return false
	}

	switch ev.Buttons() {
	case tcell.WheelUp, tcell.WheelLeft:
		bb.scrollOff--
		bb.clampScroll()
	case tcell.WheelDown, tcell.WheelRight:
		bb.scrollOff++
		bb.clampScroll()
	case tcell.Button1:
		col := bb.x
		for i := bb.scrollOff; i < len(bb.Entries); i++ {
			w := bb.entryWidth(i)
			if mx >= col && mx < col+w {
				if bb.OnSwitch != nil {
					bb.OnSwitch(i)
				}
				break
			}
			col += w
		}
	}
	return true
}
