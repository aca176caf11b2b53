package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"tedit/config"
)

// Prompt is a one-line input shown in place of the status bar.
type Prompt struct {
	Label  string
	Input  string
	Cursor int
	// Numeric accepts digits only.
	Numeric bool

	Theme *config.ColorScheme

	OnSubmit func(value string)
	OnCancel func()
}

func NewPrompt(label string) *Prompt {
	return &Prompt{Label: label}
}

// HandleKey edits the input. It reports whether the key was consumed.
func (p *Prompt) HandleKey(ev *tcell.EventKey) bool {
	runes := []rune(p.Input)
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		if p.OnCancel != nil {
			p.OnCancel()
		}
	case tcell.KeyEnter:
		if p.OnSubmit != nil {
			p.OnSubmit(p.Input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.Cursor > 0 {
			p.Input = string(runes[:p.Cursor-1]) + string(runes[p.Cursor:])
			p.Cursor--
		}
	case tcell.KeyDelete:
		if p.Cursor < len(runes) {
			p.Input = string(runes[:p.Cursor]) + string(runes[p.Cursor+1:])
		}
	case tcell.KeyLeft:
		if p.Cursor > 0 {
			p.Cursor--
		}
	case tcell.KeyRight:
		if p.Cursor < len(runes) {
			p.Cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.Cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.Cursor = len(runes)
	case tcell.KeyRune:
		ch := ev.Rune()
		if p.Numeric && (ch < '0' || ch > '9') {
			return true
		}
		p.Input = string(runes[:p.Cursor]) + string(ch) + string(runes[p.Cursor:])
		p.Cursor++
	default:
		return false
	}
	return true
}

func (p *Prompt) Render(screen tcell.Screen, x, y, width int) {
	theme := p.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}
	style := tcell.StyleDefault.Background(theme.PromptBg).Foreground(theme.PromptFg)
	labelStyle := style.Foreground(tcell.ColorYellow).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := drawString(screen, x, y, x+width, p.Label, labelStyle)
	for i, ch := range []rune(p.Input) {
		if col >= x+width {
			return
		}
		st := style
		if i == p.Cursor {
			st = style.Reverse(true)
		}
		screen.SetContent(col, y, ch, nil, st)
		col += max(runewidth.RuneWidth(ch), 1)
	}
	if p.Cursor >= len([]rune(p.Input)) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
	}
}
