package highlight

import "github.com/gdamore/tcell/v2"

// Style returns the default terminal style for a category.
func Style(c Category) tcell.Style {
	base := tcell.StyleDefault

	switch c {
	case Keyword:
		return base.Foreground(tcell.ColorBlue).Bold(true)
	case Type:
		return base.Foreground(tcell.ColorFuchsia)
	case Builtin:
		return base.Foreground(tcell.ColorBlue)
	case Constant, Number:
		return base.Foreground(tcell.ColorDarkCyan)
	case Variable:
		return base.Foreground(tcell.ColorYellow)
	case String:
		return base.Foreground(tcell.ColorGreen)
	case Comment:
		return base.Foreground(tcell.ColorGray).Italic(true)
	case Preproc:
		return base.Foreground(tcell.ColorFuchsia).Bold(true)
	case Heading:
		return base.Foreground(tcell.ColorYellow).Bold(true)
	case Inserted:
		return base.Foreground(tcell.ColorGreen)
	case Deleted:
		return base.Foreground(tcell.ColorRed)
	case TrailingWhitespace:
		return base.Background(tcell.ColorMaroon)
	default:
		return base.Foreground(tcell.ColorWhite)
	}
}
