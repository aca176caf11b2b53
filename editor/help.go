package editor

import (
	"tedit/buffer"
	"tedit/ui"
)

var editHelp = []ui.HelpSection{
	{Title: "File", Entries: []ui.HelpEntry{
		{Key: "Ctrl+S", Desc: "save"},
		{Key: "Ctrl+O", Desc: "open"},
		{Key: "Ctrl+R", Desc: "reload from disk"},
		{Key: "Ctrl+W", Desc: "close pane or buffer"},
		{Key: "Ctrl+Q", Desc: "quit"},
		{Key: "Alt+. / Alt+,", Desc: "next / previous buffer"},
	}},
	{Title: "Editing", Entries: []ui.HelpEntry{
		{Key: "Ctrl+Z / Ctrl+Y", Desc: "undo / redo"},
		{Key: "Ctrl+X / Ctrl+C / Ctrl+V", Desc: "cut / copy / paste"},
		{Key: "Tab / Shift+Tab", Desc: "indent / unindent"},
	}},
	{Title: "Selection", Entries: []ui.HelpEntry{
		{Key: "Shift+Arrows", Desc: "extend selection"},
		{Key: "Ctrl+A", Desc: "select all"},
		{Key: "Ctrl+D", Desc: "select word"},
		{Key: "Ctrl+L", Desc: "widen to whole lines"},
		{Key: "Ctrl+E", Desc: "select inside pair"},
		{Key: "Ctrl+B", Desc: "go to matching pair"},
	}},
	{Title: "Navigation", Entries: []ui.HelpEntry{
		{Key: "Ctrl+Left / Ctrl+Right", Desc: "previous / next word"},
		{Key: "Ctrl+Home / Ctrl+End", Desc: "start / end of file"},
		{Key: "Ctrl+G", Desc: "go to line"},
		{Key: "Alt+- / Alt+|", Desc: "split stacked / side by side"},
		{Key: "Alt+O", Desc: "next pane"},
	}},
	{Title: "Search", Entries: []ui.HelpEntry{
		{Key: "Ctrl+F", Desc: "find"},
		{Key: "Ctrl+N / Ctrl+P", Desc: "next / previous match"},
		{Key: "F3 / Shift+F3", Desc: "next / previous match"},
	}},
}

var findHelp = []ui.HelpSection{
	{Title: "Find", Entries: []ui.HelpEntry{
		{Key: "typing", Desc: "extend the query"},
		{Key: "Backspace", Desc: "shorten the query"},
		{Key: "Down / Up", Desc: "next / previous match"},
		{Key: "Ctrl+D", Desc: "drop the current match"},
		{Key: "Tab", Desc: "replace the remaining matches"},
		{Key: "Enter", Desc: "select the current match"},
		{Key: "Esc", Desc: "cancel"},
	}},
}

var replaceHelp = []ui.HelpSection{
	{Title: "Replace", Entries: []ui.HelpEntry{
		{Key: "typing", Desc: "rewrite every match"},
		{Key: "Backspace", Desc: "delete a character"},
		{Key: "Ctrl+J", Desc: "insert a line break"},
		{Key: "Enter", Desc: "commit"},
		{Key: "Esc", Desc: "cancel and restore"},
	}},
}

func helpFor(mode buffer.SearchMode) (string, []ui.HelpSection) {
	switch mode {
	case buffer.SearchFinding:
		return "Find keys", findHelp
	case buffer.SearchReplacing:
		return "Replace keys", replaceHelp
	}
	return "Keys", editHelp
}

func (e *Editor) showHelp() {
	mode := buffer.SearchIdle
	if f := e.activeFile(); f != nil {
		mode = f.buf.SearchMode()
	}
	e.help = ui.NewHelp(helpFor(mode))
	e.help.OnClose = func() { e.help = nil }
}
