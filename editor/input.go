package editor

import (
	"github.com/gdamore/tcell/v2"

	"tedit/buffer"
	"tedit/command"
)

type action int

const (
	actNone action = iota
	actSave
	actQuit
	actClose
	actPaste
	actOpen
	actReload
	actGotoLine
	actSelectPair
	actSplitHorizontal
	actSplitVertical
	actNextPane
	actNextBuffer
	actPrevBuffer
	actHelp
)

// binding is what a key does. leave ends an open search first; then cmd
// runs or act is performed.
type binding struct {
	leave command.Command
	cmd   command.Command
	act   action
}

func (b binding) empty() bool {
	return b.leave == nil && b.cmd == nil && b.act == actNone
}

// bindKey maps a key to a binding for the given search mode. sel reports
// whether the buffer has a selection.
func bindKey(ev *tcell.EventKey, mode buffer.SearchMode, sel bool) binding {
	if ev.Key() == tcell.KeyF1 {
		return binding{act: actHelp}
	}
	switch mode {
	case buffer.SearchFinding:
		if cmd := findKey(ev); cmd != nil {
			return binding{cmd: cmd}
		}
		b := editKey(ev, sel)
		if !b.empty() {
			b.leave = command.FindAccept
		}
		return b
	case buffer.SearchReplacing:
		if cmd := replaceKey(ev); cmd != nil {
			return binding{cmd: cmd}
		}
		b := editKey(ev, sel)
		if !b.empty() {
			b.leave = command.ReplaceCommit
		}
		return b
	}
	return editKey(ev, sel)
}

func plainRune(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) == 0
}

func findKey(ev *tcell.EventKey) command.Command {
	if plainRune(ev) {
		return command.FindInput{Text: string(ev.Rune())}
	}
	shift := ev.Modifiers()&tcell.ModShift != 0
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return command.FindBackspace
	case tcell.KeyEnter:
		return command.FindAccept
	case tcell.KeyEscape:
		return command.FindCancel
	case tcell.KeyDown, tcell.KeyCtrlN:
		return command.FindAdvance{Forward: true}
	case tcell.KeyUp, tcell.KeyCtrlP:
		return command.FindAdvance{Forward: false}
	case tcell.KeyF3:
		return command.FindAdvance{Forward: !shift}
	case tcell.KeyCtrlD:
		return command.FindRemoveMatch
	case tcell.KeyTab:
		return command.ReplaceBegin
	}
	return nil
}

func replaceKey(ev *tcell.EventKey) command.Command {
	if plainRune(ev) {
		return command.ReplaceInput{Text: string(ev.Rune())}
	}
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return command.ReplaceBackspace
	case tcell.KeyEnter:
		return command.ReplaceCommit
	case tcell.KeyLF, tcell.KeyCtrlJ:
		return command.ReplaceInput{Text: "\n"}
	case tcell.KeyTab:
		return command.ReplaceInput{Text: "\t"}
	case tcell.KeyEscape:
		return command.FindCancel
	}
	return nil
}

var altBindings = map[rune]action{
	'-': actSplitHorizontal,
	'h': actSplitHorizontal,
	'|': actSplitVertical,
	'v': actSplitVertical,
	'o': actNextPane,
	'.': actNextBuffer,
	',': actPrevBuffer,
}

func move(dir buffer.Direction, extend bool) binding {
	return binding{cmd: command.MoveCursor{Dir: dir, Extend: extend}}
}

func editKey(ev *tcell.EventKey, sel bool) binding {
	mods := ev.Modifiers()
	shift := mods&tcell.ModShift != 0
	ctrl := mods&tcell.ModCtrl != 0

	if ev.Key() == tcell.KeyRune {
		if mods&tcell.ModAlt != 0 {
			return binding{act: altBindings[ev.Rune()]}
		}
		return binding{cmd: command.Insert{Text: string(ev.Rune())}}
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		return binding{cmd: command.Newline}
	case tcell.KeyTab:
		if sel {
			return binding{cmd: command.Indent}
		}
		return binding{cmd: command.Insert{Text: "\t"}}
	case tcell.KeyBacktab:
		return binding{cmd: command.Unindent}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return binding{cmd: command.Backspace}
	case tcell.KeyDelete:
		return binding{cmd: command.Delete}

	case tcell.KeyLeft:
		if ctrl {
			return move(buffer.WordLeft, shift)
		}
		return move(buffer.Left, shift)
	case tcell.KeyRight:
		if ctrl {
			return move(buffer.WordRight, shift)
		}
		return move(buffer.Right, shift)
	case tcell.KeyUp:
		return move(buffer.Up, shift)
	case tcell.KeyDown:
		return move(buffer.Down, shift)
	case tcell.KeyHome:
		if ctrl {
			return move(buffer.DocStart, shift)
		}
		return move(buffer.LineStart, shift)
	case tcell.KeyEnd:
		if ctrl {
			return move(buffer.DocEnd, shift)
		}
		return move(buffer.LineEnd, shift)
	case tcell.KeyPgUp:
		return move(buffer.PageUp, shift)
	case tcell.KeyPgDn:
		return move(buffer.PageDown, shift)

	case tcell.KeyCtrlZ:
		return binding{cmd: command.Undo}
	case tcell.KeyCtrlY:
		return binding{cmd: command.Redo}
	case tcell.KeyCtrlC:
		return binding{cmd: command.Copy}
	case tcell.KeyCtrlX:
		return binding{cmd: command.Cut}
	case tcell.KeyCtrlV:
		return binding{act: actPaste}
	case tcell.KeyCtrlA:
		return binding{cmd: command.SelectAll}
	case tcell.KeyCtrlD:
		return binding{cmd: command.SelectWord}
	case tcell.KeyCtrlL:
		return binding{cmd: command.WidenToLines}
	case tcell.KeyCtrlB:
		return binding{cmd: command.GotoPair}
	case tcell.KeyCtrlE:
		return binding{act: actSelectPair}

	case tcell.KeyCtrlF:
		return binding{cmd: command.FindBegin}
	case tcell.KeyCtrlN:
		return binding{cmd: command.FindAdvance{Forward: true}}
	case tcell.KeyCtrlP:
		return binding{cmd: command.FindAdvance{Forward: false}}
	case tcell.KeyF3:
		return binding{cmd: command.FindAdvance{Forward: !shift}}

	case tcell.KeyCtrlG:
		return binding{act: actGotoLine}
	case tcell.KeyCtrlS:
		return binding{act: actSave}
	case tcell.KeyCtrlQ:
		return binding{act: actQuit}
	case tcell.KeyCtrlW:
		return binding{act: actClose}
	case tcell.KeyCtrlO:
		return binding{act: actOpen}
	case tcell.KeyCtrlR:
		return binding{act: actReload}
	}
	return binding{}
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	// Reset force-quit state on any key except Ctrl+Q
	if ev.Key() != tcell.KeyCtrlQ {
		e.quitPending = false
	}
	if ev.Key() != tcell.KeyCtrlW {
		e.closePending = false
	}

	if e.help != nil {
		e.help.HandleKey(ev)
		return
	}
	if e.prompt != nil {
		e.prompt.HandleKey(ev)
		return
	}

	if len(e.pairChoices) > 0 {
		if ev.Key() == tcell.KeyRune && e.choosePair(ev.Rune()) {
			return
		}
		e.pairChoices = nil
		e.clearMessage()
		if ev.Key() == tcell.KeyEscape {
			return
		}
	}

	f := e.activeFile()
	if f == nil {
		return
	}
	_, sel := f.buf.Selection()
	b := bindKey(ev, f.buf.SearchMode(), sel)
	if b.empty() {
		return
	}
	if e.status.Message != "" && !e.status.IsError {
		e.clearMessage()
	}
	if b.leave != nil {
		e.apply(b.leave)
	}
	if b.cmd != nil {
		e.apply(b.cmd)
	}
	e.perform(b.act)
}

func (e *Editor) perform(act action) {
	switch act {
	case actSave:
		e.save(e.activeFile())
	case actQuit:
		e.handleQuit()
	case actClose:
		e.close()
	case actPaste:
		e.paste()
	case actOpen:
		e.promptOpen()
	case actReload:
		e.reload(e.activeFile())
	case actGotoLine:
		e.promptGotoLine()
	case actSelectPair:
		e.apply(command.SelectInsidePair{})
	case actSplitHorizontal:
		e.splitPane(splitHorizontal)
	case actSplitVertical:
		e.splitPane(splitVertical)
	case actNextPane:
		e.nextPane()
	case actNextBuffer:
		e.cycleBuffer(1)
	case actPrevBuffer:
		e.cycleBuffer(-1)
	case actHelp:
		e.showHelp()
	}
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	if e.help != nil {
		return
	}
	if e.bar.HandleMouse(ev) {
		return
	}
	mx, my := ev.Position()
	for i, p := range e.panes {
		if !p.frame.contains(mx, my) {
			continue
		}
		switch ev.Buttons() {
		case tcell.WheelUp:
			p.scrollY = max(p.scrollY-3, 0)
		case tcell.WheelDown:
			p.scrollY = min(p.scrollY+3, max(p.f.buf.LineCount()-1, 0))
		case tcell.Button1:
			extend := e.active == i && ev.Modifiers()&tcell.ModShift != 0
			e.active = i
			e.apply(command.SetCursor{At: p.positionAt(mx, my), Extend: extend})
		}
		return
	}
}
