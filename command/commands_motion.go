package command

import "tedit/buffer"

// MoveCursor moves in Dir, growing the selection when Extend is set.
type MoveCursor struct {
	Dir    buffer.Direction
	Extend bool
}

func (c MoveCursor) ID() string         { return "move." + c.Dir.String() }
func (MoveCursor) ChangesContent() bool { return false }
func (c MoveCursor) Execute(b *buffer.Buffer, _ *Outcome) error {
	b.Move(c.Dir, c.Extend)
	return nil
}

// SetCursor places the cursor, as a mouse click does.
type SetCursor struct {
	At     buffer.Position
	Extend bool
}

func (SetCursor) ID() string           { return "move.set" }
func (SetCursor) ChangesContent() bool { return false }
func (c SetCursor) Execute(b *buffer.Buffer, _ *Outcome) error {
	b.SetCursor(c.At, c.Extend)
	return nil
}

// Select sets an explicit selection.
type Select struct {
	Anchor, Active buffer.Position
}

func (Select) ID() string           { return "select.range" }
func (Select) ChangesContent() bool { return false }
func (c Select) Execute(b *buffer.Buffer, _ *Outcome) error {
	b.Select(c.Anchor, c.Active)
	return nil
}

// GotoLine jumps to a 1-based line number.
type GotoLine struct {
	Line int
}

func (GotoLine) ID() string           { return "move.line" }
func (GotoLine) ChangesContent() bool { return false }
func (c GotoLine) Execute(b *buffer.Buffer, _ *Outcome) error {
	b.GotoLine(c.Line)
	return nil
}

// SelectInsidePair widens the selection to the surrounding pair. A nil Kind
// considers every default pair and may fail with *buffer.AmbiguousPairError.
type SelectInsidePair struct {
	Kind *buffer.Pair
}

func (SelectInsidePair) ID() string           { return "select.pair" }
func (SelectInsidePair) ChangesContent() bool { return false }
func (c SelectInsidePair) Execute(b *buffer.Buffer, _ *Outcome) error {
	return b.WidenToPair(c.Kind)
}

var (
	SelectAll    Command = simple{id: "select.all", run: noErr((*buffer.Buffer).SelectAll)}
	SelectWord   Command = simple{id: "select.word", run: noErr((*buffer.Buffer).SelectWordOrLines)}
	WidenToLines Command = simple{id: "select.lines", run: noErr((*buffer.Buffer).WidenToLines)}
	GotoPair     Command = simple{id: "move.pair", run: (*buffer.Buffer).GotoPair}
)
