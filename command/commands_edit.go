package command

import "tedit/buffer"

// Insert types Text at the cursor, replacing the selection.
type Insert struct {
	Text string
}

func (Insert) ID() string           { return "edit.insert" }
func (Insert) ChangesContent() bool { return true }
func (c Insert) Execute(b *buffer.Buffer, _ *Outcome) error {
	return b.InsertText(c.Text)
}

var (
	Backspace Command = simple{id: "edit.backspace", content: true, run: (*buffer.Buffer).Backspace}
	Delete    Command = simple{id: "edit.delete", content: true, run: (*buffer.Buffer).Delete}
	Newline   Command = simple{id: "edit.newline", content: true, run: (*buffer.Buffer).Newline}
	Indent    Command = simple{id: "edit.indent", content: true, run: (*buffer.Buffer).Indent}
	Unindent  Command = simple{id: "edit.unindent", content: true, run: (*buffer.Buffer).Unindent}

	Undo Command = simple{id: "history.undo", content: true, run: (*buffer.Buffer).Undo}
	Redo Command = simple{id: "history.redo", content: true, run: (*buffer.Buffer).Redo}
)
