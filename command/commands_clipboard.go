package command

import "tedit/buffer"

type cut struct{}

func (cut) ID() string           { return "clipboard.cut" }
func (cut) ChangesContent() bool { return true }
func (cut) Execute(b *buffer.Buffer, out *Outcome) error {
	text, err := b.Cut()
	if err != nil {
		return err
	}
	out.Clipboard, out.HasClipboard = text, text != ""
	return nil
}

type copyCmd struct{}

func (copyCmd) ID() string           { return "clipboard.copy" }
func (copyCmd) ChangesContent() bool { return false }
func (copyCmd) Execute(b *buffer.Buffer, out *Outcome) error {
	text := b.Copy()
	out.Clipboard, out.HasClipboard = text, text != ""
	return nil
}

var (
	// Cut removes the selection, or the cursor line, into the clipboard.
	Cut Command = cut{}
	// Copy puts the selection, or the cursor line, into the clipboard.
	Copy Command = copyCmd{}
)

// Paste inserts Text as one undo step.
type Paste struct {
	Text string
}

func (Paste) ID() string           { return "clipboard.paste" }
func (Paste) ChangesContent() bool { return true }
func (c Paste) Execute(b *buffer.Buffer, _ *Outcome) error {
	return b.Paste(c.Text)
}
