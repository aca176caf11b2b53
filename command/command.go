// Package command maps abstract editor commands onto buffer operations and
// reports what changed in a uniform Outcome.
package command

import (
	"tedit/buffer"
	"tedit/log"
)

// Command is one abstract editor operation.
type Command interface {
	// ID returns a hierarchical identifier for logging, such as
	// "edit.insert" or "search.advance".
	ID() string

	// ChangesContent reports whether the command may modify the text.
	ChangesContent() bool

	// Execute runs the command against b. Commands that produce a clipboard
	// payload store it in out.
	Execute(b *buffer.Buffer, out *Outcome) error
}

// Outcome is the observable state after a command.
type Outcome struct {
	Cursor       buffer.Position
	Selection    buffer.Selection
	HasSelection bool
	Dirty        bool
	Search       buffer.SearchMode

	// Damage lists the lines whose spans must be redrawn. It is only valid
	// when Damaged is set.
	Damage  buffer.Damage
	Damaged bool

	Clipboard    string
	HasClipboard bool
}

// Apply runs cmd against b. The outcome is filled in even when cmd fails,
// since a failed command leaves the buffer in a consistent state.
func Apply(b *buffer.Buffer, cmd Command) (Outcome, error) {
	var out Outcome
	err := cmd.Execute(b, &out)
	if err != nil {
		log.Debug(log.CatCommand, "command failed", "id", cmd.ID(), "error", err)
	}

	out.Cursor = b.Cursor()
	out.Selection, out.HasSelection = b.Selection()
	out.Dirty = b.Modified()
	out.Search = b.SearchMode()
	out.Damage, out.Damaged = b.TakeDamage()
	return out, err
}

// simple adapts a buffer method without arguments or results.
type simple struct {
	id      string
	content bool
	run     func(b *buffer.Buffer) error
}

func (c simple) ID() string           { return c.id }
func (c simple) ChangesContent() bool { return c.content }
func (c simple) Execute(b *buffer.Buffer, _ *Outcome) error {
	return c.run(b)
}

func noErr(fn func(b *buffer.Buffer)) func(b *buffer.Buffer) error {
	return func(b *buffer.Buffer) error {
		fn(b)
		return nil
	}
}
