package command

import "tedit/buffer"

// FindInput appends Text to the query.
type FindInput struct {
	Text string
}

func (FindInput) ID() string           { return "search.input" }
func (FindInput) ChangesContent() bool { return false }
func (c FindInput) Execute(b *buffer.Buffer, _ *Outcome) error {
	return b.FindInput(c.Text)
}

// FindAdvance moves to the next match, or the previous one when Forward is
// false.
type FindAdvance struct {
	Forward bool
}

func (c FindAdvance) ID() string {
	if c.Forward {
		return "search.next"
	}
	return "search.prev"
}
func (FindAdvance) ChangesContent() bool { return false }
func (c FindAdvance) Execute(b *buffer.Buffer, _ *Outcome) error {
	return b.FindAdvance(c.Forward)
}

// ReplaceInput appends Text to the replacement at every match.
type ReplaceInput struct {
	Text string
}

func (ReplaceInput) ID() string           { return "replace.input" }
func (ReplaceInput) ChangesContent() bool { return true }
func (c ReplaceInput) Execute(b *buffer.Buffer, _ *Outcome) error {
	return b.ReplaceInput(c.Text)
}

var (
	FindBegin       Command = simple{id: "search.begin", run: noErr((*buffer.Buffer).FindBegin)}
	FindBackspace   Command = simple{id: "search.backspace", run: (*buffer.Buffer).FindBackspace}
	FindRemoveMatch Command = simple{id: "search.remove", run: (*buffer.Buffer).FindRemoveMatch}
	FindAccept      Command = simple{id: "search.accept", content: true, run: noErr((*buffer.Buffer).FindAccept)}
	FindCancel      Command = simple{id: "search.cancel", content: true, run: (*buffer.Buffer).FindCancel}

	ReplaceBegin     Command = simple{id: "replace.begin", run: (*buffer.Buffer).ReplaceBegin}
	ReplaceBackspace Command = simple{id: "replace.backspace", content: true, run: (*buffer.Buffer).ReplaceBackspace}
	ReplaceCommit    Command = simple{id: "replace.commit", run: (*buffer.Buffer).ReplaceCommit}
)
