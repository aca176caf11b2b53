package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tedit/buffer"
)

func newBuffer(content string) *buffer.Buffer {
	return buffer.NewFromContent(content, buffer.TabPolicy{Width: 4})
}

func apply(t *testing.T, b *buffer.Buffer, cmds ...Command) Outcome {
	t.Helper()
	var out Outcome
	for _, c := range cmds {
		var err error
		out, err = Apply(b, c)
		require.NoError(t, err, c.ID())
	}
	return out
}

func TestInsertOutcome(t *testing.T) {
	b := newBuffer("a\nb")
	b.TakeDamage()
	out := apply(t, b, Insert{Text: "x"})

	require.Equal(t, "xa\nb", b.Content())
	require.Equal(t, buffer.Position{Line: 0, Col: 1}, out.Cursor)
	require.True(t, out.Dirty)
	require.True(t, out.Damaged)
	require.Equal(t, buffer.Damage{First: 0, Last: 0, Delta: 0}, out.Damage)
	require.False(t, out.HasSelection)
}

func TestMovementHasNoDamage(t *testing.T) {
	b := newBuffer("abc")
	b.TakeDamage()
	out := apply(t, b, MoveCursor{Dir: buffer.Right, Extend: true})
	require.False(t, out.Damaged)
	require.False(t, out.Dirty)
	require.True(t, out.HasSelection)
	require.Equal(t, buffer.Range{End: buffer.Position{Col: 1}}, out.Selection.Range())
}

func TestUndoOutcome(t *testing.T) {
	b := newBuffer("")
	apply(t, b, Insert{Text: "h"}, Insert{Text: "i"})
	out := apply(t, b, Undo)
	require.Equal(t, "", b.Content())
	require.False(t, out.Dirty)

	_, err := Apply(b, Undo)
	require.ErrorIs(t, err, buffer.ErrEmptyHistory)
}

func TestSearchFlow(t *testing.T) {
	b := newBuffer("bar baz")
	out := apply(t, b, FindBegin, FindInput{Text: "ba"})
	require.Equal(t, buffer.SearchFinding, out.Search)
	require.Equal(t, buffer.Range{End: buffer.Position{Col: 2}}, out.Selection.Range())

	out = apply(t, b, FindAdvance{Forward: true})
	require.Equal(t, buffer.Position{Col: 6}, out.Cursor)

	out = apply(t, b, ReplaceBegin, ReplaceInput{Text: "qu"}, ReplaceCommit)
	require.Equal(t, "qur quz", b.Content())
	require.Equal(t, buffer.SearchIdle, out.Search)

	apply(t, b, Undo)
	require.Equal(t, "bar baz", b.Content())
}

func TestReplaceBeginNeedsSearch(t *testing.T) {
	b := newBuffer("abc")
	_, err := Apply(b, ReplaceBegin)
	require.ErrorIs(t, err, buffer.ErrNoActiveSearch)
}

func TestSelectInsidePairAmbiguous(t *testing.T) {
	b := newBuffer("(a[b)c]")
	apply(t, b, SetCursor{At: buffer.Position{Col: 3}})

	_, err := Apply(b, SelectInsidePair{})
	var amb *buffer.AmbiguousPairError
	require.True(t, errors.As(err, &amb))
	require.Len(t, amb.Choices, 2)

	kind := amb.Choices[0]
	out := apply(t, b, SelectInsidePair{Kind: &kind})
	require.True(t, out.HasSelection)
}

func TestClipboardCommands(t *testing.T) {
	b := newBuffer("one\ntwo")
	out := apply(t, b, Copy)
	require.True(t, out.HasClipboard)
	require.Equal(t, "one\n", out.Clipboard)

	out = apply(t, b, Cut)
	require.Equal(t, "one\n", out.Clipboard)
	require.Equal(t, "two", b.Content())
	require.True(t, out.Damaged)

	apply(t, b, MoveCursor{Dir: buffer.DocEnd}, Paste{Text: "\none"})
	require.Equal(t, "two\none", b.Content())
}

func TestLineCommands(t *testing.T) {
	b := newBuffer("a\nb\nc")
	out := apply(t, b, GotoLine{Line: 2}, WidenToLines)
	require.Equal(t, buffer.Range{Start: buffer.Position{Line: 1}, End: buffer.Position{Line: 2}}, out.Selection.Range())

	apply(t, b, Indent)
	require.Equal(t, "a\n    b\nc", b.Content())
	apply(t, b, Unindent)
	require.Equal(t, "a\nb\nc", b.Content())
}

func TestGotoPairCommand(t *testing.T) {
	b := newBuffer("foo(bar)baz")
	out := apply(t, b, SetCursor{At: buffer.Position{Col: 3}}, GotoPair)
	require.Equal(t, buffer.Position{Col: 7}, out.Cursor)
}

func TestCommandIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range []Command{
		Insert{}, Backspace, Delete, Newline, Indent, Unindent,
		MoveCursor{Dir: buffer.Left}, SetCursor{}, Select{}, SelectAll, SelectWord,
		Undo, Redo,
		FindBegin, FindInput{}, FindBackspace, FindAdvance{Forward: true}, FindAdvance{},
		FindRemoveMatch, FindAccept, FindCancel,
		ReplaceBegin, ReplaceInput{}, ReplaceBackspace, ReplaceCommit,
		GotoPair, SelectInsidePair{}, WidenToLines, GotoLine{},
		Cut, Copy, Paste{},
	} {
		require.False(t, seen[c.ID()], "duplicate id %s", c.ID())
		seen[c.ID()] = true
	}
	require.True(t, Insert{}.ChangesContent())
	require.False(t, MoveCursor{}.ChangesContent())
}
