package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tedit/highlight"
)

func TestNewlineCarriesIndent(t *testing.T) {
	b := NewFromContent("    foo", testTabs)
	b.Move(LineEnd, false)
	require.NoError(t, b.Newline())
	require.Equal(t, "    foo\n    ", b.Content())
	require.Equal(t, pos(1, 4), b.Cursor())
}

func TestTabPolicy(t *testing.T) {
	b := NewFromContent("", testTabs)
	require.NoError(t, b.InsertText("\t"))
	require.Equal(t, "    ", b.Content())

	b = NewFromContent("", TabPolicy{Width: 4, Literal: true})
	require.NoError(t, b.InsertText("\t"))
	require.Equal(t, "\t", b.Content())
}

func TestMakefileForcesLiteralTabs(t *testing.T) {
	b := NewFromContent("", testTabs)
	b.SetSyntax(highlight.ForFile("Makefile"))
	require.True(t, b.TabPolicy().Literal)

	b.SetTabPolicy(TabPolicy{Width: 8})
	require.True(t, b.TabPolicy().Literal)
}

func TestInsertReplacesSelection(t *testing.T) {
	b := NewFromContent("hello world", testTabs)
	b.Select(pos(0, 0), pos(0, 5))
	require.NoError(t, b.InsertText("bye"))
	require.Equal(t, "bye world", b.Content())
	require.Equal(t, pos(0, 3), b.Cursor())

	require.NoError(t, b.Undo())
	require.Equal(t, "hello world", b.Content())
	require.Equal(t, span(0, 0, 5), selected(t, b))
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := NewFromContent("ab\ncd", testTabs)
	b.SetCursor(pos(1, 0), false)
	require.NoError(t, b.Backspace())
	require.Equal(t, "abcd", b.Content())
	require.Equal(t, pos(0, 2), b.Cursor())

	b.SetCursor(pos(0, 0), false)
	require.NoError(t, b.Backspace())
	require.Equal(t, "abcd", b.Content())
}

func TestIndentAndUnindentLines(t *testing.T) {
	b := NewFromContent("a\nb\nc", testTabs)
	b.Select(pos(0, 0), pos(1, 1))
	require.NoError(t, b.Indent())
	require.Equal(t, "    a\n    b\nc", b.Content())

	require.NoError(t, b.Unindent())
	require.Equal(t, "a\nb\nc", b.Content())

	require.NoError(t, b.Undo())
	require.Equal(t, "    a\n    b\nc", b.Content())
	require.NoError(t, b.Undo())
	require.Equal(t, "a\nb\nc", b.Content())
}

func TestCutAndCopyWholeLine(t *testing.T) {
	b := NewFromContent("one\ntwo", testTabs)
	b.SetCursor(pos(0, 1), false)
	require.Equal(t, "one\n", b.Copy())

	text, err := b.Cut()
	require.NoError(t, err)
	require.Equal(t, "one\n", text)
	require.Equal(t, "two", b.Content())
	require.Equal(t, "two", b.Copy())

	require.NoError(t, b.Undo())
	require.Equal(t, "one\ntwo", b.Content())
}

func TestUndoCutRestoresCursor(t *testing.T) {
	b := NewFromContent("one\ntwo", testTabs)
	b.SetCursor(pos(0, 2), false)
	_, err := b.Cut()
	require.NoError(t, err)

	require.NoError(t, b.Undo())
	require.Equal(t, "one\ntwo", b.Content())
	require.Equal(t, pos(0, 2), b.Cursor())
	_, sel := b.Selection()
	require.False(t, sel)

	b.Select(pos(1, 0), pos(1, 2))
	text, err := b.Cut()
	require.NoError(t, err)
	require.Equal(t, "tw", text)
	require.NoError(t, b.Undo())
	got, ok := b.Selection()
	require.True(t, ok)
	require.Equal(t, Range{Start: pos(1, 0), End: pos(1, 2)}, got.Range())

	b.SetCursor(pos(1, 0), false)
	require.NoError(t, b.Redo())
	require.Equal(t, "one\no", b.Content())
	require.Equal(t, pos(1, 0), b.Cursor())
}

func TestPasteIsOneStep(t *testing.T) {
	b := NewFromContent("ab", testTabs)
	b.SetCursor(pos(0, 1), false)
	require.NoError(t, b.Paste("x\r\ny"))
	require.Equal(t, "ax\nyb", b.Content())
	require.Equal(t, pos(1, 1), b.Cursor())

	require.NoError(t, b.Undo())
	require.Equal(t, "ab", b.Content())
}

func TestReloadIsUndoable(t *testing.T) {
	b := NewFromContent("a\nb\nc", testTabs)
	require.NoError(t, b.Reload("a\nB\nc\nd"))
	require.Equal(t, "a\nB\nc\nd", b.Content())
	require.False(t, b.Modified())

	require.NoError(t, b.Undo())
	require.Equal(t, "a\nb\nc", b.Content())
	require.True(t, b.Modified())

	require.NoError(t, b.Reload("a\nb\nc"))
	require.False(t, b.Modified())
}

func TestDamageWindow(t *testing.T) {
	b := NewFromContent("a\nb\nc", testTabs)
	b.TakeDamage()

	b.SetCursor(pos(1, 1), false)
	_, ok := b.TakeDamage()
	require.False(t, ok)

	require.NoError(t, b.InsertText("\n"))
	d, ok := b.TakeDamage()
	require.True(t, ok)
	require.Equal(t, Damage{First: 1, Last: 2, Delta: 1}, d)
}

func TestSpansFollowEdits(t *testing.T) {
	b := NewFromContent("x := 1", testTabs)
	tok, ok := highlight.ByName("go")
	require.True(t, ok)
	b.SetSyntax(tok)
	require.Equal(t, highlight.Identifier, b.Spans(0)[0].Category)

	b.Move(DocStart, false)
	require.NoError(t, b.InsertText("// "))
	require.Equal(t, highlight.Comment, b.Spans(0)[0].Category)
}

func TestSelectionOn(t *testing.T) {
	b := NewFromContent("abc\ndef\nghi", testTabs)
	b.Select(pos(0, 1), pos(2, 0))

	start, end, ok := b.SelectionOn(0)
	require.True(t, ok)
	require.Equal(t, 1, start)
	require.Equal(t, -1, end)

	_, _, ok = b.SelectionOn(2)
	require.False(t, ok)
}
