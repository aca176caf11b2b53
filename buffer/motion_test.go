package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidenToLinesScenario(t *testing.T) {
	b := NewFromContent("hello\nworld!", testTabs)
	b.Select(pos(0, 2), pos(1, 3))
	b.WidenToLines()
	require.Equal(t, Range{Start: pos(0, 0), End: pos(1, 6)}, selected(t, b))

	b.WidenToLines()
	require.Equal(t, Range{Start: pos(0, 0), End: pos(1, 6)}, selected(t, b))
}

func TestWidenToLinesTakesLineBreak(t *testing.T) {
	b := NewFromContent("a\nb\nc", testTabs)
	b.WidenToLines()
	require.Equal(t, Range{Start: pos(0, 0), End: pos(1, 0)}, selected(t, b))

	b.WidenToLines()
	require.Equal(t, Range{Start: pos(0, 0), End: pos(1, 0)}, selected(t, b))
}

func TestWidenToLinesKeepsOrientation(t *testing.T) {
	b := NewFromContent("hello\nworld!", testTabs)
	b.Select(pos(1, 3), pos(0, 2))
	b.WidenToLines()
	require.Equal(t, pos(0, 0), b.Cursor())
	sel, ok := b.Selection()
	require.True(t, ok)
	require.Equal(t, pos(1, 6), sel.Anchor)
}

func TestVerticalMoveKeepsGoalColumn(t *testing.T) {
	b := NewFromContent("abcdef\nab\nabcdef", testTabs)
	b.SetCursor(pos(0, 5), false)
	b.Move(Down, false)
	require.Equal(t, pos(1, 2), b.Cursor())
	b.Move(Down, false)
	require.Equal(t, pos(2, 5), b.Cursor())
	b.Move(Down, false)
	require.Equal(t, pos(2, 6), b.Cursor())
}

func TestWordMoves(t *testing.T) {
	b := NewFromContent("foo bar.baz", testTabs)
	b.Move(WordRight, false)
	require.Equal(t, pos(0, 4), b.Cursor())
	b.Move(WordRight, false)
	require.Equal(t, pos(0, 7), b.Cursor())
	b.Move(WordLeft, false)
	require.Equal(t, pos(0, 4), b.Cursor())
}

func TestSmartLineStart(t *testing.T) {
	b := NewFromContent("    x", testTabs)
	b.Move(LineEnd, false)
	b.Move(LineStart, false)
	require.Equal(t, pos(0, 4), b.Cursor())
	b.Move(LineStart, false)
	require.Equal(t, pos(0, 0), b.Cursor())
	b.Move(LineStart, false)
	require.Equal(t, pos(0, 4), b.Cursor())
}

func TestGotoLine(t *testing.T) {
	b := NewFromContent("a\nb\nc", testTabs)
	b.GotoLine(2)
	require.Equal(t, pos(1, 0), b.Cursor())
	b.GotoLine(99)
	require.Equal(t, pos(2, 0), b.Cursor())
	b.GotoLine(0)
	require.Equal(t, pos(0, 0), b.Cursor())
}

func TestExtendAndCollapse(t *testing.T) {
	b := NewFromContent("abc", testTabs)
	b.Move(Right, true)
	b.Move(Right, true)
	require.Equal(t, span(0, 0, 2), selected(t, b))

	b.Move(Left, false)
	require.Equal(t, pos(0, 0), b.Cursor())
	_, ok := b.Selection()
	require.False(t, ok)
}

func TestSelectAll(t *testing.T) {
	b := NewFromContent("ab\ncd", testTabs)
	b.SelectAll()
	require.Equal(t, Range{End: pos(1, 2)}, selected(t, b))
}

func TestGotoPair(t *testing.T) {
	b := NewFromContent("foo(bar)baz", testTabs)
	b.SetCursor(pos(0, 3), false)
	require.NoError(t, b.GotoPair())
	require.Equal(t, pos(0, 7), b.Cursor())

	b.SetCursor(pos(0, 0), false)
	require.ErrorIs(t, b.GotoPair(), ErrNoMatch)
}

func TestWidenToPairSteps(t *testing.T) {
	b := NewFromContent("f(a, b)", testTabs)
	b.SetCursor(pos(0, 3), false)

	require.NoError(t, b.WidenToPair(nil))
	require.Equal(t, span(0, 2, 6), selected(t, b))

	require.NoError(t, b.WidenToPair(nil))
	require.Equal(t, span(0, 1, 7), selected(t, b))

	require.ErrorIs(t, b.WidenToPair(nil), ErrNoMatch)
}

func TestWidenToPairOnDelimiter(t *testing.T) {
	b := NewFromContent("x(ab)", testTabs)
	b.SetCursor(pos(0, 1), false)
	require.NoError(t, b.WidenToPair(nil))
	require.Equal(t, span(0, 2, 4), selected(t, b))
}

func TestWidenToPairAmbiguous(t *testing.T) {
	b := NewFromContent("(a[b)c]", testTabs)
	b.SetCursor(pos(0, 3), false)
	require.ErrorIs(t, b.WidenToPair(nil), ErrAmbiguousPair)

	kind := Pair{Open: '(', Close: ')'}
	require.NoError(t, b.WidenToPair(&kind))
	require.Equal(t, span(0, 1, 4), selected(t, b))
}

func TestSelectWordOrLines(t *testing.T) {
	b := NewFromContent("hello world", testTabs)
	b.SetCursor(pos(0, 7), false)
	b.SelectWordOrLines()
	require.Equal(t, span(0, 6, 11), selected(t, b))

	b.SelectWordOrLines()
	require.Equal(t, span(0, 0, 11), selected(t, b))
}

func TestDirectionString(t *testing.T) {
	require.Equal(t, "word-left", WordLeft.String())
	require.Equal(t, "unknown", Direction(99).String())
}
