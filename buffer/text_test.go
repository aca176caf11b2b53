package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewTextNormalizesLineBreaks(t *testing.T) {
	txt := NewText("a\r\nb\rc")
	require.Equal(t, []string{"a", "b", "c"}, txt.Lines())
	require.Equal(t, "a\nb\nc", txt.String())
}

func TestEmptyTextHasOneLine(t *testing.T) {
	txt := NewText("")
	require.Equal(t, 1, txt.LineCount())
	require.Equal(t, Position{}, txt.End())
}

func TestInsertMultiLine(t *testing.T) {
	txt := NewText("hello world")
	r, err := txt.Insert(Position{Line: 0, Col: 5}, ",\nthere")
	require.NoError(t, err)
	require.Equal(t, []string{"hello,", "there world"}, txt.Lines())
	require.Equal(t, Range{Start: Position{Line: 0, Col: 5}, End: Position{Line: 1, Col: 5}}, r)
}

func TestDeleteAcrossLines(t *testing.T) {
	txt := NewText("ab\ncd\nef")
	removed, err := txt.Delete(Range{Start: Position{Line: 0, Col: 1}, End: Position{Line: 2, Col: 1}})
	require.NoError(t, err)
	require.Equal(t, "b\ncd\ne", removed)
	require.Equal(t, "af", txt.String())
}

func TestReadOutOfBounds(t *testing.T) {
	txt := NewText("abc")
	_, err := txt.Read(Range{End: Position{Line: 5}})
	require.True(t, errors.Is(err, ErrOutOfBounds))

	_, err = txt.Insert(Position{Line: 0, Col: 4}, "x")
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestColumnsCountRunes(t *testing.T) {
	txt := NewText("héllo")
	require.Equal(t, 5, txt.LineLen(0))
	r, ok := txt.RuneAt(Position{Line: 0, Col: 1})
	require.True(t, ok)
	require.Equal(t, 'é', r)

	_, err := txt.Insert(Position{Line: 0, Col: 2}, "x")
	require.NoError(t, err)
	require.Equal(t, "héxllo", txt.String())

	_, ok = txt.RuneAt(Position{Line: 0, Col: 6})
	require.False(t, ok)
}

func TestClamp(t *testing.T) {
	txt := NewText("ab\nc")
	require.Equal(t, Position{Line: 1, Col: 1}, txt.Clamp(Position{Line: 5, Col: 9}))
	require.Equal(t, Position{Line: 0, Col: 2}, txt.Clamp(Position{Line: 0, Col: 9}))
	require.Equal(t, Position{}, txt.Clamp(Position{Line: -1, Col: 3}))
}

func TestEndOf(t *testing.T) {
	require.Equal(t, Position{Line: 3, Col: 3}, EndOf(Position{Line: 2, Col: 3}, "ab\ncde"))
	require.Equal(t, Position{Line: 2, Col: 5}, EndOf(Position{Line: 2, Col: 3}, "ab"))
}

func TestInsertDelete_Property_RoundTrip(t *testing.T) {
	alphabet := []rune("ab é\n")
	rapid.Check(t, func(t *rapid.T) {
		content := rapid.StringOf(rapid.RuneFrom(alphabet)).Draw(t, "content")
		ins := rapid.StringOf(rapid.RuneFrom(alphabet)).Draw(t, "insert")
		txt := NewText(content)

		line := rapid.IntRange(0, txt.LineCount()-1).Draw(t, "line")
		col := rapid.IntRange(0, txt.LineLen(line)).Draw(t, "col")
		r, err := txt.Insert(Position{Line: line, Col: col}, ins)
		require.NoError(t, err)
		require.Equal(t, EndOf(r.Start, ins), r.End)

		got, err := txt.Read(r)
		require.NoError(t, err)
		require.Equal(t, ins, got)

		removed, err := txt.Delete(r)
		require.NoError(t, err)
		require.Equal(t, ins, removed)
		require.Equal(t, content, txt.String())
	})
}
