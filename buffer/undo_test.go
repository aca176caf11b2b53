package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var testTabs = TabPolicy{Width: 4}

func typeText(t *testing.T, b *Buffer, s string) {
	t.Helper()
	for _, ch := range s {
		require.NoError(t, b.InsertText(string(ch)))
	}
}

func TestUndoGroupedWordInsert(t *testing.T) {
	b := NewFromContent("", testTabs)
	typeText(t, b, "block")
	require.Equal(t, "block", b.Content())
	require.Equal(t, 1, b.History().UndoLen())

	require.NoError(t, b.Undo())
	require.Equal(t, "", b.Content())

	require.NoError(t, b.Redo())
	require.Equal(t, "block", b.Content())
	require.Equal(t, Position{Line: 0, Col: 5}, b.Cursor())
}

func TestUndoSplitsAfterWhitespace(t *testing.T) {
	b := NewFromContent("", testTabs)
	typeText(t, b, "ab cd")

	require.NoError(t, b.Undo())
	require.Equal(t, "ab ", b.Content())
	require.NoError(t, b.Undo())
	require.Equal(t, "", b.Content())
}

func TestMoveSealsRecord(t *testing.T) {
	b := NewFromContent("", testTabs)
	typeText(t, b, "ab")
	b.Move(Left, false)
	b.Move(Right, false)
	typeText(t, b, "c")
	require.Equal(t, "abc", b.Content())

	require.NoError(t, b.Undo())
	require.Equal(t, "ab", b.Content())
}

func TestBackspaceCoalesces(t *testing.T) {
	b := NewFromContent("hello", testTabs)
	b.SetCursor(Position{Line: 0, Col: 5}, false)
	for range 3 {
		require.NoError(t, b.Backspace())
	}
	require.Equal(t, "he", b.Content())
	require.Equal(t, 1, b.History().UndoLen())

	require.NoError(t, b.Undo())
	require.Equal(t, "hello", b.Content())
	require.Equal(t, Position{Line: 0, Col: 5}, b.Cursor())
}

func TestDeleteCoalesces(t *testing.T) {
	b := NewFromContent("hello", testTabs)
	require.NoError(t, b.Delete())
	require.NoError(t, b.Delete())
	require.Equal(t, "llo", b.Content())

	require.NoError(t, b.Undo())
	require.Equal(t, "hello", b.Content())
	require.Equal(t, Position{}, b.Cursor())
}

func TestNewlineIsItsOwnRecord(t *testing.T) {
	b := NewFromContent("", testTabs)
	typeText(t, b, "ab")
	require.NoError(t, b.Newline())
	typeText(t, b, "c")
	require.Equal(t, "ab\nc", b.Content())

	require.NoError(t, b.Undo())
	require.Equal(t, "ab\n", b.Content())
	require.NoError(t, b.Undo())
	require.Equal(t, "ab", b.Content())
	require.NoError(t, b.Undo())
	require.Equal(t, "", b.Content())
}

func TestNewEditClearsRedo(t *testing.T) {
	b := NewFromContent("", testTabs)
	typeText(t, b, "a")
	require.NoError(t, b.Undo())
	require.True(t, b.History().CanRedo())

	typeText(t, b, "b")
	require.False(t, b.History().CanRedo())
	require.ErrorIs(t, b.Redo(), ErrEmptyHistory)
	require.Equal(t, "b", b.Content())
}

func TestUndoEmptyHistory(t *testing.T) {
	b := New(testTabs)
	require.ErrorIs(t, b.Undo(), ErrEmptyHistory)
	require.ErrorIs(t, b.Redo(), ErrEmptyHistory)
}

func TestModifiedFollowsSavePoint(t *testing.T) {
	b := NewFromContent("x", testTabs)
	require.False(t, b.Modified())

	typeText(t, b, "a")
	require.True(t, b.Modified())
	require.NoError(t, b.Undo())
	require.False(t, b.Modified())
	require.NoError(t, b.Redo())
	require.True(t, b.Modified())

	b.MarkSaved()
	require.False(t, b.Modified())
	require.NoError(t, b.Undo())
	require.True(t, b.Modified())
}

func TestSavePointLostWhenRedoDropped(t *testing.T) {
	b := NewFromContent("", testTabs)
	typeText(t, b, "a")
	b.MarkSaved()
	require.NoError(t, b.Undo())
	typeText(t, b, "b")
	require.True(t, b.Modified())
	require.NoError(t, b.Undo())
	require.Equal(t, "", b.Content())
	require.True(t, b.Modified())
}

func TestHistoryAmendAndDiscard(t *testing.T) {
	h := NewHistory()
	require.False(t, h.Amend(func(*EditRecord) {}))

	h.Record(&EditRecord{Kind: EditCompound, Changes: []Change{{Inserted: "a"}}})
	require.True(t, h.Amend(func(rec *EditRecord) { rec.Changes[0].Inserted = "ab" }))
	require.Equal(t, "ab", h.Top().Changes[0].Inserted)
	require.True(t, h.Modified())

	h.Discard()
	require.False(t, h.CanUndo())
	require.False(t, h.Modified())
}

func TestEditKindString(t *testing.T) {
	require.Equal(t, "replace", EditReplace.String())
	require.Equal(t, "unknown", EditKind(42).String())
}

// replaceSession finds q, rewrites every match to rep and commits. It
// returns the state the replacement starts from, or false when q has no
// match.
func replaceSession(t *rapid.T, b *Buffer, q, rep string) (State, bool) {
	b.FindBegin()
	if err := b.FindInput(q); err != nil {
		require.ErrorIs(t, err, ErrNoMatch)
		require.NoError(t, b.FindCancel())
		return State{}, false
	}
	start := b.state()
	require.NoError(t, b.ReplaceBegin())
	require.NoError(t, b.ReplaceInput(rep))
	require.NoError(t, b.ReplaceCommit())
	return start, true
}

// TestUndo_Property_RoundTrip runs random edits, undoes everything back to
// the loaded text and cursor, then redoes everything forward again.
func TestUndo_Property_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.StringOf(rapid.RuneFrom([]rune("ab (\n"))).Draw(t, "initial")
		b := NewFromContent(initial, testTabs)
		origin := b.state()
		edited := false

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			pre := b.state()
			empty := !b.History().CanUndo()
			switch rapid.IntRange(0, 10).Draw(t, "op") {
			case 0:
				s := rapid.StringOfN(rapid.RuneFrom([]rune("xy \t\n")), 1, 4, -1).Draw(t, "text")
				require.NoError(t, b.InsertText(s))
			case 1:
				require.NoError(t, b.Backspace())
			case 2:
				require.NoError(t, b.Delete())
			case 3:
				require.NoError(t, b.Newline())
			case 4:
				dir := Direction(rapid.IntRange(int(Left), int(PageDown)).Draw(t, "dir"))
				b.Move(dir, rapid.Bool().Draw(t, "extend"))
			case 5:
				require.NoError(t, b.Paste(rapid.StringOf(rapid.RuneFrom([]rune("pq\n"))).Draw(t, "paste")))
			case 6:
				require.NoError(t, b.Indent())
			case 7:
				require.NoError(t, b.Unindent())
			case 8:
				_, err := b.Cut()
				require.NoError(t, err)
			case 9:
				b.ClearSelection()
				pre = b.state()
				_, err := b.Cut()
				require.NoError(t, err)
			case 10:
				q := rapid.StringOfN(rapid.RuneFrom([]rune("ab")), 1, 2, -1).Draw(t, "query")
				rep := rapid.StringOfN(rapid.RuneFrom([]rune("z\n")), 1, 3, -1).Draw(t, "replacement")
				if start, ok := replaceSession(t, b, q, rep); ok {
					pre = start
				}
			}
			if empty && b.History().CanUndo() {
				origin = pre
				edited = true
			}
		}
		final := b.Content()

		for b.History().CanUndo() {
			require.NoError(t, b.Undo())
		}
		require.Equal(t, initial, b.Content())
		require.False(t, b.Modified())
		if !edited {
			return
		}
		require.Equal(t, origin.Cursor, b.Cursor())
		wantSel, wantOK := origin.Selection()
		gotSel, gotOK := b.Selection()
		require.Equal(t, wantOK, gotOK)
		if wantOK {
			require.Equal(t, wantSel.Range(), gotSel.Range())
		}

		for b.History().CanRedo() {
			require.NoError(t, b.Redo())
		}
		require.Equal(t, final, b.Content())
	})
}
