package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestBufferBarKeepsActiveVisible(t *testing.T) {
	bb := NewBufferBar()
	for i := 0; i < 14; i++ {
		bb.Entries = append(bb.Entries, EntryFor(fmt.Sprintf("/tmp/file-%d.txt", i), false, false))
	}
	bb.Active = len(bb.Entries) - 1

	screen := newScreen(t)
	bb.Render(screen, 0, 0, 32)

	if bb.scrollOff <= 0 {
		t.Fatalf("expected bar to scroll for off-screen entry, got scrollOff=%d", bb.scrollOff)
	}
	if bb.Active > bb.lastVisible(32) {
		t.Fatalf("active entry should stay visible: active=%d last=%d", bb.Active, bb.lastVisible(32))
	}
}

func TestBufferBarClickSwitches(t *testing.T) {
	bb := NewBufferBar()
	bb.Entries = []Entry{EntryFor("a.go", false, false), EntryFor("b.go", true, false)}
	got := -1
	bb.OnSwitch = func(i int) { got = i }

	screen := newScreen(t)
	bb.Render(screen, 0, 0, 40)

	// " a.go │ *b.go "
	bb.HandleMouse(tcell.NewEventMouse(9, 0, tcell.Button1, tcell.ModNone))
	if got != 1 {
		t.Fatalf("expected click to switch to entry 1, got %d", got)
	}
	if !strings.HasPrefix(rowText(screen, 0, 40), " a.go │ *b.go ") {
		t.Fatalf("unexpected bar contents %q", rowText(screen, 0, 40))
	}
}

func TestEntryLabels(t *testing.T) {
	if got := EntryFor("", false, false).label(); got != "untitled" {
		t.Fatalf("got %q", got)
	}
	if got := EntryFor("/x/y.md", true, true).label(); got != "!y.md" {
		t.Fatalf("got %q", got)
	}
}

func TestStatusBarText(t *testing.T) {
	s := NewStatusBar()
	s.Filename = "main.go"
	s.Modified = true
	s.Language = "Go"
	s.Line, s.Col = 9, 0
	s.TabInfo = "Tabs: 4"

	if got := s.Left(); got != "*main.go" {
		t.Fatalf("left = %q", got)
	}
	if got := s.Right(); got != "Ln 10, Col 1 │ Go │ UTF-8 │ LF │ Tabs: 4 " {
		t.Fatalf("right = %q", got)
	}

	s.Search = "Find: foo [1/3]"
	if got := s.Left(); got != "Find: foo [1/3]" {
		t.Fatalf("left while searching = %q", got)
	}
	s.Message = "nothing left to undo"
	if got := s.Left(); got != "nothing left to undo" {
		t.Fatalf("message should win, got %q", got)
	}

	screen := newScreen(t)
	s.Render(screen, 0, 0, 80)
	if row := rowText(screen, 0, 80); !strings.HasPrefix(row, " EDIT  nothing left to undo") {
		t.Fatalf("unexpected status row %q", row)
	}
}

func TestPromptNumericEditing(t *testing.T) {
	p := NewPrompt("Go to line: ")
	p.Numeric = true
	var submitted string
	p.OnSubmit = func(v string) { submitted = v }

	for _, r := range "1x2" {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	p.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	p.HandleKey(tcell.NewEventKey(tcell.KeyRune, '5', tcell.ModNone))
	p.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if submitted != "152" {
		t.Fatalf("submitted %q", submitted)
	}
}

func TestPromptCancel(t *testing.T) {
	p := NewPrompt("Open: ")
	cancelled := false
	p.OnCancel = func() { cancelled = true }
	p.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !cancelled {
		t.Fatal("escape should cancel")
	}
	if p.HandleKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)) {
		t.Fatal("unbound keys should not be consumed")
	}
}

func TestHelpScrollsAndCloses(t *testing.T) {
	screen := newScreen(t)
	h := NewHelp("Keys", []HelpSection{
		{Title: "One", Entries: []HelpEntry{{"a", "first"}, {"b", "second"}, {"c", "third"}}},
		{Title: "Two", Entries: []HelpEntry{{"d", "fourth"}}},
	})
	closed := false
	h.OnClose = func() { closed = true }

	// A 40x8 area gives a 38x6 box at (1,1) with two visible rows.
	h.Render(screen, 0, 0, 40, 8)
	for y, want := range map[int]string{1: " Keys ", 3: "One", 4: "a : first"} {
		if row := rowText(screen, y, 40); !strings.Contains(row, want) {
			t.Fatalf("row %d = %q, want %q", y, row, want)
		}
	}

	h.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	h.Render(screen, 0, 0, 40, 8)
	if row := rowText(screen, 3, 40); !strings.Contains(row, "a : first") {
		t.Fatalf("after scrolling row 3 = %q", row)
	}

	for i := 0; i < 10; i++ {
		h.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	}
	if h.scroll != 5 {
		t.Fatalf("scroll should stop at the last page, got %d", h.scroll)
	}

	if !h.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) || !closed {
		t.Fatal("escape should close the overlay")
	}
}
