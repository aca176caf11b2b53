package editor

type splitDir int

const (
	splitNone splitDir = iota
	// splitHorizontal stacks panes top to bottom.
	splitHorizontal
	// splitVertical places panes side by side.
	splitVertical
)

type rect struct {
	x, y, w, h int
}

// pane is a view onto one open file. Several panes may show the same file.
type pane struct {
	f       *file
	scrollY int
	scrollX int
	frame   rect // gutter and text, set on render
	area    rect // text only
}

// layoutPanes divides area among n panes, leaving one cell between
// neighbours for a divider. The last pane absorbs any remainder.
func layoutPanes(area rect, n int, dir splitDir) (panes []rect, dividers []rect) {
	if n <= 1 || dir == splitNone {
		return []rect{area}, nil
	}

	total := area.h
	if dir == splitVertical {
		total = area.w
	}
	size := (total - (n - 1)) / n
	if size < 1 {
		size = 1
	}

	at := 0
	for i := 0; i < n; i++ {
		s := size
		if i == n-1 {
			s = max(total-at, 0)
		}
		if dir == splitVertical {
			panes = append(panes, rect{area.x + at, area.y, s, area.h})
			if i < n-1 {
				dividers = append(dividers, rect{area.x + at + s, area.y, 1, area.h})
			}
		} else {
			panes = append(panes, rect{area.x, area.y + at, area.w, s})
			if i < n-1 {
				dividers = append(dividers, rect{area.x, area.y + at + s, area.w, 1})
			}
		}
		at += s + 1
	}
	return panes, dividers
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}
