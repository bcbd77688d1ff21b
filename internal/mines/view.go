package mines

import "encoding/json"

// CellView is what a renderer may know about a cell: its visibility, and its
// content only once revealed.
type CellView struct {
	visibility Visibility
	content    Content
}

func (c CellView) Visibility() Visibility { return c.visibility }

// Content returns the content of a revealed cell. ok is false for hidden and
// flagged cells.
func (c CellView) Content() (content Content, ok bool) {
	if c.visibility != Revealed {
		return Content{}, false
	}
	return c.content, true
}

type cellViewJSON struct {
	Visibility Visibility `json:"visibility"`
	Content    *Content   `json:"content,omitempty"`
}

func (c CellView) MarshalJSON() ([]byte, error) {
	v := cellViewJSON{Visibility: c.visibility}
	if content, ok := c.Content(); ok {
		v.Content = &content
	}
	return json.Marshal(v)
}

// View is a read-only snapshot of a session for rendering.
type View struct {
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	MineCount int          `json:"mine_count"`
	State     SessionState `json:"state"`
	Cells     []CellView   `json:"cells"`
}

// At returns the cell at x, y. Coordinates must be on the board.
func (v View) At(x, y int) CellView {
	return v.Cells[y*v.Width+x]
}

func (s *Session) View() View {
	v := View{
		Width:     s.params.Width,
		Height:    s.params.Height,
		MineCount: s.params.MineCount,
		State:     s.state,
	}
	if s.board == nil {
		return v
	}
	v.Cells = make([]CellView, len(s.board.cells))
	for i, c := range s.board.cells {
		v.Cells[i] = CellView{visibility: c.Visibility}
		if c.Visibility == Revealed {
			v.Cells[i].content = c.Content
		}
	}
	return v
}
