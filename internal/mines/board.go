package mines

import (
	"fmt"
	"iter"
	"strings"
)

// Board is a fixed-size grid of cells stored row-major. Contents are set by
// Generate and never change afterwards; only visibility moves.
type Board struct {
	params GameParams
	cells  []Cell
}

func newBoard(params GameParams) *Board {
	return &Board{
		params: params,
		cells:  make([]Cell, params.Width*params.Height),
	}
}

func (b *Board) Params() GameParams { return b.params }
func (b *Board) Width() int         { return b.params.Width }
func (b *Board) Height() int        { return b.params.Height }
func (b *Board) MineCount() int     { return b.params.MineCount }

func (b *Board) index(x, y int) int {
	return y*b.params.Width + x
}

// Cell returns a copy of the cell at x, y.
func (b *Board) Cell(x, y int) (Cell, error) {
	if err := b.params.checkPosition(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(x, y)], nil
}

func (b *Board) content(x, y int) Content {
	return b.cells[b.index(x, y)].Content
}

// neighbours yields the indices of the Moore neighbourhood of x, y that lie
// on the board, excluding x, y itself.
func (b *Board) neighbours(x, y int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				xx, yy := x+dx, y+dy
				if !b.params.InBounds(xx, yy) {
					continue
				}
				if !yield(b.index(xx, yy)) {
					return
				}
			}
		}
	}
}

func (b *Board) countMines(x, y int) (n int) {
	for i := range b.neighbours(x, y) {
		if b.cells[i].Content.IsMine() {
			n++
		}
	}
	return
}

func (b *Board) placeNumbers() {
	for y := range b.params.Height {
		for x := range b.params.Width {
			i := b.index(x, y)
			if b.cells[i].Content.IsMine() {
				continue
			}
			b.cells[i].Content = Numbered(b.countMines(x, y))
		}
	}
}

func (b *Board) reveal(x, y int) Cell {
	i := b.index(x, y)
	b.cells[i].Visibility = Revealed
	return b.cells[i]
}

func (b *Board) toggleFlag(x, y int) (Visibility, error) {
	c := &b.cells[b.index(x, y)]
	switch c.Visibility {
	case Hidden:
		c.Visibility = Flagged
	case Flagged:
		c.Visibility = Hidden
	default:
		return c.Visibility, ErrCellRevealed
	}
	return c.Visibility, nil
}

// copyFlags carries flags of a discarded board over to b. Both boards must
// share dimensions.
func (b *Board) copyFlags(from *Board) {
	for i, c := range from.cells {
		if c.Visibility == Flagged {
			b.cells[i].Visibility = Flagged
		}
	}
}

// String prints the full layout, mines included. Debug output only.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.params.Height {
		for x := range b.params.Width {
			c := b.cells[b.index(x, y)].Content
			switch c.Kind {
			case KindMine:
				sb.WriteString("* ")
			case KindNumbered:
				fmt.Fprintf(&sb, "%d ", c.Count)
			default:
				sb.WriteString("- ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
