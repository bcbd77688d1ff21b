// Package render draws a session view as text.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	GlyphHidden = '-'
	GlyphFlag   = 'P'
	GlyphBlank  = ' '
	GlyphMine   = 'X'
)

// Glyph returns the character a cell is drawn with. Hidden and flagged cells
// never reveal their content.
func Glyph(c mines.CellView) string {
	switch c.Visibility() {
	case mines.Flagged:
		return string(GlyphFlag)
	case mines.Revealed:
		content, _ := c.Content()
		switch content.Kind {
		case mines.KindMine:
			return string(GlyphMine)
		case mines.KindNumbered:
			return strconv.Itoa(content.Count)
		default:
			return string(GlyphBlank)
		}
	default:
		return string(GlyphHidden)
	}
}

// Grid writes the board with a column ruler on top and a row ruler on the
// left:
//
//	     0   1
//	     |   |
//	   |=======|
//	 0-| - | 1 |
//	   |---+---|
//	 1-| - | P |
//	   |=======|
func Grid(w io.Writer, v mines.View) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "   ")
	for x := range v.Width {
		fmt.Fprintf(bw, " %2d ", x)
	}
	fmt.Fprintln(bw)

	fmt.Fprint(bw, "   ")
	for range v.Width {
		fmt.Fprint(bw, "  | ")
	}
	fmt.Fprintln(bw)

	for y := range v.Height {
		line(bw, v.Width, y == 0)
		fmt.Fprintf(bw, "%2d-", y)
		for x := range v.Width {
			fmt.Fprintf(bw, "| %s ", Glyph(v.At(x, y)))
		}
		fmt.Fprintln(bw, "|")
	}
	line(bw, v.Width, true)

	return bw.Flush()
}

func line(w io.Writer, width int, border bool) {
	fmt.Fprint(w, "   ")
	for x := range width {
		switch {
		case border && x == 0:
			fmt.Fprint(w, "|===")
		case border:
			fmt.Fprint(w, "====")
		case x == 0:
			fmt.Fprint(w, "|---")
		default:
			fmt.Fprint(w, "+---")
		}
	}
	fmt.Fprintln(w, "|")
}

// Status writes a one-line summary of the session.
func Status(w io.Writer, v mines.View) error {
	_, err := fmt.Fprintf(w, "%dx%d, %d mines, %s\n",
		v.Width, v.Height, v.MineCount, v.State,
	)
	return err
}
