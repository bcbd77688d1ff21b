package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

// fixed draws: the only mine lands on (1,1)
type fixed []int

func (f *fixed) IntN(n int) int {
	if len(*f) == 0 {
		return 0
	}
	v := (*f)[0]
	*f = (*f)[1:]
	return v % n
}

func newSession(t *testing.T, draws ...int) *mines.Session {
	t.Helper()
	src := fixed(draws)
	s := mines.NewSession(&src)
	require.NoError(t, s.Start(mines.GameParams{Width: 4, Height: 4, MineCount: 1}))
	return s
}

func TestGridHiddenBoard(t *testing.T) {
	s := newSession(t, 1, 1)

	var buf bytes.Buffer
	require.NoError(t, Grid(&buf, s.View()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2+4*2+1)
	assert.Equal(t, "     0   1   2   3 ", lines[0])
	assert.Equal(t, "   |===============|", lines[2])
	assert.Equal(t, " 0-| - | - | - | - |", lines[3])
	assert.Equal(t, "   |---+---+---+---|", lines[4])
	assert.Equal(t, "   |===============|", lines[len(lines)-1])
	assert.NotContains(t, buf.String(), "X")
}

func TestGridRevealedCells(t *testing.T) {
	s := newSession(t, 1, 1)
	_, err := s.Reveal(3, 3)
	require.NoError(t, err)
	_, err = s.Reveal(2, 2)
	require.NoError(t, err)
	_, err = s.Flag(0, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Grid(&buf, s.View()))
	lines := strings.Split(buf.String(), "\n")

	assert.Equal(t, " 0-| P | - | - | - |", lines[3])
	assert.Equal(t, " 2-| - | - | 1 | - |", lines[7])
	assert.Equal(t, " 3-| - | - | - |   |", lines[9])

	_, err = s.Reveal(1, 1)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, Grid(&buf, s.View()))
	assert.Contains(t, buf.String(), " 1-| - | X | - | - |")
}

func TestGlyph(t *testing.T) {
	s := newSession(t, 1, 1)
	v := s.View()
	assert.Equal(t, "-", Glyph(v.At(1, 1)))
}

func TestStatus(t *testing.T) {
	s := newSession(t, 1, 1)
	var buf bytes.Buffer
	require.NoError(t, Status(&buf, s.View()))
	assert.Equal(t, "4x4, 1 mines, in_progress\n", buf.String())
}
