package input

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{line: "o 3 4", want: Command{Move: Open, X: 3, Y: 4}},
		{line: "  O 0 9 ", want: Command{Move: Open, X: 0, Y: 9}},
		{line: "f 1 2", want: Command{Move: Flag, X: 1, Y: 2}},
		{line: "5 6", want: Command{Move: Open, X: 5, Y: 6}},
		{line: "-1 6", want: Command{Move: Open, X: -1, Y: 6}},
		{line: "q", want: Command{Move: Quit}},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			got, err := Parse(test.line)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse("x 1 2")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = Parse("o 1")
	assert.ErrorIs(t, err, ErrArgCount)

	_, err = Parse("q 1")
	assert.ErrorIs(t, err, ErrArgCount)

	_, err = Parse("o a 1")
	assert.EqualError(t, err, "first argument must be an int")

	_, err = Parse("f 1 b")
	assert.EqualError(t, err, "second argument must be an int")
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("OPEN")
	require.NoError(t, err)
	assert.Equal(t, Open, m)

	m, err = ParseMove("f")
	require.NoError(t, err)
	assert.Equal(t, Flag, m)

	_, err = ParseMove("chord")
	assert.Error(t, err)
}

func TestLines(t *testing.T) {
	got := slices.Collect(Lines("o 1 1\n\n f 2 2 \nq"))
	assert.Equal(t, []string{"o 1 1", "f 2 2", "q"}, got)
	assert.Empty(t, slices.Collect(Lines("")))
}
