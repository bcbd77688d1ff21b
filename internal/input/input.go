// Package input parses player commands typed as text.
package input

import (
	"errors"
	"iter"
	"strconv"
	"strings"
)

type Move uint8

const (
	Open Move = iota + 1
	Flag
	Quit
)

func (m Move) String() string {
	switch m {
	case Open:
		return "open"
	case Flag:
		return "flag"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

type Command struct {
	Move Move
	X, Y int
}

var (
	ErrEmpty          = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"o": 2,
	"f": 2,
	"q": 0,
}

var commandMoves = map[string]Move{
	"o": Open,
	"f": Flag,
	"q": Quit,
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// Parse reads one command: "o x y" opens, "f x y" toggles a flag, "q"
// quits, and a bare "x y" opens. Coordinates are not range checked.
func Parse(line string) (Command, error) {
	parts := strings.Fields(strings.ToLower(line))
	if len(parts) == 0 {
		return Command{}, ErrEmpty
	}

	if len(parts) == 2 {
		if x, y, err := parseXY(parts); err == nil {
			return Command{Move: Open, X: x, Y: y}, nil
		}
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return Command{}, ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return Command{}, ErrArgCount
	}

	cmd := Command{Move: commandMoves[parts[0]]}
	if nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.X, cmd.Y = x, y
	}
	return cmd, nil
}

// ParseMove maps a move name to a Move.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(s) {
	case "open", "o":
		return Open, nil
	case "flag", "f":
		return Flag, nil
	default:
		return 0, errors.New("move must be one of 'open', 'flag'")
	}
}

// Lines yields the non-blank lines of a multi-command message.
func Lines(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest, found := s, true
		var piece string
		for found {
			piece, rest, found = strings.Cut(rest, "\n")
			if piece = strings.TrimSpace(piece); piece == "" {
				continue
			}
			if !yield(piece) {
				return
			}
		}
	}
}
