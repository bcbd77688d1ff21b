package mines

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrOutOfBounds          = errors.New("position out of bounds")
	ErrSessionTerminated    = errors.New("session terminated")
	ErrNotStarted           = errors.New("session not started")
	ErrCellRevealed         = errors.New("cell already revealed")
)

// ConfigError reports the parameters a board could not be built from.
type ConfigError struct {
	Params GameParams
	// MaxCells is set when the board was refused for its size alone.
	MaxCells int
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	p := e.Params
	switch {
	case p.Width <= 0:
		return fmt.Sprintf("%s: width %d", ErrInvalidConfiguration, p.Width)
	case p.Height <= 0:
		return fmt.Sprintf("%s: height %d", ErrInvalidConfiguration, p.Height)
	case p.MineCount < 0:
		return fmt.Sprintf("%s: negative mine count %d", ErrInvalidConfiguration, p.MineCount)
	case p.Width > math.MaxInt/p.Height:
		return fmt.Sprintf("%s: %dx%d board is too large", ErrInvalidConfiguration, p.Width, p.Height)
	case e.MaxCells > 0:
		return fmt.Sprintf("%s: %dx%d board exceeds %d cells",
			ErrInvalidConfiguration, p.Width, p.Height, e.MaxCells,
		)
	default:
		return fmt.Sprintf("%s: %d mines do not fit a %dx%d board",
			ErrInvalidConfiguration, p.MineCount, p.Width, p.Height,
		)
	}
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// PositionError reports coordinates outside of a board.
type PositionError struct {
	X, Y          int
	Width, Height int
}

// [PositionError] implements [error]
func (e *PositionError) Error() string {
	return fmt.Sprintf("%s: (%d, %d) on a %dx%d board",
		ErrOutOfBounds, e.X, e.Y, e.Width, e.Height,
	)
}

func (e *PositionError) Unwrap() error { return ErrOutOfBounds }
