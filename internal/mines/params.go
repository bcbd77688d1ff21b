package mines

import (
	"fmt"
	"math"
	"strings"
)

// Board dimensions of the classic game.
const (
	DefaultWidth     = 10
	DefaultHeight    = 10
	DefaultMineCount = 10
)

type GameParams struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func DefaultParams() GameParams {
	return GameParams{Width: DefaultWidth, Height: DefaultHeight, MineCount: DefaultMineCount}
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Seed encodes the parameters as "width:height:mines".
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate reports a *ConfigError unless mines fit the board with at least
// one free cell left.
func (p GameParams) Validate() error {
	w, h, mc := p.Unpack()
	if w <= 0 || h <= 0 || mc < 0 || w > math.MaxInt/h || mc >= w*h {
		return &ConfigError{Params: p}
	}
	return nil
}

// ValidateLimit is Validate with an upper bound on the number of cells.
// A maxCells of zero or less means no bound.
func (p GameParams) ValidateLimit(maxCells int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if maxCells > 0 && p.Width*p.Height > maxCells {
		return &ConfigError{Params: p, MaxCells: maxCells}
	}
	return nil
}

func (p GameParams) InBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) checkPosition(x, y int) error {
	if !p.InBounds(x, y) {
		return &PositionError{X: x, Y: y, Width: p.Width, Height: p.Height}
	}
	return nil
}
