package mines

import (
	"hash/maphash"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Source provides uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG generator seeded from the clock.
func NewSource() *rand.Rand {
	return rand.New(rand.NewPCG(
		uint64(time.Now().UnixNano()), new(maphash.Hash).Sum64(),
	))
}

// Generate builds a board with params.MineCount mines placed uniformly at
// random and every other cell numbered with its mined neighbours.
func Generate(params GameParams, rnd Source) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := newBoard(params)

	/*
	 * Rejection sampling degrades as the board fills up, so dense boards
	 * pick from the list of free cells instead. Both are uniform.
	 */
	if 2*params.MineCount <= len(b.cells) {
		b.placeMinesRejecting(rnd)
	} else {
		candidates := make([]int, len(b.cells))
		for i := range candidates {
			candidates[i] = i
		}
		b.placeMinesFrom(rnd, candidates)
	}

	b.placeNumbers()

	if Log.IsLevelEnabled(logrus.TraceLevel) {
		Log.WithField("params", params.Seed()).Trace("generated board\n" + b.String())
	}

	return b, nil
}

func (b *Board) placeMinesRejecting(rnd Source) {
	w, h, mineCount := b.params.Unpack()
	for n := range mineCount {
		x, y := rnd.IntN(w), rnd.IntN(h)
		for b.content(x, y).IsMine() {
			x, y = rnd.IntN(w), rnd.IntN(h)
		}
		Log.WithFields(logrus.Fields{"n": n, "x": x, "y": y}).Trace("placed mine")
		b.cells[b.index(x, y)].Content = Mine
	}
}

// generateAvoiding deals a board with no mine on any cell in keep. Every such
// layout is equally likely. keep must leave room for params.MineCount mines.
func generateAvoiding(params GameParams, rnd Source, keep []int) *Board {
	b := newBoard(params)

	candidates := make([]int, 0, len(b.cells)-len(keep))
	for i := range b.cells {
		if !slices.Contains(keep, i) {
			candidates = append(candidates, i)
		}
	}
	b.placeMinesFrom(rnd, candidates)
	b.placeNumbers()

	Log.WithFields(logrus.Fields{
		"params": params.Seed(),
		"keep":   keep,
	}).Trace("generated board around kept cells")

	return b
}

// placeMinesFrom mines params.MineCount distinct cells drawn from candidates,
// which it reorders.
func (b *Board) placeMinesFrom(rnd Source, candidates []int) {
	k := len(candidates)
	for range b.params.MineCount {
		i := rnd.IntN(k)
		b.cells[candidates[i]].Content = Mine
		k--
		candidates[i] = candidates[k]
	}
}
