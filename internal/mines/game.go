package mines

import (
	"strconv"

	"github.com/sirupsen/logrus"
)

type SessionState uint8

const (
	NotStarted SessionState = iota
	InProgress
	Lost
)

func (s SessionState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Lost:
		return "lost"
	default:
		return "SessionState(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Result uint8

const (
	Safe Result = iota
	Exploded
)

func (r Result) String() string {
	if r == Exploded {
		return "exploded"
	}
	return "safe"
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Outcome is the result of a reveal. Content is what the revealed cell holds.
type Outcome struct {
	Result  Result  `json:"result"`
	Content Content `json:"content"`
}

func (o Outcome) Safe() bool { return o.Result == Safe }

func (o Outcome) String() string {
	if o.Result == Exploded {
		return "mine"
	}
	return "safe(" + o.Content.String() + ")"
}

// maxRedeals bounds the plain redeals of a first move. Past it the board is
// dealt with the accepted cells kept clear of mines.
const maxRedeals = 64

// Session is one play-through: a board plus the rules for revealing it.
// A Session is not safe for concurrent use.
type Session struct {
	rnd    Source
	params GameParams
	board  *Board
	state  SessionState

	firstMoveConsumed bool
	regenerations     int
}

func NewSession(rnd Source) *Session {
	return &Session{rnd: rnd}
}

// Start deals a new board. It may be called again on a lost session to play
// another round with the same randomness source.
func (s *Session) Start(params GameParams) error {
	board, err := Generate(params, s.rnd)
	if err != nil {
		return err
	}
	s.params = params
	s.board = board
	s.state = InProgress
	s.firstMoveConsumed = false
	s.regenerations = 0
	return nil
}

func (s *Session) State() SessionState     { return s.state }
func (s *Session) Params() GameParams      { return s.params }
func (s *Session) FirstMoveConsumed() bool { return s.firstMoveConsumed }

// Regenerations is the number of boards thrown away to make the first move
// land on a blank cell.
func (s *Session) Regenerations() int { return s.regenerations }

func (s *Session) checkMove(x, y int) error {
	switch s.state {
	case NotStarted:
		return ErrNotStarted
	case Lost:
		return ErrSessionTerminated
	}
	return s.params.checkPosition(x, y)
}

// Reveal exposes the cell at x, y. The first reveal of a session never hits
// a mine: boards are redealt until the target is blank.
func (s *Session) Reveal(x, y int) (Outcome, error) {
	if err := s.checkMove(x, y); err != nil {
		return Outcome{}, err
	}

	if !s.firstMoveConsumed {
		return s.revealFirst(x, y), nil
	}

	cell := s.board.reveal(x, y)
	if cell.Content.IsMine() {
		s.state = Lost
		return Outcome{Result: Exploded, Content: Mine}, nil
	}
	return Outcome{Result: Safe, Content: cell.Content}, nil
}

func (s *Session) revealFirst(x, y int) Outcome {
	accept := func(c Content) bool { return c == Blank }
	keep := s.params.block(x, y)
	if !s.params.blankPossible(x, y) {
		// Every layout puts a mine next to x, y. Settle for no mine on it.
		accept = func(c Content) bool { return !c.IsMine() }
		keep = []int{y*s.params.Width + x}
	}

	for !accept(s.board.content(x, y)) {
		var board *Board
		if s.regenerations < maxRedeals {
			// params were validated by Start
			board, _ = Generate(s.params, s.rnd)
		} else {
			board = generateAvoiding(s.params, s.rnd, keep)
		}
		board.copyFlags(s.board)
		s.board = board
		s.regenerations++
	}

	Log.WithFields(logrus.Fields{
		"x":             x,
		"y":             y,
		"params":        s.params.Seed(),
		"regenerations": s.regenerations,
	}).Debug("first move")

	cell := s.board.reveal(x, y)
	s.firstMoveConsumed = true
	return Outcome{Result: Safe, Content: cell.Content}
}

// Flag toggles a flag on a hidden cell.
func (s *Session) Flag(x, y int) (Visibility, error) {
	if err := s.checkMove(x, y); err != nil {
		return Hidden, err
	}
	return s.board.toggleFlag(x, y)
}

// block returns the cell indices of the 3x3 block around x, y clamped to
// the board.
func (p GameParams) block(x, y int) []int {
	var cells []int
	for yy := max(y-1, 0); yy <= min(y+1, p.Height-1); yy++ {
		for xx := max(x-1, 0); xx <= min(x+1, p.Width-1); xx++ {
			cells = append(cells, yy*p.Width+xx)
		}
	}
	return cells
}

// blankPossible reports whether some layout leaves the whole 3x3 block
// around x, y free of mines.
func (p GameParams) blankPossible(x, y int) bool {
	return p.Width*p.Height-len(p.block(x, y)) >= p.MineCount
}
