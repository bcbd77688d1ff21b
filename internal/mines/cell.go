package mines

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type ContentKind uint8

const (
	KindBlank ContentKind = iota
	KindMine
	KindNumbered
)

func (k ContentKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindMine:
		return "mine"
	case KindNumbered:
		return "numbered"
	default:
		return "ContentKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Content is what a cell holds. It is fixed once the board is generated.
// Count is meaningful only for KindNumbered and is in 1..8.
type Content struct {
	Kind  ContentKind
	Count int
}

var (
	Blank = Content{Kind: KindBlank}
	Mine  = Content{Kind: KindMine}
)

// Numbered returns the content of a cell with n mined neighbours. Zero
// neighbours is a blank cell.
func Numbered(n int) Content {
	if n <= 0 {
		return Blank
	}
	return Content{Kind: KindNumbered, Count: n}
}

func (c Content) IsMine() bool { return c.Kind == KindMine }

func (c Content) String() string {
	switch c.Kind {
	case KindBlank:
		return "blank"
	case KindMine:
		return "mine"
	case KindNumbered:
		return fmt.Sprintf("numbered(%d)", c.Count)
	default:
		return c.Kind.String()
	}
}

type contentJSON struct {
	Kind  string `json:"kind"`
	Count int    `json:"count,omitempty"`
}

func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(contentJSON{Kind: c.Kind.String(), Count: c.Count})
}

type Visibility uint8

const (
	Hidden Visibility = iota
	Revealed
	Flagged
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "Visibility(" + strconv.Itoa(int(v)) + ")"
	}
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

type Cell struct {
	Content    Content
	Visibility Visibility
}
