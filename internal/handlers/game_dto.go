package handlers

import (
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// CreateNewGameDTO holds optional board parameters. Zero fields fall back to
// the configured board.
type CreateNewGameDTO struct {
	Width     int `schema:"width"`
	Height    int `schema:"height"`
	MineCount int `schema:"mine_count"`
}

func ParseCreateNewGameDTO(src map[string][]string, defaults mines.GameParams) (mines.GameParams, error) {
	dto := CreateNewGameDTO{
		Width:     defaults.Width,
		Height:    defaults.Height,
		MineCount: defaults.MineCount,
	}
	err := decoder.Decode(&dto, src)
	return mines.GameParams(dto), err
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionId     string     `json:"game_session_id"`
	FirstMoveConsumed bool       `json:"first_move_consumed"`
	View              mines.View `json:"view"`
	StartedAt         int64      `json:"started_at"`
	EndedAt           *int64     `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(gs *repository.GameSession) *GameSessionDTO {
	return &GameSessionDTO{
		GameSessionId:     gs.GameSessionID.String(),
		FirstMoveConsumed: gs.State.FirstMoveConsumed(),
		View:              gs.State.View(),
		StartedAt:         gs.StartedAt.UnixMilli(),
		EndedAt:           unixMilli(gs.EndedAt),
	}
}

type MoveDTO struct {
	Move       string          `json:"move"`
	Outcome    *mines.Outcome  `json:"outcome,omitempty"`
	Visibility string          `json:"visibility,omitempty"`
	Session    *GameSessionDTO `json:"session"`
}

func unixMilli(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
