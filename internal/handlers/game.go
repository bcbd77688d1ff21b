package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/input"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

type GameHandler struct {
	logger   *logrus.Logger
	repo     *repository.Store
	ws       *config.WebSocket
	defaults mines.GameParams
	maxCells int
}

func NewGameHandler(
	logger *logrus.Logger,
	repo *repository.Store,
	ws *config.WebSocket,
	defaults mines.GameParams,
	maxCells int,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		repo:     repo,
		ws:       ws,
		defaults: defaults,
		maxCells: maxCells,
	}
}

// statusFor maps engine and store errors to response codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, mines.ErrSessionTerminated),
		errors.Is(err, mines.ErrNotStarted):
		return http.StatusConflict
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, mines.ErrCellRevealed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		g.logger.WithError(err).Error("request failed")
	}
	sendErrorOrLog(w, g.logger, status, err)
}

func parseSessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid game session id: %w", err)
	}
	return id, nil
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseCreateNewGameDTO(r.URL.Query(), g.defaults)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err := params.ValidateLimit(g.maxCells); err != nil {
		g.fail(w, err)
		return
	}

	id, err := g.repo.CreateGameSession(params)
	if err != nil {
		g.fail(w, err)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"game_session_id": id,
		"params":          params.Seed(),
	}).Debug("created game session")

	var dto *GameSessionDTO
	_ = g.repo.WithSession(id, func(gs *repository.GameSession) error {
		dto = NewGameSessionDTO(gs)
		return nil
	})
	if dto == nil {
		g.fail(w, repository.ErrNoSession)
		return
	}
	sendStatusJSONOrLog(w, g.logger, http.StatusCreated, dto)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	var dto *GameSessionDTO
	err = g.repo.WithSession(id, func(gs *repository.GameSession) error {
		dto = NewGameSessionDTO(gs)
		return nil
	})
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.logger, dto)
}

// apply runs one command against a session and describes the result.
func apply(gs *repository.GameSession, cmd input.Command) (*MoveDTO, error) {
	dto := &MoveDTO{Move: cmd.Move.String()}
	switch cmd.Move {
	case input.Open:
		outcome, err := gs.State.Reveal(cmd.X, cmd.Y)
		if err != nil {
			return nil, err
		}
		dto.Outcome = &outcome
	case input.Flag:
		v, err := gs.State.Flag(cmd.X, cmd.Y)
		if err != nil {
			return nil, err
		}
		dto.Visibility = v.String()
	default:
		return nil, fmt.Errorf("move %s is not allowed here", cmd.Move)
	}
	dto.Session = NewGameSessionDTO(gs)
	return dto, nil
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := input.ParseMove(query.Get("move"))
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	id, err := parseSessionID(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	var dto *MoveDTO
	err = g.repo.WithSession(id, func(gs *repository.GameSession) (err error) {
		dto, err = apply(gs, input.Command{Move: move, X: pos.X, Y: pos.Y})
		return err
	})
	if err != nil {
		g.fail(w, err)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"game_session_id": id,
		"move":            dto.Move,
		"x":               pos.X,
		"y":               pos.Y,
		"state":           dto.Session.View.State,
	}).Debug("move")

	sendJSONOrLog(w, g.logger, dto)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err := g.repo.DeleteSession(id); err != nil {
		g.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConnectWS plays a session over a websocket. Each text message holds one or
// more newline separated commands; every command is answered with a MoveDTO
// or an error object.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err := g.repo.WithSession(id, func(*repository.GameSession) error { return nil }); err != nil {
		g.fail(w, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()
	c.SetReadLimit(g.ws.ReadLimit)

	log := g.logger.WithField("game_session_id", id)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			return
		}
		if mt != websocket.TextMessage {
			log.WithField("type", mt).Warn("unexpected message type")
			return
		}

		for line := range input.Lines(string(message)) {
			log.Debug("\t> ", line)
			var reply any
			cmd, err := input.Parse(line)
			if err == nil {
				err = g.repo.WithSession(id, func(gs *repository.GameSession) (err error) {
					reply, err = apply(gs, cmd)
					return err
				})
			}
			if err != nil {
				reply = wrapError(err)
			}

			c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
			if err := c.WriteJSON(reply); err != nil {
				log.WithError(err).Error("write")
				return
			}
		}
	}
}
