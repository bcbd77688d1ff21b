package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/repository"
)

type StatusHandler struct {
	logger *logrus.Logger
	repo   *repository.Store
}

func NewStatusHandler(logger *logrus.Logger, repo *repository.Store) *StatusHandler {
	return &StatusHandler{logger: logger, repo: repo}
}

type StatusDTO struct {
	Sessions int `json:"sessions"`
}

func (h StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.logger, StatusDTO{Sessions: h.repo.Len()})
}
