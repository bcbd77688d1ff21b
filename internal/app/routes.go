package app

import (
	"github.com/go-chi/chi/v5"

	"github.com/vancomm/minesweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.repo, a.ws, a.config.Board.Params(), a.config.Board.MaxCells,
	)
	status := handlers.NewStatusHandler(a.logger, a.repo)

	a.router.Get("/status", status.Status)
	a.router.Route("/game", func(r chi.Router) {
		r.Post("/", game.NewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", game.Fetch)
			r.Delete("/", game.Delete)
			r.Post("/move", game.MakeAMove)
			r.Get("/connect", game.ConnectWS)
		})
	})
}
