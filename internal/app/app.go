package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

type App struct {
	logger *logrus.Logger
	config *config.Config
	router chi.Router
	repo   *repository.Store
	ws     *config.WebSocket
}

func New(logger *logrus.Logger, c *config.Config) *App {
	app := &App{
		logger: logger,
		config: c,
		router: chi.NewRouter(),
		repo: repository.New(func() mines.Source {
			return mines.NewSource()
		}),
		ws: config.NewWebSocket(),
	}
	app.loadRoutes()
	return app
}

// Handler returns the router wrapped in the server middleware.
func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.logger),
		middleware.Cors(),
	)
}

// Start serves until ctx is cancelled, then shuts down gracefully. Idle
// sessions are swept in the background while serving.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.config.Addr,
		Handler:      a.Handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Infof("minesweeper server listening at %s", a.config.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		ttl := a.config.SessionTTL.Duration
		return a.repo.Janitor(gCtx, ttl, max(ttl/2, time.Second), func(n int) {
			a.logger.WithField("count", n).Info("dropped idle sessions")
		})
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout.Duration)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
