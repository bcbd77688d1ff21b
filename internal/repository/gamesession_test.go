package repository

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func newTestStore() *Store {
	var seed uint64
	var mu sync.Mutex
	return New(func() mines.Source {
		mu.Lock()
		defer mu.Unlock()
		seed++
		return rand.New(rand.NewPCG(seed, seed))
	})
}

func TestCreateAndPlay(t *testing.T) {
	s := newTestStore()
	id, err := s.CreateGameSession(mines.DefaultParams())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, 1, s.Len())

	err = s.WithSession(id, func(gs *GameSession) error {
		assert.Equal(t, id, gs.GameSessionID)
		outcome, err := gs.State.Reveal(0, 0)
		require.NoError(t, err)
		assert.Equal(t, mines.Blank, outcome.Content)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateInvalidParams(t *testing.T) {
	s := newTestStore()
	_, err := s.CreateGameSession(mines.GameParams{Width: 2, Height: 2, MineCount: 4})
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Zero(t, s.Len())
}

func TestWithSessionUnknown(t *testing.T) {
	s := newTestStore()
	err := s.WithSession(uuid.New(), func(*GameSession) error { return nil })
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestWithSessionPassesError(t *testing.T) {
	s := newTestStore()
	id, err := s.CreateGameSession(mines.DefaultParams())
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.WithSession(id, func(*GameSession) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestEndedAtSetOnLoss(t *testing.T) {
	s := newTestStore()
	id, err := s.CreateGameSession(mines.GameParams{Width: 2, Height: 1, MineCount: 1})
	require.NoError(t, err)

	err = s.WithSession(id, func(gs *GameSession) error {
		_, err := gs.State.Reveal(0, 0)
		return err
	})
	require.NoError(t, err)

	// the only other cell is the mine
	err = s.WithSession(id, func(gs *GameSession) error {
		assert.Nil(t, gs.EndedAt)
		outcome, err := gs.State.Reveal(1, 0)
		assert.Equal(t, mines.Exploded, outcome.Result)
		return err
	})
	require.NoError(t, err)

	err = s.WithSession(id, func(gs *GameSession) error {
		assert.NotNil(t, gs.EndedAt)
		_, err := gs.State.Reveal(0, 0)
		return err
	})
	assert.ErrorIs(t, err, mines.ErrSessionTerminated)
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore()
	id, err := s.CreateGameSession(mines.DefaultParams())
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(id))
	assert.ErrorIs(t, s.DeleteSession(id), ErrNoSession)
}

func TestSweep(t *testing.T) {
	s := newTestStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	old, err := s.CreateGameSession(mines.DefaultParams())
	require.NoError(t, err)

	now = now.Add(time.Hour)
	fresh, err := s.CreateGameSession(mines.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 1, s.Sweep(30*time.Minute))
	assert.ErrorIs(t, s.WithSession(old, func(*GameSession) error { return nil }), ErrNoSession)
	assert.NoError(t, s.WithSession(fresh, func(*GameSession) error { return nil }))
}

func TestSweepSkipsBusySession(t *testing.T) {
	s := newTestStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id, err := s.CreateGameSession(mines.DefaultParams())
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	moved := make(chan error, 1)
	go func() {
		moved <- s.WithSession(id, func(*GameSession) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered
	now = now.Add(time.Hour)

	swept := make(chan int, 1)
	go func() { swept <- s.Sweep(30 * time.Minute) }()
	select {
	case n := <-swept:
		assert.Equal(t, 0, n)
	case <-time.After(time.Second):
		t.Fatal("sweep blocked on a busy session")
	}
	assert.Equal(t, 1, s.Len())

	_, err = s.CreateGameSession(mines.DefaultParams())
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-moved)
	assert.Equal(t, 0, s.Sweep(30*time.Minute))
}

func TestSweepWhileMoving(t *testing.T) {
	s := newTestStore()
	id, err := s.CreateGameSession(mines.GameParams{Width: 30, Height: 16, MineCount: 0})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	janitor := make(chan error, 1)
	go func() { janitor <- s.Janitor(ctx, time.Hour, time.Microsecond, nil) }()

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for x := range 30 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for y := range 16 {
					_ = s.WithSession(id, func(gs *GameSession) error {
						_, err := gs.State.Reveal(x, y)
						return err
					})
					_ = s.Len()
				}
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("moves did not finish while sweeping")
	}
	cancel()
	require.NoError(t, <-janitor)
	assert.Equal(t, 1, s.Len())
}

func TestJanitorStops(t *testing.T) {
	s := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Janitor(ctx, time.Minute, time.Millisecond, nil) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestConcurrentMoves(t *testing.T) {
	s := newTestStore()
	id, err := s.CreateGameSession(mines.GameParams{Width: 30, Height: 16, MineCount: 0})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for x := range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithSession(id, func(gs *GameSession) error {
				_, err := gs.State.Reveal(x, 0)
				return err
			})
		}()
	}
	wg.Wait()

	_ = s.WithSession(id, func(gs *GameSession) error {
		view := gs.State.View()
		for x := range 30 {
			assert.Equal(t, mines.Revealed, view.At(x, 0).Visibility())
		}
		return nil
	})
}
