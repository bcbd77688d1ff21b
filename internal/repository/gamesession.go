package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

var ErrNoSession = errors.New("game session not found")

// GameSession is a live session held in memory. Fields are guarded by the
// session's own lock, taken by WithSession.
type GameSession struct {
	mu sync.Mutex

	GameSessionID uuid.UUID
	State         *mines.Session
	StartedAt     time.Time
	EndedAt       *time.Time
	UpdatedAt     time.Time
}

// Store keeps game sessions in memory. Nothing survives a restart.
type Store struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*GameSession
	newSource func() mines.Source
	now       func() time.Time
}

func New(newSource func() mines.Source) *Store {
	return &Store{
		sessions:  make(map[uuid.UUID]*GameSession),
		newSource: newSource,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateGameSession starts a session on a fresh board and returns its id.
// Every session owns its randomness source.
func (s *Store) CreateGameSession(params mines.GameParams) (uuid.UUID, error) {
	state := mines.NewSession(s.newSource())
	if err := state.Start(params); err != nil {
		return uuid.Nil, err
	}

	now := s.now()
	session := &GameSession{
		GameSessionID: uuid.New(),
		State:         state,
		StartedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	s.sessions[session.GameSessionID] = session
	s.mu.Unlock()

	return session.GameSessionID, nil
}

func (s *Store) get(id uuid.UUID) (*GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

// WithSession runs fn with exclusive access to the session. The session is
// marked ended once it is lost.
func (s *Store) WithSession(id uuid.UUID, fn func(*GameSession) error) error {
	session, ok := s.get(id)
	if !ok {
		return ErrNoSession
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	err := fn(session)

	now := s.now()
	session.UpdatedAt = now
	if session.EndedAt == nil && session.State.State() == mines.Lost {
		session.EndedAt = &now
	}
	return err
}

func (s *Store) DeleteSession(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNoSession
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions not touched within ttl and returns how many went.
// Sessions locked by WithSession are in use and are left alone.
func (s *Store) Sweep(ttl time.Duration) int {
	deadline := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, session := range s.sessions {
		if !session.mu.TryLock() {
			continue
		}
		stale := session.UpdatedAt.Before(deadline)
		session.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Janitor sweeps every interval until ctx is done. onSweep is called with
// the number of dropped sessions when it is not zero.
func (s *Store) Janitor(ctx context.Context, ttl, interval time.Duration, onSweep func(int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(ttl); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
