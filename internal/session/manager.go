package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameSession
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameSession)}
}

func (m *Manager) NewGame(opts Options) *GameSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	g := newSession(id, opts)
	m.games[id] = g
	return g
}

func (m *Manager) Get(id string) (*GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
