package profile

import (
	"errors"
	"sync"

	"backend-alpsconnect/internal/domain"
)

var ErrClientNotFound = errors.New("client not found")

// Store holds the guide and client profiles of the current snapshot.
type Store struct {
	mu      sync.RWMutex
	guide   domain.Guide
	clients []domain.Client
}

func NewStore() *Store {
	return &Store{clients: []domain.Client{}}
}

func (s *Store) Replace(guide domain.Guide, clients []domain.Client) {
	next := make([]domain.Client, len(clients))
	for i, c := range clients {
		next[i] = c.Clone()
	}
	s.mu.Lock()
	s.guide = guide
	s.clients = next
	s.mu.Unlock()
}

func (s *Store) Guide() domain.Guide {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guide
}

func (s *Store) Client(id string) (domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return domain.Client{}, ErrClientNotFound
}

func (s *Store) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Client, len(s.clients))
	for i, c := range s.clients {
		out[i] = c.Clone()
	}
	return out
}
