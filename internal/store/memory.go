package store

import (
	"context"
	"sync"

	"bir-schedule/internal/domain"
)

// MemoryStore keeps the master schedule in process memory. Load and Commit
// deep-copy, so callers can mutate what they get back without corrupting the
// stored state.
type MemoryStore struct {
	mu     sync.RWMutex
	master *domain.Master
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*domain.Master, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.master == nil {
		return nil, nil
	}
	return copyMaster(s.master), nil
}

func (s *MemoryStore) Commit(ctx context.Context, m *domain.Master) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.master = copyMaster(m)
	return nil
}

func copyMaster(m *domain.Master) *domain.Master {
	out := &domain.Master{
		Games:      make([]domain.Game, len(m.Games)),
		LastSynced: make(map[string]string, len(m.LastSynced)),
	}
	for i, g := range m.Games {
		out.Games[i] = copyGame(g)
	}
	for k, v := range m.LastSynced {
		out.LastSynced[k] = v
	}
	return out
}

func copyGame(g domain.Game) domain.Game {
	g.HomeTeam.Score = copyScore(g.HomeTeam.Score)
	g.AwayTeam.Score = copyScore(g.AwayTeam.Score)
	if g.Venue != nil {
		venue := *g.Venue
		g.Venue = &venue
	}
	return g
}

func copyScore(s *int) *int {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
