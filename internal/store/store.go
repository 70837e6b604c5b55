package store

import (
	"context"

	"bir-schedule/internal/domain"
)

// Store persists the master schedule as a single document. Load returns nil
// when nothing has been committed yet. Commit replaces the whole persisted
// state; merging is the caller's job, the store does no deduplication.
type Store interface {
	Load(ctx context.Context) (*domain.Master, error)
	Commit(ctx context.Context, m *domain.Master) error
}
