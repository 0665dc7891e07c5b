package repository

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/oggyb/muzz-matching/internal/db"
	svcErr "github.com/oggyb/muzz-matching/internal/errors"
	"github.com/oggyb/muzz-matching/internal/matching"
)

// Store implements matching.Store on top of gorm.
// Swipes and relationships share one connection so that a dismatch can
// change state and purge swipes in a single transaction.
type Store struct {
	db *gorm.DB

	mu     sync.RWMutex
	states map[string]uint64
}

var _ matching.Store = (*Store)(nil)

// NewStore creates a new store bound to the given DB connection.
func NewStore(database *gorm.DB) *Store {
	return &Store{db: database, states: make(map[string]uint64)}
}

// stateID resolves a relationship state name to its row id.
// Missing rows are reported as ErrStateUndefined; state rows are never
// deleted, so hits are cached for the lifetime of the store.
func (s *Store) stateID(ctx context.Context, tx *gorm.DB, name matching.State) (uint64, error) {
	s.mu.RLock()
	id, ok := s.states[string(name)]
	s.mu.RUnlock()
	if ok {
		return id, nil
	}

	var state db.RelationshipState
	err := tx.WithContext(ctx).Where("name = ?", string(name)).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, svcErr.StateUndefined(string(name))
	}
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.states[string(name)] = state.ID
	s.mu.Unlock()
	return state.ID, nil
}

func toRelationship(row db.Relationship) matching.Relationship {
	return matching.Relationship{
		ID:           row.ID,
		FirstUserID:  row.FirstUserID,
		SecondUserID: row.SecondUserID,
		State:        matching.State(row.State.Name),
		CreatedAt:    row.CreatedAt,
	}
}

func toRelationships(rows []db.Relationship) []matching.Relationship {
	out := make([]matching.Relationship, len(rows))
	for i, row := range rows {
		out[i] = toRelationship(row)
	}
	return out
}
