package matching_test

import (
	"context"
	"slices"
	"sync"
	"time"

	svcErr "github.com/oggyb/muzz-matching/internal/errors"
	"github.com/oggyb/muzz-matching/internal/matching"
)

// memStore is an in-memory matching.Store for core tests.
type memStore struct {
	mu        sync.Mutex
	swipes    map[[2]uint64]matching.Swipe
	rels      []matching.Relationship
	nextID    uint64
	noStates  bool
	failWrite error
}

func newMemStore() *memStore {
	return &memStore{swipes: map[[2]uint64]matching.Swipe{}, nextID: 1}
}

func (m *memStore) UpsertSwipe(_ context.Context, s matching.Swipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	m.swipes[[2]uint64{s.ActorID, s.TargetID}] = s
	return nil
}

func (m *memStore) HasLiked(_ context.Context, actorID, targetID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.swipes[[2]uint64{actorID, targetID}]
	return ok && s.Liked, nil
}

func (m *memStore) RecentSwipeTargets(_ context.Context, actorID uint64, limit int) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mine []matching.Swipe
	for _, s := range m.swipes {
		if s.ActorID == actorID {
			mine = append(mine, s)
		}
	}
	slices.SortFunc(mine, func(a, b matching.Swipe) int { return b.SwipedAt.Compare(a.SwipedAt) })
	if limit > 0 && len(mine) > limit {
		mine = mine[:limit]
	}
	ids := make([]uint64, len(mine))
	for i, s := range mine {
		ids[i] = s.TargetID
	}
	return ids, nil
}

func (m *memStore) CreateActiveRelationship(_ context.Context, first, second uint64, at time.Time) (matching.Relationship, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.noStates {
		return matching.Relationship{}, false, svcErr.StateUndefined(string(matching.StateActive))
	}
	for _, r := range m.rels {
		if r.Active() && matching.PairKey(r.FirstUserID, r.SecondUserID) == matching.PairKey(first, second) {
			return r, false, nil
		}
	}
	rel := matching.Relationship{ID: m.nextID, FirstUserID: first, SecondUserID: second, State: matching.StateActive, CreatedAt: at}
	m.nextID++
	m.rels = append(m.rels, rel)
	return rel, true, nil
}

func (m *memStore) GetRelationship(_ context.Context, id uint64) (matching.Relationship, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rels {
		if r.ID == id {
			return r, true, nil
		}
	}
	return matching.Relationship{}, false, nil
}

func (m *memStore) FindRelationship(_ context.Context, a, b uint64) (matching.Relationship, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.rels) - 1; i >= 0; i-- {
		r := m.rels[i]
		if matching.PairKey(r.FirstUserID, r.SecondUserID) == matching.PairKey(a, b) {
			return r, true, nil
		}
	}
	return matching.Relationship{}, false, nil
}

func (m *memStore) ActiveRelationships(_ context.Context, userID uint64) ([]matching.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []matching.Relationship
	for _, r := range m.rels {
		if r.Active() && r.Involves(userID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListRelationships(_ context.Context, userID uint64) ([]matching.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []matching.Relationship
	for i := len(m.rels) - 1; i >= 0; i-- {
		if m.rels[i].Involves(userID) {
			out = append(out, m.rels[i])
		}
	}
	return out, nil
}

func (m *memStore) DeactivateRelationship(_ context.Context, rel matching.Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	for i := range m.rels {
		if m.rels[i].ID == rel.ID {
			m.rels[i].State = matching.StateInactive
		}
	}
	delete(m.swipes, [2]uint64{rel.FirstUserID, rel.SecondUserID})
	delete(m.swipes, [2]uint64{rel.SecondUserID, rel.FirstUserID})
	return nil
}

// addRelationship inserts a record directly, bypassing invariants.
func (m *memStore) addRelationship(first, second uint64, state matching.State, at time.Time) matching.Relationship {
	m.mu.Lock()
	defer m.mu.Unlock()
	rel := matching.Relationship{ID: m.nextID, FirstUserID: first, SecondUserID: second, State: state, CreatedAt: at}
	m.nextID++
	m.rels = append(m.rels, rel)
	return rel
}
