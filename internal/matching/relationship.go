package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	svcErr "github.com/oggyb/muzz-matching/internal/errors"
)

// State is the lifecycle state of a relationship. Records only ever move
// from active to inactive; a later re-match creates a new record.
type State string

const (
	StateActive   State = "active"
	StateInactive State = "inactive"
)

// Relationship links two users. The pair is unordered.
type Relationship struct {
	ID           uint64
	FirstUserID  uint64
	SecondUserID uint64
	State        State
	CreatedAt    time.Time
}

func (r Relationship) Active() bool { return r.State == StateActive }

func (r Relationship) Involves(userID uint64) bool {
	return r.FirstUserID == userID || r.SecondUserID == userID
}

// Partner returns the other participant.
func (r Relationship) Partner(userID uint64) (uint64, bool) {
	switch userID {
	case r.FirstUserID:
		return r.SecondUserID, true
	case r.SecondUserID:
		return r.FirstUserID, true
	}
	return 0, false
}

// PairKey identifies an unordered pair: PairKey(a, b) == PairKey(b, a).
func PairKey(a, b uint64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Relationships drives the relationship lifecycle.
type Relationships struct {
	store Store
	log   *slog.Logger
}

func NewRelationships(store Store, log *slog.Logger) *Relationships {
	if log == nil {
		log = slog.Default()
	}
	return &Relationships{store: store, log: log}
}

// Dismatch ends relationship id on behalf of requesterID. Both swipe
// directions between the pair are purged with the state change so the two
// users can discover each other again. Ending an inactive relationship is a
// no-op.
func (m *Relationships) Dismatch(ctx context.Context, id, requesterID uint64) (Relationship, error) {
	rel, found, err := m.store.GetRelationship(ctx, id)
	if err != nil {
		return Relationship{}, err
	}
	if !found {
		return Relationship{}, svcErr.NotFound("relationship", id)
	}
	if !rel.Involves(requesterID) {
		return Relationship{}, svcErr.Forbidden("user is not a participant of this relationship")
	}
	if !rel.Active() {
		return rel, nil
	}

	if err := m.store.DeactivateRelationship(ctx, rel); err != nil {
		return Relationship{}, err
	}
	rel.State = StateInactive

	m.log.Info("relationship dismatched",
		"relationship_id", rel.ID,
		"requested_by", requesterID,
		"first_user_id", rel.FirstUserID,
		"second_user_id", rel.SecondUserID,
	)
	return rel, nil
}

// Check returns the most recent relationship between two users, in either
// order.
func (m *Relationships) Check(ctx context.Context, userA, userB uint64) (Relationship, bool, error) {
	return m.store.FindRelationship(ctx, userA, userB)
}

// ActiveFor returns the single active relationship of userID. More than one
// is reported as a consistency violation and never resolved here.
func (m *Relationships) ActiveFor(ctx context.Context, userID uint64) (Relationship, bool, error) {
	active, err := m.store.ActiveRelationships(ctx, userID)
	if err != nil {
		return Relationship{}, false, err
	}

	switch len(active) {
	case 0:
		return Relationship{}, false, nil
	case 1:
		return active[0], true, nil
	}

	ids := make([]uint64, len(active))
	for i, rel := range active {
		ids[i] = rel.ID
	}
	m.log.Error("user has more than one active relationship",
		"user_id", userID,
		"relationship_ids", ids,
	)
	return Relationship{}, false, svcErr.Inconsistent(
		fmt.Sprintf("user %d has %d active relationships", userID, len(active)),
	)
}

// Connection is one past or present partner of a user, taken from the most
// recent relationship with them.
type Connection struct {
	PartnerID      uint64
	RelationshipID uint64
	Since          time.Time
}

// Connections lists every partner of userID, most recent relationship
// first, each partner once.
func (m *Relationships) Connections(ctx context.Context, userID uint64) ([]Connection, error) {
	rels, err := m.store.ListRelationships(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(rels))
	out := make([]Connection, 0, len(rels))
	for _, rel := range rels {
		partner, ok := rel.Partner(userID)
		if !ok {
			continue
		}
		if _, dup := seen[partner]; dup {
			continue
		}
		seen[partner] = struct{}{}
		out = append(out, Connection{PartnerID: partner, RelationshipID: rel.ID, Since: rel.CreatedAt})
	}
	return out, nil
}

// ConnectionHistory is Connections reduced to partner ids.
func (m *Relationships) ConnectionHistory(ctx context.Context, userID uint64) ([]uint64, error) {
	conns, err := m.Connections(ctx, userID)
	if err != nil {
		return nil, err
	}
	partners := make([]uint64, len(conns))
	for i, c := range conns {
		partners[i] = c.PartnerID
	}
	return partners, nil
}
