package db

import (
	"time"
)

// Swipe represents an actor's like/pass on a target.
//
// Composite PK: (ActorID, TargetID)
//   - Ensures a single row per ordered pair (a repeat swipe overwrites it).
//
// Indexes:
//   - idx_swipes_actor_swiped(actor_id, swiped_at DESC)
//     Serves the "most recent N swipes" lookup used for exclusion sets.
//   - idx_swipes_target_actor_liked(target_id, actor_id, liked)
//     Serves the reverse-like lookup on mutual like detection.
type Swipe struct {
	ActorID   uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_swipes_actor_swiped,priority:1"`
	TargetID  uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_swipes_target_actor_liked,priority:1"`
	Liked     bool      `gorm:"not null;index:idx_swipes_target_actor_liked,priority:3"`
	SwipedAt  time.Time `gorm:"not null;index:idx_swipes_actor_swiped,priority:2,sort:desc"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// RelationshipState is a named lifecycle state ("active", "inactive").
// Rows are seeded at startup; see EnsureRelationshipStates.
type RelationshipState struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;size:16;not null"`
}

// Relationship is a match between two users. The pair is unordered.
//
// ActivePairKey holds "min:max" of the two user ids while the relationship
// is active and NULL afterwards. Its unique index allows any number of
// inactive records per pair but only one active one.
type Relationship struct {
	ID            uint64            `gorm:"primaryKey;autoIncrement"`
	FirstUserID   uint64            `gorm:"not null;index:idx_relationships_first"`
	SecondUserID  uint64            `gorm:"not null;index:idx_relationships_second"`
	StateID       uint64            `gorm:"not null"`
	State         RelationshipState `gorm:"foreignKey:StateID"`
	ActivePairKey *string           `gorm:"size:48;uniqueIndex:uniq_relationships_active_pair"`
	CreatedAt     time.Time         `gorm:"not null;index"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime"`
}
