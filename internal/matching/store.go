package matching

import (
	"context"
	"time"
)

// Store persists swipes and relationships. Lookups that may legitimately
// miss return found=false instead of an error.
type Store interface {
	// UpsertSwipe inserts the swipe or overwrites liked/swiped_at of the
	// existing (actor, target) record.
	UpsertSwipe(ctx context.Context, s Swipe) error
	HasLiked(ctx context.Context, actorID, targetID uint64) (bool, error)
	// RecentSwipeTargets lists targets swiped by actorID, newest first.
	// limit <= 0 returns all of them.
	RecentSwipeTargets(ctx context.Context, actorID uint64, limit int) ([]uint64, error)

	// CreateActiveRelationship creates an active relationship for the pair
	// unless one is already active, in which case that one is returned with
	// created=false.
	CreateActiveRelationship(ctx context.Context, firstUserID, secondUserID uint64, at time.Time) (rel Relationship, created bool, err error)
	GetRelationship(ctx context.Context, id uint64) (Relationship, bool, error)
	// FindRelationship returns the most recent relationship of the
	// unordered pair.
	FindRelationship(ctx context.Context, userA, userB uint64) (Relationship, bool, error)
	ActiveRelationships(ctx context.Context, userID uint64) ([]Relationship, error)
	// ListRelationships returns every relationship of userID, newest first.
	ListRelationships(ctx context.Context, userID uint64) ([]Relationship, error)
	// DeactivateRelationship moves rel to inactive and deletes the swipes
	// between its two users in one transaction.
	DeactivateRelationship(ctx context.Context, rel Relationship) error
}

// ProfileGateway is the read-only view of the external user directory.
type ProfileGateway interface {
	GetProfile(ctx context.Context, userID uint64) (Profile, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
	GetInterests(ctx context.Context, userID uint64) ([]string, error)
}
