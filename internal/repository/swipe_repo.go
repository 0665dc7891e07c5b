package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-matching/internal/db"
	"github.com/oggyb/muzz-matching/internal/matching"
)

// UpsertSwipe inserts or updates the swipe made by actor -> target.
//
// Behavior:
//   - If (actor_id, target_id) exists → liked and swiped_at are overwritten.
//   - If it doesn't exist → a new row is inserted.
//   - Composite PK ensures overwrite guarantee.
//
// Example:
//
//	store.UpsertSwipe(ctx, matching.Swipe{ActorID: 1, TargetID: 2, Liked: true})
func (s *Store) UpsertSwipe(ctx context.Context, sw matching.Swipe) error {
	row := db.Swipe{
		ActorID:  sw.ActorID,
		TargetID: sw.TargetID,
		Liked:    sw.Liked,
		SwipedAt: sw.SwipedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"liked", "swiped_at", "updated_at"}),
		}).
		Create(&row).Error
}

// HasLiked checks whether an actor has liked a target.
//
// Example:
//
//	store.HasLiked(ctx, 1, 2) // -> true if user 1 liked user 2
func (s *Store) HasLiked(ctx context.Context, actorID, targetID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("actor_id = ? AND target_id = ? AND liked = ?", actorID, targetID, true).
		Count(&count).Error
	return count > 0, err
}

// RecentSwipeTargets returns the targets actorID swiped on, newest first.
// limit <= 0 returns the full history.
func (s *Store) RecentSwipeTargets(ctx context.Context, actorID uint64, limit int) ([]uint64, error) {
	query := s.db.WithContext(ctx).
		Model(&db.Swipe{}).
		Where("actor_id = ?", actorID).
		Order("swiped_at DESC, target_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ids []uint64
	if err := query.Pluck("target_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
