package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-matching/internal/db"
	svcErr "github.com/oggyb/muzz-matching/internal/errors"
	"github.com/oggyb/muzz-matching/internal/matching"
)

const pairCondition = "(first_user_id = ? AND second_user_id = ?) OR (first_user_id = ? AND second_user_id = ?)"

// CreateActiveRelationship inserts an active relationship for the pair.
//
// Behavior:
//   - The row carries active_pair_key = "min:max"; its unique index makes a
//     concurrent second insert for the same pair a no-op.
//   - On such a conflict the already active row is returned, created=false.
//   - Fails with ErrStateUndefined when the "active" state row is missing.
func (s *Store) CreateActiveRelationship(
	ctx context.Context,
	firstUserID, secondUserID uint64,
	at time.Time,
) (matching.Relationship, bool, error) {
	stateID, err := s.stateID(ctx, s.db, matching.StateActive)
	if err != nil {
		return matching.Relationship{}, false, err
	}

	key := matching.PairKey(firstUserID, secondUserID)
	row := db.Relationship{
		FirstUserID:   firstUserID,
		SecondUserID:  secondUserID,
		StateID:       stateID,
		ActivePairKey: &key,
		CreatedAt:     at.UTC().Truncate(time.Millisecond),
	}

	res := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "active_pair_key"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return matching.Relationship{}, false, res.Error
	}

	if res.RowsAffected == 0 {
		var existing db.Relationship
		err := s.db.WithContext(ctx).
			Preload("State").
			Where("active_pair_key = ?", key).
			First(&existing).Error
		if err != nil {
			return matching.Relationship{}, false, err
		}
		return toRelationship(existing), false, nil
	}

	row.State = db.RelationshipState{ID: stateID, Name: string(matching.StateActive)}
	return toRelationship(row), true, nil
}

// GetRelationship loads a relationship by id.
func (s *Store) GetRelationship(ctx context.Context, id uint64) (matching.Relationship, bool, error) {
	var row db.Relationship
	err := s.db.WithContext(ctx).Preload("State").First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return matching.Relationship{}, false, nil
	}
	if err != nil {
		return matching.Relationship{}, false, err
	}
	return toRelationship(row), true, nil
}

// FindRelationship returns the most recent relationship between two users,
// regardless of which one is stored first.
func (s *Store) FindRelationship(ctx context.Context, userA, userB uint64) (matching.Relationship, bool, error) {
	var rows []db.Relationship
	err := s.db.WithContext(ctx).
		Preload("State").
		Where(pairCondition, userA, userB, userB, userA).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return matching.Relationship{}, false, err
	}
	if len(rows) == 0 {
		return matching.Relationship{}, false, nil
	}
	return toRelationship(rows[0]), true, nil
}

// ActiveRelationships returns every active relationship userID takes part in.
// More than one means the one-active-match invariant is broken; callers
// decide what to do about it.
func (s *Store) ActiveRelationships(ctx context.Context, userID uint64) ([]matching.Relationship, error) {
	stateID, err := s.stateID(ctx, s.db, matching.StateActive)
	if err != nil {
		return nil, err
	}

	var rows []db.Relationship
	err = s.db.WithContext(ctx).
		Preload("State").
		Where("state_id = ?", stateID).
		Where("first_user_id = ? OR second_user_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toRelationships(rows), nil
}

// ListRelationships returns all relationships of userID, newest first.
func (s *Store) ListRelationships(ctx context.Context, userID uint64) ([]matching.Relationship, error) {
	var rows []db.Relationship
	err := s.db.WithContext(ctx).
		Preload("State").
		Where("first_user_id = ? OR second_user_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toRelationships(rows), nil
}

// DeactivateRelationship marks rel inactive and deletes the swipes between
// its users in both directions. Both writes commit or neither does.
func (s *Store) DeactivateRelationship(ctx context.Context, rel matching.Relationship) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inactiveID, err := s.stateID(ctx, tx, matching.StateInactive)
		if err != nil {
			return err
		}

		res := tx.Model(&db.Relationship{}).
			Where("id = ?", rel.ID).
			Updates(map[string]any{
				"state_id":        inactiveID,
				"active_pair_key": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return svcErr.NotFound("relationship", rel.ID)
		}

		a, b := rel.FirstUserID, rel.SecondUserID
		return tx.
			Where("(actor_id = ? AND target_id = ?) OR (actor_id = ? AND target_id = ?)", a, b, b, a).
			Delete(&db.Swipe{}).Error
	})
}
