package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-matching/internal/matching"
)

// DefaultSeedUsers is the number of demo users seeded in development.
const DefaultSeedUsers = 50

// SeedTestData resets swipes/relationships and fills them with demo data for
// users 1..userCount, which must exist in the user service.
//
// Behavior:
//  1. Clears existing rows in `relationships` and `swipes`.
//  2. Makes sure relationship states exist.
//  3. Generates ~12 swipes per user with ~70% likes; every 3rd pair gets a
//     reciprocal like and an active relationship, unless either user is
//     already matched.
//
// Compatible with MySQL, Postgres and SQLite.
func SeedTestData(db *gorm.DB, userCount int) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	if err := db.Exec("DELETE FROM relationships").Error; err != nil {
		return fmt.Errorf("failed to clear relationships: %w", err)
	}
	if err := db.Exec("DELETE FROM swipes").Error; err != nil {
		return fmt.Errorf("failed to clear swipes: %w", err)
	}
	if err := EnsureRelationshipStates(db); err != nil {
		return err
	}

	var active RelationshipState
	if err := db.Where("name = ?", "active").First(&active).Error; err != nil {
		return fmt.Errorf("failed to load active state: %w", err)
	}

	log.Println("Cleared existing swipes and relationships")

	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"liked", "swiped_at", "updated_at"}),
	}

	matched := make(map[uint64]bool)
	counter, matches := 0, 0
	now := time.Now().UTC()

	for actor := 1; actor <= userCount; actor++ {
		for j := 0; j < 12; j++ { // each user swipes on ~12 others
			actorID := uint64(actor)
			targetID := uint64(r.Intn(userCount) + 1)
			if actorID == targetID {
				continue
			}

			at := now.Add(-time.Duration(r.Intn(72*60)) * time.Minute)
			liked := r.Intn(100) < 70

			mutual := counter%3 == 0 && !matched[actorID] && !matched[targetID]
			if mutual {
				liked = true
				recip := Swipe{ActorID: targetID, TargetID: actorID, Liked: true, SwipedAt: at.Add(-time.Minute)}
				if err := db.Clauses(upsert).Create(&recip).Error; err != nil {
					return fmt.Errorf("failed to seed swipe: %w", err)
				}
			}

			swipe := Swipe{ActorID: actorID, TargetID: targetID, Liked: liked, SwipedAt: at}
			if err := db.Clauses(upsert).Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			if mutual {
				key := matching.PairKey(actorID, targetID)
				rel := Relationship{
					FirstUserID:   targetID,
					SecondUserID:  actorID,
					StateID:       active.ID,
					ActivePairKey: &key,
					CreatedAt:     at,
				}
				if err := db.Omit(clause.Associations).Create(&rel).Error; err != nil {
					return fmt.Errorf("failed to seed relationship: %w", err)
				}
				matched[actorID], matched[targetID] = true, true
				matches++
			}

			counter++
		}
	}

	log.Printf("Seeded %d swipes and %d matches.", counter, matches)
	return nil
}
