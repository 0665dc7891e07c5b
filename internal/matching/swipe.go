package matching

import (
	"context"
	"errors"
	"log/slog"
	"time"

	svcErr "github.com/oggyb/muzz-matching/internal/errors"
)

// Swipe is one user's like/pass on another. (ActorID, TargetID) is unique:
// a repeated swipe overwrites Liked and SwipedAt.
type Swipe struct {
	ActorID  uint64
	TargetID uint64
	Liked    bool
	SwipedAt time.Time
}

// SwipeOutcome reports what a swipe caused. Relationship is set whenever
// IsMatch is true; Created tells whether this swipe created it.
type SwipeOutcome struct {
	IsMatch      bool
	Relationship Relationship
	Created      bool
}

// SwipeRecorder stores swipes and forms matches on mutual likes.
type SwipeRecorder struct {
	store Store
	now   func() time.Time
	log   *slog.Logger
}

func NewSwipeRecorder(store Store, log *slog.Logger) *SwipeRecorder {
	if log == nil {
		log = slog.Default()
	}
	return &SwipeRecorder{store: store, now: time.Now, log: log}
}

// Record upserts actorID's swipe on targetID. A like answering an existing
// like from targetID forms an active relationship; if the pair already has
// one it is returned instead of creating another. While either user is
// actively matched with someone else the swipe is stored but no match forms.
// A zero at means now; times are kept at millisecond precision.
func (r *SwipeRecorder) Record(ctx context.Context, actorID, targetID uint64, liked bool, at time.Time) (SwipeOutcome, error) {
	if actorID == targetID {
		return SwipeOutcome{}, svcErr.Invalid("cannot swipe on self")
	}
	if at.IsZero() {
		at = r.now()
	}
	at = at.UTC().Truncate(time.Millisecond)

	err := r.store.UpsertSwipe(ctx, Swipe{
		ActorID:  actorID,
		TargetID: targetID,
		Liked:    liked,
		SwipedAt: at,
	})
	if err != nil {
		return SwipeOutcome{}, err
	}

	if !liked {
		return SwipeOutcome{}, nil
	}

	mutual, err := r.store.HasLiked(ctx, targetID, actorID)
	if err != nil {
		return SwipeOutcome{}, err
	}
	if !mutual {
		return SwipeOutcome{}, nil
	}

	existing, blocked, err := r.activeFor(ctx, actorID, targetID)
	if err != nil {
		return SwipeOutcome{}, r.logMissingState(err, actorID, targetID)
	}
	if existing.ID != 0 {
		return SwipeOutcome{IsMatch: true, Relationship: existing}, nil
	}
	if blocked {
		r.log.Info("mutual like while matched elsewhere, no match formed",
			"actor_id", actorID,
			"target_id", targetID,
		)
		return SwipeOutcome{}, nil
	}

	rel, created, err := r.store.CreateActiveRelationship(ctx, targetID, actorID, at)
	if err != nil {
		return SwipeOutcome{}, r.logMissingState(err, actorID, targetID)
	}

	if created {
		r.log.Info("match formed",
			"relationship_id", rel.ID,
			"first_user_id", rel.FirstUserID,
			"second_user_id", rel.SecondUserID,
		)
	}
	return SwipeOutcome{IsMatch: true, Relationship: rel, Created: created}, nil
}

// activeFor returns the pair's own active relationship if there is one, and
// whether either user holds an active relationship with a third user.
func (r *SwipeRecorder) activeFor(ctx context.Context, a, b uint64) (Relationship, bool, error) {
	var (
		own     Relationship
		blocked bool
	)
	for _, id := range []uint64{a, b} {
		rels, err := r.store.ActiveRelationships(ctx, id)
		if err != nil {
			return Relationship{}, false, err
		}
		for _, rel := range rels {
			if rel.Involves(a) && rel.Involves(b) {
				own = rel
				continue
			}
			blocked = true
		}
	}
	return own, blocked, nil
}

func (r *SwipeRecorder) logMissingState(err error, actorID, targetID uint64) error {
	if errors.Is(err, svcErr.ErrStateUndefined) {
		r.log.Error("active relationship state missing from store, seed relationship_states",
			"actor_id", actorID,
			"target_id", targetID,
			"err", err,
		)
	}
	return err
}
