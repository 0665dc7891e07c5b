package matching_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcErr "github.com/oggyb/muzz-matching/internal/errors"
	"github.com/oggyb/muzz-matching/internal/logger"
	"github.com/oggyb/muzz-matching/internal/matching"
)

func TestRecord_RejectsSelfSwipe(t *testing.T) {
	rec := matching.NewSwipeRecorder(newMemStore(), logger.Discard())

	_, err := rec.Record(context.Background(), 1, 1, true, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, svcErr.ErrInvalidArgument)
}

func TestRecord_UpsertKeepsLatestDecision(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rec := matching.NewSwipeRecorder(store, logger.Discard())

	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	_, err := rec.Record(ctx, 1, 2, true, t0)
	require.NoError(t, err)
	_, err = rec.Record(ctx, 1, 2, false, t0.Add(time.Minute))
	require.NoError(t, err)

	assert.Len(t, store.swipes, 1)
	s := store.swipes[[2]uint64{1, 2}]
	assert.False(t, s.Liked)
	assert.Equal(t, t0.Add(time.Minute), s.SwipedAt)
}

func TestRecord_MutualLikeFormsOneMatch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rec := matching.NewSwipeRecorder(store, logger.Discard())

	out, err := rec.Record(ctx, 1, 2, true, time.Time{})
	require.NoError(t, err)
	assert.False(t, out.IsMatch)

	out, err = rec.Record(ctx, 2, 1, true, time.Time{})
	require.NoError(t, err)
	assert.True(t, out.IsMatch)
	assert.True(t, out.Created)
	assert.Equal(t, matching.StateActive, out.Relationship.State)

	// liking again does not create a second active record
	out, err = rec.Record(ctx, 1, 2, true, time.Time{})
	require.NoError(t, err)
	assert.True(t, out.IsMatch)
	assert.False(t, out.Created)

	active, err := store.ActiveRelationships(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestRecord_PassNeverMatches(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rec := matching.NewSwipeRecorder(store, logger.Discard())

	_, err := rec.Record(ctx, 1, 2, true, time.Time{})
	require.NoError(t, err)

	out, err := rec.Record(ctx, 2, 1, false, time.Time{})
	require.NoError(t, err)
	assert.False(t, out.IsMatch)
	assert.Empty(t, store.rels)
}

func TestRecord_MissingActiveStateIsInternal(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.noStates = true
	rec := matching.NewSwipeRecorder(store, logger.Discard())

	_, err := rec.Record(ctx, 1, 2, true, time.Time{})
	require.NoError(t, err)

	_, err = rec.Record(ctx, 2, 1, true, time.Time{})
	assert.ErrorIs(t, err, svcErr.ErrStateUndefined)
}

func TestRecord_PropagatesStoreErrors(t *testing.T) {
	store := newMemStore()
	store.failWrite = errors.New("disk full")
	rec := matching.NewSwipeRecorder(store, logger.Discard())

	_, err := rec.Record(context.Background(), 1, 2, true, time.Time{})
	assert.EqualError(t, err, "disk full")
}

func TestRecord_MatchedUserFormsNoSecondMatch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rec := matching.NewSwipeRecorder(store, logger.Discard())

	_, err := rec.Record(ctx, 1, 2, true, time.Time{})
	require.NoError(t, err)
	out, err := rec.Record(ctx, 2, 1, true, time.Time{})
	require.NoError(t, err)
	require.True(t, out.IsMatch)

	_, err = rec.Record(ctx, 1, 3, true, time.Time{})
	require.NoError(t, err)
	out, err = rec.Record(ctx, 3, 1, true, time.Time{})
	require.NoError(t, err)
	assert.False(t, out.IsMatch)

	// the swipe is kept
	s := store.swipes[[2]uint64{3, 1}]
	assert.True(t, s.Liked)

	rels := matching.NewRelationships(store, logger.Discard())
	active, ok, err := rels.ActiveFor(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	partner, _ := active.Partner(1)
	assert.Equal(t, uint64(2), partner)
	assert.Len(t, store.rels, 1)
}

func TestRecord_TruncatesToMillisecond(t *testing.T) {
	store := newMemStore()
	rec := matching.NewSwipeRecorder(store, logger.Discard())

	at := time.Date(2025, 1, 1, 0, 0, 0, 123456789, time.UTC)
	_, err := rec.Record(context.Background(), 1, 2, true, at)
	require.NoError(t, err)
	assert.Equal(t, at.Truncate(time.Millisecond), store.swipes[[2]uint64{1, 2}].SwipedAt)
}
