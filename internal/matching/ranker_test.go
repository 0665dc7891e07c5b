package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/muzz-matching/internal/logger"
	"github.com/oggyb/muzz-matching/internal/matching"
)

// pool: requester 1 is a straight man. Women 2..8 are compatible, 9 and 10
// are not.
func rankingPool() (matching.Profile, []matching.Profile) {
	requester := profile(1, matching.GenderMale, matching.OrientationMaleHetero, "music", "hiking", "chess")
	pool := []matching.Profile{
		requester,
		profile(2, matching.GenderFemale, matching.OrientationFemaleHetero, "music", "hiking", "chess"),
		profile(3, matching.GenderFemale, matching.OrientationFemaleBi, "music"),
		profile(4, matching.GenderFemale, matching.OrientationFemaleHetero),
		profile(5, matching.GenderFemale, matching.OrientationFemaleHetero, "music", "hiking"),
		profile(6, matching.GenderFemale, matching.OrientationFemaleHetero, "art"),
		profile(7, matching.GenderFemale, matching.OrientationFemaleBi, "chess"),
		profile(8, matching.GenderFemale, matching.OrientationFemaleHetero, "chess"),
		profile(9, matching.GenderMale, matching.OrientationMaleHomo, "music", "hiking", "chess"),
		profile(10, matching.GenderFemale, matching.OrientationFemaleHomo, "music"),
	}
	return requester, pool
}

func newRanker(minPool int) *matching.Ranker {
	return matching.NewRanker(matching.NewFilter(matching.DefaultOrientationPolicy(), minPool, logger.Discard()))
}

func ids(cands []matching.Candidate) []uint64 {
	out := make([]uint64, len(cands))
	for i, c := range cands {
		out[i] = c.Profile.ID
	}
	return out
}

func assertSortedByScore(t *testing.T, cands []matching.Candidate) {
	t.Helper()
	for i := 1; i < len(cands); i++ {
		assert.GreaterOrEqual(t, cands[i-1].Score, cands[i].Score, "position %d", i)
	}
}

func TestFilter_IsCompatible(t *testing.T) {
	f := matching.NewFilter(matching.DefaultOrientationPolicy(), 0, logger.Discard())
	requester, pool := rankingPool()

	assert.False(t, f.IsCompatible(requester, requester), "never compatible with self")
	assert.True(t, f.IsCompatible(requester, pool[1]))
	assert.False(t, f.IsCompatible(requester, pool[8]))

	unknown := profile(42, matching.GenderMale, 99)
	for _, c := range pool {
		assert.True(t, f.IsCompatible(unknown, c), "unmapped orientation disables filtering")
	}
}

func TestFilter_WidensBelowFloor(t *testing.T) {
	f := matching.NewFilter(matching.DefaultOrientationPolicy(), 6, logger.Discard())
	requester := profile(1, matching.GenderMale, matching.OrientationMaleHetero)
	pool := []matching.Profile{
		requester,
		profile(2, matching.GenderFemale, matching.OrientationFemaleHetero),
		profile(3, matching.GenderFemale, matching.OrientationFemaleBi),
		profile(4, matching.GenderMale, matching.OrientationMaleHomo),
		profile(5, matching.GenderFemale, matching.OrientationFemaleHomo),
	}

	eligible, widened := f.Apply(requester, pool)
	assert.True(t, widened)
	assert.ElementsMatch(t, []uint64{2, 3, 4, 5}, profileIDs(eligible))

	strict := matching.NewFilter(matching.DefaultOrientationPolicy(), 2, logger.Discard())
	eligible, widened = strict.Apply(requester, pool)
	assert.False(t, widened)
	assert.ElementsMatch(t, []uint64{2, 3}, profileIDs(eligible))
}

func profileIDs(ps []matching.Profile) []uint64 {
	out := make([]uint64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestRank_FreshCandidates(t *testing.T) {
	r := newRanker(6)
	requester, pool := rankingPool()
	excluded := matching.NewExclusionSet(1, 5)

	res := r.Rank(requester, pool, excluded, true)

	assert.False(t, res.IsRecycled)
	assert.False(t, res.Widened)
	assert.Equal(t, matching.TierFresh, res.Tier)
	assert.ElementsMatch(t, []uint64{2, 3, 4, 6, 7, 8}, ids(res.Candidates))
	assert.Equal(t, 6, res.Count)
	assertSortedByScore(t, res.Candidates)

	require.NotEmpty(t, res.Candidates)
	assert.Equal(t, uint64(2), res.Candidates[0].Profile.ID)
	assert.InDelta(t, 1.0, res.Candidates[0].Score, 1e-9)
}

func TestRank_TiesKeepMembershipAcrossCalls(t *testing.T) {
	r := newRanker(0)
	requester := profile(1, matching.GenderMale, matching.OrientationMaleHetero, "music")
	pool := []matching.Profile{requester}
	for id := uint64(2); id <= 21; id++ {
		pool = append(pool, profile(id, matching.GenderFemale, matching.OrientationFemaleHetero, "music"))
	}

	first := r.Rank(requester, pool, matching.NewExclusionSet(1), false)
	for range 5 {
		again := r.Rank(requester, pool, matching.NewExclusionSet(1), false)
		assert.ElementsMatch(t, ids(first.Candidates), ids(again.Candidates))
		assertSortedByScore(t, again.Candidates)
	}
}

func TestRank_RecyclesExcludedWhenAllowed(t *testing.T) {
	r := newRanker(0)
	requester, pool := rankingPool()
	excluded := matching.NewExclusionSet(1, 2, 3, 4, 5, 6, 7, 8)

	res := r.Rank(requester, pool, excluded, true)
	assert.True(t, res.IsRecycled)
	assert.Equal(t, matching.TierRecycled, res.Tier)
	assert.ElementsMatch(t, []uint64{2, 3, 4, 5, 6, 7, 8}, ids(res.Candidates))
	assertSortedByScore(t, res.Candidates)

	none := r.Rank(requester, pool, excluded, false)
	assert.Empty(t, none.Candidates)
	assert.Equal(t, 0, none.Count)
	assert.False(t, none.IsRecycled)
}

func TestRank_FallsBackToUnfilteredThenWholePool(t *testing.T) {
	r := newRanker(0)
	requester := profile(1, matching.GenderMale, matching.OrientationMaleHetero, "music")
	pool := []matching.Profile{
		requester,
		profile(9, matching.GenderMale, matching.OrientationMaleHomo, "music"),
		profile(10, matching.GenderFemale, matching.OrientationFemaleHomo),
	}

	res := r.Rank(requester, pool, matching.NewExclusionSet(1, 10), true)
	assert.Equal(t, matching.TierUnfiltered, res.Tier)
	assert.False(t, res.IsRecycled)
	assert.Equal(t, []uint64{9}, ids(res.Candidates))

	res = r.Rank(requester, pool, matching.NewExclusionSet(1, 9, 10), true)
	assert.Equal(t, matching.TierPool, res.Tier)
	assert.True(t, res.IsRecycled)
	assert.ElementsMatch(t, []uint64{9, 10}, ids(res.Candidates))
	assertSortedByScore(t, res.Candidates)
}

func TestRank_WidenedPoolIncludesIncompatible(t *testing.T) {
	r := newRanker(6)
	requester := profile(1, matching.GenderMale, matching.OrientationMaleHetero)
	pool := []matching.Profile{
		requester,
		profile(2, matching.GenderFemale, matching.OrientationFemaleHetero),
		profile(3, matching.GenderFemale, matching.OrientationFemaleBi),
		profile(4, matching.GenderMale, matching.OrientationMaleHomo),
	}

	res := r.Rank(requester, pool, matching.NewExclusionSet(1), true)
	assert.True(t, res.Widened)
	assert.ElementsMatch(t, []uint64{2, 3, 4}, ids(res.Candidates))
}

func TestRank_EmptyPool(t *testing.T) {
	r := newRanker(6)
	requester := profile(1, matching.GenderMale, matching.OrientationMaleHetero)

	res := r.Rank(requester, []matching.Profile{requester}, matching.NewExclusionSet(1), true)
	assert.Empty(t, res.Candidates)
	assert.Equal(t, matching.TierNone, res.Tier)
}

func TestResult_Limit(t *testing.T) {
	r := newRanker(0)
	requester, pool := rankingPool()

	res := r.Rank(requester, pool, matching.NewExclusionSet(1), false).Limit(3)
	assert.Len(t, res.Candidates, 3)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, uint64(2), res.Candidates[0].Profile.ID)

	all := r.Rank(requester, pool, matching.NewExclusionSet(1), false).Limit(0)
	assert.Equal(t, 7, all.Count)
}
