package matching

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// Tier names the candidate tier a ranking was served from.
type Tier string

const (
	TierNone       Tier = "none"       // nothing eligible
	TierFresh      Tier = "fresh"      // compatible, not excluded
	TierRecycled   Tier = "recycled"   // compatible, previously excluded
	TierUnfiltered Tier = "unfiltered" // any non-excluded profile, compatibility ignored
	TierPool       Tier = "pool"       // whole pool, exclusions ignored
)

// Candidate is a ranked profile with its similarity to the requester.
type Candidate struct {
	Profile Profile
	Score   float64
}

// Result is the output of Ranker.Rank.
type Result struct {
	Candidates []Candidate
	Count      int
	IsRecycled bool
	Widened    bool
	Tier       Tier
}

// Limit keeps the first n candidates. n <= 0 keeps everything.
func (r Result) Limit(n int) Result {
	if n > 0 && len(r.Candidates) > n {
		r.Candidates = r.Candidates[:n]
		r.Count = n
	}
	return r
}

// Ranker orders a candidate pool for one requester.
type Ranker struct {
	filter *Filter
}

func NewRanker(filter *Filter) *Ranker {
	return &Ranker{filter: filter}
}

// Rank filters pool for requester and orders it by interest similarity.
//
// Tier precedence:
//  1. compatible candidates not in excluded
//  2. compatible candidates in excluded (recycling only)
//  3. any non-self candidate not in excluded (recycling only)
//  4. every non-self candidate (recycling only)
//
// Equal scores are shuffled with a generator seeded per call, so repeated
// calls may order ties differently.
func (r *Ranker) Rank(requester Profile, pool []Profile, excluded ExclusionSet, allowRecycling bool) Result {
	compatible, widened := r.filter.Apply(requester, pool)

	var fresh, recycled []Profile
	for _, c := range compatible {
		if excluded.Contains(c.ID) {
			recycled = append(recycled, c)
		} else {
			fresh = append(fresh, c)
		}
	}

	switch {
	case len(fresh) > 0:
		return r.result(requester, fresh, TierFresh, widened)
	case !allowRecycling:
		return Result{Candidates: []Candidate{}, Widened: widened, Tier: TierNone}
	case len(recycled) > 0:
		return r.result(requester, recycled, TierRecycled, widened)
	}

	var unfiltered []Profile
	for _, c := range pool {
		if c.ID != requester.ID && !excluded.Contains(c.ID) {
			unfiltered = append(unfiltered, c)
		}
	}
	if len(unfiltered) > 0 {
		return r.result(requester, unfiltered, TierUnfiltered, widened)
	}

	everyone := withoutSelf(requester.ID, pool)
	if len(everyone) == 0 {
		return Result{Candidates: []Candidate{}, Widened: widened, Tier: TierNone}
	}
	return r.result(requester, everyone, TierPool, widened)
}

func (r *Ranker) result(requester Profile, profiles []Profile, tier Tier, widened bool) Result {
	ranked := order(requester.Interests, profiles)
	return Result{
		Candidates: ranked,
		Count:      len(ranked),
		IsRecycled: tier == TierRecycled || tier == TierPool,
		Widened:    widened,
		Tier:       tier,
	}
}

func order(interests []string, profiles []Profile) []Candidate {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	type keyed struct {
		Candidate
		tie uint64
	}
	items := make([]keyed, len(profiles))
	for i, p := range profiles {
		items[i] = keyed{
			Candidate: Candidate{Profile: p, Score: Jaccard(interests, p.Interests)},
			tie:       rng.Uint64(),
		}
	}

	slices.SortFunc(items, func(a, b keyed) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.tie, b.tie)
	})

	out := make([]Candidate, len(items))
	for i, it := range items {
		out[i] = it.Candidate
	}
	return out
}
