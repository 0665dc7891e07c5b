package matching

import "log/slog"

// DefaultMinPoolSize is the smallest strict-filter result accepted before
// the filter widens to every non-self profile.
const DefaultMinPoolSize = 6

// Filter applies the recommendation policy to a candidate pool.
type Filter struct {
	policy  Policy
	minPool int
	log     *slog.Logger
}

// NewFilter builds a Filter. minPool <= 0 disables widening.
func NewFilter(policy Policy, minPool int, log *slog.Logger) *Filter {
	if policy == nil {
		policy = DefaultOrientationPolicy()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Filter{policy: policy, minPool: minPool, log: log}
}

// IsCompatible reports whether candidate may be shown to requester.
// An unrecognized requester category disables orientation filtering.
func (f *Filter) IsCompatible(requester, candidate Profile) bool {
	if candidate.ID == requester.ID {
		return false
	}
	if !f.policy.Recognizes(requester) {
		return true
	}
	return f.policy.Accepts(requester, candidate)
}

// Apply returns the compatible part of pool. When that part is smaller than
// the configured floor it returns every non-self profile instead and
// reports widened=true.
func (f *Filter) Apply(requester Profile, pool []Profile) (eligible []Profile, widened bool) {
	strict := make([]Profile, 0, len(pool))
	for _, c := range pool {
		if f.IsCompatible(requester, c) {
			strict = append(strict, c)
		}
	}

	if f.minPool <= 0 || len(strict) >= f.minPool {
		return strict, false
	}

	all := withoutSelf(requester.ID, pool)
	f.log.Info("compatible pool below floor, widening to all profiles",
		"user_id", requester.ID,
		"orientation", requester.Orientation.String(),
		"compatible", len(strict),
		"floor", f.minPool,
		"widened_to", len(all),
	)
	return all, true
}

func withoutSelf(self uint64, pool []Profile) []Profile {
	out := make([]Profile, 0, len(pool))
	for _, c := range pool {
		if c.ID != self {
			out = append(out, c)
		}
	}
	return out
}
