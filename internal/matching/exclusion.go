package matching

import (
	"context"
	"slices"
	"strconv"
	"strings"

	svcErr "github.com/oggyb/muzz-matching/internal/errors"
)

// DefaultRecentWindow is how many of the latest swipe targets are excluded
// when recency limiting is on.
const DefaultRecentWindow = 10

// ExclusionSet holds user ids that must not be offered as fresh candidates.
type ExclusionSet map[uint64]struct{}

func NewExclusionSet(ids ...uint64) ExclusionSet {
	s := make(ExclusionSet, len(ids))
	s.Add(ids...)
	return s
}

func (s ExclusionSet) Add(ids ...uint64) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

func (s ExclusionSet) Contains(id uint64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in ascending order.
func (s ExclusionSet) IDs() []uint64 {
	ids := make([]uint64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ParseExcludeList parses a comma separated list of user ids. Blank entries
// are skipped; anything else that is not a uint64 is rejected.
func ParseExcludeList(raw string) (ExclusionSet, error) {
	set := NewExclusionSet()
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, svcErr.Invalid("exclude must be a comma separated list of user ids, got " + strconv.Quote(part))
		}
		set.Add(id)
	}
	return set, nil
}

// Exclusions derives the exclusion set of a user from the store.
type Exclusions struct {
	store  Store
	window int
}

// NewExclusions builds an Exclusions. window <= 0 falls back to the default.
func NewExclusions(store Store, window int) *Exclusions {
	if window <= 0 {
		window = DefaultRecentWindow
	}
	return &Exclusions{store: store, window: window}
}

// ExcludedIDs returns self, swiped targets (the latest window when
// recentOnly, otherwise all of them) and active relationship partners.
func (e *Exclusions) ExcludedIDs(ctx context.Context, userID uint64, recentOnly bool) (ExclusionSet, error) {
	limit := 0
	if recentOnly {
		limit = e.window
	}

	targets, err := e.store.RecentSwipeTargets(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	active, err := e.store.ActiveRelationships(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := NewExclusionSet(userID)
	set.Add(targets...)
	for _, rel := range active {
		if partner, ok := rel.Partner(userID); ok {
			set.Add(partner)
		}
	}
	return set, nil
}
