package matching

// Jaccard returns |A∩B| / |A∪B| over the two interest sets. Duplicate tags
// are counted once. Two empty sets score 0, not 1: no shared signal means no
// similarity.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, tag := range a {
		setA[tag] = struct{}{}
	}

	union := len(setA)
	inter := 0
	seen := make(map[string]struct{}, len(b))
	for _, tag := range b {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if _, ok := setA[tag]; ok {
			inter++
		} else {
			union++
		}
	}

	return float64(inter) / float64(union)
}
