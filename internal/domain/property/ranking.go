package property

import "sort"

// Priority scores used for public ordering.
const (
	PriorityDefault = 1
	PriorityBasic   = 2
	PriorityPremium = 3
)

// Rank orders listings by score descending, then by creation time descending.
// The sort is stable, so equal keys keep their input order. The input slice
// is not modified.
func Rank(props []*Property, score func(*Property) int) []*Property {
	type entry struct {
		p     *Property
		score int
	}

	entries := make([]entry, len(props))
	for i, p := range props {
		entries[i] = entry{p: p, score: score(p)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].p.createdAt.After(entries[j].p.createdAt)
	})

	out := make([]*Property, len(entries))
	for i, e := range entries {
		out[i] = e.p
	}
	return out
}
