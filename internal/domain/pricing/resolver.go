package pricing

import (
	"bytes"
	"sort"
)

// PriceResolver selects the single winning assignment among the eligible
// candidates for a variant. Priority is the admin-facing conflict-resolution
// knob; list recency breaks priority ties, favoring the most recently created
// rule as the more intentional override.
type PriceResolver struct{}

// NewPriceResolver creates a new price resolver
func NewPriceResolver() *PriceResolver {
	return &PriceResolver{}
}

// Resolve returns the winning assignment, or nil when none is eligible.
// The result is deterministic for any permutation of the input: candidates
// are ordered by (list priority desc, list creation desc, assignment ID asc).
// The input slice is not mutated.
func (r *PriceResolver) Resolve(eligible []PriceAssignment) *PriceAssignment {
	if len(eligible) == 0 {
		return nil
	}

	sorted := make([]PriceAssignment, len(eligible))
	copy(sorted, eligible)
	sort.Slice(sorted, func(i, j int) bool {
		return lessAssignment(sorted[i], sorted[j])
	})

	winner := sorted[0]
	return &winner
}

// lessAssignment orders candidates so the winner sorts first. Assignments
// without a populated parent list sort last; they carry no priority and
// cannot win over a properly loaded candidate.
func lessAssignment(a, b PriceAssignment) bool {
	if a.List == nil || b.List == nil {
		return b.List == nil && a.List != nil
	}
	if a.List.Priority != b.List.Priority {
		return a.List.Priority > b.List.Priority
	}
	if !a.List.CreatedAt.Equal(b.List.CreatedAt) {
		return a.List.CreatedAt.After(b.List.CreatedAt)
	}
	// Clock-resolution collision: fall back to assignment ID byte order
	// so the pick never depends on storage iteration order.
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
