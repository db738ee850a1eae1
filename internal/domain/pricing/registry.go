package pricing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PriceListRegistry answers "which custom-price assignments are eligible for
// this variant right now." Implementations must return assignments with the
// parent List populated. An unknown variant yields an empty slice, not an
// error: absence of pricing is an expected outcome.
type PriceListRegistry interface {
	FindEligibleAssignments(ctx context.Context, tenantID uuid.UUID, variantSKU string, at time.Time) ([]PriceAssignment, error)
}

// InMemoryRegistry is a PriceListRegistry backed by in-process maps.
// Used by tests and by callers that already hold the tenant's price data.
type InMemoryRegistry struct {
	mu          sync.RWMutex
	lists       map[uuid.UUID]*PriceList
	assignments []PriceAssignment
}

// NewInMemoryRegistry creates an empty in-memory registry
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		lists: make(map[uuid.UUID]*PriceList),
	}
}

// AddList registers a price list
func (r *InMemoryRegistry) AddList(list *PriceList) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[list.ID] = list
}

// AddAssignment registers an assignment under its price list. An assignment
// is unique per (variant SKU, price list); re-adding replaces the old row,
// matching the unique index the persistent registry relies on.
func (r *InMemoryRegistry) AddAssignment(assignment PriceAssignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.assignments {
		if existing.VariantSKU == assignment.VariantSKU && existing.PriceListID == assignment.PriceListID {
			r.assignments[i] = assignment
			return
		}
	}
	r.assignments = append(r.assignments, assignment)
}

// RemoveList deletes a price list and cascades to its assignments
func (r *InMemoryRegistry) RemoveList(listID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, listID)
	kept := r.assignments[:0]
	for _, a := range r.assignments {
		if a.PriceListID != listID {
			kept = append(kept, a)
		}
	}
	r.assignments = kept
}

// FindEligibleAssignments implements PriceListRegistry
func (r *InMemoryRegistry) FindEligibleAssignments(ctx context.Context, tenantID uuid.UUID, variantSKU string, at time.Time) ([]PriceAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []PriceAssignment
	for _, a := range r.assignments {
		if a.VariantSKU != variantSKU {
			continue
		}
		list, ok := r.lists[a.PriceListID]
		if !ok || list.TenantID != tenantID {
			continue
		}
		if !list.IsEligibleAt(at) || !a.IsEligibleAt(at) {
			continue
		}
		a.List = list
		result = append(result, a)
	}
	// Stable output order independent of insertion order
	sort.Slice(result, func(i, j int) bool {
		return lessAssignment(result[i], result[j])
	})
	return result, nil
}
