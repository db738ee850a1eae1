package pricing

import (
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
)

// PriceListType classifies a price list by its commercial purpose
type PriceListType string

const (
	PriceListTypeStandard    PriceListType = "STANDARD"
	PriceListTypeWholesale   PriceListType = "WHOLESALE"
	PriceListTypeRetail      PriceListType = "RETAIL"
	PriceListTypePromotional PriceListType = "PROMOTIONAL"
	PriceListTypeSeasonal    PriceListType = "SEASONAL"
	PriceListTypeCustom      PriceListType = "CUSTOM"
)

// IsValid checks if the price list type is valid
func (t PriceListType) IsValid() bool {
	switch t {
	case PriceListTypeStandard, PriceListTypeWholesale, PriceListTypeRetail,
		PriceListTypePromotional, PriceListTypeSeasonal, PriceListTypeCustom:
		return true
	}
	return false
}

// String returns the string representation of PriceListType
func (t PriceListType) String() string {
	return string(t)
}

// PriceList represents a named, prioritized collection of custom price
// assignments. Multiple lists may apply to the same variant at once; the
// resolver picks the winner by priority, then recency.
type PriceList struct {
	shared.TenantAggregateRoot
	Name      string        `json:"name"`
	Type      PriceListType `json:"type"`
	IsActive  bool          `json:"is_active"`
	StartDate *time.Time    `json:"start_date"` // Optional validity window start (inclusive)
	EndDate   *time.Time    `json:"end_date"`   // Optional validity window end (inclusive)
	Priority  int           `json:"priority"`   // Higher value wins conflict resolution
}

// NewPriceList creates a new price list
func NewPriceList(
	tenantID uuid.UUID,
	name string,
	listType PriceListType,
	priority int,
	startDate, endDate *time.Time,
) (*PriceList, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Price list name cannot be empty")
	}
	if !listType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid price list type")
	}
	if startDate != nil && endDate != nil && !startDate.Before(*endDate) {
		return nil, shared.ErrInvalidPriceWindow
	}

	return &PriceList{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Type:                listType,
		IsActive:            true,
		StartDate:           startDate,
		EndDate:             endDate,
		Priority:            priority,
	}, nil
}

// Deactivate soft-deactivates the price list
func (p *PriceList) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Activate re-activates the price list
func (p *PriceList) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// UpdateWindow changes the validity window, keeping the start-before-end invariant
func (p *PriceList) UpdateWindow(startDate, endDate *time.Time) error {
	if startDate != nil && endDate != nil && !startDate.Before(*endDate) {
		return shared.ErrInvalidPriceWindow
	}
	p.StartDate = startDate
	p.EndDate = endDate
	p.UpdatedAt = time.Now()
	return nil
}

// IsEligibleAt returns true when the list is active and the given instant
// falls within its validity window. A missing bound is unbounded on that side.
func (p *PriceList) IsEligibleAt(at time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartDate != nil && at.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && at.After(*p.EndDate) {
		return false
	}
	return true
}
