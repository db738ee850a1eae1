package pricing

import (
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceAssignment binds a custom price for one product variant to a price
// list. A variant may hold at most one active assignment per list, but many
// across different lists; the resolver arbitrates between them.
type PriceAssignment struct {
	shared.BaseEntity
	PriceListID uuid.UUID       `json:"price_list_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	VariantSKU  string          `json:"variant_sku"`
	CustomPrice decimal.Decimal `json:"custom_price"`
	IsActive    bool            `json:"is_active"`
	ValidFrom   *time.Time      `json:"valid_from"`  // Optional assignment-level window start (inclusive)
	ValidUntil  *time.Time      `json:"valid_until"` // Optional assignment-level window end (inclusive)
	Notes       string          `json:"notes"`

	// List is the parent price list, preloaded by the registry so the
	// resolver can order candidates without a second lookup.
	List *PriceList `json:"list,omitempty"`
}

// NewPriceAssignment creates a new price assignment
func NewPriceAssignment(
	priceListID, productID uuid.UUID,
	variantSKU string,
	customPrice decimal.Decimal,
	validFrom, validUntil *time.Time,
	notes string,
) (*PriceAssignment, error) {
	if variantSKU == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Variant SKU cannot be empty")
	}
	if customPrice.IsNegative() {
		return nil, shared.ErrNegativePrice
	}
	if validFrom != nil && validUntil != nil && !validFrom.Before(*validUntil) {
		return nil, shared.ErrInvalidPriceWindow
	}

	return &PriceAssignment{
		BaseEntity:  shared.NewBaseEntity(),
		PriceListID: priceListID,
		ProductID:   productID,
		VariantSKU:  variantSKU,
		CustomPrice: customPrice,
		IsActive:    true,
		ValidFrom:   validFrom,
		ValidUntil:  validUntil,
		Notes:       notes,
	}, nil
}

// UpdatePrice changes the custom price, rejecting negative values
func (a *PriceAssignment) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.ErrNegativePrice
	}
	a.CustomPrice = price
	a.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deactivates the assignment
func (a *PriceAssignment) Deactivate() {
	a.IsActive = false
	a.UpdatedAt = time.Now()
}

// IsEligibleAt returns true when the assignment itself is active and the
// given instant falls within its own optional window. The parent list's
// window is checked separately by the list.
func (a *PriceAssignment) IsEligibleAt(at time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.ValidFrom != nil && at.Before(*a.ValidFrom) {
		return false
	}
	if a.ValidUntil != nil && at.After(*a.ValidUntil) {
		return false
	}
	return true
}
