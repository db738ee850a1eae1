package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/erp/pricing/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPriceListRegistry implements pricing.PriceListRegistry using GORM
type GormPriceListRegistry struct {
	db *gorm.DB
}

// NewGormPriceListRegistry creates a new GORM-based price list registry
func NewGormPriceListRegistry(db *gorm.DB) *GormPriceListRegistry {
	return &GormPriceListRegistry{db: db}
}

// FindEligibleAssignments returns every assignment for the given variant SKU
// whose own window and whose parent list's window cover the lookup time.
// The parent list is loaded on each row so the resolver can rank by priority.
func (r *GormPriceListRegistry) FindEligibleAssignments(ctx context.Context, tenantID uuid.UUID, variantSKU string, at time.Time) ([]pricing.PriceAssignment, error) {
	var rows []models.PriceAssignmentModel
	err := r.db.WithContext(ctx).
		Joins("List").
		Where(`"List".tenant_id = ?`, tenantID).
		Where(`"List".is_active = ?`, true).
		Where(`"List".start_date IS NULL OR "List".start_date <= ?`, at).
		Where(`"List".end_date IS NULL OR "List".end_date >= ?`, at).
		Where("price_assignments.variant_sku = ?", variantSKU).
		Where("price_assignments.is_active = ?", true).
		Where("price_assignments.valid_from IS NULL OR price_assignments.valid_from <= ?", at).
		Where("price_assignments.valid_until IS NULL OR price_assignments.valid_until >= ?", at).
		Order(`"List".priority DESC, "List".created_at DESC, price_assignments.id ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find eligible assignments: %w", err)
	}

	assignments := make([]pricing.PriceAssignment, 0, len(rows))
	for i := range rows {
		assignments = append(assignments, *rows[i].ToDomain())
	}
	return assignments, nil
}
