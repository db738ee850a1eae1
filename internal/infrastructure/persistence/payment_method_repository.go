package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/pricing/internal/domain/settlement"
	"github.com/erp/pricing/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentMethodRepository implements settlement.MethodLookup using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GORM-based payment method repository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a payment method by its ID. Missing methods return
// (nil, nil) so the settlement engine can report them as validation
// issues instead of failing the whole recalculation.
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id settlement.MethodID) (*settlement.PaymentMethod, error) {
	var model models.PaymentMethodModel
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find payment method: %w", err)
	}
	return model.ToDomain(), nil
}
