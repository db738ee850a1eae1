package models

import (
	"github.com/erp/pricing/internal/domain/settlement"
	"github.com/erp/pricing/internal/domain/shared/valueobject"
)

// PaymentMethodModel is the persistence model for configured payment
// methods. The engine reads this table, it never writes it.
type PaymentMethodModel struct {
	ID             string               `gorm:"type:varchar(50);primary_key"`
	DisplayName    string               `gorm:"type:varchar(100);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null"`
	IGTFApplicable bool                 `gorm:"column:igtf_applicable;not null;default:false"`
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// ToDomain converts the persistence model to a domain PaymentMethod.
func (m *PaymentMethodModel) ToDomain() *settlement.PaymentMethod {
	return &settlement.PaymentMethod{
		ID:             settlement.MethodID(m.ID),
		DisplayName:    m.DisplayName,
		Currency:       m.Currency,
		IGTFApplicable: m.IGTFApplicable,
	}
}
