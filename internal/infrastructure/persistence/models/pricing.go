package models

import (
	"time"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceListModel is the persistence model for the PriceList aggregate root.
type PriceListModel struct {
	TenantAggregateModel
	Name      string                `gorm:"type:varchar(200);not null"`
	Type      pricing.PriceListType `gorm:"type:varchar(20);not null;index"`
	IsActive  bool                  `gorm:"not null;default:true;index"`
	StartDate *time.Time            `gorm:"index"`
	EndDate   *time.Time            `gorm:"index"`
	Priority  int                   `gorm:"not null;default:0;index"`
}

// TableName returns the table name for GORM
func (PriceListModel) TableName() string {
	return "price_lists"
}

// ToDomain converts the persistence model to a domain PriceList.
func (m *PriceListModel) ToDomain() *pricing.PriceList {
	return &pricing.PriceList{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Type:                m.Type,
		IsActive:            m.IsActive,
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		Priority:            m.Priority,
	}
}

// FromDomain populates the persistence model from a domain PriceList.
func (m *PriceListModel) FromDomain(p *pricing.PriceList) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Type = p.Type
	m.IsActive = p.IsActive
	m.StartDate = p.StartDate
	m.EndDate = p.EndDate
	m.Priority = p.Priority
}

// PriceAssignmentModel is the persistence model for PriceAssignment.
// An assignment is unique per (variant SKU, price list); deleting the list
// cascades to its assignments.
type PriceAssignmentModel struct {
	BaseModel
	PriceListID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_sku_list,priority:2;constraint:OnDelete:CASCADE"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantSKU  string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_assignment_sku_list,priority:1"`
	CustomPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsActive    bool            `gorm:"not null;default:true;index"`
	ValidFrom   *time.Time      `gorm:"index"`
	ValidUntil  *time.Time      `gorm:"index"`
	Notes       string          `gorm:"type:text"`

	List *PriceListModel `gorm:"foreignKey:PriceListID"`
}

// TableName returns the table name for GORM
func (PriceAssignmentModel) TableName() string {
	return "price_assignments"
}

// ToDomain converts the persistence model to a domain PriceAssignment.
func (m *PriceAssignmentModel) ToDomain() *pricing.PriceAssignment {
	a := &pricing.PriceAssignment{
		BaseEntity:  m.BaseModel.ToDomain(),
		PriceListID: m.PriceListID,
		ProductID:   m.ProductID,
		VariantSKU:  m.VariantSKU,
		CustomPrice: m.CustomPrice,
		IsActive:    m.IsActive,
		ValidFrom:   m.ValidFrom,
		ValidUntil:  m.ValidUntil,
		Notes:       m.Notes,
	}
	if m.List != nil {
		a.List = m.List.ToDomain()
	}
	return a
}

// FromDomain populates the persistence model from a domain PriceAssignment.
func (m *PriceAssignmentModel) FromDomain(a *pricing.PriceAssignment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.PriceListID = a.PriceListID
	m.ProductID = a.ProductID
	m.VariantSKU = a.VariantSKU
	m.CustomPrice = a.CustomPrice
	m.IsActive = a.IsActive
	m.ValidFrom = a.ValidFrom
	m.ValidUntil = a.ValidUntil
	m.Notes = a.Notes
}
