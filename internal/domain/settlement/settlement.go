package settlement

import (
	"time"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementStatus represents the lifecycle state of a settlement
type SettlementStatus string

const (
	SettlementStatusDraft     SettlementStatus = "DRAFT"     // Lines being edited
	SettlementStatusBalanced  SettlementStatus = "BALANCED"  // Paid total matches required total within epsilon
	SettlementStatusCommitted SettlementStatus = "COMMITTED" // Accepted by the external order system
)

// IsValid checks if the status is a valid SettlementStatus
func (s SettlementStatus) IsValid() bool {
	switch s {
	case SettlementStatusDraft, SettlementStatusBalanced, SettlementStatusCommitted:
		return true
	}
	return false
}

// String returns the string representation of SettlementStatus
func (s SettlementStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the settlement is in a terminal state
func (s SettlementStatus) IsTerminal() bool {
	return s == SettlementStatusCommitted
}

// CanEdit returns true if payment lines may still be changed in this status
func (s SettlementStatus) CanEdit() bool {
	return s == SettlementStatusDraft || s == SettlementStatusBalanced
}

// CanCommit returns true if the settlement can be committed in this status
func (s SettlementStatus) CanCommit() bool {
	return s == SettlementStatusBalanced
}

// PaymentLine is one payment submitted toward a settlement. The amount
// carries its currency so a line entered in the wrong currency can never
// silently sum into the settlement's totals.
type PaymentLine struct {
	ID        uuid.UUID         `json:"id"`
	MethodID  MethodID          `json:"method_id"`
	Amount    valueobject.Money `json:"amount"`
	Reference string            `json:"reference"` // Free text: bank txn, mobile payment code
}

// NewPaymentLine creates a new payment line
func NewPaymentLine(methodID MethodID, amount valueobject.Money, reference string) PaymentLine {
	return PaymentLine{
		ID:        uuid.New(),
		MethodID:  methodID,
		Amount:    amount,
		Reference: reference,
	}
}

// Settlement reconciles an order's required total (including conditional
// IGTF tax) against the submitted payment lines. Each instance is owned
// exclusively by the caller editing one order; derived totals are
// recomputed by the SettlementEngine on every line change.
type Settlement struct {
	shared.TenantAggregateRoot
	OrderID    uuid.UUID            `json:"order_id"`
	OrderTotal decimal.Decimal      `json:"order_total"` // Pre-tax amount owed, in Currency
	Currency   valueobject.Currency `json:"currency"`    // Currency all lines must settle in
	Lines      []PaymentLine        `json:"lines"`
	Status     SettlementStatus     `json:"status"`

	// Derived by the engine; the tax amount is an auditable derived value,
	// never a payment line itself.
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	RequiredTotal decimal.Decimal `json:"required_total"`
	PaidTotal     decimal.Decimal `json:"paid_total"`
	Remaining     decimal.Decimal `json:"remaining"`

	CommittedAt *time.Time `json:"committed_at"`
	CommittedBy *uuid.UUID `json:"committed_by"`
}

// NewSettlement creates a draft settlement in the default currency
func NewSettlement(tenantID, orderID uuid.UUID, orderTotal decimal.Decimal) (*Settlement, error) {
	return NewSettlementInCurrency(tenantID, orderID, orderTotal, valueobject.DefaultCurrency)
}

// NewSettlementInCurrency creates a draft settlement whose order total and
// payment lines are denominated in the given currency
func NewSettlementInCurrency(tenantID, orderID uuid.UUID, orderTotal decimal.Decimal, currency valueobject.Currency) (*Settlement, error) {
	if orderTotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ORDER_TOTAL", "Order total cannot be negative")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Settlement currency cannot be empty")
	}
	return &Settlement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderID:             orderID,
		OrderTotal:          orderTotal,
		Currency:            currency,
		Lines:               []PaymentLine{},
		Status:              SettlementStatusDraft,
		RequiredTotal:       orderTotal,
		Remaining:           orderTotal,
	}, nil
}

// AddLine appends a payment line. Derived totals are stale until the
// engine recalculates, so the settlement drops back to draft.
func (s *Settlement) AddLine(line PaymentLine) error {
	if !s.Status.CanEdit() {
		return shared.ErrInvalidState
	}
	s.Lines = append(s.Lines, line)
	s.Status = SettlementStatusDraft
	s.UpdatedAt = time.Now()
	return nil
}

// UpdateLine replaces the line with the same ID
func (s *Settlement) UpdateLine(line PaymentLine) error {
	if !s.Status.CanEdit() {
		return shared.ErrInvalidState
	}
	for i := range s.Lines {
		if s.Lines[i].ID == line.ID {
			s.Lines[i] = line
			s.Status = SettlementStatusDraft
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveLine deletes the line with the given ID
func (s *Settlement) RemoveLine(lineID uuid.UUID) error {
	if !s.Status.CanEdit() {
		return shared.ErrInvalidState
	}
	for i := range s.Lines {
		if s.Lines[i].ID == lineID {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			s.Status = SettlementStatusDraft
			s.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Commit marks the settlement as accepted by the external order system.
// Only a balanced settlement can commit.
func (s *Settlement) Commit(committedBy uuid.UUID) error {
	if !s.Status.CanCommit() {
		return shared.ErrInvalidState
	}
	now := time.Now()
	s.Status = SettlementStatusCommitted
	s.CommittedAt = &now
	s.CommittedBy = &committedBy
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}
