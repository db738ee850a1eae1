package settlement

import (
	"context"

	"github.com/erp/pricing/internal/domain/shared/valueobject"
)

// MethodID identifies a configured payment method, e.g. "efectivo_usd" or
// "pago_movil_ves". Methods are configured externally; this engine reads
// their metadata and never mutates it.
type MethodID string

// String returns the string representation of MethodID
func (id MethodID) String() string {
	return string(id)
}

// PaymentMethod carries the method metadata the settlement engine needs:
// the settlement currency and whether paying with this method triggers the
// IGTF-style transaction tax.
type PaymentMethod struct {
	ID             MethodID             `json:"id"`
	DisplayName    string               `json:"display_name"`
	Currency       valueobject.Currency `json:"currency"`
	IGTFApplicable bool                 `json:"igtf_applicable"`
}

// MethodLookup resolves payment method metadata by ID. A missing method
// returns (nil, nil); the caller decides whether that is a validation
// failure or just an in-progress line.
type MethodLookup interface {
	FindByID(ctx context.Context, id MethodID) (*PaymentMethod, error)
}

// StaticMethodLookup is a MethodLookup over a fixed method set, for tests
// and for callers that already hold the tenant's method configuration.
type StaticMethodLookup struct {
	methods map[MethodID]PaymentMethod
}

// NewStaticMethodLookup creates a lookup over the given methods
func NewStaticMethodLookup(methods ...PaymentMethod) *StaticMethodLookup {
	m := make(map[MethodID]PaymentMethod, len(methods))
	for _, method := range methods {
		m[method.ID] = method
	}
	return &StaticMethodLookup{methods: m}
}

// FindByID implements MethodLookup
func (l *StaticMethodLookup) FindByID(ctx context.Context, id MethodID) (*PaymentMethod, error) {
	method, ok := l.methods[id]
	if !ok {
		return nil, nil
	}
	return &method, nil
}
