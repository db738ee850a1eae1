package settlement

import (
	"context"

	"github.com/shopspring/decimal"
)

// TaxRule describes the transaction tax a payment method triggers. Rate is
// a fraction, e.g. 0.03 for 3%.
type TaxRule struct {
	Rate  decimal.Decimal `json:"rate"`
	Label string          `json:"label"`
}

// TaxRuleProvider maps a payment method to the transaction-tax rule it
// triggers, if any. Stateless, no side effects.
type TaxRuleProvider interface {
	GetTaxRule(ctx context.Context, methodID MethodID) (TaxRule, bool, error)
}

// MethodTaxProvider derives tax rules from payment method metadata: any
// method flagged IGTFApplicable triggers the single configured rule. This
// is an explicit method-id mapping; method display names are never parsed.
type MethodTaxProvider struct {
	methods MethodLookup
	rule    TaxRule
}

// NewMethodTaxProvider creates a provider applying the given rule to every
// IGTF-liable method
func NewMethodTaxProvider(methods MethodLookup, rule TaxRule) *MethodTaxProvider {
	return &MethodTaxProvider{methods: methods, rule: rule}
}

// GetTaxRule implements TaxRuleProvider. Unknown and tax-exempt methods
// both return ok=false.
func (p *MethodTaxProvider) GetTaxRule(ctx context.Context, methodID MethodID) (TaxRule, bool, error) {
	method, err := p.methods.FindByID(ctx, methodID)
	if err != nil {
		return TaxRule{}, false, err
	}
	if method == nil || !method.IGTFApplicable {
		return TaxRule{}, false, nil
	}
	return p.rule, true, nil
}
