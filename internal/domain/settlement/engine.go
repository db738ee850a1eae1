package settlement

import (
	"context"
	"fmt"

	"github.com/erp/pricing/internal/domain/shared"
	"github.com/erp/pricing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DefaultBalanceEpsilon absorbs display rounding of 2-decimal currency
// amounts, not semantic error.
var DefaultBalanceEpsilon = decimal.NewFromFloat(0.01)

// ValidationCode identifies why a settlement is not yet valid
type ValidationCode string

const (
	ValidationNoLines          ValidationCode = "NO_LINES"
	ValidationMissingMethod    ValidationCode = "MISSING_METHOD"
	ValidationInvalidAmount    ValidationCode = "INVALID_AMOUNT"
	ValidationCurrencyMismatch ValidationCode = "CURRENCY_MISMATCH"
	ValidationUnbalanced       ValidationCode = "UNBALANCED"
)

// ValidationIssue is one reason a settlement cannot be finalized yet.
// LineIndex is -1 for settlement-level issues.
type ValidationIssue struct {
	Code      ValidationCode `json:"code"`
	Message   string         `json:"message"`
	LineIndex int            `json:"line_index"`
}

// SettlementValidation is the structured result of validating a draft
// settlement. An invalid settlement is an in-progress state the operator
// can still fix, never a fault.
type SettlementValidation struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues"`
}

// SettlementEngineOption is a functional option for configuring SettlementEngine
type SettlementEngineOption func(*SettlementEngine)

// WithBalanceEpsilon overrides the balance tolerance
func WithBalanceEpsilon(epsilon decimal.Decimal) SettlementEngineOption {
	return func(e *SettlementEngine) {
		if epsilon.IsPositive() {
			e.epsilon = epsilon
		}
	}
}

// SettlementEngine is a domain service that derives a settlement's totals
// from its payment line composition and validates the draft-to-balanced
// transition. Tax is re-derived on every line change because it depends on
// which methods the operator split payment across, not on the order alone.
type SettlementEngine struct {
	methods  MethodLookup
	taxRules TaxRuleProvider
	epsilon  decimal.Decimal
}

// NewSettlementEngine creates a settlement engine with optional configuration
func NewSettlementEngine(methods MethodLookup, taxRules TaxRuleProvider, opts ...SettlementEngineOption) *SettlementEngine {
	e := &SettlementEngine{
		methods:  methods,
		taxRules: taxRules,
		epsilon:  DefaultBalanceEpsilon,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BalanceEpsilon returns the configured balance tolerance
func (e *SettlementEngine) BalanceEpsilon() decimal.Decimal {
	return e.epsilon
}

// Recalculate recomputes the settlement's derived totals from its current
// lines:
//
//	taxAmount     = taxable portion of IGTF-liable lines x rule rate
//	requiredTotal = orderTotal + taxAmount
//	paidTotal     = sum of line amounts in the settlement currency
//	remaining     = requiredTotal - paidTotal
//
// The taxable base of a line is capped so the aggregate base never exceeds
// the order total: the tax surcharge a customer pays on top of the order is
// itself not taxed again. Cheap and idempotent; call after every line edit.
func (e *SettlementEngine) Recalculate(ctx context.Context, s *Settlement) error {
	if s == nil {
		return shared.NewDomainError("INVALID_SETTLEMENT", "Settlement cannot be nil")
	}
	if s.Status.IsTerminal() {
		return shared.ErrInvalidState
	}

	taxAmount := decimal.Zero
	paidTotal := valueobject.Zero(s.Currency)
	taxableCapacity := s.OrderTotal

	for _, line := range s.Lines {
		sum, err := paidTotal.Add(line.Amount)
		if err != nil {
			// Wrong-currency line: it cannot sum into the settlement's
			// totals. Validate reports it against its line index.
			continue
		}
		paidTotal = sum

		if !line.Amount.IsPositive() {
			continue
		}
		rule, liable, err := e.taxRules.GetTaxRule(ctx, line.MethodID)
		if err != nil {
			return fmt.Errorf("resolving tax rule for method %s: %w", line.MethodID, err)
		}
		if !liable {
			continue
		}
		base := line.Amount.Amount()
		if base.GreaterThan(taxableCapacity) {
			base = taxableCapacity
		}
		taxableCapacity = taxableCapacity.Sub(base)
		taxAmount = taxAmount.Add(base.Mul(rule.Rate))
	}

	s.TaxAmount = taxAmount.Round(2)
	s.RequiredTotal = s.OrderTotal.Add(s.TaxAmount)
	s.PaidTotal = paidTotal.Amount()
	s.Remaining = s.RequiredTotal.Sub(s.PaidTotal)
	return nil
}

// Validate recalculates and then checks whether the settlement can move
// from draft to balanced. On success the settlement is marked balanced; on
// failure it stays (or drops back to) draft with the issues reported.
func (e *SettlementEngine) Validate(ctx context.Context, s *Settlement) (SettlementValidation, error) {
	if s == nil {
		return SettlementValidation{}, shared.NewDomainError("INVALID_SETTLEMENT", "Settlement cannot be nil")
	}
	if s.Status.IsTerminal() {
		return SettlementValidation{}, shared.ErrInvalidState
	}
	if err := e.Recalculate(ctx, s); err != nil {
		return SettlementValidation{}, err
	}

	var issues []ValidationIssue

	if len(s.Lines) == 0 {
		issues = append(issues, ValidationIssue{
			Code:      ValidationNoLines,
			Message:   "Settlement has no payment lines",
			LineIndex: -1,
		})
	}

	for i, line := range s.Lines {
		if line.MethodID == "" {
			issues = append(issues, ValidationIssue{
				Code:      ValidationMissingMethod,
				Message:   "Payment line has no method selected",
				LineIndex: i,
			})
		} else {
			method, err := e.methods.FindByID(ctx, line.MethodID)
			if err != nil {
				return SettlementValidation{}, fmt.Errorf("resolving method %s: %w", line.MethodID, err)
			}
			if method == nil {
				issues = append(issues, ValidationIssue{
					Code:      ValidationMissingMethod,
					Message:   fmt.Sprintf("Payment method %s is not configured", line.MethodID),
					LineIndex: i,
				})
			}
		}
		if !line.Amount.IsPositive() {
			issues = append(issues, ValidationIssue{
				Code:      ValidationInvalidAmount,
				Message:   "Payment line amount must be positive",
				LineIndex: i,
			})
		}
		if line.Amount.Currency() != s.Currency {
			issues = append(issues, ValidationIssue{
				Code:      ValidationCurrencyMismatch,
				Message:   fmt.Sprintf("Payment line is in %s but the settlement is in %s", line.Amount.Currency(), s.Currency),
				LineIndex: i,
			})
		}
	}

	if s.Remaining.Abs().GreaterThan(e.epsilon) {
		message := fmt.Sprintf("Settlement is short by %s", s.Remaining.StringFixed(2))
		if s.Remaining.IsNegative() {
			message = fmt.Sprintf("Settlement is overpaid by %s", s.Remaining.Abs().StringFixed(2))
		}
		issues = append(issues, ValidationIssue{
			Code:      ValidationUnbalanced,
			Message:   message,
			LineIndex: -1,
		})
	}

	result := SettlementValidation{
		Valid:  len(issues) == 0,
		Issues: issues,
	}

	if result.Valid {
		s.Status = SettlementStatusBalanced
	} else {
		s.Status = SettlementStatusDraft
	}
	return result, nil
}
