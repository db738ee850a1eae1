package pricing

import (
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StrategyMode discriminates how a sale price is derived from cost
type StrategyMode string

const (
	StrategyModeManual StrategyMode = "MANUAL" // Operator-entered price, no calculation
	StrategyModeMarkup StrategyMode = "MARKUP" // Cost-plus: cost x (1 + markup%)
	StrategyModeMargin StrategyMode = "MARGIN" // Target gross margin: cost / (1 - margin%)
)

// IsValid checks if the strategy mode is valid
func (m StrategyMode) IsValid() bool {
	switch m {
	case StrategyModeManual, StrategyModeMarkup, StrategyModeMargin:
		return true
	}
	return false
}

// String returns the string representation of StrategyMode
func (m StrategyMode) String() string {
	return string(m)
}

// RoundingMode is a psychological price-ending transform applied after the
// base price computation
type RoundingMode string

const (
	RoundingNone RoundingMode = "NONE"
	Rounding99   RoundingMode = "END_99" // floor(price) + 0.99
	Rounding95   RoundingMode = "END_95" // floor(price) + 0.95
	Rounding90   RoundingMode = "END_90" // floor(price) + 0.90
	RoundingUp   RoundingMode = "ROUND_UP"
	RoundingDown RoundingMode = "ROUND_DOWN"
)

// IsValid checks if the rounding mode is valid
func (m RoundingMode) IsValid() bool {
	switch m {
	case RoundingNone, Rounding99, Rounding95, Rounding90, RoundingUp, RoundingDown:
		return true
	}
	return false
}

// String returns the string representation of RoundingMode
func (m RoundingMode) String() string {
	return string(m)
}

// PricingStrategy configures how a variant's sale price is derived. It is a
// closed union on Mode: only the parameters belonging to the configured mode
// are consulted, the rest are ignored. Attached at quote time, never
// persisted by this engine.
type PricingStrategy struct {
	Mode             StrategyMode    `json:"mode"`
	AutoCalculate    bool            `json:"auto_calculate"`    // When false the computed value is advisory only
	MarkupPercentage decimal.Decimal `json:"markup_percentage"` // >= 0, markup mode
	MarginPercentage decimal.Decimal `json:"margin_percentage"` // [0, 100), margin mode
	Rounding         RoundingMode    `json:"rounding"`
}

// ManualStrategy returns a strategy that passes the manual price through
func ManualStrategy() PricingStrategy {
	return PricingStrategy{Mode: StrategyModeManual, Rounding: RoundingNone}
}

// MarkupStrategy returns an auto-calculating cost-plus strategy
func MarkupStrategy(markupPercentage decimal.Decimal, rounding RoundingMode) PricingStrategy {
	return PricingStrategy{
		Mode:             StrategyModeMarkup,
		AutoCalculate:    true,
		MarkupPercentage: markupPercentage,
		Rounding:         rounding,
	}
}

// MarginStrategy returns an auto-calculating target-margin strategy
func MarginStrategy(marginPercentage decimal.Decimal, rounding RoundingMode) PricingStrategy {
	return PricingStrategy{
		Mode:             StrategyModeMargin,
		AutoCalculate:    true,
		MarginPercentage: marginPercentage,
		Rounding:         rounding,
	}
}

// Validate rejects invalid configurations before any computation is
// attempted. A margin at or above 100% makes the denominator of the margin
// formula zero or negative and is never silently clamped.
func (s PricingStrategy) Validate() error {
	if !s.Mode.IsValid() {
		return shared.NewDomainError("INVALID_STRATEGY_MODE", "Unknown pricing strategy mode")
	}
	if s.Rounding != "" && !s.Rounding.IsValid() {
		return shared.NewDomainError("INVALID_ROUNDING_MODE", "Unknown psychological rounding mode")
	}
	switch s.Mode {
	case StrategyModeMarkup:
		if s.MarkupPercentage.IsNegative() {
			return shared.NewDomainError("INVALID_MARKUP", "Markup percentage cannot be negative")
		}
	case StrategyModeMargin:
		if s.MarginPercentage.IsNegative() {
			return shared.NewDomainError("INVALID_MARGIN", "Margin percentage cannot be negative")
		}
		if s.MarginPercentage.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_MARGIN", "Margin percentage must be below 100")
		}
	}
	return nil
}
