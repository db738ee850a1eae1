package pricing

import (
	"github.com/erp/pricing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// PriceSource identifies where an authoritative sale price came from
type PriceSource string

const (
	PriceSourceManual   PriceSource = "MANUAL"   // Operator-entered fallback price
	PriceSourceStrategy PriceSource = "STRATEGY" // Auto-calculated from cost
)

// PriceComputation is the outcome of a strategy computation. SalePrice is
// the authoritative price; ComputedPrice carries the formula result even
// when AutoCalculate is off, so the UI can display it as a suggestion.
type PriceComputation struct {
	SalePrice     decimal.Decimal `json:"sale_price"`
	ComputedPrice decimal.Decimal `json:"computed_price"`
	Source        PriceSource     `json:"source"`
}

// ProfitMetrics holds derived profitability values for display and
// validation. Never persisted as authoritative.
type ProfitMetrics struct {
	ProfitAmount     decimal.Decimal `json:"profit_amount"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"` // profit / cost x 100
	Margin           decimal.Decimal `json:"margin"`            // profit / sale x 100
}

// StrategyCalculator derives sale prices from cost via a configured
// strategy. All methods are pure.
type StrategyCalculator struct{}

// NewStrategyCalculator creates a new strategy calculator
func NewStrategyCalculator() *StrategyCalculator {
	return &StrategyCalculator{}
}

// ComputePrice derives a sale price from cost using the given strategy,
// falling back to the manual price for manual mode or when AutoCalculate is
// off. The strategy is validated before any arithmetic runs; a margin at or
// above 100% fails here rather than producing an infinite or negative price.
func (c *StrategyCalculator) ComputePrice(
	costPrice decimal.Decimal,
	strategy PricingStrategy,
	fallbackManualPrice decimal.Decimal,
) (PriceComputation, error) {
	if err := strategy.Validate(); err != nil {
		return PriceComputation{}, err
	}
	if costPrice.IsNegative() {
		return PriceComputation{}, shared.ErrNegativePrice
	}

	if strategy.Mode == StrategyModeManual {
		return PriceComputation{
			SalePrice:     fallbackManualPrice,
			ComputedPrice: fallbackManualPrice,
			Source:        PriceSourceManual,
		}, nil
	}

	var base decimal.Decimal
	switch strategy.Mode {
	case StrategyModeMarkup:
		factor := decimal.NewFromInt(1).Add(strategy.MarkupPercentage.Div(oneHundred))
		base = costPrice.Mul(factor)
	case StrategyModeMargin:
		denominator := decimal.NewFromInt(1).Sub(strategy.MarginPercentage.Div(oneHundred))
		base = costPrice.Div(denominator)
	}

	computed := ApplyPsychologicalRounding(base.Round(2), strategy.Rounding)

	if !strategy.AutoCalculate {
		// Computed value is advisory only; the manual price stays authoritative.
		return PriceComputation{
			SalePrice:     fallbackManualPrice,
			ComputedPrice: computed,
			Source:        PriceSourceManual,
		}, nil
	}

	return PriceComputation{
		SalePrice:     computed,
		ComputedPrice: computed,
		Source:        PriceSourceStrategy,
	}, nil
}

// ApplyPsychologicalRounding applies a price-ending transform. It is
// idempotent and never pushes a price below zero. It must only run after
// the base computation, never before.
func ApplyPsychologicalRounding(price decimal.Decimal, mode RoundingMode) decimal.Decimal {
	var result decimal.Decimal
	switch mode {
	case Rounding99:
		result = price.Floor().Add(decimal.NewFromFloat(0.99))
	case Rounding95:
		result = price.Floor().Add(decimal.NewFromFloat(0.95))
	case Rounding90:
		result = price.Floor().Add(decimal.NewFromFloat(0.90))
	case RoundingUp:
		result = price.Ceil()
	case RoundingDown:
		result = price.Floor()
	default:
		result = price
	}
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}

// ComputeProfitMetrics derives profit amount, profit percentage over cost,
// and gross margin over sale price. Zero denominators yield zero metrics
// rather than errors: a free item simply has no meaningful percentage.
func (c *StrategyCalculator) ComputeProfitMetrics(costPrice, salePrice decimal.Decimal) ProfitMetrics {
	profit := salePrice.Sub(costPrice)

	profitPct := decimal.Zero
	if !costPrice.IsZero() {
		profitPct = profit.Div(costPrice).Mul(oneHundred).Round(4)
	}

	margin := decimal.Zero
	if !salePrice.IsZero() {
		margin = profit.Div(salePrice).Mul(oneHundred).Round(4)
	}

	return ProfitMetrics{
		ProfitAmount:     profit,
		ProfitPercentage: profitPct,
		Margin:           margin,
	}
}
