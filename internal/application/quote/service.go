package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/pricing/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceOrigin identifies which path produced the quoted unit price
type PriceOrigin string

const (
	PriceOriginPriceList PriceOrigin = "PRICE_LIST" // A winning custom-price assignment
	PriceOriginStrategy  PriceOrigin = "STRATEGY"   // Computed from cost by the configured strategy
	PriceOriginManual    PriceOrigin = "MANUAL"     // Operator-entered base price
)

// QuoteRequest carries everything needed to price one variant at a point in
// time. CostPrice comes from the catalog service; ManualPrice is the
// operator-entered base price used when nothing else applies.
type QuoteRequest struct {
	TenantID    uuid.UUID
	VariantSKU  string
	At          time.Time
	CostPrice   decimal.Decimal
	ManualPrice decimal.Decimal
	Strategy    pricing.PricingStrategy
}

// QuoteResult is the priced outcome returned to the checkout flow
type QuoteResult struct {
	UnitPrice          decimal.Decimal       `json:"unit_price"`
	Origin             PriceOrigin           `json:"origin"`
	AppliedPriceListID *uuid.UUID            `json:"applied_price_list_id,omitempty"`
	Metrics            pricing.ProfitMetrics `json:"metrics"`
}

// Service resolves a variant's quote price: a winning price-list assignment
// takes precedence; otherwise the configured strategy computes from cost;
// otherwise the manual price stands. Stateless across calls; the registry
// is re-consulted on every quote.
type Service struct {
	registry   pricing.PriceListRegistry
	resolver   *pricing.PriceResolver
	calculator *pricing.StrategyCalculator
	logger     *zap.Logger
}

// NewService creates a quote service
func NewService(registry pricing.PriceListRegistry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry:   registry,
		resolver:   pricing.NewPriceResolver(),
		calculator: pricing.NewStrategyCalculator(),
		logger:     logger,
	}
}

// Quote prices one variant. The strategy is validated up front so a
// misconfigured margin fails before any lookup or arithmetic.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if req.VariantSKU == "" {
		return nil, fmt.Errorf("variant SKU is required")
	}
	if err := req.Strategy.Validate(); err != nil {
		return nil, err
	}

	at := req.At
	if at.IsZero() {
		at = time.Now()
	}

	eligible, err := s.registry.FindEligibleAssignments(ctx, req.TenantID, req.VariantSKU, at)
	if err != nil {
		return nil, fmt.Errorf("finding eligible assignments for %s: %w", req.VariantSKU, err)
	}

	if winner := s.resolver.Resolve(eligible); winner != nil {
		listID := winner.PriceListID
		s.logger.Debug("price list assignment won quote",
			zap.String("variant_sku", req.VariantSKU),
			zap.String("price_list_id", listID.String()),
			zap.String("unit_price", winner.CustomPrice.String()),
			zap.Int("candidates", len(eligible)),
		)
		return &QuoteResult{
			UnitPrice:          winner.CustomPrice,
			Origin:             PriceOriginPriceList,
			AppliedPriceListID: &listID,
			Metrics:            s.calculator.ComputeProfitMetrics(req.CostPrice, winner.CustomPrice),
		}, nil
	}

	// No list matched: fall through to the configured strategy.
	computation, err := s.calculator.ComputePrice(req.CostPrice, req.Strategy, req.ManualPrice)
	if err != nil {
		return nil, err
	}

	origin := PriceOriginManual
	if computation.Source == pricing.PriceSourceStrategy {
		origin = PriceOriginStrategy
	}
	s.logger.Debug("quote computed without price list match",
		zap.String("variant_sku", req.VariantSKU),
		zap.String("origin", string(origin)),
		zap.String("unit_price", computation.SalePrice.String()),
	)

	return &QuoteResult{
		UnitPrice: computation.SalePrice,
		Origin:    origin,
		Metrics:   s.calculator.ComputeProfitMetrics(req.CostPrice, computation.SalePrice),
	}, nil
}
