package settlement

import (
	"context"

	"github.com/erp/pricing/internal/domain/settlement"
	"github.com/erp/pricing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LineInput is one payment line as entered by the operator
type LineInput struct {
	MethodID  settlement.MethodID
	Amount    decimal.Decimal
	Reference string
}

// BuildRequest carries an order total and the operator's payment lines.
// Currency denominates the order total and every line; empty means the
// system default.
type BuildRequest struct {
	TenantID   uuid.UUID
	OrderID    uuid.UUID
	OrderTotal decimal.Decimal
	Currency   valueobject.Currency
	Lines      []LineInput
}

// BuildResult pairs the recomputed settlement with its validation outcome.
// An invalid settlement is a normal in-progress state, not an error.
type BuildResult struct {
	Settlement *settlement.Settlement          `json:"settlement"`
	Validation settlement.SettlementValidation `json:"validation"`
}

// Service wraps the settlement engine for the order-edit flow: build a
// settlement from the current form state, recompute totals, and report
// whether it can be finalized. Each call builds a fresh settlement; there
// is no state shared between edits.
type Service struct {
	engine *settlement.SettlementEngine
	logger *zap.Logger
}

// NewService creates a settlement application service
func NewService(engine *settlement.SettlementEngine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, logger: logger}
}

// Build constructs a settlement from the request, recomputes derived
// totals, and validates the draft-to-balanced transition.
func (s *Service) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	stl, err := settlement.NewSettlementInCurrency(req.TenantID, req.OrderID, req.OrderTotal, currency)
	if err != nil {
		return nil, err
	}
	for _, input := range req.Lines {
		amount, err := valueobject.NewMoney(input.Amount, currency)
		if err != nil {
			return nil, err
		}
		line := settlement.NewPaymentLine(input.MethodID, amount, input.Reference)
		if err := stl.AddLine(line); err != nil {
			return nil, err
		}
	}

	validation, err := s.engine.Validate(ctx, stl)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("settlement recomputed",
		zap.String("order_id", req.OrderID.String()),
		zap.Int("lines", len(stl.Lines)),
		zap.String("tax_amount", stl.TaxAmount.String()),
		zap.String("remaining", stl.Remaining.String()),
		zap.Bool("valid", validation.Valid),
	)

	return &BuildResult{Settlement: stl, Validation: validation}, nil
}

// Commit finalizes a balanced settlement on behalf of the external order
// system. The settlement must have been validated first.
func (s *Service) Commit(ctx context.Context, stl *settlement.Settlement, operatorID uuid.UUID) error {
	if err := stl.Commit(operatorID); err != nil {
		return err
	}
	s.logger.Info("settlement committed",
		zap.String("settlement_id", stl.ID.String()),
		zap.String("order_id", stl.OrderID.String()),
		zap.String("paid_total", stl.PaidTotal.String()),
		zap.String("tax_amount", stl.TaxAmount.String()),
	)
	return nil
}
