package settlement

import (
	"context"
	"testing"

	"github.com/erp/pricing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createTestSettlement(t *testing.T, orderTotal string) *Settlement {
	s, err := NewSettlement(uuid.New(), uuid.New(), decimal.RequireFromString(orderTotal))
	require.NoError(t, err)
	return s
}

func ves(amount string) valueobject.Money {
	return valueobject.NewMoneyVES(decimal.RequireFromString(amount))
}

// ============================================
// SettlementStatus Tests
// ============================================

func TestSettlementStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  SettlementStatus
		isValid bool
	}{
		{SettlementStatusDraft, true},
		{SettlementStatusBalanced, true},
		{SettlementStatusCommitted, true},
		{SettlementStatus("INVALID"), false},
		{SettlementStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestSettlementStatus_Predicates(t *testing.T) {
	tests := []struct {
		status     SettlementStatus
		isTerminal bool
		canEdit    bool
		canCommit  bool
	}{
		{SettlementStatusDraft, false, true, false},
		{SettlementStatusBalanced, false, true, true},
		{SettlementStatusCommitted, true, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isTerminal, tt.status.IsTerminal())
			assert.Equal(t, tt.canEdit, tt.status.CanEdit())
			assert.Equal(t, tt.canCommit, tt.status.CanCommit())
		})
	}
}

// ============================================
// Settlement Tests
// ============================================

func TestNewSettlement(t *testing.T) {
	t.Run("creates draft settlement", func(t *testing.T) {
		tenantID := uuid.New()
		orderID := uuid.New()
		s, err := NewSettlement(tenantID, orderID, decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.Equal(t, tenantID, s.TenantID)
		assert.Equal(t, orderID, s.OrderID)
		assert.Equal(t, SettlementStatusDraft, s.Status)
		assert.Empty(t, s.Lines)
		assert.True(t, s.Remaining.Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects negative order total", func(t *testing.T) {
		_, err := NewSettlement(uuid.New(), uuid.New(), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("accepts zero order total", func(t *testing.T) {
		s, err := NewSettlement(uuid.New(), uuid.New(), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, s.OrderTotal.IsZero())
	})

	t.Run("defaults to the system currency", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		assert.Equal(t, valueobject.DefaultCurrency, s.Currency)
	})

	t.Run("explicit currency is kept", func(t *testing.T) {
		s, err := NewSettlementInCurrency(uuid.New(), uuid.New(), decimal.NewFromInt(100), valueobject.USD)
		require.NoError(t, err)
		assert.Equal(t, valueobject.USD, s.Currency)
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewSettlementInCurrency(uuid.New(), uuid.New(), decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestSettlement_LineEditing(t *testing.T) {
	t.Run("add line drops status back to draft", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		s.Status = SettlementStatusBalanced

		err := s.AddLine(NewPaymentLine("efectivo_usd", ves("50"), "ref-1"))
		require.NoError(t, err)
		assert.Equal(t, SettlementStatusDraft, s.Status)
		assert.Len(t, s.Lines, 1)
	})

	t.Run("update line replaces by ID", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		line := NewPaymentLine("efectivo_usd", ves("50"), "ref-1")
		require.NoError(t, s.AddLine(line))

		line.Amount = ves("75")
		require.NoError(t, s.UpdateLine(line))
		assert.True(t, s.Lines[0].Amount.Equals(ves("75")))
	})

	t.Run("update of unknown line fails", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		err := s.UpdateLine(NewPaymentLine("efectivo_usd", ves("10"), ""))
		assert.Error(t, err)
	})

	t.Run("remove line", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		line := NewPaymentLine("efectivo_usd", ves("50"), "")
		require.NoError(t, s.AddLine(line))

		require.NoError(t, s.RemoveLine(line.ID))
		assert.Empty(t, s.Lines)

		assert.Error(t, s.RemoveLine(line.ID))
	})

	t.Run("committed settlement rejects edits", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		s.Status = SettlementStatusCommitted

		assert.Error(t, s.AddLine(NewPaymentLine("efectivo_usd", ves("10"), "")))
		assert.Error(t, s.RemoveLine(uuid.New()))
	})
}

func TestSettlement_Commit(t *testing.T) {
	t.Run("commits from balanced", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		s.Status = SettlementStatusBalanced
		operator := uuid.New()
		versionBefore := s.GetVersion()

		require.NoError(t, s.Commit(operator))
		assert.Equal(t, SettlementStatusCommitted, s.Status)
		require.NotNil(t, s.CommittedBy)
		assert.Equal(t, operator, *s.CommittedBy)
		assert.NotNil(t, s.CommittedAt)
		assert.Equal(t, versionBefore+1, s.GetVersion())
	})

	t.Run("cannot commit a draft", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		assert.Error(t, s.Commit(uuid.New()))
	})

	t.Run("cannot commit twice", func(t *testing.T) {
		s := createTestSettlement(t, "100")
		s.Status = SettlementStatusBalanced
		require.NoError(t, s.Commit(uuid.New()))
		assert.Error(t, s.Commit(uuid.New()))
	})
}

// ============================================
// MethodLookup / TaxRuleProvider Tests
// ============================================

func TestStaticMethodLookup(t *testing.T) {
	ctx := context.Background()
	lookup := NewStaticMethodLookup(
		PaymentMethod{ID: "efectivo_usd", Currency: "USD", IGTFApplicable: true},
		PaymentMethod{ID: "pago_movil_ves", Currency: "VES", IGTFApplicable: false},
	)

	t.Run("finds configured method", func(t *testing.T) {
		method, err := lookup.FindByID(ctx, "efectivo_usd")
		require.NoError(t, err)
		require.NotNil(t, method)
		assert.True(t, method.IGTFApplicable)
	})

	t.Run("unknown method returns nil without error", func(t *testing.T) {
		method, err := lookup.FindByID(ctx, "zelle")
		require.NoError(t, err)
		assert.Nil(t, method)
	})
}

func TestMethodTaxProvider_GetTaxRule(t *testing.T) {
	ctx := context.Background()
	lookup := NewStaticMethodLookup(
		PaymentMethod{ID: "efectivo_usd", Currency: "USD", IGTFApplicable: true},
		PaymentMethod{ID: "pago_movil_ves", Currency: "VES", IGTFApplicable: false},
	)
	provider := NewMethodTaxProvider(lookup, TaxRule{
		Rate:  decimal.RequireFromString("0.03"),
		Label: "IGTF 3%",
	})

	t.Run("IGTF-liable method gets the rule", func(t *testing.T) {
		rule, ok, err := provider.GetTaxRule(ctx, "efectivo_usd")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, rule.Rate.Equal(decimal.RequireFromString("0.03")))
		assert.Equal(t, "IGTF 3%", rule.Label)
	})

	t.Run("exempt method has no rule", func(t *testing.T) {
		_, ok, err := provider.GetTaxRule(ctx, "pago_movil_ves")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown method has no rule", func(t *testing.T) {
		_, ok, err := provider.GetTaxRule(ctx, "zelle")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
