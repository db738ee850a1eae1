package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createTestPriceList(t *testing.T, priority int) *PriceList {
	list, err := NewPriceList(uuid.New(), "Test List", PriceListTypeStandard, priority, nil, nil)
	require.NoError(t, err)
	return list
}

func createTestAssignment(t *testing.T, listID uuid.UUID, sku string, price string) *PriceAssignment {
	a, err := NewPriceAssignment(listID, uuid.New(), sku, decimal.RequireFromString(price), nil, nil, "")
	require.NoError(t, err)
	return a
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// ============================================
// PriceListType Tests
// ============================================

func TestPriceListType_IsValid(t *testing.T) {
	tests := []struct {
		listType PriceListType
		isValid  bool
	}{
		{PriceListTypeStandard, true},
		{PriceListTypeWholesale, true},
		{PriceListTypeRetail, true},
		{PriceListTypePromotional, true},
		{PriceListTypeSeasonal, true},
		{PriceListTypeCustom, true},
		{PriceListType("INVALID"), false},
		{PriceListType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.listType), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.listType.IsValid())
		})
	}
}

// ============================================
// PriceList Tests
// ============================================

func TestNewPriceList(t *testing.T) {
	t.Run("creates active list with valid input", func(t *testing.T) {
		tenantID := uuid.New()
		list, err := NewPriceList(tenantID, "Black Friday", PriceListTypePromotional, 10, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, tenantID, list.TenantID)
		assert.Equal(t, "Black Friday", list.Name)
		assert.Equal(t, PriceListTypePromotional, list.Type)
		assert.Equal(t, 10, list.Priority)
		assert.True(t, list.IsActive)
		assert.NotEqual(t, uuid.Nil, list.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewPriceList(uuid.New(), "", PriceListTypeStandard, 0, nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewPriceList(uuid.New(), "List", PriceListType("BOGUS"), 0, nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects start date after end date", func(t *testing.T) {
		start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
		_, err := NewPriceList(uuid.New(), "List", PriceListTypeSeasonal, 0, &start, &end)
		assert.Error(t, err)
	})

	t.Run("accepts half-open windows", func(t *testing.T) {
		start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
		list, err := NewPriceList(uuid.New(), "List", PriceListTypeSeasonal, 0, &start, nil)
		require.NoError(t, err)
		assert.Equal(t, &start, list.StartDate)
		assert.Nil(t, list.EndDate)
	})
}

func TestPriceList_IsEligibleAt(t *testing.T) {
	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		active   bool
		start    *time.Time
		end      *time.Time
		at       time.Time
		eligible bool
	}{
		{"inactive list never eligible", false, nil, nil, start, false},
		{"unbounded list always eligible", true, nil, nil, start, true},
		{"inside window", true, &start, &end, start.AddDate(0, 0, 10), true},
		{"window start is inclusive", true, &start, &end, start, true},
		{"window end is inclusive", true, &start, &end, end, true},
		{"before window", true, &start, &end, start.AddDate(0, 0, -1), false},
		{"after window", true, &start, &end, end.AddDate(0, 0, 1), false},
		{"only start bound, far future", true, &start, nil, end.AddDate(5, 0, 0), true},
		{"only end bound, far past", true, nil, &end, start.AddDate(-5, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := createTestPriceList(t, 0)
			list.IsActive = tt.active
			list.StartDate = tt.start
			list.EndDate = tt.end

			assert.Equal(t, tt.eligible, list.IsEligibleAt(tt.at))
		})
	}
}

func TestPriceList_Deactivate(t *testing.T) {
	list := createTestPriceList(t, 5)
	list.Deactivate()

	assert.False(t, list.IsActive)
	assert.False(t, list.IsEligibleAt(time.Now()))

	list.Activate()
	assert.True(t, list.IsActive)
}

func TestPriceList_UpdateWindow(t *testing.T) {
	list := createTestPriceList(t, 0)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	require.NoError(t, list.UpdateWindow(&start, &end))
	assert.Equal(t, &start, list.StartDate)

	err := list.UpdateWindow(&end, &start)
	assert.Error(t, err)
}

// ============================================
// PriceAssignment Tests
// ============================================

func TestNewPriceAssignment(t *testing.T) {
	t.Run("creates active assignment", func(t *testing.T) {
		listID := uuid.New()
		a := createTestAssignment(t, listID, "SKU-001", "49.99")

		assert.Equal(t, listID, a.PriceListID)
		assert.Equal(t, "SKU-001", a.VariantSKU)
		assert.True(t, a.CustomPrice.Equal(decimal.RequireFromString("49.99")))
		assert.True(t, a.IsActive)
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewPriceAssignment(uuid.New(), uuid.New(), "", decimal.NewFromInt(10), nil, nil, "")
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewPriceAssignment(uuid.New(), uuid.New(), "SKU-001", decimal.NewFromInt(-1), nil, nil, "")
		assert.Error(t, err)
	})

	t.Run("accepts zero price", func(t *testing.T) {
		a, err := NewPriceAssignment(uuid.New(), uuid.New(), "SKU-001", decimal.Zero, nil, nil, "free promo")
		require.NoError(t, err)
		assert.True(t, a.CustomPrice.IsZero())
	})

	t.Run("rejects inverted validity window", func(t *testing.T) {
		from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		until := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		_, err := NewPriceAssignment(uuid.New(), uuid.New(), "SKU-001", decimal.NewFromInt(10), &from, &until, "")
		assert.Error(t, err)
	})
}

func TestPriceAssignment_UpdatePrice(t *testing.T) {
	a := createTestAssignment(t, uuid.New(), "SKU-001", "20.00")

	require.NoError(t, a.UpdatePrice(decimal.RequireFromString("25.50")))
	assert.True(t, a.CustomPrice.Equal(decimal.RequireFromString("25.50")))

	err := a.UpdatePrice(decimal.NewFromInt(-5))
	assert.Error(t, err)
}

func TestPriceAssignment_IsEligibleAt(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("assignment window independent of list window", func(t *testing.T) {
		a := createTestAssignment(t, uuid.New(), "SKU-001", "10.00")
		a.ValidFrom = &from
		a.ValidUntil = &until

		assert.True(t, a.IsEligibleAt(from.AddDate(0, 0, 15)))
		assert.False(t, a.IsEligibleAt(from.AddDate(0, 0, -1)))
		assert.False(t, a.IsEligibleAt(until.AddDate(0, 0, 1)))
	})

	t.Run("deactivated assignment ineligible", func(t *testing.T) {
		a := createTestAssignment(t, uuid.New(), "SKU-001", "10.00")
		a.Deactivate()
		assert.False(t, a.IsEligibleAt(time.Now()))
	})
}
