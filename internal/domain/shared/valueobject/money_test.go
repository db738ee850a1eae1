package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})

	t.Run("string constructor rejects garbage", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", VES)
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyVESFromFloat(100.50)
	b := NewMoneyVESFromFloat(50.25)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "150.75", sum.StringFixed(2))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, "50.25", diff.StringFixed(2))
	})

	t.Run("multiply", func(t *testing.T) {
		product := b.Multiply(decimal.NewFromInt(2))
		assert.Equal(t, "100.50", product.StringFixed(2))
	})

	t.Run("divide by zero fails", func(t *testing.T) {
		_, err := a.Divide(decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("currency mismatch fails", func(t *testing.T) {
		usd, err := NewMoneyFromFloat(10, USD)
		require.NoError(t, err)

		_, err = a.Add(usd)
		assert.Error(t, err)
		_, err = a.Subtract(usd)
		assert.Error(t, err)
		_, err = a.LessThan(usd)
		assert.Error(t, err)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyVESFromFloat(10)
	large := NewMoneyVESFromFloat(20)

	less, err := small.LessThan(large)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := large.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, greater)

	assert.True(t, small.Equals(NewMoneyVESFromFloat(10)))
	assert.False(t, small.Equals(large))
}

func TestMoney_CalculatePercentage(t *testing.T) {
	m := NewMoneyVESFromFloat(200)
	pct := m.CalculatePercentage(decimal.NewFromInt(3))
	assert.Equal(t, "6.00", pct.StringFixed(2))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	original, err := NewMoneyFromString("133.33", USD)
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string amount with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.50"))
		assert.Equal(t, "42.50", m.StringFixed(2))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("nil scans to zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
