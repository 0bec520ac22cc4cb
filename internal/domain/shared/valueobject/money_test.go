package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	m, err := NewMoneyFromFloat(99.99, PKR)
	require.NoError(t, err)
	assert.Equal(t, PKR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.99)))
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", USD)
		assert.Error(t, err)
	})
}

func TestZero(t *testing.T) {
	m := Zero(AED)
	assert.True(t, m.IsZero())
	assert.Equal(t, AED, m.Currency())
}

func TestMoneyIsPositiveNegativeZero(t *testing.T) {
	positive, _ := NewMoneyFromFloat(100, USD)
	negative, _ := NewMoneyFromFloat(-100, USD)
	zero := Zero(USD)

	assert.True(t, positive.IsPositive())
	assert.False(t, positive.IsNegative())
	assert.False(t, positive.IsZero())

	assert.False(t, negative.IsPositive())
	assert.True(t, negative.IsNegative())
	assert.False(t, negative.IsZero())

	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())
	assert.True(t, zero.IsZero())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(100.50, USD)
		m2, _ := NewMoneyFromFloat(50.25, USD)
		result, err := m1.Add(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromFloat(150.75)))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(100, USD)
		m2, _ := NewMoneyFromFloat(50, PKR)
		_, err := m1.Add(m2)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoneySubtract(t *testing.T) {
	t.Run("subtracts same currency", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(100.50, USD)
		m2, _ := NewMoneyFromFloat(50.25, USD)
		result, err := m1.Subtract(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromFloat(50.25)))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1, _ := NewMoneyFromFloat(100, USD)
		m2, _ := NewMoneyFromFloat(50, PKR)
		_, err := m1.Subtract(m2)
		assert.Error(t, err)
	})
}

func TestMoneyMultiply(t *testing.T) {
	m, _ := NewMoneyFromFloat(100, USD)
	result := m.Multiply(decimal.NewFromFloat(1.5))
	assert.Equal(t, 150.0, result.Float64())
	assert.Equal(t, USD, result.Currency())
}

func TestMoneyNegate(t *testing.T) {
	m, _ := NewMoneyFromFloat(100, USD)
	result := m.Negate()
	assert.Equal(t, -100.0, result.Float64())
	assert.Equal(t, USD, result.Currency())
}

func TestMoneyAbs(t *testing.T) {
	negative, _ := NewMoneyFromFloat(-100, USD)
	result := negative.Abs()
	assert.Equal(t, 100.0, result.Float64())
}

func TestMoneyRound(t *testing.T) {
	m, _ := NewMoneyFromFloat(100.456, USD)
	result := m.Round(2)
	assert.Equal(t, "100.46", result.StringFixed(2))
}

func TestMoneyComparisons(t *testing.T) {
	m100, _ := NewMoneyFromFloat(100, USD)
	m50, _ := NewMoneyFromFloat(50, USD)
	m100b, _ := NewMoneyFromFloat(100, USD)

	t.Run("equals", func(t *testing.T) {
		assert.True(t, m100.Equals(m100b))
		assert.False(t, m100.Equals(m50))
	})

	t.Run("less than", func(t *testing.T) {
		result, err := m50.LessThan(m100)
		require.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("greater than", func(t *testing.T) {
		result, err := m100.GreaterThan(m50)
		require.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("comparison fails for different currencies", func(t *testing.T) {
		pkr, _ := NewMoneyFromFloat(100, PKR)
		_, err := m100.LessThan(pkr)
		assert.Error(t, err)
	})
}

func TestMoneyString(t *testing.T) {
	m, _ := NewMoneyFromFloat(123.45, USD)
	assert.Equal(t, "123.45 USD", m.String())
}

func TestMoneyJSON(t *testing.T) {
	original, _ := NewMoneyFromFloat(99.99, USD)

	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(original)
		require.NoError(t, err)
		assert.Contains(t, string(data), "99.99")
		assert.Contains(t, string(data), "USD")
	})

	t.Run("unmarshal", func(t *testing.T) {
		data := `{"amount":"123.45","currency":"PKR"}`
		var m Money
		err := json.Unmarshal([]byte(data), &m)
		require.NoError(t, err)
		assert.Equal(t, PKR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(123.45)))
	})

	t.Run("unmarshal rejects bad amount", func(t *testing.T) {
		data := `{"amount":"12,34","currency":"USD"}`
		var m Money
		err := json.Unmarshal([]byte(data), &m)
		assert.Error(t, err)
	})
}
