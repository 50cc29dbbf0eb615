package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T, amount float64) Money {
	t.Helper()
	m, err := NewMoneyFromFloat(amount, "USD")
	require.NoError(t, err)
	return m
}

func eur(t *testing.T, amount float64) Money {
	t.Helper()
	m, err := NewMoneyFromFloat(amount, "EUR")
	require.NoError(t, err)
	return m
}

func TestMoneyAddSubtractRoundTrip(t *testing.T) {
	a := usd(t, 123.45)
	b := usd(t, 67.89)

	sum, err := a.Add(b)
	require.NoError(t, err)

	back, err := sum.Subtract(b)
	require.NoError(t, err)

	assert.True(t, back.Equals(a))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	a := usd(t, 100)
	b := eur(t, 100)

	_, err := a.Add(b)
	assert.True(t, HasErrorCode(err, ErrCodeCurrencyMismatch))

	_, err = a.Subtract(b)
	assert.True(t, HasErrorCode(err, ErrCodeCurrencyMismatch))

	_, err = a.GreaterThan(b)
	assert.True(t, HasErrorCode(err, ErrCodeCurrencyMismatch))
}

func TestMoneyRequiresCurrency(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(10), "")
	assert.True(t, HasErrorCode(err, ErrCodeValidation))
}

func TestMoneyNegativeAmountsAllowed(t *testing.T) {
	m := usd(t, -50)
	assert.True(t, m.IsNegative())

	sum, err := m.Add(usd(t, 20))
	require.NoError(t, err)
	assert.True(t, sum.Equals(usd(t, -30)))
}

func TestMoneyMultiply(t *testing.T) {
	m := usd(t, 10.5)
	scaled := m.Multiply(decimal.NewFromInt(3))
	assert.True(t, scaled.Equals(usd(t, 31.5)))
	assert.Equal(t, "USD", scaled.Currency())
}

func TestMoneyNegate(t *testing.T) {
	m := usd(t, 25)
	assert.True(t, m.Negate().Equals(usd(t, -25)))
	assert.True(t, m.Negate().Negate().Equals(m))
}

func TestMoneyExactArithmetic(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3
	a := usd(t, 0.1)
	b := usd(t, 0.2)
	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(usd(t, 0.3)))
}

func TestStakesValidation(t *testing.T) {
	tests := []struct {
		name       string
		smallBlind Money
		bigBlind   Money
		wantCode   string
	}{
		{"valid", usd(t, 1), usd(t, 2), ""},
		{"equal_blinds", usd(t, 2), usd(t, 2), ErrCodeValidation},
		{"inverted_blinds", usd(t, 5), usd(t, 2), ErrCodeValidation},
		{"mixed_currency", eur(t, 1), usd(t, 2), ErrCodeCurrencyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stakes, err := NewStakes(tt.smallBlind, tt.bigBlind, nil)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "USD", stakes.Currency())
				return
			}
			assert.True(t, HasErrorCode(err, tt.wantCode))
		})
	}
}

func TestStakesAnte(t *testing.T) {
	ante := usd(t, 0.25)
	stakes, err := NewStakes(usd(t, 1), usd(t, 2), &ante)
	require.NoError(t, err)
	require.NotNil(t, stakes.Ante())
	assert.True(t, stakes.Ante().Equals(ante))

	badAnte := eur(t, 0.25)
	_, err = NewStakes(usd(t, 1), usd(t, 2), &badAnte)
	assert.True(t, HasErrorCode(err, ErrCodeCurrencyMismatch))
}

func TestDuration(t *testing.T) {
	_, err := NewDuration(-1)
	assert.True(t, HasErrorCode(err, ErrCodeValidation))

	a, err := NewDuration(1.5)
	require.NoError(t, err)
	b, err := NewDuration(2.5)
	require.NoError(t, err)

	assert.Equal(t, 4.0, a.Add(b).Hours())
}
