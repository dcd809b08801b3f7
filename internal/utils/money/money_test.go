package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/feastly/feastly_backend/internal/utils/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCeilAmount(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"rounds up", "10.001", "10.01"},
		{"rounds up at midpoint", "10.005", "10.01"},
		{"already two digits", "10.01", "10.01"},
		{"whole number unchanged", "10", "10"},
		{"trims extra precision upward", "8.9991", "9"},
		{"negative rounds toward zero", "-10.009", "-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := money.CeilAmount(dec(tc.in))
			assert.True(t, got.Equal(dec(tc.expected)),
				"CeilAmount(%s) = %s, expected %s", tc.in, got, tc.expected)
		})
	}
}

func TestCeilRate(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"rounds up at fourth digit", "0.90001", "0.9001"},
		{"already four digits", "1.2345", "1.2345"},
		{"whole rate unchanged", "2", "2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := money.CeilRate(dec(tc.in))
			assert.True(t, got.Equal(dec(tc.expected)),
				"CeilRate(%s) = %s, expected %s", tc.in, got, tc.expected)
		})
	}
}

func TestInverseRate(t *testing.T) {
	// 1/0.9 = 1.1111... rounds up, never down
	got := money.InverseRate(dec("0.9"))
	assert.True(t, got.Equal(dec("1.1112")), "InverseRate(0.9) = %s", got)

	// Exact inverses stay exact
	got = money.InverseRate(dec("2"))
	assert.True(t, got.Equal(dec("0.5")), "InverseRate(2) = %s", got)
}

func TestInverseRate_RoundTripStaysClose(t *testing.T) {
	// Inverting twice is not an exact involution because each step rounds
	// up, but the drift stays within one rounding step at 4 digits.
	tolerance := dec("0.0002")
	for _, rate := range []string{"0.9", "1.1", "0.0075", "3.6731"} {
		r := dec(rate)
		twice := money.InverseRate(money.InverseRate(r))
		drift := twice.Sub(r).Abs()
		assert.True(t, drift.LessThanOrEqual(tolerance.Mul(r)),
			"double inverse of %s drifted to %s", rate, twice)
	}
}
