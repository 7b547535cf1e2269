package domain

import "github.com/shopspring/decimal"

const (
	// MoneyPlaces is the precision currency values are kept at.
	MoneyPlaces int32 = 2
	// QuantityPlaces is the precision returned quantities are accumulated at.
	QuantityPlaces int32 = 3
)

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds a currency value to two decimals.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// RoundQuantity rounds a quantity to three decimals.
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityPlaces)
}

// NonNegative floors d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Percent returns d × rate / 100.
func Percent(d, rate decimal.Decimal) decimal.Decimal {
	return d.Mul(rate).Div(hundred)
}
