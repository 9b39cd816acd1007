package kernel

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places used for all monetary amounts.
const MoneyScale = 2

// RoundMoney normalizes a monetary amount to MoneyScale decimal places using
// ceiling rounding. Ceiling is the platform-wide rounding mode for fees and
// delivery prices: fractional sub-cent amounts always round in the platform's
// favor, matching the published tariff tables.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundCeil(MoneyScale)
}

// ZeroMoney returns a zero amount at money scale.
func ZeroMoney() decimal.Decimal {
	return decimal.Zero.RoundCeil(MoneyScale)
}
