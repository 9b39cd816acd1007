package services

import (
	"fmt"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DeliveryCostCalculator is a domain service that prices book deliveries.
//
// Pricing formula:
//
//	(base + perKm · distanceKm + additionalItem · (quantity − 1)) · (1 + serviceFee)
//
// rounded up to cents. The service fee is the platform's share on top of
// the raw delivery cost; the driver payout is computed elsewhere from
// the same percentage.
type DeliveryCostCalculator struct {
	baseCost             decimal.Decimal
	perKmRate            decimal.Decimal
	additionalItemCost   decimal.Decimal
	serviceFeePercentage decimal.Decimal
}

// NewDeliveryCostCalculator creates a calculator with the standard
// pricing constants: base 10.00, 0.50 per km, 1.00 per additional copy
// and a 20% service fee.
func NewDeliveryCostCalculator() DeliveryCostCalculator {
	return DeliveryCostCalculator{
		baseCost:             decimal.RequireFromString("10.00"),
		perKmRate:            decimal.RequireFromString("0.50"),
		additionalItemCost:   decimal.RequireFromString("1.00"),
		serviceFeePercentage: decimal.RequireFromString("0.20"),
	}
}

// ServiceFeePercentage returns the platform's share of every delivery.
func (c DeliveryCostCalculator) ServiceFeePercentage() decimal.Decimal {
	return c.serviceFeePercentage
}

// Cost prices a delivery over the given routed distance with the given
// number of copies. The first copy rides free on the base cost; every
// further copy adds the additional item cost. Distance must not be
// negative and quantity must be at least 1.
func (c DeliveryCostCalculator) Cost(distanceKm decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if distanceKm.IsNegative() {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm is invalid", fmt.Errorf("%s is negative", distanceKm))
	}
	if quantity < 1 {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	cost := c.baseCost.
		Add(c.perKmRate.Mul(distanceKm)).
		Add(c.additionalItemCost.Mul(decimal.NewFromInt(int64(quantity - 1))))
	return c.withServiceFee(cost), nil
}

// RepeatLibraryCost prices the marginal delivery of more copies from a
// library that already has an item in the user's cart: only the
// additional item cost per copy, no base or distance component.
func (c DeliveryCostCalculator) RepeatLibraryCost(quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	cost := c.additionalItemCost.Mul(decimal.NewFromInt(int64(quantity)))
	return c.withServiceFee(cost), nil
}

func (c DeliveryCostCalculator) withServiceFee(cost decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(c.serviceFeePercentage)
	return kernel.RoundMoney(cost.Mul(multiplier))
}
