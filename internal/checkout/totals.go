package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"luxe-storefront/internal/model"
)

// Order pricing constants, in whole currency units.
const (
	// FreeShippingThreshold is strict: a subtotal of exactly 5000 is still
	// charged shipping.
	FreeShippingThreshold = 5000
	ShippingFlat          = 99
	TaxRatePercent        = 18
)

// Totals is the derived price breakdown of a cart. It is computed on demand
// and never stored.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives the price breakdown from cart lines. Tax is 18%
// of the subtotal rounded to whole currency units; shipping is free only
// strictly above the threshold.
func ComputeTotals(items []model.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	shipping := decimal.NewFromInt(ShippingFlat)
	if subtotal.GreaterThan(decimal.NewFromInt(FreeShippingThreshold)) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(decimal.NewFromInt(TaxRatePercent)).Div(decimal.NewFromInt(100)).Round(0)
	total := subtotal.Add(shipping).Add(tax)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// AmountMinorUnits converts the grand total to minor currency units (paise)
// for the payment gateway.
func (t Totals) AmountMinorUnits() int64 {
	return decimal.NewFromFloat(t.Total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CouponDiscount computes the discount a coupon would grant on an order
// total. It is a read-only preview: nothing here marks the coupon used, and
// no checkout path applies the result. Inactive coupons and orders below
// the coupon's minimum grant nothing.
func CouponDiscount(c *model.Coupon, orderTotal float64, now time.Time) float64 {
	if c == nil || c.StatusAt(now) != model.CouponActive {
		return 0
	}

	total := decimal.NewFromFloat(orderTotal)
	if total.LessThan(decimal.NewFromFloat(c.MinOrder)) {
		return 0
	}

	var discount decimal.Decimal
	switch c.Type {
	case model.CouponTypePercentage:
		discount = total.Mul(decimal.NewFromFloat(c.Value)).Div(decimal.NewFromInt(100))
		if c.MaxDiscount != nil {
			ceiling := decimal.NewFromFloat(*c.MaxDiscount)
			if discount.GreaterThan(ceiling) {
				discount = ceiling
			}
		}
	case model.CouponTypeFixed:
		discount = decimal.NewFromFloat(c.Value)
		if discount.GreaterThan(total) {
			discount = total
		}
	default:
		return 0
	}

	return discount.Round(2).InexactFloat64()
}
