package promotions

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Validation failures surfaced to the API as a rejection reason, not a 5xx.
var (
	ErrCouponInactive   = errors.New("coupon is not active")
	ErrCouponNotStarted = errors.New("coupon is not valid yet")
	ErrCouponExpired    = errors.New("coupon has expired")
	ErrCouponExhausted  = errors.New("coupon usage limit reached")
	ErrOrderBelowMin    = errors.New("order total below coupon minimum")
)

var hundred = decimal.NewFromInt(100)

// Discount applies the coupon to an order subtotal and returns the amount to
// subtract. The result is clamped to the subtotal so a large amount_off coupon
// never produces a negative payable.
func (cp *Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch cp.Kind {
	case KindPercentOff:
		d = subtotal.Mul(cp.Value).DivRound(hundred, 2)
	case KindAmountOff:
		d = cp.Value
	default:
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Validate checks whether the coupon can be applied to an order of the given
// subtotal at the given moment.
func (cp *Coupon) Validate(subtotal decimal.Decimal, now time.Time) error {
	if !cp.Active {
		return ErrCouponInactive
	}
	if cp.StartsAt != nil && now.Before(*cp.StartsAt) {
		return ErrCouponNotStarted
	}
	if cp.EndsAt != nil && now.After(*cp.EndsAt) {
		return ErrCouponExpired
	}
	if cp.UsageLimit != nil && cp.UsedCount >= *cp.UsageLimit {
		return ErrCouponExhausted
	}
	if subtotal.LessThan(cp.MinOrder) {
		return ErrOrderBelowMin
	}
	return nil
}
