package promotions

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDiscountPercentOff(t *testing.T) {
	cp := Coupon{Kind: KindPercentOff, Value: dec("10")}
	assert.True(t, dec("150000").Equal(cp.Discount(dec("1500000"))))
}

func TestDiscountPercentOffRounds(t *testing.T) {
	cp := Coupon{Kind: KindPercentOff, Value: dec("15")}
	// 15% of 99.99 = 14.9985, rounds to 15.00
	assert.True(t, dec("15.00").Equal(cp.Discount(dec("99.99"))))
}

func TestDiscountAmountOff(t *testing.T) {
	cp := Coupon{Kind: KindAmountOff, Value: dec("50000")}
	assert.True(t, dec("50000").Equal(cp.Discount(dec("200000"))))
}

func TestDiscountClampedToSubtotal(t *testing.T) {
	cp := Coupon{Kind: KindAmountOff, Value: dec("500000")}
	assert.True(t, dec("120000").Equal(cp.Discount(dec("120000"))))
}

func TestDiscountUnknownKindIsZero(t *testing.T) {
	cp := Coupon{Kind: "bogus", Value: dec("10")}
	assert.True(t, cp.Discount(dec("100")).IsZero())
}

func TestValidateActiveWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	starts := now.Add(-24 * time.Hour)
	ends := now.Add(24 * time.Hour)

	cp := Coupon{Active: true, Kind: KindPercentOff, Value: dec("5"), StartsAt: &starts, EndsAt: &ends}
	require.NoError(t, cp.Validate(dec("100"), now))

	early := now.Add(-48 * time.Hour)
	assert.ErrorIs(t, cp.Validate(dec("100"), early), ErrCouponNotStarted)

	late := now.Add(48 * time.Hour)
	assert.ErrorIs(t, cp.Validate(dec("100"), late), ErrCouponExpired)
}

func TestValidateInactive(t *testing.T) {
	cp := Coupon{Active: false, Kind: KindAmountOff, Value: dec("10")}
	assert.ErrorIs(t, cp.Validate(dec("100"), time.Now()), ErrCouponInactive)
}

func TestValidateUsageLimit(t *testing.T) {
	limit := 3
	cp := Coupon{Active: true, Kind: KindAmountOff, Value: dec("10"), UsageLimit: &limit, UsedCount: 3}
	assert.ErrorIs(t, cp.Validate(dec("100"), time.Now()), ErrCouponExhausted)

	cp.UsedCount = 2
	assert.NoError(t, cp.Validate(dec("100"), time.Now()))
}

func TestValidateMinimumOrder(t *testing.T) {
	cp := Coupon{Active: true, Kind: KindPercentOff, Value: dec("10"), MinOrder: dec("500000")}
	assert.ErrorIs(t, cp.Validate(dec("499999"), time.Now()), ErrOrderBelowMin)
	assert.NoError(t, cp.Validate(dec("500000"), time.Now()))
}
