// Package pricing computes the checkout price breakdown. All arithmetic is
// done in integer paise; rupee conversion happens only at the API boundary.
package pricing

import "math"

const (
	// Orders above ₹1000 ship free.
	FreeShippingThresholdPaise int64 = 100000

	StandardShippingPaise int64 = 9900  // ₹99, 3-5 days
	ExpressShippingPaise  int64 = 19900 // ₹199, 1-2 days

	// Flat 18% GST on the subtotal.
	TaxRatePercent int64 = 18
)

const (
	SpeedStandard = "standard"
	SpeedExpress  = "express"
)

type Breakdown struct {
	SubtotalPaise int64
	DiscountPaise int64
	ShippingPaise int64
	TaxPaise      int64
	TotalPaise    int64
}

// Quote computes the full breakdown for a cart subtotal. couponPercent is 0
// when no coupon is applied. An unknown speed falls back to standard.
func Quote(subtotalPaise int64, couponPercent int, speed string) Breakdown {
	b := Breakdown{SubtotalPaise: subtotalPaise}

	if couponPercent > 0 {
		b.DiscountPaise = roundPercent(subtotalPaise, int64(couponPercent))
		if b.DiscountPaise > subtotalPaise {
			b.DiscountPaise = subtotalPaise
		}
	}

	if subtotalPaise > FreeShippingThresholdPaise {
		b.ShippingPaise = 0
	} else if speed == SpeedExpress {
		b.ShippingPaise = ExpressShippingPaise
	} else {
		b.ShippingPaise = StandardShippingPaise
	}

	b.TaxPaise = roundPercent(subtotalPaise, TaxRatePercent)
	b.TotalPaise = subtotalPaise - b.DiscountPaise + b.ShippingPaise + b.TaxPaise
	return b
}

// roundPercent returns pct% of amount, rounded half-up to the paisa.
func roundPercent(amount, pct int64) int64 {
	return (amount*pct + 50) / 100
}

// ToPaise converts a rupee amount from the JSON boundary to integer paise.
func ToPaise(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}

// Rupees converts persisted paise back to a rupee amount for responses.
func Rupees(paise int64) float64 {
	return float64(paise) / 100
}
