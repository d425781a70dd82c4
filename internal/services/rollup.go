package services

import (
	"math"

	"dealership/internal/config"
	"dealership/internal/domain/models"
)

// Rollup is the computed financial summary of a set of invoice lines.
// All amounts are minor units and Total == Subtotal + Tax + Shipping exactly.
type Rollup struct {
	SubtotalCents int64
	TaxCents      int64
	ShippingCents int64
	TotalCents    int64
}

// ComputeRollup derives subtotal, tax, shipping and grand total for the
// given lines under the pricing policy. Rounding happens exactly once, at
// the tax step (half-up to minor units); the total is a plain sum so the
// invariant above holds to the cent.
func ComputeRollup(items []models.OrderLine, policy config.PricingPolicy) Rollup {
	var r Rollup
	if len(items) == 0 {
		return r
	}

	for _, it := range items {
		r.SubtotalCents += it.UnitPriceCents * it.Quantity
	}

	r.TaxCents = roundHalfUp(float64(r.SubtotalCents) * policy.TaxRate)
	if r.SubtotalCents > policy.FreeShippingThresholdCents {
		r.ShippingCents = 0
	} else {
		r.ShippingCents = policy.ShippingFeeCents
	}
	r.TotalCents = r.SubtotalCents + r.TaxCents + r.ShippingCents
	return r
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
