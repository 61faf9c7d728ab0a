// Package fulfillment reconciles demand against stochastic inventory
// supply. Sales are capped by both demand and received stock.
package fulfillment

import (
	"math"
	"math/rand"

	"mushroom-demand-lab/internal/simrand"
)

// Supply slack ranges: a disrupted day receives a fractional shipment, a
// normal day a slight overstock.
const (
	shortageLo = 0.5
	shortageHi = 0.8
	slackLo    = 1.0
	slackHi    = 1.2
)

// Result holds realized sales and the inventory that produced them.
type Result struct {
	SalesUnits          int
	SalesKg             float64
	InventoryReceivedKg float64
}

// Reconcile converts a demand estimate into realized sales given the day's
// supply conditions.
func Reconcile(rng *rand.Rand, demandUnits int, unitSizeKg float64, disrupted bool) Result {
	var supplyFactor float64
	if disrupted {
		supplyFactor = simrand.Uniform(rng, shortageLo, shortageHi)
	} else {
		supplyFactor = simrand.Uniform(rng, slackLo, slackHi)
	}
	inventory := float64(demandUnits) * unitSizeKg * supplyFactor

	salesUnits := demandUnits
	if sellable := int(math.Floor(inventory / unitSizeKg)); sellable < salesUnits {
		salesUnits = sellable
	}

	return Result{
		SalesUnits:          salesUnits,
		SalesKg:             float64(salesUnits) * unitSizeKg,
		InventoryReceivedKg: inventory,
	}
}
