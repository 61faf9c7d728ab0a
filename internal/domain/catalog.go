package domain

import (
	"fmt"
	"math"
	"strings"
)

// Channel represents a sales route.
type Channel string

// Channel constants.
const (
	ChannelBusiness Channel = "B2B"
	ChannelConsumer Channel = "B2C"
)

// SKU is a packaging variant identified by its unit size in kilograms.
type SKU struct {
	ID         string
	UnitSizeKg float64
}

// PackagingLabel returns the human-readable pack size, e.g. "200g" or "5kg".
func (s SKU) PackagingLabel() string {
	if s.UnitSizeKg < 1.0 {
		return fmt.Sprintf("%dg", int(math.Round(s.UnitSizeKg*1000)))
	}
	return fmt.Sprintf("%dkg", int(math.Round(s.UnitSizeKg)))
}

// MandiID returns the wholesale market identifier for a region.
func MandiID(region string) string {
	return "MANDI_" + strings.ToUpper(region)
}

// StoreID returns the sales-point identifier for a (region, channel, index).
func StoreID(region string, channel Channel, index int) string {
	return fmt.Sprintf("%s_%s_%d", region, channel, index)
}
