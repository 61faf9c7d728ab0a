// Package config defines the injected generation configuration.
// The simulation packages read these values and never hard-code catalog
// constants, so alternate catalogs can be exercised in tests.
package config

import (
	"errors"
	"fmt"
	"time"

	"mushroom-demand-lab/internal/domain"
)

// Configuration errors. All are detected by Validate before any row is
// generated.
var (
	ErrNoRegions       = errors.New("config: region list is empty")
	ErrNoSKUs          = errors.New("config: SKU list is empty")
	ErrNoChannels      = errors.New("config: channel list is empty")
	ErrBadUnitSize     = errors.New("config: SKU unit size must be positive")
	ErrBadStoreCount   = errors.New("config: stores per region/channel must be positive")
	ErrBadWeekdayTable = errors.New("config: weekday factor table must have exactly 7 entries")
	ErrBadHourlyCurve  = errors.New("config: hourly profile must have exactly 24 entries")
	ErrBadHorizon      = errors.New("config: day count must be positive")
)

// Generation holds every knob of both generators.
type Generation struct {
	// Seed drives all randomness. Identical Seed and configuration
	// reproduce byte-identical datasets.
	Seed int64

	// Days is the historical horizon length; the horizon ends at
	// ReferenceTime.
	Days          int
	ReferenceTime time.Time

	Regions                []string
	SKUs                   []domain.SKU
	Channels               []domain.Channel
	StoresPerRegionChannel int

	// SeasonalityMonths maps month to demand multiplier; absent months
	// default to 1.0.
	SeasonalityMonths map[time.Month]float64

	// WeddingPeakMonths marks months with elevated wedding density.
	WeddingPeakMonths map[time.Month]bool

	// WeekdayFactors is a channel-specific Mon..Sun multiplier table.
	WeekdayFactors map[domain.Channel][]float64

	MandiBasePricePerKg float64

	// Per-channel demand model parameters.
	BaseDemand map[domain.Channel]float64
	Elasticity map[domain.Channel]float64
	Markup     map[domain.Channel]float64

	// Intraday telemetry settings.
	IntradayDays          int
	HourlyProfile         []float64
	IntradayBaselineDaily float64
}

// DefaultGeneration returns the reference configuration: 360 days across 10
// Maharashtra regions, 5 pack sizes, 2 channels and 2 stores per
// (region, channel).
func DefaultGeneration(referenceTime time.Time) *Generation {
	return &Generation{
		Seed:          1,
		Days:          360,
		ReferenceTime: referenceTime,

		Regions: []string{
			"Pune", "Nashik", "Mumbai", "Nagpur", "Aurangabad",
			"Kolhapur", "Solapur", "Amravati", "Nanded", "Jalgaon",
		},
		SKUs: []domain.SKU{
			{ID: "MUSH-200g", UnitSizeKg: 0.2},
			{ID: "MUSH-250g", UnitSizeKg: 0.25},
			{ID: "MUSH-500g", UnitSizeKg: 0.5},
			{ID: "MUSH-1kg", UnitSizeKg: 1.0},
			{ID: "MUSH-5kg", UnitSizeKg: 5.0},
		},
		Channels:               []domain.Channel{domain.ChannelBusiness, domain.ChannelConsumer},
		StoresPerRegionChannel: 2,

		// Nov-Jan wedding season.
		SeasonalityMonths: map[time.Month]float64{
			time.November: 1.2,
			time.December: 1.3,
			time.January:  1.1,
		},
		WeddingPeakMonths: map[time.Month]bool{
			time.November: true,
			time.December: true,
			time.January:  true,
		},

		// Mon..Sun. Business peaks Thu-Fri for weekend event provisioning,
		// Consumer peaks Sat-Sun.
		WeekdayFactors: map[domain.Channel][]float64{
			domain.ChannelBusiness: {1.1, 1.1, 1.1, 1.2, 1.3, 0.8, 0.7},
			domain.ChannelConsumer: {0.8, 0.8, 0.8, 0.9, 1.1, 1.3, 1.2},
		},

		MandiBasePricePerKg: 120,

		BaseDemand: map[domain.Channel]float64{
			domain.ChannelBusiness: 200,
			domain.ChannelConsumer: 50,
		},
		Elasticity: map[domain.Channel]float64{
			domain.ChannelBusiness: -0.8,
			domain.ChannelConsumer: -1.5,
		},
		Markup: map[domain.Channel]float64{
			domain.ChannelBusiness: 1.2,
			domain.ChannelConsumer: 1.5,
		},

		IntradayDays: 7,
		HourlyProfile: []float64{
			0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01,
			0.05, 0.08, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1,
			0.08, 0.05, 0.02, 0.01, 0.0, 0.0, 0.0, 0.0,
		},
		IntradayBaselineDaily: 1000,
	}
}

// Validate fails fast on structural invariant violations so degenerate rows
// are never produced.
func (g *Generation) Validate() error {
	if g.Days <= 0 || g.IntradayDays <= 0 {
		return ErrBadHorizon
	}
	if len(g.Regions) == 0 {
		return ErrNoRegions
	}
	if len(g.SKUs) == 0 {
		return ErrNoSKUs
	}
	for _, sku := range g.SKUs {
		if sku.UnitSizeKg <= 0 {
			return fmt.Errorf("%w: %s has %v kg", ErrBadUnitSize, sku.ID, sku.UnitSizeKg)
		}
	}
	if len(g.Channels) == 0 {
		return ErrNoChannels
	}
	if g.StoresPerRegionChannel <= 0 {
		return ErrBadStoreCount
	}
	for _, ch := range g.Channels {
		table, ok := g.WeekdayFactors[ch]
		if !ok || len(table) != 7 {
			return fmt.Errorf("%w: channel %s has %d", ErrBadWeekdayTable, ch, len(table))
		}
	}
	if len(g.HourlyProfile) != 24 {
		return fmt.Errorf("%w: got %d", ErrBadHourlyCurve, len(g.HourlyProfile))
	}
	return nil
}

// StartDate returns midnight of the first day of the historical horizon.
func (g *Generation) StartDate() time.Time {
	day := g.ReferenceTime.Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -g.Days)
}

// IntradayStart returns the first hour of the telemetry window.
func (g *Generation) IntradayStart() time.Time {
	return g.ReferenceTime.Truncate(time.Hour).AddDate(0, 0, -g.IntradayDays)
}
