package telemetry

import (
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// Collector accumulates events within windows of days and produces WindowStats.
type Collector struct {
	windowDays     int
	windowStartDay int

	// Event counters for current window
	producerBirths    int
	producerDeaths    int
	distributorDeaths int
	reproductions     int
	pollenProduced    int
	pollenPicked      int
	pollenDropped     int
	pollenConsumed    int
	foodProduced      int
	foodForced        int
	panicShortfall    int
	panicSurplus      int
	panicCrisis       int

	lifetimeSum   float64
	lifetimeCount int
}

// NewCollector creates a collector flushing every windowDays days.
func NewCollector(windowDays int) *Collector {
	if windowDays < 1 {
		windowDays = 1
	}
	return &Collector{windowDays: windowDays}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(kind components.Kind) {
	if kind == components.KindProducer {
		c.producerBirths++
	}
}

// RecordDeath records a death event and the lifetime in days.
func (c *Collector) RecordDeath(kind components.Kind, lifetimeDays int) {
	switch kind {
	case components.KindProducer:
		c.producerDeaths++
		c.lifetimeSum += float64(lifetimeDays)
		c.lifetimeCount++
	case components.KindDistributor:
		c.distributorDeaths++
	}
}

// RecordReproduction records a pollen consumption that produced offspring.
func (c *Collector) RecordReproduction() {
	c.reproductions++
}

// RecordPollenProduced records a new Pollen.
func (c *Collector) RecordPollenProduced() {
	c.pollenProduced++
}

// RecordPollenPicked records a pick-up by a Distributor.
func (c *Collector) RecordPollenPicked() {
	c.pollenPicked++
}

// RecordPollenDropped records a drop by a Distributor.
func (c *Collector) RecordPollenDropped() {
	c.pollenDropped++
}

// RecordPollenConsumed records a Pollen consumed by a Producer.
func (c *Collector) RecordPollenConsumed() {
	c.pollenConsumed++
}

// RecordFood records a Food placement. Forced marks panic production.
func (c *Collector) RecordFood(forced bool) {
	c.foodProduced++
	if forced {
		c.foodForced++
	}
}

// RecordPanic records the band a Producer fell into.
func (c *Collector) RecordPanic(band systems.PanicBand) {
	switch band {
	case systems.BandShortfall:
		c.panicShortfall++
	case systems.BandSurplus:
		c.panicSurplus++
	case systems.BandCrisis:
		c.panicCrisis++
	}
}

// ShouldFlush returns true if enough days have passed to flush the window.
func (c *Collector) ShouldFlush(currentDay int) bool {
	return currentDay-c.windowStartDay >= c.windowDays
}

// Census is the population sample taken at window end.
type Census struct {
	Year, Month int

	Producers      int
	Distributors   int
	Food           int
	Corpses        int
	GroundedPollen int
	CarriedPollen  int

	ProducerEnergies    []float64
	DistributorEnergies []float64
	ProductionRates     []float64
	Resiliences         []float64
	EvolutionRates      []float64

	MaxGeneration   int
	MeanTemperature float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentDay int, census Census) WindowStats {
	mean, p10, p50, p90 := ComputeEnergyStats(census.ProducerEnergies)
	prodMean, prodStd := ComputeSpread(census.ProductionRates)
	resMean, resStd := ComputeSpread(census.Resiliences)

	var lifetime float64
	if c.lifetimeCount > 0 {
		lifetime = c.lifetimeSum / float64(c.lifetimeCount)
	}

	stats := WindowStats{
		WindowStartDay: c.windowStartDay,
		WindowEndDay:   currentDay,
		Year:           census.Year,
		Month:          census.Month,

		Producers:      census.Producers,
		Distributors:   census.Distributors,
		Food:           census.Food,
		Corpses:        census.Corpses,
		GroundedPollen: census.GroundedPollen,
		CarriedPollen:  census.CarriedPollen,

		ProducerBirths:    c.producerBirths,
		ProducerDeaths:    c.producerDeaths,
		DistributorDeaths: c.distributorDeaths,
		Reproductions:     c.reproductions,

		PollenProduced: c.pollenProduced,
		PollenPicked:   c.pollenPicked,
		PollenDropped:  c.pollenDropped,
		PollenConsumed: c.pollenConsumed,

		FoodProduced: c.foodProduced,
		FoodForced:   c.foodForced,

		PanicShortfall: c.panicShortfall,
		PanicSurplus:   c.panicSurplus,
		PanicCrisis:    c.panicCrisis,

		ProducerEnergyMean: mean,
		ProducerEnergyP10:  p10,
		ProducerEnergyP50:  p50,
		ProducerEnergyP90:  p90,

		DistributorEnergyMean: Mean(census.DistributorEnergies),

		ProductionMean: prodMean,
		ProductionStd:  prodStd,
		ResilienceMean: resMean,
		ResilienceStd:  resStd,
		EvolutionMean:  Mean(census.EvolutionRates),

		MeanLifetimeDays: lifetime,
		MaxGeneration:    census.MaxGeneration,
		MeanTemperature:  census.MeanTemperature,
	}

	// Reset for next window
	*c = Collector{windowDays: c.windowDays, windowStartDay: currentDay}

	return stats
}

// WindowDays returns the number of days per window.
func (c *Collector) WindowDays() int {
	return c.windowDays
}
