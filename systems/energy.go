package systems

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// PanicBand names the metabolic band a Producer fell into this tick.
type PanicBand uint8

const (
	BandNone PanicBand = iota
	BandShortfall
	BandSurplus
	BandCrisis
)

func (b PanicBand) String() string {
	switch b {
	case BandShortfall:
		return "shortfall"
	case BandSurplus:
		return "surplus"
	case BandCrisis:
		return "crisis"
	default:
		return "none"
	}
}

// ForcesProduction reports whether the band triggers immediate food production.
func (b PanicBand) ForcesProduction() bool {
	return b == BandShortfall || b == BandCrisis
}

// DeathThreshold draws the age at which the cell dies this tick.
func DeathThreshold(rng *rand.Rand, c *components.Cell, jitter float64) float64 {
	return c.Lifespan + Uniform(rng, 0, jitter)*(1+c.Resilience)
}

// Metabolize ages the cell one day and pays its consumption.
func Metabolize(c *components.Cell, precision int) {
	c.Age = Round(c.Age+c.AgingSpeed, precision)
	c.CurrentEnergy = Round(c.CurrentEnergy-c.ConsumptionRate, precision)
}

// ProducerConsumption is the daily energy cost of a Producer.
func ProducerConsumption(c *components.Cell, p *components.Producer) float64 {
	return c.AgingSpeed *
		(1 + (1 - c.Resilience)) *
		(1 + 0.15*float64(p.Elevation)) *
		(1 + 0.25*math.Pow(math.Abs(float64(c.Temperature)-2), 1.5)) *
		(1 + 0.2*math.Pow(math.Abs(float64(p.Humidity)-2), 1.5))
}

// ProducerStress is the psychological stress of a Producer.
func ProducerStress(c *components.Cell, p *components.Producer) float64 {
	ageRatio := 0.0
	if c.Lifespan > 0 {
		ageRatio = c.Age / c.Lifespan
	}
	return sigmoid((c.Capacity-c.CurrentEnergy)-0.5) +
		ageRatio*ageRatio +
		0.3*c.Resilience +
		0.1*float64(p.Elevation)/4 +
		0.2*math.Abs(float64(c.Temperature)-2)/4 +
		0.15*math.Abs(float64(p.Humidity)-2)/4
}

// DistributorConsumption is the daily energy cost of a Distributor.
func DistributorConsumption(c *components.Cell, d *components.Distributor) float64 {
	raw := 0.1*c.Capacity +
		math.Pow(d.MaxSpeed, 1/1.5)*0.2 +
		float64(d.MaxCarry)*0.15 +
		math.Abs(float64(c.Temperature)-1)*0.8 +
		math.Pow(float64(d.DetectionRange), 1/1.5)*0.1
	return (raw*(1-c.Resilience*0.02) - 2) / 6.5
}

// DistributorStress is the psychological stress of a Distributor.
func DistributorStress(c *components.Cell, d *components.Distributor) float64 {
	fill := 0.0
	if c.Capacity > 0 {
		fill = math.Max(0, 1-c.CurrentEnergy/c.Capacity)
	}
	ageRatio := 0.0
	if c.Lifespan > 0 {
		ageRatio = math.Max(0, c.Age/c.Lifespan)
	}
	raw := math.Sqrt(fill) +
		c.ReproductionRate*float64(c.OffspringCount)/5 +
		math.Cbrt(ageRatio) +
		float64(d.MaxCarry)*0.12
	return (raw*(1+c.EvolutionRate*0.15)*(1-c.Resilience*0.3) - 0.5) / 1.1
}

// MaxCarry derives the carry amount from max speed.
func MaxCarry(speed float64, cfg *config.DistributorConfig) int {
	return ClampInt(int(math.Round(cfg.CarrySlope*speed-cfg.CarryOffset)), cfg.MinCarry, cfg.MaxCarry)
}

// RefreshProducer recomputes a Producer's derived values.
func RefreshProducer(c *components.Cell, p *components.Producer, precision int) {
	c.ConsumptionRate = Round(ProducerConsumption(c, p), precision)
	c.Stress = Round(ProducerStress(c, p), precision)
}

// RefreshDistributor recomputes a Distributor's derived values.
func RefreshDistributor(c *components.Cell, d *components.Distributor, precision int) {
	c.ConsumptionRate = Round(DistributorConsumption(c, d), precision)
	c.Stress = Round(DistributorStress(c, d), precision)
}

// UpdatePanic runs the Producer's panic-mode state machine for one tick
// and returns the band that applied. Crisis is checked first so it
// replaces shortfall when energy is critically low.
func UpdatePanic(c *components.Cell, p *components.Producer, g *config.GenomeConfig, e *config.EnergyConfig) PanicBand {
	gap := math.Abs(c.ProductionRate - c.ConsumptionRate)
	limit := e.PanicLimit

	switch {
	case c.CurrentEnergy < e.CrisisEnergy && p.PanicMode < limit:
		adjustTraits(c, gap*e.CrisisMultiplier, 1, g, e)
		p.PanicMode = ClampInt(p.PanicMode+limit, -limit, limit)
		return BandCrisis
	case (c.ProductionRate < c.ConsumptionRate || c.CurrentEnergy < e.ShortfallEnergy) && p.PanicMode < limit:
		adjustTraits(c, gap, 1, g, e)
		p.PanicMode++
		return BandShortfall
	case c.ProductionRate > c.ConsumptionRate && c.CurrentEnergy > e.SurplusEnergy && p.PanicMode > -limit:
		adjustTraits(c, gap/e.SurplusDamping, -1, g, e)
		p.PanicMode--
		return BandSurplus
	}
	return BandNone
}

// adjustTraits trades metabolism against longevity. dir=+1 raises
// production at the cost of the other traits, dir=-1 relaxes it.
func adjustTraits(c *components.Cell, adj, dir float64, g *config.GenomeConfig, e *config.EnergyConfig) {
	prec := e.Precision
	shift := adj * dir
	rateShift := shift / e.RateDivisor

	c.ProductionRate = Round(Clamp(c.ProductionRate+shift, g.ProductionRate.Min, g.ProductionRate.Max), prec)
	c.Resilience = Round(Clamp(c.Resilience-shift, g.Resilience.Min, g.Resilience.Max), prec)
	c.Lifespan = Round(Clamp(c.Lifespan-shift, g.Lifespan.Min, g.Lifespan.Max), prec)
	c.AgingSpeed = Round(Clamp(c.AgingSpeed+rateShift, g.AgingSpeed.Min, g.AgingSpeed.Max), prec)
	c.ReproductionRate = Round(Clamp(c.ReproductionRate-rateShift, g.ReproductionRate.Min, g.ReproductionRate.Max), prec)
	c.OffspringCount = ClampInt(c.OffspringCount-int(dir), int(g.OffspringCount.Min), int(g.OffspringCount.Max))
	c.EvolutionRate = Round(Clamp(c.EvolutionRate-shift, g.EvolutionRate.Min, g.EvolutionRate.Max), prec)
	c.Stress = Round(Clamp(c.Stress+shift, 0, 1), prec)
}
