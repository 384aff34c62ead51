package components

// Trait identifies one heritable trait of a Genome.
type Trait uint8

const (
	TraitCapacity Trait = iota
	TraitProductionRate
	TraitResilience
	TraitLifespan
	TraitAgingSpeed
	TraitReproductionRate
	TraitOffspringCount
	TraitPollenRate
	TraitIdealTemperature
	TraitEvolutionRate
)

// AllTraits lists every heritable trait in mutation order.
var AllTraits = []Trait{
	TraitCapacity,
	TraitProductionRate,
	TraitResilience,
	TraitLifespan,
	TraitAgingSpeed,
	TraitReproductionRate,
	TraitOffspringCount,
	TraitPollenRate,
	TraitIdealTemperature,
	TraitEvolutionRate,
}

var traitNames = [...]string{
	"capacity",
	"production_rate",
	"resilience",
	"lifespan",
	"aging_speed",
	"reproduction_rate",
	"offspring_count",
	"pollen_rate",
	"ideal_temperature",
	"evolution_rate",
}

func (t Trait) String() string {
	if int(t) < len(traitNames) {
		return traitNames[t]
	}
	return "unknown"
}

// Genome is the heritable part of a Producer, copied into every Pollen.
type Genome struct {
	Capacity         float64
	ProductionRate   float64
	Resilience       float64
	Lifespan         float64
	AgingSpeed       float64
	ReproductionRate float64
	OffspringCount   int
	PollenRate       float64
	IdealTemperature float64
	EvolutionRate    float64
}

// Value returns the trait as a float.
func (g *Genome) Value(t Trait) float64 {
	switch t {
	case TraitCapacity:
		return g.Capacity
	case TraitProductionRate:
		return g.ProductionRate
	case TraitResilience:
		return g.Resilience
	case TraitLifespan:
		return g.Lifespan
	case TraitAgingSpeed:
		return g.AgingSpeed
	case TraitReproductionRate:
		return g.ReproductionRate
	case TraitOffspringCount:
		return float64(g.OffspringCount)
	case TraitPollenRate:
		return g.PollenRate
	case TraitIdealTemperature:
		return g.IdealTemperature
	case TraitEvolutionRate:
		return g.EvolutionRate
	}
	return 0
}

// Set stores v into the trait. Offspring count truncates, callers round first.
func (g *Genome) Set(t Trait, v float64) {
	switch t {
	case TraitCapacity:
		g.Capacity = v
	case TraitProductionRate:
		g.ProductionRate = v
	case TraitResilience:
		g.Resilience = v
	case TraitLifespan:
		g.Lifespan = v
	case TraitAgingSpeed:
		g.AgingSpeed = v
	case TraitReproductionRate:
		g.ReproductionRate = v
	case TraitOffspringCount:
		g.OffspringCount = int(v)
	case TraitPollenRate:
		g.PollenRate = v
	case TraitIdealTemperature:
		g.IdealTemperature = v
	case TraitEvolutionRate:
		g.EvolutionRate = v
	}
}

// GenomeOf extracts the heritable traits of a Producer.
func GenomeOf(c *Cell, p *Producer) Genome {
	return Genome{
		Capacity:         c.Capacity,
		ProductionRate:   c.ProductionRate,
		Resilience:       c.Resilience,
		Lifespan:         c.Lifespan,
		AgingSpeed:       c.AgingSpeed,
		ReproductionRate: c.ReproductionRate,
		OffspringCount:   c.OffspringCount,
		PollenRate:       p.PollenRate,
		IdealTemperature: p.IdealTemperature,
		EvolutionRate:    c.EvolutionRate,
	}
}

// Apply writes the genome into a Producer's components.
func (g Genome) Apply(c *Cell, p *Producer) {
	c.Capacity = g.Capacity
	c.ProductionRate = g.ProductionRate
	c.Resilience = g.Resilience
	c.Lifespan = g.Lifespan
	c.AgingSpeed = g.AgingSpeed
	c.ReproductionRate = g.ReproductionRate
	c.OffspringCount = g.OffspringCount
	c.EvolutionRate = g.EvolutionRate
	p.PollenRate = g.PollenRate
	p.IdealTemperature = g.IdealTemperature
}
