package systems

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

// TraitBounds returns the configured bounds of one heritable trait.
func TraitBounds(g *config.GenomeConfig, t components.Trait) config.TraitConfig {
	switch t {
	case components.TraitCapacity:
		return g.Capacity
	case components.TraitProductionRate:
		return g.ProductionRate
	case components.TraitResilience:
		return g.Resilience
	case components.TraitLifespan:
		return g.Lifespan
	case components.TraitAgingSpeed:
		return g.AgingSpeed
	case components.TraitReproductionRate:
		return g.ReproductionRate
	case components.TraitOffspringCount:
		return g.OffspringCount
	case components.TraitPollenRate:
		return g.PollenRate
	case components.TraitIdealTemperature:
		return g.IdealTemperature
	case components.TraitEvolutionRate:
		return g.EvolutionRate
	}
	return config.TraitConfig{}
}

// fit clamps v into the trait's bounds and rounds to its precision.
func fit(v float64, b config.TraitConfig) float64 {
	return Clamp(Round(v, b.Precision), b.Min, b.Max)
}

// Mutate returns a copy of parent where each trait independently mutated
// with probability evolution_rate/10 by Normal(0, sigma)*evolution_rate.
func Mutate(rng *rand.Rand, parent components.Genome, g *config.GenomeConfig) components.Genome {
	out := parent
	evo := parent.EvolutionRate
	chance := evo / 10
	for _, t := range components.AllTraits {
		if !Chance(rng, chance) {
			continue
		}
		b := TraitBounds(g, t)
		noise := distuv.Normal{Mu: 0, Sigma: b.Sigma, Src: rng}.Rand()
		out.Set(t, fit(out.Value(t)+noise*evo, b))
	}
	return out
}

// Recombine averages parent and donor trait by trait, shifting each by
// ±(evolution_rate/10 + radioactivity/10) with an independent sign.
func Recombine(rng *rand.Rand, parent, donor components.Genome, radioactivity int, g *config.GenomeConfig) components.Genome {
	var out components.Genome
	delta := parent.EvolutionRate/10 + float64(radioactivity)/10
	for _, t := range components.AllTraits {
		b := TraitBounds(g, t)
		v := (parent.Value(t) + Sign(rng)*delta + donor.Value(t)) / 2
		out.Set(t, fit(v, b))
	}
	return out
}

// InBounds reports the first trait outside its bounds, if any.
func InBounds(genome components.Genome, g *config.GenomeConfig) (components.Trait, bool) {
	for _, t := range components.AllTraits {
		b := TraitBounds(g, t)
		if v := genome.Value(t); v < b.Min || v > b.Max {
			return t, false
		}
	}
	return 0, true
}
