// Package components defines ECS components for the simulation.
package components

import "github.com/mlange-42/ark/ecs"

// Kind tags the variant of a living entity.
type Kind uint8

const (
	KindNone Kind = iota
	KindProducer
	KindDistributor
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindProducer:
		return "producer"
	case KindDistributor:
		return "distributor"
	default:
		return "none"
	}
}

// Cell holds the attributes shared by every living entity.
// Producers and Distributors add their payload as a separate component.
type Cell struct {
	Kind Kind

	// Traits
	Capacity         float64
	ProductionRate   float64
	Resilience       float64
	Lifespan         float64
	AgingSpeed       float64
	ReproductionRate float64
	OffspringCount   int
	EvolutionRate    float64

	// Vitals
	CurrentEnergy   float64
	Age             float64
	Temperature     int     // Ambient temperature level at the entity's cell
	ConsumptionRate float64 // Derived, refreshed on creation and seasonal updates
	Stress          float64 // Derived psychological stress
}

// Producer is the payload of a stationary energy producer.
type Producer struct {
	// Environment levels read from terrain at creation
	Elevation     int
	Humidity      int
	Radioactivity int
	Productivity  int

	PollenRate       float64
	IdealTemperature float64
	PanicMode        int // Cumulative metabolic state in [-limit, limit]
}

// Distributor is the payload of a mobile pollen carrier.
type Distributor struct {
	MaxSpeed       float64
	MaxCarry       int // Derived from MaxSpeed
	DetectionRange int

	Carried []ecs.Entity // Pollen entities currently held
}

// CarryingCount returns the number of pollen held.
func (d *Distributor) CarryingCount() int {
	return len(d.Carried)
}

// CanCarry reports whether another pollen fits.
func (d *Distributor) CanCarry() bool {
	return len(d.Carried) < d.MaxCarry
}

// Release removes e from the carried list. Returns false if not held.
func (d *Distributor) Release(e ecs.Entity) bool {
	for i, c := range d.Carried {
		if c == e {
			d.Carried = append(d.Carried[:i], d.Carried[i+1:]...)
			return true
		}
	}
	return false
}
