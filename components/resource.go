package components

import "github.com/mlange-42/ark/ecs"

// ResourceKind tags the variant of a resource.
type ResourceKind uint8

const (
	ResourceNone ResourceKind = iota
	ResourceFood
	ResourceCorpse
	ResourcePollen
)

// String returns the display name for a ResourceKind.
func (k ResourceKind) String() string {
	switch k {
	case ResourceFood:
		return "food"
	case ResourceCorpse:
		return "corpse"
	case ResourcePollen:
		return "pollen"
	default:
		return "none"
	}
}

// Resource is a decaying byproduct on the resource layer.
type Resource struct {
	Kind              ResourceKind
	DecompositionRate float64 // Prolificacy lost per day
	Prolificacy       float64 // Remaining potency, removed at <= 0
}

// Pollen is the payload of a pollen resource.
// Carrier and DroppedBy are weak references: they may name a dead entity.
type Pollen struct {
	Genome    Genome
	Carrier   ecs.Entity // Zero while grounded
	DroppedBy ecs.Entity // Last distributor that put it down
	PickedDay int        // Day it was picked up, droppable on later days
}

// Grounded tags resources that occupy a resource-layer slot.
// Carried pollen lacks it and is skipped by decay and registry views.
type Grounded struct{}
