package components

import "github.com/mlange-42/ark/ecs"

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Grid returns the grid cell containing the position.
func (p Position) Grid(cellSize int) (gx, gy int) {
	return int(p.X) / cellSize, int(p.Y) / cellSize
}

// CellPosition returns the world position of grid cell (gx, gy).
func CellPosition(gx, gy, cellSize int) Position {
	return Position{X: float64(gx * cellSize), Y: float64(gy * cellSize)}
}

// Occupant is the content of one grid layer slot.
type Occupant struct {
	Entity   ecs.Entity
	Kind     Kind         // Set on the entity layer
	Resource ResourceKind // Set on the resource layer
}

// Empty reports whether the slot holds nothing.
func (o Occupant) Empty() bool {
	return o.Kind == KindNone && o.Resource == ResourceNone
}

// SensedSlot records what one neighborhood cell held during a sensing pass.
type SensedSlot struct {
	DX, DY int // Offset from the sensing entity
	GX, GY int // Absolute grid cell

	Entity   Occupant
	Resource Occupant
}

// SensedArea is the cached snapshot of an entity's neighborhood.
// Every sensing pass rewrites Slots completely.
type SensedArea struct {
	Radius int
	GX, GY int
	Slots  []SensedSlot
}

// At returns the slot for offset (dx, dy), if it was inside the world.
func (a *SensedArea) At(dx, dy int) (SensedSlot, bool) {
	for _, s := range a.Slots {
		if s.DX == dx && s.DY == dy {
			return s, true
		}
	}
	return SensedSlot{}, false
}

// Count returns how many slots held an entity of kind k and a resource of kind r.
// KindNone and ResourceNone act as wildcards.
func (a *SensedArea) Count(k Kind, r ResourceKind) int {
	n := 0
	for _, s := range a.Slots {
		if k != KindNone && s.Entity.Kind != k {
			continue
		}
		if r != ResourceNone && s.Resource.Resource != r {
			continue
		}
		n++
	}
	return n
}
