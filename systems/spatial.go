// Package systems provides the simulation rules that operate on components.
package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// Layer selects one of the two parallel grid layers.
type Layer uint8

const (
	EntityLayer Layer = iota
	ResourceLayer
)

func (l Layer) String() string {
	if l == EntityLayer {
		return "entity"
	}
	return "resource"
}

// OccupiedSlotError reports a placement into a slot that already holds an occupant.
type OccupiedSlotError struct {
	Layer    Layer
	GX, GY   int
	Occupant components.Occupant
}

func (e *OccupiedSlotError) Error() string {
	return fmt.Sprintf("%s slot (%d,%d) already occupied", e.Layer, e.GX, e.GY)
}

// OutOfBoundsError reports an access outside the grid.
type OutOfBoundsError struct {
	GX, GY int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("grid cell (%d,%d) out of bounds", e.GX, e.GY)
}

// WorldGrid is a dense index over two parallel layers of one occupant per cell.
type WorldGrid struct {
	worldSize int
	cellSize  int
	size      int // cells per side
	layers    [2][]components.Occupant
}

// NewWorldGrid creates a grid covering a square world of side worldSize.
func NewWorldGrid(worldSize, cellSize int) *WorldGrid {
	size := worldSize / cellSize
	g := &WorldGrid{
		worldSize: worldSize,
		cellSize:  cellSize,
		size:      size,
	}
	for i := range g.layers {
		g.layers[i] = make([]components.Occupant, size*size)
	}
	return g
}

// Size returns the number of cells per side.
func (g *WorldGrid) Size() int { return g.size }

// CellSize returns the side of one cell in world units.
func (g *WorldGrid) CellSize() int { return g.cellSize }

// InBounds reports whether world coordinate (x, y) lies inside the world.
func (g *WorldGrid) InBounds(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(g.worldSize) && y < float64(g.worldSize)
}

// InGrid reports whether grid cell (gx, gy) exists.
func (g *WorldGrid) InGrid(gx, gy int) bool {
	return gx >= 0 && gy >= 0 && gx < g.size && gy < g.size
}

// ToGrid converts a world position to its grid cell.
func (g *WorldGrid) ToGrid(p components.Position) (gx, gy int) {
	return p.Grid(g.cellSize)
}

// ToWorld converts a grid cell to the world position stored on occupants.
func (g *WorldGrid) ToWorld(gx, gy int) components.Position {
	return components.CellPosition(gx, gy, g.cellSize)
}

func (g *WorldGrid) index(gx, gy int) int {
	return gy*g.size + gx
}

// Get returns the occupant of a slot. Out-of-bounds cells read as empty.
func (g *WorldGrid) Get(l Layer, gx, gy int) components.Occupant {
	if !g.InGrid(gx, gy) {
		return components.Occupant{}
	}
	return g.layers[l][g.index(gx, gy)]
}

// IsFree reports whether the slot exists and is empty.
func (g *WorldGrid) IsFree(l Layer, gx, gy int) bool {
	return g.InGrid(gx, gy) && g.layers[l][g.index(gx, gy)].Empty()
}

// Place stores occ in the slot. It never overwrites an occupant.
func (g *WorldGrid) Place(l Layer, occ components.Occupant, gx, gy int) error {
	if !g.InGrid(gx, gy) {
		return &OutOfBoundsError{GX: gx, GY: gy}
	}
	idx := g.index(gx, gy)
	if cur := g.layers[l][idx]; !cur.Empty() {
		return &OccupiedSlotError{Layer: l, GX: gx, GY: gy, Occupant: cur}
	}
	g.layers[l][idx] = occ
	return nil
}

// Vacate clears the slot and returns its previous occupant.
func (g *WorldGrid) Vacate(l Layer, gx, gy int) components.Occupant {
	if !g.InGrid(gx, gy) {
		return components.Occupant{}
	}
	idx := g.index(gx, gy)
	prev := g.layers[l][idx]
	g.layers[l][idx] = components.Occupant{}
	return prev
}

// Holds reports whether the slot contains entity e.
func (g *WorldGrid) Holds(l Layer, e ecs.Entity, gx, gy int) bool {
	return g.InGrid(gx, gy) && g.layers[l][g.index(gx, gy)].Entity == e
}

// FreeCells returns every empty cell of a layer in row-major order.
func (g *WorldGrid) FreeCells(l Layer) [][2]int {
	var free [][2]int
	for gy := 0; gy < g.size; gy++ {
		for gx := 0; gx < g.size; gx++ {
			if g.layers[l][g.index(gx, gy)].Empty() {
				free = append(free, [2]int{gx, gy})
			}
		}
	}
	return free
}

// Occupied counts the non-empty slots of a layer.
func (g *WorldGrid) Occupied(l Layer) int {
	n := 0
	for _, occ := range g.layers[l] {
		if !occ.Empty() {
			n++
		}
	}
	return n
}

// Each calls fn for every non-empty slot of a layer.
func (g *WorldGrid) Each(l Layer, fn func(gx, gy int, occ components.Occupant)) {
	for i, occ := range g.layers[l] {
		if !occ.Empty() {
			fn(i%g.size, i/g.size, occ)
		}
	}
}
