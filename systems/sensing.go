package systems

import (
	"math/rand/v2"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
)

// Offset is a relative grid step.
type Offset struct {
	DX, DY int
}

var (
	offsetsMu    sync.Mutex
	offsetsCache = map[int][]Offset{}
)

// Offsets returns the square neighborhood of radius r without its centre,
// in row-major order. The returned slice is shared; copy before reordering.
func Offsets(r int) []Offset {
	offsetsMu.Lock()
	defer offsetsMu.Unlock()
	if offs, ok := offsetsCache[r]; ok {
		return offs
	}
	side := 2*r + 1
	offs := make([]Offset, 0, side*side-1)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			offs = append(offs, Offset{DX: dx, DY: dy})
		}
	}
	offsetsCache[r] = offs
	return offs
}

// ShuffledOffsets returns a shuffled copy of Offsets(r).
func ShuffledOffsets(rng *rand.Rand, r int) []Offset {
	offs := append([]Offset(nil), Offsets(r)...)
	rng.Shuffle(len(offs), func(i, j int) { offs[i], offs[j] = offs[j], offs[i] })
	return offs
}

// Sense rewrites area with the contents of the radius-r neighborhood of
// (gx, gy), including the centre, clipped to the grid. The entity layer
// records Producers and Distributors other than self; the resource layer
// records every resource.
func Sense(g *WorldGrid, area *components.SensedArea, self ecs.Entity, gx, gy, r int) {
	area.Radius = r
	area.GX, area.GY = gx, gy
	area.Slots = area.Slots[:0]
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := gx+dx, gy+dy
			if !g.InGrid(x, y) {
				continue
			}
			slot := components.SensedSlot{DX: dx, DY: dy, GX: x, GY: y}
			if occ := g.Get(EntityLayer, x, y); occ.Kind != components.KindNone && occ.Entity != self {
				slot.Entity = occ
			}
			if occ := g.Get(ResourceLayer, x, y); occ.Resource != components.ResourceNone {
				slot.Resource = occ
			}
			area.Slots = append(area.Slots, slot)
		}
	}
}

// FindFreeCell searches the radius-r neighborhood of (gx, gy) in random
// order for an empty in-bounds slot on layer l.
func FindFreeCell(g *WorldGrid, rng *rand.Rand, l Layer, gx, gy, r int) (int, int, bool) {
	for _, o := range ShuffledOffsets(rng, r) {
		x, y := gx+o.DX, gy+o.DY
		if g.IsFree(l, x, y) {
			return x, y, true
		}
	}
	return 0, 0, false
}
