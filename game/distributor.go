package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// updateDistributors runs one day for every Distributor alive at pass start.
func (g *Game) updateDistributors() {
	for _, entity := range g.distributorEntities() {
		if !g.world.Alive(entity) || !g.distributorMap.Has(entity) {
			continue
		}
		g.updateDistributor(entity)
	}
}

// updateDistributor runs the Distributor lifecycle: sense, age, metabolise,
// move, then pick up and drop pollen against the sensed area.
func (g *Game) updateDistributor(entity ecs.Entity) {
	dc := &g.cfg.Distributor
	ec := &g.cfg.Energy

	pos, cell, dist, area := g.distributorMapper.Get(entity)
	gx, gy := g.grid.ToGrid(*pos)

	systems.Sense(g.grid, area, entity, gx, gy, dc.PerceptionRadius)

	if cell.Age > systems.DeathThreshold(g.rng, cell, ec.DeathJitter) {
		g.die(entity)
		return
	}
	systems.Metabolize(cell, ec.Precision)

	if systems.Chance(g.rng, dist.MaxSpeed) {
		gx, gy = g.move(entity, pos, gx, gy)
	}

	g.pickUpNearby(entity, dist, area, gx, gy)

	if !g.dropNearProducer(entity, dist, area, gx, gy) {
		g.dropRandomly(entity, dist, gx, gy)
	}
}

// move steps to the first free cell of the shuffled 8-neighborhood.
func (g *Game) move(entity ecs.Entity, pos *components.Position, gx, gy int) (int, int) {
	for _, o := range systems.ShuffledOffsets(g.rng, 1) {
		x, y := gx+o.DX, gy+o.DY
		if !g.grid.IsFree(systems.EntityLayer, x, y) {
			continue
		}
		occ := g.grid.Vacate(systems.EntityLayer, gx, gy)
		g.mustPlace(systems.EntityLayer, occ, x, y)
		*pos = g.grid.ToWorld(x, y)
		return x, y
	}
	return gx, gy
}

// pickUpNearby lifts sensed grounded Pollen within pickup distance until the
// load is full. Pollen this Distributor dropped itself is left alone.
func (g *Game) pickUpNearby(entity ecs.Entity, dist *components.Distributor, area *components.SensedArea, gx, gy int) {
	limit := g.cfg.Distributor.PickupDistance
	for _, slot := range area.Slots {
		if !dist.CanCarry() {
			return
		}
		if slot.Resource.Resource != components.ResourcePollen {
			continue
		}
		if systems.Manhattan(slot.GX, slot.GY, gx, gy) > limit {
			continue
		}
		pollenEntity := slot.Resource.Entity
		if !g.world.Alive(pollenEntity) || !g.grid.Holds(systems.ResourceLayer, pollenEntity, slot.GX, slot.GY) {
			continue
		}
		if g.pollenMap.Get(pollenEntity).DroppedBy == entity {
			continue
		}
		g.pickUp(entity, dist, pollenEntity, slot.GX, slot.GY)
	}
}

// dropNearProducer drops pollen carried since a previous day onto the cells
// of sensed Producers within drop distance. Reports whether any was dropped.
func (g *Game) dropNearProducer(entity ecs.Entity, dist *components.Distributor, area *components.SensedArea, gx, gy int) bool {
	limit := g.cfg.Distributor.DropDistance
	dropped := false
	for _, slot := range area.Slots {
		if slot.Entity.Kind != components.KindProducer {
			continue
		}
		if systems.Manhattan(slot.GX, slot.GY, gx, gy) > limit {
			continue
		}
		if !g.grid.Holds(systems.EntityLayer, slot.Entity.Entity, slot.GX, slot.GY) {
			continue
		}
		candidates := g.droppable(dist)
		if len(candidates) == 0 {
			break
		}
		if !g.grid.IsFree(systems.ResourceLayer, slot.GX, slot.GY) {
			continue
		}
		pollenEntity := candidates[g.rng.IntN(len(candidates))]
		g.drop(entity, dist, pollenEntity, slot.GX, slot.GY)
		g.lifetimeTracker.RecordDelivery(entityID(entity))
		dropped = true
	}
	return dropped
}

// dropRandomly drops one previously carried pollen at the Distributor's own
// cell with probability max_speed/random_drop_divisor.
func (g *Game) dropRandomly(entity ecs.Entity, dist *components.Distributor, gx, gy int) {
	if !systems.Chance(g.rng, dist.MaxSpeed/g.cfg.Distributor.RandomDropDivisor) {
		return
	}
	candidates := g.droppable(dist)
	if len(candidates) == 0 || !g.grid.IsFree(systems.ResourceLayer, gx, gy) {
		return
	}
	g.drop(entity, dist, candidates[g.rng.IntN(len(candidates))], gx, gy)
}
