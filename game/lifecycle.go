package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// die removes a living entity, leaving a Corpse on its cell. Any resource
// already on the cell is replaced; pollen it carried is destroyed with it.
func (g *Game) die(entity ecs.Entity) {
	pos := g.posMap.Get(entity)
	cell := g.cellMap.Get(entity)
	gx, gy := g.grid.ToGrid(*pos)
	kind, age := cell.Kind, cell.Age

	g.grid.Vacate(systems.EntityLayer, gx, gy)

	if kind == components.KindDistributor {
		dist := g.distributorMap.Get(entity)
		carried := dist.Carried
		dist.Carried = nil
		for _, p := range carried {
			if g.world.Alive(p) {
				g.world.RemoveEntity(p)
			}
		}
	}

	if occ := g.grid.Get(systems.ResourceLayer, gx, gy); !occ.Empty() {
		g.removeResource(occ.Entity)
	}
	g.createResource(components.ResourceCorpse, gx, gy)

	lifetime := 0
	if stats := g.lifetimeTracker.Remove(entityID(entity)); stats != nil {
		lifetime = g.clock.Elapsed() - stats.BirthDay
	}
	g.collector.RecordDeath(kind, lifetime)

	switch kind {
	case components.KindProducer:
		g.numProducers--
	case components.KindDistributor:
		g.numDistributors--
	}

	slog.Debug("death", "kind", kind.String(), "gx", gx, "gy", gy, "age", age, "days", lifetime)

	g.world.RemoveEntity(entity)
}

// removeResource deletes a grounded resource and frees its slot.
func (g *Game) removeResource(entity ecs.Entity) {
	if !g.world.Alive(entity) {
		return
	}
	pos := g.posMap.Get(entity)
	gx, gy := g.grid.ToGrid(*pos)
	if g.grid.Holds(systems.ResourceLayer, entity, gx, gy) {
		g.grid.Vacate(systems.ResourceLayer, gx, gy)
	}
	g.world.RemoveEntity(entity)
}

// pickUp lifts a grounded Pollen off the grid into a Distributor's load.
func (g *Game) pickUp(carrier ecs.Entity, dist *components.Distributor, pollenEntity ecs.Entity, gx, gy int) {
	g.grid.Vacate(systems.ResourceLayer, gx, gy)
	g.groundedMap.Remove(pollenEntity)

	pollen := g.pollenMap.Get(pollenEntity)
	pollen.Carrier = carrier
	pollen.DroppedBy = ecs.Entity{}
	pollen.PickedDay = g.clock.Elapsed()

	dist.Carried = append(dist.Carried, pollenEntity)
	g.collector.RecordPollenPicked()
}

// drop puts a carried Pollen down on the free resource slot (gx, gy).
func (g *Game) drop(carrier ecs.Entity, dist *components.Distributor, pollenEntity ecs.Entity, gx, gy int) {
	dist.Release(pollenEntity)

	*g.posMap.Get(pollenEntity) = g.grid.ToWorld(gx, gy)
	pollen := g.pollenMap.Get(pollenEntity)
	pollen.Carrier = ecs.Entity{}
	pollen.DroppedBy = carrier

	g.groundedMap.Add(pollenEntity, &components.Grounded{})
	g.mustPlace(systems.ResourceLayer, components.Occupant{Entity: pollenEntity, Resource: components.ResourcePollen}, gx, gy)
	g.collector.RecordPollenDropped()
}

// droppable returns the carried pollen picked up before today.
func (g *Game) droppable(dist *components.Distributor) []ecs.Entity {
	today := g.clock.Elapsed()
	var out []ecs.Entity
	for _, p := range dist.Carried {
		if !g.world.Alive(p) {
			continue
		}
		if g.pollenMap.Get(p).PickedDay < today {
			out = append(out, p)
		}
	}
	return out
}
