package game

import (
	"fmt"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// InvariantError reports the first broken bookkeeping rule found by
// CheckInvariants.
type InvariantError struct {
	Rule   string
	GX, GY int
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant %s broken at (%d,%d): %s", e.Rule, e.GX, e.GY, e.Detail)
}

// CheckInvariants verifies that the grid layers and the registries agree,
// that every Producer's traits are within the genome bounds and that no
// Distributor carries more than it can.
func (g *Game) CheckInvariants() error {
	if err := g.checkEntityLayer(); err != nil {
		return err
	}
	if err := g.checkResourceLayer(); err != nil {
		return err
	}
	if err := g.checkProducers(); err != nil {
		return err
	}
	return g.checkDistributors()
}

// checkEntityLayer walks the entity layer; every slot must name a living
// entity of the recorded kind whose position maps back to the slot.
func (g *Game) checkEntityLayer() error {
	var err error
	producers, distributors := 0, 0
	g.grid.Each(systems.EntityLayer, func(gx, gy int, occ components.Occupant) {
		if err != nil {
			return
		}
		if !g.world.Alive(occ.Entity) || !g.cellMap.Has(occ.Entity) {
			err = &InvariantError{Rule: "occupancy", GX: gx, GY: gy, Detail: "slot names a dead entity"}
			return
		}
		if kind := g.cellMap.Get(occ.Entity).Kind; kind != occ.Kind {
			err = &InvariantError{Rule: "occupancy", GX: gx, GY: gy, Detail: fmt.Sprintf("slot kind %s, entity kind %s", occ.Kind, kind)}
			return
		}
		if x, y := g.grid.ToGrid(*g.posMap.Get(occ.Entity)); x != gx || y != gy {
			err = &InvariantError{Rule: "coordinates", GX: gx, GY: gy, Detail: fmt.Sprintf("entity position maps to (%d,%d)", x, y)}
			return
		}
		switch occ.Kind {
		case components.KindProducer:
			producers++
		case components.KindDistributor:
			distributors++
		}
	})
	if err != nil {
		return err
	}
	if producers != g.numProducers || distributors != g.numDistributors {
		return &InvariantError{Rule: "occupancy", Detail: fmt.Sprintf(
			"grid holds %d producers and %d distributors, registries count %d and %d",
			producers, distributors, g.numProducers, g.numDistributors)}
	}
	return nil
}

// checkResourceLayer checks both directions between the resource layer and
// the grounded resources.
func (g *Game) checkResourceLayer() error {
	var err error
	g.grid.Each(systems.ResourceLayer, func(gx, gy int, occ components.Occupant) {
		if err != nil {
			return
		}
		if !g.world.Alive(occ.Entity) || !g.groundedMap.Has(occ.Entity) {
			err = &InvariantError{Rule: "occupancy", GX: gx, GY: gy, Detail: "resource slot names a missing or carried resource"}
			return
		}
		if kind := g.resourceMap.Get(occ.Entity).Kind; kind != occ.Resource {
			err = &InvariantError{Rule: "occupancy", GX: gx, GY: gy, Detail: fmt.Sprintf("slot kind %s, resource kind %s", occ.Resource, kind)}
		}
	})
	if err != nil {
		return err
	}

	grounded := 0
	query := g.resourceFilter.Query()
	for query.Next() {
		grounded++
		if err != nil {
			continue
		}
		pos, _, _ := query.Get()
		gx, gy := g.grid.ToGrid(*pos)
		if !g.grid.Holds(systems.ResourceLayer, query.Entity(), gx, gy) {
			err = &InvariantError{Rule: "occupancy", GX: gx, GY: gy, Detail: "grounded resource missing from its slot"}
		}
	}
	if err != nil {
		return err
	}
	if n := g.grid.Occupied(systems.ResourceLayer); n != grounded {
		return &InvariantError{Rule: "occupancy", Detail: fmt.Sprintf("resource layer holds %d, %d grounded", n, grounded)}
	}
	return nil
}

// checkProducers checks genome bounds and the panic range.
func (g *Game) checkProducers() error {
	var err error
	limit := g.cfg.Energy.PanicLimit
	query := g.producerFilter.Query()
	for query.Next() {
		if err != nil {
			continue
		}
		pos, cell, prod := query.Get()
		gx, gy := g.grid.ToGrid(*pos)
		if t, ok := systems.InBounds(components.GenomeOf(cell, prod), &g.cfg.Genome); !ok {
			err = &InvariantError{Rule: "trait_bounds", GX: gx, GY: gy, Detail: fmt.Sprintf("%s out of bounds", t)}
			continue
		}
		if prod.PanicMode < -limit || prod.PanicMode > limit {
			err = &InvariantError{Rule: "trait_bounds", GX: gx, GY: gy, Detail: fmt.Sprintf("panic mode %d", prod.PanicMode)}
		}
	}
	return err
}

// checkDistributors checks carry capacity and that every carried pollen is
// alive, off the grid and points back at its carrier.
func (g *Game) checkDistributors() error {
	var err error
	query := g.distributorFilter.Query()
	for query.Next() {
		if err != nil {
			continue
		}
		pos, _, dist := query.Get()
		gx, gy := g.grid.ToGrid(*pos)
		if dist.CarryingCount() > dist.MaxCarry {
			err = &InvariantError{Rule: "carry_capacity", GX: gx, GY: gy, Detail: fmt.Sprintf("carrying %d of %d", dist.CarryingCount(), dist.MaxCarry)}
			continue
		}
		for _, p := range dist.Carried {
			if !g.world.Alive(p) || g.groundedMap.Has(p) || g.pollenMap.Get(p).Carrier != query.Entity() {
				err = &InvariantError{Rule: "carry_capacity", GX: gx, GY: gy, Detail: "carried pollen detached from its carrier"}
				break
			}
		}
	}
	return err
}
