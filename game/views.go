package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// EntityView is a read-only snapshot of one living entity for display.
type EntityView struct {
	Entity   ecs.Entity
	Kind     components.Kind
	Position components.Position
	GX, GY   int
	Color    components.RGB
	Label    string
	Energy   float64
	Carrying int // Distributors only
}

// ResourceView is a read-only snapshot of one grounded resource.
type ResourceView struct {
	Entity      ecs.Entity
	Kind        components.ResourceKind
	Position    components.Position
	GX, GY      int
	Color       components.RGB
	Label       string
	Prolificacy float64
}

// Counts is the current population and resource census.
type Counts struct {
	Producers    int
	Distributors int
	Food         int
	Corpses      int
	Pollen       int
}

// FieldValue is one formatted field of an inspected entity.
type FieldValue struct {
	components.FieldDescriptor
	Value string
}

// Clock returns a copy of the calendar.
func (g *Game) Clock() systems.Clock { return *g.clock }

// Producers returns views of every living Producer.
func (g *Game) Producers() []EntityView {
	out := make([]EntityView, 0, g.numProducers)
	query := g.producerFilter.Query()
	for query.Next() {
		pos, cell, prod := query.Get()
		gx, gy := g.grid.ToGrid(*pos)
		out = append(out, EntityView{
			Entity:   query.Entity(),
			Kind:     components.KindProducer,
			Position: *pos,
			GX:       gx,
			GY:       gy,
			Color:    components.ProducerColor(cell, prod),
			Label:    components.ProducerLabel(cell, prod),
			Energy:   cell.CurrentEnergy,
		})
	}
	return out
}

// Distributors returns views of every living Distributor.
func (g *Game) Distributors() []EntityView {
	out := make([]EntityView, 0, g.numDistributors)
	query := g.distributorFilter.Query()
	for query.Next() {
		pos, cell, dist := query.Get()
		gx, gy := g.grid.ToGrid(*pos)
		out = append(out, EntityView{
			Entity:   query.Entity(),
			Kind:     components.KindDistributor,
			Position: *pos,
			GX:       gx,
			GY:       gy,
			Color:    components.DistributorColor(dist),
			Label:    components.DistributorLabel(dist),
			Energy:   cell.CurrentEnergy,
			Carrying: dist.CarryingCount(),
		})
	}
	return out
}

// Resources returns views of every grounded resource.
func (g *Game) Resources() []ResourceView {
	depleted := g.cfg.Resources.DepletedThreshold
	var out []ResourceView
	query := g.resourceFilter.Query()
	for query.Next() {
		pos, res, _ := query.Get()
		gx, gy := g.grid.ToGrid(*pos)
		out = append(out, ResourceView{
			Entity:      query.Entity(),
			Kind:        res.Kind,
			Position:    *pos,
			GX:          gx,
			GY:          gy,
			Color:       components.ResourceColor(res, depleted),
			Label:       components.ResourceLabel(res),
			Prolificacy: res.Prolificacy,
		})
	}
	return out
}

// Counts returns the current census.
func (g *Game) Counts() Counts {
	c := Counts{Producers: g.numProducers, Distributors: g.numDistributors}
	query := g.resourceFilter.Query()
	for query.Next() {
		_, res, _ := query.Get()
		switch res.Kind {
		case components.ResourceFood:
			c.Food++
		case components.ResourceCorpse:
			c.Corpses++
		case components.ResourcePollen:
			c.Pollen++
		}
	}
	return c
}

// Inspect formats the fields of a living entity. Returns false if e is not
// a living Producer or Distributor.
func (g *Game) Inspect(e ecs.Entity) ([]FieldValue, bool) {
	if !g.world.Alive(e) || !g.cellMap.Has(e) {
		return nil, false
	}
	cell := g.cellMap.Get(e)

	values := map[string]any{
		"energy":      cell.CurrentEnergy,
		"age":         cell.Age,
		"consumption": cell.ConsumptionRate,
		"stress":      cell.Stress,
		"temperature": cell.Temperature,
		"capacity":    cell.Capacity,
		"production":  cell.ProductionRate,
		"resilience":  cell.Resilience,
		"lifespan":    cell.Lifespan,
		"evolution":   cell.EvolutionRate,
	}
	descs := components.CellFieldDescriptors()

	switch {
	case g.producerMap.Has(e):
		p := g.producerMap.Get(e)
		values["elevation"] = p.Elevation
		values["humidity"] = p.Humidity
		values["radioactivity"] = p.Radioactivity
		values["productivity"] = p.Productivity
		values["pollen_rate"] = p.PollenRate
		values["panic"] = p.PanicMode
		descs = append(descs, components.ProducerFieldDescriptors()...)
	case g.distributorMap.Has(e):
		d := g.distributorMap.Get(e)
		values["max_speed"] = d.MaxSpeed
		values["carrying"] = d.CarryingCount()
		values["detection"] = d.DetectionRange
		descs = append(descs, components.DistributorFieldDescriptors()...)
	}

	out := make([]FieldValue, 0, len(descs))
	for _, d := range descs {
		v, ok := values[d.ID]
		if !ok {
			continue
		}
		out = append(out, FieldValue{FieldDescriptor: d, Value: fmt.Sprintf(d.Format, v)})
	}
	return out, true
}
