package game

import (
	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/systems"
)

// decayResources runs one day of decay for every grounded resource of one
// kind. Exhausted resources leave the grid immediately.
func (g *Game) decayResources(kind components.ResourceKind) {
	prec := g.cfg.Energy.Precision
	for _, entity := range g.resourceEntities(kind) {
		if !g.world.Alive(entity) || !g.groundedMap.Has(entity) {
			continue
		}
		res := g.resourceMap.Get(entity)
		res.Prolificacy = systems.Round(res.Prolificacy-res.DecompositionRate, prec)
		if res.Prolificacy <= 0 {
			g.removeResource(entity)
		}
	}
}
