package game

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// LogWorldState logs a one-line summary of the world at info level.
func (g *Game) LogWorldState() {
	var prodEnergy, distEnergy []float64
	var panicking, carried int

	pq := g.producerFilter.Query()
	for pq.Next() {
		_, cell, prod := pq.Get()
		prodEnergy = append(prodEnergy, cell.CurrentEnergy)
		if prod.PanicMode > 0 {
			panicking++
		}
	}
	dq := g.distributorFilter.Query()
	for dq.Next() {
		_, cell, dist := dq.Get()
		distEnergy = append(distEnergy, cell.CurrentEnergy)
		carried += dist.CarryingCount()
	}

	counts := g.Counts()
	slog.Info("world",
		"date", g.clock.String(),
		"day", g.clock.Elapsed(),
		"producers", counts.Producers,
		"distributors", counts.Distributors,
		"food", counts.Food,
		"corpses", counts.Corpses,
		"pollen", counts.Pollen,
		"pollen_carried", carried,
		"panicking", panicking,
		"producer_energy", meanOrZero(prodEnergy),
		"distributor_energy", meanOrZero(distEnergy),
	)
}

func meanOrZero(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}
