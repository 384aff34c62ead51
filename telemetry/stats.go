package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of days.
type WindowStats struct {
	WindowStartDay int `csv:"-"`
	WindowEndDay   int `csv:"window_end"`
	Year           int `csv:"year"`
	Month          int `csv:"month"`

	// Population counts at window end
	Producers      int `csv:"producers"`
	Distributors   int `csv:"distributors"`
	Food           int `csv:"food"`
	Corpses        int `csv:"corpses"`
	GroundedPollen int `csv:"pollen_grounded"`
	CarriedPollen  int `csv:"pollen_carried"`

	// Events during window
	ProducerBirths    int `csv:"producer_births"`
	ProducerDeaths    int `csv:"producer_deaths"`
	DistributorDeaths int `csv:"distributor_deaths"`
	Reproductions     int `csv:"reproductions"`

	// Pollen flow
	PollenProduced int `csv:"pollen_produced"`
	PollenPicked   int `csv:"pollen_picked"`
	PollenDropped  int `csv:"pollen_dropped"`
	PollenConsumed int `csv:"pollen_consumed"`

	// Food
	FoodProduced int `csv:"food_produced"`
	FoodForced   int `csv:"food_forced"`

	// Panic transitions
	PanicShortfall int `csv:"panic_shortfall"`
	PanicSurplus   int `csv:"panic_surplus"`
	PanicCrisis    int `csv:"panic_crisis"`

	// Energy distribution (sampled at window end)
	ProducerEnergyMean float64 `csv:"producer_energy_mean"`
	ProducerEnergyP10  float64 `csv:"producer_energy_p10"`
	ProducerEnergyP50  float64 `csv:"producer_energy_p50"`
	ProducerEnergyP90  float64 `csv:"producer_energy_p90"`

	DistributorEnergyMean float64 `csv:"distributor_energy_mean"`

	// Trait drift among living Producers
	ProductionMean float64 `csv:"production_mean"`
	ProductionStd  float64 `csv:"production_std"`
	ResilienceMean float64 `csv:"resilience_mean"`
	ResilienceStd  float64 `csv:"resilience_std"`
	EvolutionMean  float64 `csv:"evolution_mean"`

	// Lineage
	MeanLifetimeDays float64 `csv:"mean_lifetime_days"` // Producers that died this window
	MaxGeneration    int     `csv:"max_generation"`

	MeanTemperature float64 `csv:"mean_temperature"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// ComputeSpread returns mean and sample standard deviation.
// Std is 0 for fewer than two values.
func ComputeSpread(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values) / float64(len(values))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartDay),
		slog.Int("window_end", s.WindowEndDay),
		slog.Int("year", s.Year),
		slog.Int("month", s.Month),
		slog.Int("producers", s.Producers),
		slog.Int("distributors", s.Distributors),
		slog.Int("food", s.Food),
		slog.Int("corpses", s.Corpses),
		slog.Int("pollen_grounded", s.GroundedPollen),
		slog.Int("pollen_carried", s.CarriedPollen),
		slog.Int("producer_births", s.ProducerBirths),
		slog.Int("producer_deaths", s.ProducerDeaths),
		slog.Int("distributor_deaths", s.DistributorDeaths),
		slog.Int("reproductions", s.Reproductions),
		slog.Int("pollen_produced", s.PollenProduced),
		slog.Int("pollen_picked", s.PollenPicked),
		slog.Int("pollen_dropped", s.PollenDropped),
		slog.Int("pollen_consumed", s.PollenConsumed),
		slog.Int("food_produced", s.FoodProduced),
		slog.Int("food_forced", s.FoodForced),
		slog.Int("panic_shortfall", s.PanicShortfall),
		slog.Int("panic_surplus", s.PanicSurplus),
		slog.Int("panic_crisis", s.PanicCrisis),
		slog.Float64("producer_energy_mean", s.ProducerEnergyMean),
		slog.Float64("producer_energy_p10", s.ProducerEnergyP10),
		slog.Float64("producer_energy_p50", s.ProducerEnergyP50),
		slog.Float64("producer_energy_p90", s.ProducerEnergyP90),
		slog.Float64("distributor_energy_mean", s.DistributorEnergyMean),
		slog.Float64("production_mean", s.ProductionMean),
		slog.Float64("production_std", s.ProductionStd),
		slog.Float64("resilience_mean", s.ResilienceMean),
		slog.Float64("resilience_std", s.ResilienceStd),
		slog.Float64("evolution_mean", s.EvolutionMean),
		slog.Float64("mean_lifetime_days", s.MeanLifetimeDays),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Float64("mean_temperature", s.MeanTemperature),
	)
}

// LogStats logs the headline window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndDay,
		"year", s.Year,
		"month", s.Month,
		"producers", s.Producers,
		"distributors", s.Distributors,
		"food", s.Food,
		"corpses", s.Corpses,
		"pollen_grounded", s.GroundedPollen,
		"pollen_carried", s.CarriedPollen,
		"producer_births", s.ProducerBirths,
		"producer_deaths", s.ProducerDeaths,
		"distributor_deaths", s.DistributorDeaths,
		"reproductions", s.Reproductions,
		"pollen_produced", s.PollenProduced,
		"pollen_dropped", s.PollenDropped,
		"panic_crisis", s.PanicCrisis,
		"producer_energy_mean", s.ProducerEnergyMean,
		"production_mean", s.ProductionMean,
		"resilience_mean", s.ResilienceMean,
		"max_generation", s.MaxGeneration,
	)
}
