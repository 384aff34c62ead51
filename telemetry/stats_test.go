package telemetry

import (
	"math"
	"testing"
)

func TestPercentileInterpolates(t *testing.T) {
	energies := []float64{0.1, 0.3, 0.35, 0.8}
	tests := []struct {
		p    float64
		want float64
	}{
		{-0.5, 0.1},
		{0, 0.1},
		{1.0 / 3, 0.3},
		{0.5, 0.325},
		{0.9, 0.665},
		{1, 0.8},
		{2, 0.8},
	}
	for _, tt := range tests {
		if got := Percentile(energies, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(p=%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("Percentile(nil) = %v, want 0", got)
	}
	if got := Percentile([]float64{0.42}, 0.9); got != 0.42 {
		t.Errorf("Percentile(single) = %v, want 0.42", got)
	}
}

func TestFlushProducerEnergyColumns(t *testing.T) {
	c := NewCollector(10)
	energies := []float64{0.8, 0.2, 0.4, 0.6, 0.0}
	stats := c.Flush(10, Census{Producers: len(energies), ProducerEnergies: energies})

	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", stats.ProducerEnergyMean, 0.4},
		{"p10", stats.ProducerEnergyP10, 0.08},
		{"p50", stats.ProducerEnergyP50, 0.4},
		{"p90", stats.ProducerEnergyP90, 0.72},
	}
	for _, ck := range checks {
		if math.Abs(ck.got-ck.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", ck.name, ck.got, ck.want)
		}
	}
	// The census slice is sampled, not sorted in place
	if energies[0] != 0.8 || energies[4] != 0.0 {
		t.Errorf("census energies reordered: %v", energies)
	}
}

func TestFlushWithoutProducers(t *testing.T) {
	stats := NewCollector(10).Flush(10, Census{Distributors: 3, DistributorEnergies: []float64{0.2, 0.4, 0.6}})
	if stats.ProducerEnergyMean != 0 || stats.ProducerEnergyP10 != 0 || stats.ProducerEnergyP50 != 0 || stats.ProducerEnergyP90 != 0 {
		t.Errorf("producer energy columns = %v/%v/%v/%v, want zeros",
			stats.ProducerEnergyMean, stats.ProducerEnergyP10, stats.ProducerEnergyP50, stats.ProducerEnergyP90)
	}
	if math.Abs(stats.DistributorEnergyMean-0.4) > 1e-9 {
		t.Errorf("DistributorEnergyMean = %v, want 0.4", stats.DistributorEnergyMean)
	}
}

func TestComputeSpread(t *testing.T) {
	mean, std := ComputeSpread([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	// Sample standard deviation: sqrt(32/7)
	if math.Abs(std-math.Sqrt(32.0/7)) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(32.0/7))
	}

	mean, std = ComputeSpread([]float64{0.3})
	if mean != 0.3 || std != 0 {
		t.Errorf("single value = (%v, %v), want (0.3, 0)", mean, std)
	}
	if mean, std = ComputeSpread(nil); mean != 0 || std != 0 {
		t.Errorf("empty = (%v, %v), want zeros", mean, std)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("Mean = %v, want 2", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
}
