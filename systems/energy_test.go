package systems

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/meadow/components"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProducerConsumption(t *testing.T) {
	c := components.Cell{AgingSpeed: 0.004, Resilience: 0.5, Temperature: 2}
	p := components.Producer{Elevation: 0, Humidity: 2}
	if got := ProducerConsumption(&c, &p); !approx(got, 0.006) {
		t.Errorf("ProducerConsumption = %v, want 0.006", got)
	}

	// Harsher environment costs more
	p.Elevation = 4
	c.Temperature = 0
	if got := ProducerConsumption(&c, &p); got <= 0.006 {
		t.Errorf("harsh ProducerConsumption = %v, want > 0.006", got)
	}
}

func TestProducerStress(t *testing.T) {
	c := components.Cell{Capacity: 1, CurrentEnergy: 0.5, Lifespan: 1, Age: 0, Resilience: 0, Temperature: 2}
	p := components.Producer{Humidity: 2}
	// sigmoid(0) = 0.5, every other term is zero
	if got := ProducerStress(&c, &p); !approx(got, 0.5) {
		t.Errorf("ProducerStress = %v, want 0.5", got)
	}
}

func TestDistributorConsumption(t *testing.T) {
	c := components.Cell{Capacity: 0.4, Resilience: 0, Temperature: 1}
	d := components.Distributor{MaxSpeed: 1, MaxCarry: 5, DetectionRange: 8}
	want := (0.04 + 0.2 + 0.75 + 0 + 0.4 - 2) / 6.5
	if got := DistributorConsumption(&c, &d); math.Abs(got-want) > 1e-9 {
		t.Errorf("DistributorConsumption = %v, want %v", got, want)
	}
}

func TestMaxCarry(t *testing.T) {
	tests := []struct {
		speed float64
		want  int
	}{
		{0.3, 1},
		{0.5, 1},
		{0.75, 3},
		{0.6875, 3},
		{1.0, 5},
		{2.0, 5},
	}
	for _, tt := range tests {
		if got := MaxCarry(tt.speed, &testCfg.Distributor); got != tt.want {
			t.Errorf("MaxCarry(%v) = %d, want %d", tt.speed, got, tt.want)
		}
	}
}

func TestMetabolizeRounds(t *testing.T) {
	c := components.Cell{Age: 0.1, AgingSpeed: 0.00333, CurrentEnergy: 0.5, ConsumptionRate: 0.012345}
	Metabolize(&c, 4)
	if c.Age != 0.1033 {
		t.Errorf("Age = %v, want 0.1033", c.Age)
	}
	if c.CurrentEnergy != 0.4877 {
		t.Errorf("CurrentEnergy = %v, want 0.4877", c.CurrentEnergy)
	}
}

func TestDeathThresholdRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	c := components.Cell{Lifespan: 0.6, Resilience: 1}
	for i := 0; i < 200; i++ {
		th := DeathThreshold(rng, &c, 0.25)
		if th < 0.6 || th > 0.6+0.25*2 {
			t.Fatalf("DeathThreshold = %v, want in [0.6, 1.1]", th)
		}
	}
}

func TestUpdatePanicBands(t *testing.T) {
	tests := []struct {
		name      string
		energy    float64
		prod      float64
		cons      float64
		panic     int
		wantBand  PanicBand
		wantPanic int
		wantProd  float64
	}{
		{"crisis", 0.05, 0.05, 0.02, 0, BandCrisis, 3, 0.1},
		{"crisis clamps panic", 0.05, 0.05, 0.04, 2, BandCrisis, 3, 0.08},
		{"shortfall by rate", 0.6, 0.03, 0.05, 0, BandShortfall, 1, 0.05},
		{"shortfall by energy", 0.3, 0.05, 0.04, 1, BandShortfall, 2, 0.06},
		{"shortfall saturated", 0.3, 0.03, 0.05, 3, BandNone, 3, 0.03},
		{"surplus", 0.95, 0.06, 0.02, 0, BandSurplus, -1, 0.05},
		{"surplus saturated", 0.95, 0.06, 0.02, -3, BandNone, -3, 0.06},
		{"steady", 0.6, 0.05, 0.03, 0, BandNone, 0, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := components.Cell{
				Capacity: 1, ProductionRate: tt.prod, ConsumptionRate: tt.cons,
				CurrentEnergy: tt.energy, Resilience: 0.5, Lifespan: 0.8,
				AgingSpeed: 0.003, ReproductionRate: 0.01, OffspringCount: 2,
				EvolutionRate: 0.5, Stress: 0.5,
			}
			p := components.Producer{PanicMode: tt.panic}

			band := UpdatePanic(&c, &p, &testCfg.Genome, &testCfg.Energy)
			if band != tt.wantBand {
				t.Errorf("band = %s, want %s", band, tt.wantBand)
			}
			if p.PanicMode != tt.wantPanic {
				t.Errorf("PanicMode = %d, want %d", p.PanicMode, tt.wantPanic)
			}
			if !approx(c.ProductionRate, tt.wantProd) {
				t.Errorf("ProductionRate = %v, want %v", c.ProductionRate, tt.wantProd)
			}
		})
	}
}

func TestUpdatePanicTradeoffs(t *testing.T) {
	c := components.Cell{
		ProductionRate: 0.03, ConsumptionRate: 0.05, CurrentEnergy: 0.6,
		Resilience: 0.5, Lifespan: 0.8, AgingSpeed: 0.003, ReproductionRate: 0.01,
		OffspringCount: 2, EvolutionRate: 0.5, Stress: 0.5,
	}
	p := components.Producer{}
	if band := UpdatePanic(&c, &p, &testCfg.Genome, &testCfg.Energy); band != BandShortfall {
		t.Fatalf("band = %s, want shortfall", band)
	}
	// adjustment = 0.02
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"resilience", c.Resilience, 0.48},
		{"lifespan", c.Lifespan, 0.78},
		{"aging", c.AgingSpeed, 0.0031},
		{"reproduction", c.ReproductionRate, 0.0099},
		{"evolution", c.EvolutionRate, 0.48},
		{"stress", c.Stress, 0.52},
		{"offspring", float64(c.OffspringCount), 1},
	}
	for _, ch := range checks {
		if !approx(ch.got, ch.want) {
			t.Errorf("%s = %v, want %v", ch.name, ch.got, ch.want)
		}
	}
}

func TestUpdatePanicKeepsBounds(t *testing.T) {
	c := components.Cell{
		ProductionRate: 0.02, ConsumptionRate: 0.9, CurrentEnergy: 0.01,
		Resilience: 0.01, Lifespan: 0.51, AgingSpeed: 0.0049, ReproductionRate: 0.0011,
		OffspringCount: 1, EvolutionRate: 0.002, Stress: 0.99,
	}
	p := components.Producer{}
	UpdatePanic(&c, &p, &testCfg.Genome, &testCfg.Energy)

	g := testCfg.Genome
	if c.ProductionRate != g.ProductionRate.Max {
		t.Errorf("ProductionRate = %v, want max %v", c.ProductionRate, g.ProductionRate.Max)
	}
	if c.Resilience != g.Resilience.Min || c.Lifespan != g.Lifespan.Min || c.EvolutionRate != g.EvolutionRate.Min {
		t.Errorf("traits not clamped at min: res=%v life=%v evo=%v", c.Resilience, c.Lifespan, c.EvolutionRate)
	}
	if c.AgingSpeed > g.AgingSpeed.Max || c.ReproductionRate < g.ReproductionRate.Min {
		t.Errorf("rates out of bounds: aging=%v repro=%v", c.AgingSpeed, c.ReproductionRate)
	}
	if c.OffspringCount != 1 || c.Stress != 1 {
		t.Errorf("offspring=%d stress=%v, want 1 and 1", c.OffspringCount, c.Stress)
	}
}
