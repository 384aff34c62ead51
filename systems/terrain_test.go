package systems

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/meadow/config"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		v      float64
		lo, hi float64
		n      int
		want   int
	}{
		{0, 0, 1, 5, 0},
		{0.19, 0, 1, 5, 0},
		{0.2, 0, 1, 5, 1},
		{0.99, 0, 1, 5, 4},
		{1, 0, 1, 5, 4},
		{-1, -1, 1, 5, 0},
		{0, -1, 1, 5, 2},
		{1, -1, 1, 5, 4},
		{0.55, 0, 1, 10, 5},
		{2, 0, 1, 10, 9},
	}
	for _, tt := range tests {
		if got := bucket(tt.v, tt.lo, tt.hi, tt.n); got != tt.want {
			t.Errorf("bucket(%v, %v, %v, %d) = %d, want %d", tt.v, tt.lo, tt.hi, tt.n, got, tt.want)
		}
	}
}

func TestLevelsAt(t *testing.T) {
	tr := UniformTerrain(4, 0.1, 0, 0.5, 0.35, 1)
	got := tr.LevelsAt(2, 3)
	want := Levels{Elevation: 0, Temperature: 2, Humidity: 2, Radioactivity: 3, Productivity: 9}
	if got != want {
		t.Errorf("LevelsAt = %+v, want %+v", got, want)
	}
}

func TestApplySeasonClips(t *testing.T) {
	tr := UniformTerrain(3, 1, 0.99, 0.5, 0, 0.5)
	cal := config.CalendarConfig{SeasonDays: 4, SeasonPhase: 0, ElevationDivisor: 1}

	// sin(pi/2) = 1 swing pushes 0.99 past the ceiling
	tr.ApplySeason(rand.New(rand.NewPCG(1, 1)), 1, &cal)
	if v := tr.Temperature.At(1, 1); v != 1 {
		t.Errorf("temperature = %v, want 1", v)
	}

	// Flat land does not move
	flat := UniformTerrain(3, 0, 0.3, 0.5, 0, 0.5)
	flat.ApplySeason(rand.New(rand.NewPCG(1, 1)), 1, &cal)
	if v := flat.Temperature.At(0, 0); v != 0.3 {
		t.Errorf("flat temperature = %v, want 0.3", v)
	}
}

func TestBoxBlur(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		0, 9, 0,
		0, 0, 0,
	})
	out := BoxBlur(m, 1)
	if v := out.At(1, 1); v != 1 {
		t.Errorf("centre = %v, want 1", v)
	}
	// Corner window holds 4 cells
	if v := out.At(0, 0); v != 9.0/4 {
		t.Errorf("corner = %v, want 2.25", v)
	}
	if BoxBlur(m, 0) != m {
		t.Error("radius 0 should return the input")
	}
}

func TestTerrainGeneratorRanges(t *testing.T) {
	cfg := testCfg.Terrain
	gen := NewTerrainGenerator(&cfg, 32)
	tr := gen.Generate()
	if tr.Size() != 32 {
		t.Fatalf("Size = %d, want 32", tr.Size())
	}

	check := func(name string, m *mat.Dense, lo, hi float64) {
		t.Helper()
		r, c := m.Dims()
		for y := 0; y < r; y++ {
			for x := 0; x < c; x++ {
				if v := m.At(y, x); v < lo || v > hi {
					t.Fatalf("%s(%d,%d) = %v, want [%v, %v]", name, x, y, v, lo, hi)
				}
			}
		}
	}
	check("elevation", tr.Elevation, 0, 1)
	check("temperature", tr.Temperature, -1, 1)
	check("humidity", tr.Humidity, 0, 1)
	check("radioactivity", tr.Radioactivity, 0, 1)
	check("productivity", tr.Productivity, 0, 1)

	// Same seed, same terrain
	again := NewTerrainGenerator(&cfg, 32).Generate()
	if !mat.Equal(tr.Elevation, again.Elevation) {
		t.Error("generator not deterministic for a fixed seed")
	}
}
