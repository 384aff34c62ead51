package systems

import (
	"math"
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/meadow/config"
)

// TerrainGenerator builds the five environment layers from fractal noise.
type TerrainGenerator struct {
	cfg  *config.TerrainConfig
	size int

	elevNoise opensimplex.Noise
	tempNoise opensimplex.Noise
	humNoise  opensimplex.Noise
	prodNoise opensimplex.Noise
	rng       *rand.Rand
}

// NewTerrainGenerator creates a generator for a size x size grid.
func NewTerrainGenerator(cfg *config.TerrainConfig, size int) *TerrainGenerator {
	return &TerrainGenerator{
		cfg:       cfg,
		size:      size,
		elevNoise: opensimplex.New(cfg.Seed),
		tempNoise: opensimplex.New(cfg.Seed + 1),
		humNoise:  opensimplex.New(cfg.Seed + 2),
		prodNoise: opensimplex.New(cfg.Seed + 3),
		rng:       rand.New(rand.NewPCG(uint64(cfg.Seed), 0x7e4a1)),
	}
}

// fbm sums octaves of noise with halving amplitude and doubling frequency,
// normalized to [-1,1].
func (tg *TerrainGenerator) fbm(n opensimplex.Noise, x, y float64) float64 {
	total, amp, freq, norm := 0.0, 1.0, tg.cfg.Scale, 0.0
	for o := 0; o < tg.cfg.Octaves; o++ {
		total += amp * n.Eval2(x*freq, y*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

// Generate produces a new Terrain.
func (tg *TerrainGenerator) Generate() *Terrain {
	n := tg.size
	elev := mat.NewDense(n, n, nil)
	temp := mat.NewDense(n, n, nil)
	hum := mat.NewDense(n, n, nil)
	prod := mat.NewDense(n, n, nil)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			fx, fy := float64(x), float64(y)
			elev.Set(y, x, Clamp((tg.fbm(tg.elevNoise, fx, fy)+1)/2, 0, 1))
		}
	}
	elev = BoxBlur(elev, tg.cfg.Smoothing)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			fx, fy := float64(x), float64(y)
			e := elev.At(y, x)

			t := (1-2*e)*0.7 + tg.fbm(tg.tempNoise, fx, fy)*0.3
			if e <= 0.2 {
				t += e * 0.2 // lakes stay milder
			}
			temp.Set(y, x, Clamp(t, -1, 1))

			h := (1-e)*0.9 + tg.fbm(tg.humNoise, fx, fy)*0.1
			hum.Set(y, x, Clamp(h, 0, 1))
		}
	}
	temp = BoxBlur(temp, tg.cfg.Smoothing)
	hum = BoxBlur(hum, tg.cfg.Smoothing)

	rad := tg.radioactivity()

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			p := (tg.fbm(tg.prodNoise, float64(x), float64(y)) + 1) / 2 * hum.At(y, x)
			r := rad.At(y, x)
			switch {
			case r > 0.7:
				p = 1
			case r > 0.3:
				p *= r * 2
			}
			prod.Set(y, x, Clamp(p, 0, 1))
		}
	}
	prod = BoxBlur(prod, tg.cfg.Smoothing)

	return NewTerrain(elev, temp, hum, rad, prod)
}

// radioactivity places a few sources with a smooth falloff around each.
func (tg *TerrainGenerator) radioactivity() *mat.Dense {
	n := tg.size
	rad := mat.NewDense(n, n, nil)
	radius := tg.cfg.ZoneRadius
	for z := 0; z < tg.cfg.RadiationZones; z++ {
		sx, sy := tg.rng.IntN(n), tg.rng.IntN(n)
		strength := Uniform(tg.rng, 0.5, 1)
		r := int(math.Ceil(radius))
		for y := max(0, sy-r); y <= min(n-1, sy+r); y++ {
			for x := max(0, sx-r); x <= min(n-1, sx+r); x++ {
				d := math.Hypot(float64(x-sx), float64(y-sy))
				if d > radius {
					continue
				}
				v := strength * (1 - d/radius)
				if v > rad.At(y, x) {
					rad.Set(y, x, v)
				}
			}
		}
	}
	return rad
}

// BoxBlur averages each cell over a (2r+1)^2 window clipped to the layer,
// dividing by the number of in-bounds cells so edges keep their scale.
func BoxBlur(m *mat.Dense, r int) *mat.Dense {
	if r <= 0 {
		return m
	}
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sum, count := 0.0, 0
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					yy, xx := y+dy, x+dx
					if yy < 0 || xx < 0 || yy >= rows || xx >= cols {
						continue
					}
					sum += m.At(yy, xx)
					count++
				}
			}
			out.Set(y, x, sum/float64(count))
		}
	}
	return out
}
