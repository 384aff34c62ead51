package systems

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/meadow/config"
)

// Levels are the integer environment readings of one cell.
type Levels struct {
	Elevation     int // 0-4
	Temperature   int // 0-4
	Humidity      int // 0-4
	Radioactivity int // 0-9
	Productivity  int // 0-9
}

// Terrain holds the five static environment layers, one value per grid cell.
// Elevation, humidity, radioactivity and productivity are in [0,1];
// temperature is in [-1,1] and is the only layer that changes.
type Terrain struct {
	size          int
	Elevation     *mat.Dense
	Temperature   *mat.Dense
	Humidity      *mat.Dense
	Radioactivity *mat.Dense
	Productivity  *mat.Dense
}

// NewTerrain wraps existing layers. All layers must be size x size.
func NewTerrain(elevation, temperature, humidity, radioactivity, productivity *mat.Dense) *Terrain {
	r, _ := elevation.Dims()
	return &Terrain{
		size:          r,
		Elevation:     elevation,
		Temperature:   temperature,
		Humidity:      humidity,
		Radioactivity: radioactivity,
		Productivity:  productivity,
	}
}

// UniformTerrain creates layers with the same value in every cell.
func UniformTerrain(size int, elevation, temperature, humidity, radioactivity, productivity float64) *Terrain {
	fill := func(v float64) *mat.Dense {
		data := make([]float64, size*size)
		for i := range data {
			data[i] = v
		}
		return mat.NewDense(size, size, data)
	}
	return NewTerrain(fill(elevation), fill(temperature), fill(humidity), fill(radioactivity), fill(productivity))
}

// Size returns the number of cells per side.
func (t *Terrain) Size() int { return t.size }

// bucket maps v in [lo,hi] onto n integer levels.
func bucket(v, lo, hi float64, n int) int {
	level := int(math.Floor((v - lo) / (hi - lo) * float64(n)))
	return ClampInt(level, 0, n-1)
}

// TemperatureLevel returns the current temperature level at (gx, gy).
func (t *Terrain) TemperatureLevel(gx, gy int) int {
	return bucket(t.Temperature.At(gy, gx), -1, 1, 5)
}

// LevelsAt returns the environment levels at (gx, gy).
func (t *Terrain) LevelsAt(gx, gy int) Levels {
	return Levels{
		Elevation:     bucket(t.Elevation.At(gy, gx), 0, 1, 5),
		Temperature:   t.TemperatureLevel(gx, gy),
		Humidity:      bucket(t.Humidity.At(gy, gx), 0, 1, 5),
		Radioactivity: bucket(t.Radioactivity.At(gy, gx), 0, 1, 10),
		Productivity:  bucket(t.Productivity.At(gy, gx), 0, 1, 10),
	}
}

// ApplySeason shifts every cell's temperature by the seasonal swing for
// dayOfYear, scaled by elevation, plus optional uniform noise, and clips
// the layer to [-1,1].
func (t *Terrain) ApplySeason(rng *rand.Rand, dayOfYear int, cfg *config.CalendarConfig) {
	radian := (2 * math.Pi / cfg.SeasonDays) * (float64(dayOfYear) - cfg.SeasonPhase)
	swing := math.Sin(radian) / cfg.ElevationDivisor

	var shift mat.Dense
	shift.Scale(swing, t.Elevation)
	t.Temperature.Add(t.Temperature, &shift)

	t.Temperature.Apply(func(_, _ int, v float64) float64 {
		if cfg.Randomness > 0 {
			v += Uniform(rng, -cfg.Randomness, cfg.Randomness)
		}
		return Clamp(v, -1, 1)
	}, t.Temperature)
}
