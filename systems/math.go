package systems

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Round rounds v to the given number of decimal digits, halves to even.
func Round(v float64, precision int) float64 {
	if precision <= 0 {
		return math.RoundToEven(v)
	}
	scale := math.Pow(10, float64(precision))
	return math.RoundToEven(v*scale) / scale
}

// Clamp clamps v between minVal and maxVal.
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// ClampInt clamps v between minVal and maxVal.
func ClampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Manhattan returns the grid distance |dx| + |dy|.
func Manhattan(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Chance draws once and reports success with probability p.
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// Uniform draws from [lo, hi). Reversed bounds are swapped.
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return distuv.Uniform{Min: lo, Max: hi, Src: rng}.Rand()
}

// UniformInt draws from [lo, hi).
func UniformInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo)
}

// Sign draws -1 or +1 with equal probability.
func Sign(rng *rand.Rand) float64 {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}
