package mathfuncs

import (
	"errors"
	"math"
	"math/rand/v2"
)

// A function returning the exposure start phase in [0, period) given the requested
// start ts and the pulse period. r supplies randomness for non-deterministic phases.
type PhaseFunction func(r *rand.Rand, ts, period float64) float64

// A map between string name and PhaseFunction pairs
var phaseFunctions = map[string]PhaseFunction{
	"fixed":   fixedPhase,
	"uniform": uniformPhase,
}

func GetPhaseFunctionNames() []string {
	names := make([]string, 0, len(phaseFunctions))
	for name := range phaseFunctions {
		names = append(names, name)
	}
	return names
}

// Returns the named phase function. Defaults to fixed if name is empty.
func GetPhaseFunctionFromName(name string) (PhaseFunction, error) {
	if name == "" {
		name = "fixed"
	}
	phaseFunc, ok := phaseFunctions[name]
	if !ok {
		return nil, errors.New("phase function not found")
	}

	return phaseFunc, nil
}

// Returns ts wrapped into [0, period).
func fixedPhase(_ *rand.Rand, ts, period float64) float64 {
	return Wrap(ts, period)
}

// Returns a start phase drawn uniformly on [0, period), ignoring ts.
func uniformPhase(r *rand.Rand, _, period float64) float64 {
	if r == nil {
		return rand.Float64() * period
	}
	return r.Float64() * period
}

// Wrap returns x modulo period, shifted into [0, period) for negative x.
func Wrap(x, period float64) float64 {
	w := math.Mod(x, period)
	if w < 0 {
		w += period
		if w == period { // tiny negative remainders round up to period
			w = 0
		}
	}
	return w
}

// Linspace returns n evenly spaced samples over [start, stop], both end points included.
// n=1 returns start alone and n<=0 returns an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop // avoid drift at the final sample
	return out
}
