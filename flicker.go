// Package flicker computes, in closed form, the flux a sensor integrates from a
// PWM-driven light source over an exposure window.
//
// The pulse train has period tp and one ON interval of length to = D*tp starting at
// phase 0 of every period. An exposure of length te starting at phase ts collects
//
//	phi = A * |[ts, ts+te) ∩ ON| + offset * te
//
// which is evaluated with one of twelve case tables (six per duty-cycle regime), each
// selecting among four affine formulas in ts. Exposures longer than 2*tp are reduced
// to a residual shorter than 2*tp plus whole double-period contributions.
//
// All times share one unit; SimulateFrames works in milliseconds.
package flicker

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/synaptecltd/flicker/mathfuncs"
)

var (
	ErrDutyCycle    = errors.New("duty cycle must lie in (0, 1]")
	ErrPeriod       = errors.New("period must be positive and finite")
	ErrExposure     = errors.New("exposure must be non-negative and finite")
	ErrCaseCoverage = errors.New("start phase matches no case interval")
)

// WraparoundMode selects how exposures longer than 2*tp count whole double periods.
type WraparoundMode int

const (
	// WraparoundCycles counts n = (te - te mod 2tp) / 2tp whole double periods in both
	// duty regimes.
	WraparoundCycles WraparoundMode = iota
	// WraparoundReference reproduces the legacy D > 0.5 path, which uses the undivided
	// excess n = te - te mod 2tp. Only useful to regenerate previously published data.
	WraparoundReference
)

func (m WraparoundMode) String() string {
	switch m {
	case WraparoundCycles:
		return "cycles"
	case WraparoundReference:
		return "reference"
	default:
		return fmt.Sprintf("WraparoundMode(%d)", int(m))
	}
}

// Params describes one exposure of a PWM source.
type Params struct {
	DutyCycle   float64        // fraction of each period the source is ON, in (0, 1]
	Period      float64        // pulse period tp
	Exposure    float64        // exposure duration te, may exceed 2*Period
	Start       float64        // exposure start phase ts in [0, Period)
	Amplitude   float64        // flux while ON
	Offset      float64        // flux floor while OFF
	RandomStart bool           // replace Start with a draw uniform on [0, Period)
	Wraparound  WraparoundMode // handling of exposures longer than 2*Period
}

// Phi returns the flux integrated over [ts, ts+te) from a source with duty cycle D,
// period tp, ON amplitude A and OFF floor offset.
func Phi(D, tp, te, ts, A, offset float64) (float64, error) {
	return Integrate(Params{
		DutyCycle: D,
		Period:    tp,
		Exposure:  te,
		Start:     ts,
		Amplitude: A,
		Offset:    offset,
	}, nil)
}

// Integrate returns the flux integrated over the exposure described by p. r is only
// used when p.RandomStart is set; a nil r uses the package-level generator.
func Integrate(p Params, r *rand.Rand) (float64, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}

	ts := p.Start
	if p.RandomStart {
		uniform, err := mathfuncs.GetPhaseFunctionFromName("uniform")
		if err != nil {
			return 0, err
		}
		ts = uniform(r, ts, p.Period)
	}

	return integrate(p, ts)
}

// Case returns the label ("1.1" to "2.6") and 1-based sub-case of the formula used
// for p. For exposures longer than 2*Period it reports the residual's case.
func Case(p Params) (string, int, error) {
	if err := p.validate(); err != nil {
		return "", 0, err
	}

	g := p.geometry()
	if g.te > 2*g.tp {
		g.te = math.Mod(g.te, 2*g.tp)
	}
	c := findExposureCase(casesFor(p.DutyCycle), g)
	if c == nil {
		return "", 0, fmt.Errorf("%w: te=%v", ErrCaseCoverage, g.te)
	}
	i := c.findSubCase(g, p.Start)
	if i < 0 {
		return "", 0, fmt.Errorf("%w: case %s, ts=%v", ErrCaseCoverage, c.label, p.Start)
	}
	return c.label, i + 1, nil
}

func (p Params) validate() error {
	// D = 0 is rejected, D = 1 (always ON) is accepted
	if !(p.DutyCycle > 0 && p.DutyCycle <= 1) {
		return fmt.Errorf("%w: D=%v", ErrDutyCycle, p.DutyCycle)
	}
	if !(p.Period > 0) || math.IsInf(p.Period, 1) {
		return fmt.Errorf("%w: tp=%v", ErrPeriod, p.Period)
	}
	if !(p.Exposure >= 0) || math.IsInf(p.Exposure, 1) {
		return fmt.Errorf("%w: te=%v", ErrExposure, p.Exposure)
	}
	return nil
}

func (p Params) geometry() geometry {
	return geometry{tp: p.Period, to: p.DutyCycle * p.Period, te: p.Exposure}
}

// integrate evaluates validated params at start phase ts.
func integrate(p Params, ts float64) (float64, error) {
	g := p.geometry()
	table := casesFor(p.DutyCycle)

	if c := findExposureCase(table, g); c != nil {
		return evaluate(c, g, ts, p.Amplitude, p.Offset)
	}

	// te > 2*tp: split into n whole double periods plus a residual below 2*tp
	cycle := 2 * g.tp
	teEffective := math.Mod(g.te, cycle)
	// te - teEffective is an exact multiple of cycle, but the quotient can land one ulp
	// below the integer; truncating it would drop a whole double period.
	n := math.Round((g.te - teEffective) / cycle)
	if p.Wraparound == WraparoundReference && p.DutyCycle > 0.5 {
		n = g.te - teEffective
	}

	residual := g
	residual.te = teEffective
	c := findExposureCase(table, residual)
	if c == nil {
		return 0, fmt.Errorf("%w: residual te=%v", ErrCaseCoverage, teEffective)
	}
	phi, err := evaluate(c, residual, ts, p.Amplitude, p.Offset)
	if err != nil {
		return 0, err
	}

	phi = 2*p.Amplitude*g.to*n + phi
	phi += p.Offset * 2 * g.tp * n
	return phi, nil
}

// evaluate applies the sub-case formula holding ts and adds the OFF floor for te.
func evaluate(c *exposureCase, g geometry, ts, A, offset float64) (float64, error) {
	i := c.findSubCase(g, ts)
	if i < 0 {
		return 0, fmt.Errorf("%w: case %s, ts=%v, tp=%v", ErrCaseCoverage, c.label, ts, g.tp)
	}

	phi := c.sub[i].phi(g, ts, A)
	phi += offset * g.te
	return phi, nil
}
