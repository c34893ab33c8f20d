package flicker

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/synaptecltd/flicker/mathfuncs"
)

var (
	ErrFrequency = errors.New("source frequency must be positive and finite")
	ErrFrameRate = errors.New("frame rate must be positive and finite")
	ErrDuration  = errors.New("duration must be non-negative and finite")
	ErrNoFrames  = errors.New("frame rate and duration yield no frames")
)

// FrameParams describes a video capture of a PWM source. Exposure and Start are in
// milliseconds, Duration in seconds.
type FrameParams struct {
	DutyCycle       float64        // fraction of each period the source is ON, in (0, 1]
	SourceFrequency float64        // PWM frequency in Hz
	Exposure        float64        // exposure duration te in ms
	Start           float64        // start phase of the first evaluated frame in ms
	FrameRate       float64        // frames per second
	Duration        float64        // length of the capture in seconds
	Amplitude       float64        // flux while ON
	Offset          float64        // flux floor while OFF
	RandomStart     bool           // draw the initial phase uniformly on [0, tp)
	Wraparound      WraparoundMode // handling of exposures longer than 2*tp
}

// FrameSeries is the output of SimulateFrames. All slices have one entry per frame.
type FrameSeries struct {
	Time  []float64 // frame timestamps in seconds, evenly spaced over [0, Duration]
	Phi   []float64 // integrated flux per frame
	Phase []float64 // exposure start phase used for each frame in ms
}

// Len returns the number of frames.
func (s FrameSeries) Len() int {
	return len(s.Time)
}

// SimulateFrames integrates one exposure per frame, advancing the start phase by the
// frame period (modulo the pulse period) between frames.
//
// Frame 0 is never evaluated and keeps zero flux. Frame 1 uses the initial phase and
// every later frame uses the phase of its predecessor advanced by one frame period.
// With RandomStart the initial phase is drawn once; the sequence stays deterministic.
func SimulateFrames(p FrameParams, r *rand.Rand) (FrameSeries, error) {
	if !(p.SourceFrequency > 0) || math.IsInf(p.SourceFrequency, 1) {
		return FrameSeries{}, fmt.Errorf("%w: f=%v", ErrFrequency, p.SourceFrequency)
	}
	if !(p.FrameRate > 0) || math.IsInf(p.FrameRate, 1) {
		return FrameSeries{}, fmt.Errorf("%w: frame rate=%v", ErrFrameRate, p.FrameRate)
	}
	if !(p.Duration >= 0) || math.IsInf(p.Duration, 1) {
		return FrameSeries{}, fmt.Errorf("%w: duration=%v", ErrDuration, p.Duration)
	}

	tp := 1000 / p.SourceFrequency
	tf := (1 / p.FrameRate) * 1000 // ms, same unit as tp

	n := int(math.Round(p.FrameRate * p.Duration))
	if n < 1 {
		return FrameSeries{}, fmt.Errorf("%w: frame rate=%v, duration=%v", ErrNoFrames, p.FrameRate, p.Duration)
	}

	params := Params{
		DutyCycle:  p.DutyCycle,
		Period:     tp,
		Exposure:   p.Exposure,
		Amplitude:  p.Amplitude,
		Offset:     p.Offset,
		Wraparound: p.Wraparound,
	}
	if err := params.validate(); err != nil {
		return FrameSeries{}, err
	}

	ts := p.Start
	if p.RandomStart {
		uniform, err := mathfuncs.GetPhaseFunctionFromName("uniform")
		if err != nil {
			return FrameSeries{}, err
		}
		ts = uniform(r, ts, tp)
	}

	series := FrameSeries{
		Time:  mathfuncs.Linspace(0, p.Duration, n),
		Phi:   make([]float64, n),
		Phase: make([]float64, n),
	}
	for i := 1; i < n; i++ {
		phi, err := integrate(params, ts)
		if err != nil {
			return FrameSeries{}, fmt.Errorf("frame %d: %w", i, err)
		}
		series.Phi[i] = phi
		series.Phase[i] = ts

		ts = mathfuncs.Wrap(ts+tf, tp)
	}

	return series, nil
}

// SweepPhase evaluates p at n start phases evenly spaced over [0, Period) and returns
// the phases and the corresponding flux. p.Start and p.RandomStart are ignored.
func SweepPhase(p Params, n int) ([]float64, []float64, error) {
	if n < 1 {
		return nil, nil, errors.New("sweep needs at least one sample")
	}
	if err := p.validate(); err != nil {
		return nil, nil, err
	}

	phases := make([]float64, n)
	phi := make([]float64, n)
	for i := range phases {
		ts := float64(i) * p.Period / float64(n)
		v, err := integrate(p, ts)
		if err != nil {
			return nil, nil, err
		}
		phases[i] = ts
		phi[i] = v
	}
	return phases, phi, nil
}
