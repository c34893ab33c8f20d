// Package metrics summarises the flicker visible in a per-frame flux series.
package metrics

import (
	"errors"

	"github.com/montanaflynn/stats"
)

var ErrEmptySeries = errors.New("flux series is empty")

// Summary describes the frame-to-frame variation of integrated flux.
type Summary struct {
	Frames         int     // number of frames summarised
	Mean           float64 // mean flux per frame
	StdDev         float64 // population standard deviation of the flux
	Min            float64
	Max            float64
	PercentFlicker float64 // 100*(max-min)/(max+min), 0 when max+min is 0
	CoV            float64 // coefficient of variation StdDev/Mean, 0 when the mean is 0
}

// Summarize computes flicker statistics of phi. skipFirst drops frame 0, which the
// frame simulator leaves at zero flux without evaluating it.
func Summarize(phi []float64, skipFirst bool) (Summary, error) {
	if skipFirst && len(phi) > 0 {
		phi = phi[1:]
	}
	if len(phi) == 0 {
		return Summary{}, ErrEmptySeries
	}

	data := stats.Float64Data(phi)
	var s Summary
	var err error
	s.Frames = data.Len()
	if s.Mean, err = data.Mean(); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = data.StandardDeviation(); err != nil {
		return Summary{}, err
	}
	if s.Min, err = data.Min(); err != nil {
		return Summary{}, err
	}
	if s.Max, err = data.Max(); err != nil {
		return Summary{}, err
	}

	if sum := s.Max + s.Min; sum != 0 {
		s.PercentFlicker = 100 * (s.Max - s.Min) / sum
	}
	if s.Mean != 0 {
		s.CoV = s.StdDev / s.Mean
	}
	return s, nil
}
