package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptecltd/flicker"
	"github.com/synaptecltd/flicker/metrics"
)

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name      string
		phi       []float64
		skipFirst bool
		expected  metrics.Summary
	}{
		{
			name:     "constant",
			phi:      []float64{2, 2, 2, 2},
			expected: metrics.Summary{Frames: 4, Mean: 2, Min: 2, Max: 2},
		},
		{
			name:      "skip placeholder frame",
			phi:       []float64{0, 1, 3, 1, 3},
			skipFirst: true,
			expected:  metrics.Summary{Frames: 4, Mean: 2, StdDev: 1, Min: 1, Max: 3, PercentFlicker: 50, CoV: 0.5},
		},
		{
			name:     "all dark",
			phi:      []float64{0, 0, 0},
			expected: metrics.Summary{Frames: 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := metrics.Summarize(tc.phi, tc.skipFirst)
			require.NoError(t, err)
			assert.Equal(t, tc.expected.Frames, s.Frames)
			assert.InDelta(t, tc.expected.Mean, s.Mean, 1e-12)
			assert.InDelta(t, tc.expected.StdDev, s.StdDev, 1e-12)
			assert.InDelta(t, tc.expected.Min, s.Min, 1e-12)
			assert.InDelta(t, tc.expected.Max, s.Max, 1e-12)
			assert.InDelta(t, tc.expected.PercentFlicker, s.PercentFlicker, 1e-12)
			assert.InDelta(t, tc.expected.CoV, s.CoV, 1e-12)
		})
	}
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := metrics.Summarize(nil, false)
	assert.ErrorIs(t, err, metrics.ErrEmptySeries)

	_, err = metrics.Summarize([]float64{0}, true)
	assert.ErrorIs(t, err, metrics.ErrEmptySeries)
}

func TestSummarizeFrameSeries(t *testing.T) {
	// exposure equal to the pulse period integrates exactly one ON interval per frame
	series, err := flicker.SimulateFrames(flicker.FrameParams{
		DutyCycle:       0.4,
		SourceFrequency: 100,
		Exposure:        10,
		FrameRate:       30,
		Duration:        1,
		Amplitude:       1,
	}, nil)
	require.NoError(t, err)

	s, err := metrics.Summarize(series.Phi, true)
	require.NoError(t, err)
	assert.Equal(t, 29, s.Frames)
	assert.InDelta(t, 4.0, s.Mean, 1e-9)
	assert.InDelta(t, 0.0, s.PercentFlicker, 1e-7)
}
