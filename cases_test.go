package flicker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// midExposures returns one te strictly inside each of the six ranges for tp=10.
func midExposures(D float64) [6]float64 {
	to := D * 10
	short, long := to, 10-to
	if short > long {
		short, long = long, short
	}
	bounds := [7]float64{0, short, long, 10, 10 + short, 10 + long, 20}
	var mids [6]float64
	for i := range mids {
		mids[i] = (bounds[i] + bounds[i+1]) / 2
	}
	return mids
}

func TestExposureRangesTile(t *testing.T) {
	for _, D := range []float64{0.05, 0.3, 0.5, 0.7, 0.95, 1} {
		g := geometry{tp: 10, to: D * 10}
		table := casesFor(D)

		prev := 0.0
		for i := range table {
			upper := table[i].upper(g)
			assert.GreaterOrEqual(t, upper, prev, "D=%v case %s", D, table[i].label)
			prev = upper
		}
		assert.Equal(t, 20.0, prev, "D=%v", D)
	}
}

func TestCaseTablesPerCase(t *testing.T) {
	for _, D := range []float64{0.3, 0.7} {
		table := casesFor(D)
		for i, te := range midExposures(D) {
			c := &table[i]
			g := geometry{tp: 10, to: D * 10, te: te}

			t.Run(c.label, func(t *testing.T) {
				require.Same(t, c, findExposureCase(table, g))

				// breakpoints strictly inside (0, tp) and increasing
				breaks := []float64{0}
				for j := 0; j < len(c.sub)-1; j++ {
					breaks = append(breaks, c.sub[j].upper(g))
				}
				breaks = append(breaks, g.tp)
				for j := 1; j < len(breaks); j++ {
					assert.Greater(t, breaks[j], breaks[j-1], "breakpoint %d", j)
				}

				// adjacent formulas meet at their shared breakpoint
				for j := 0; j < len(c.sub)-1; j++ {
					b := breaks[j+1]
					assert.InDelta(t, c.sub[j].phi(g, b, 1), c.sub[j+1].phi(g, b, 1), 1e-12, "breakpoint %d", j+1)
				}
				// and phi(tp) wraps to phi(0)
				assert.InDelta(t, c.sub[0].phi(g, 0, 1), c.sub[3].phi(g, g.tp, 1), 1e-12)

				// each breakpoint belongs to the sub-case below it, ts just above goes to the next
				for j := 1; j < len(breaks)-1; j++ {
					assert.Equal(t, j-1, c.findSubCase(g, breaks[j]))
					assert.Equal(t, j, c.findSubCase(g, breaks[j]+1e-9))
				}
				assert.Equal(t, 0, c.findSubCase(g, 0))
				assert.Equal(t, -1, c.findSubCase(g, g.tp))
				assert.Equal(t, -1, c.findSubCase(g, -1e-12))
			})
		}
	}
}

func TestFindExposureCaseBeyondTwoPeriods(t *testing.T) {
	for _, D := range []float64{0.3, 0.7} {
		g := geometry{tp: 10, to: D * 10, te: 20.000001}
		assert.Nil(t, findExposureCase(casesFor(D), g), fmt.Sprintf("D=%v", D))
	}
}
