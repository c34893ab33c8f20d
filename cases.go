package flicker

// geometry holds the timing of one evaluation: pulse period tp, ON duration to and
// exposure duration te. All breakpoints of the case tables derive from it.
type geometry struct {
	tp, to, te float64
}

// subCase is one affine piece of phi(ts). upper is the inclusive upper bound on ts;
// the last sub-case of every table is bounded by ts < tp instead.
type subCase struct {
	upper func(g geometry) float64
	phi   func(g geometry, ts, A float64) float64
}

// exposureCase covers one te range. Ranges are tested in table order, so each only
// needs its inclusive upper bound on te.
type exposureCase struct {
	label string
	upper func(g geometry) float64
	sub   [4]subCase
}

func zero(geometry, float64, float64) float64 { return 0 }

// Cases for D <= 0.5: the ON pulse is the shorter interval.
var lowDutyCases = [6]exposureCase{
	{
		label: "1.1",
		upper: func(g geometry) float64 { return g.to },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * g.te },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.tp - g.te },
				phi:   zero,
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * (g.te + ts - g.tp) },
			},
		},
	},
	{
		label: "1.2",
		upper: func(g geometry) float64 { return g.tp - g.to },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.tp - g.te },
				phi:   zero,
			},
			{
				upper: func(g geometry) float64 { return g.tp + g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (ts + g.te - g.tp) },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * g.to },
			},
		},
	},
	{
		label: "1.3",
		upper: func(g geometry) float64 { return g.tp },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to + g.te - g.tp) },
			},
			{
				upper: func(g geometry) float64 { return g.tp + g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (ts + g.te - g.tp) },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * g.to },
			},
		},
	},
	{
		label: "1.4",
		upper: func(g geometry) float64 { return g.tp + g.to },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.tp + g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to + g.te - g.tp) },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return 2*g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * g.to },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * (g.to + ts - 2*g.tp + g.te) },
			},
		},
	},
	{
		label: "1.5",
		upper: func(g geometry) float64 { return 2*g.tp - g.to },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return 2*g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * g.to },
			},
			{
				upper: func(g geometry) float64 { return 2*g.tp + g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A*g.to + A*(ts-2*g.tp+g.te) },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return 2 * A * g.to },
			},
		},
	},
	{
		label: "1.6",
		upper: func(g geometry) float64 { return 2 * g.tp },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return 2*g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to + g.te - 2*g.tp) },
			},
			{
				upper: func(g geometry) float64 { return 2*g.tp - g.te + g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.te + ts - 2*g.tp + g.to) },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return 2 * A * g.to },
			},
		},
	},
}

// Cases for D > 0.5: the OFF gap is the shorter interval.
var highDutyCases = [6]exposureCase{
	{
		label: "2.1",
		upper: func(g geometry) float64 { return g.tp - g.to },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * g.te },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.tp - g.te },
				phi:   zero,
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * (ts + g.te - g.tp) },
			},
		},
	},
	{
		label: "2.2",
		upper: func(g geometry) float64 { return g.to },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * g.te },
			},
			{
				upper: func(g geometry) float64 { return g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to - g.tp + g.te) },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * (ts + g.te - g.tp) },
			},
		},
	},
	{
		label: "2.3",
		upper: func(g geometry) float64 { return g.tp },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to - g.tp + g.te) },
			},
			{
				upper: func(g geometry) float64 { return g.to + g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (ts + g.te - g.tp) },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * g.to },
			},
		},
	},
	{
		label: "2.4",
		upper: func(g geometry) float64 { return 2*g.tp - g.to },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.tp + g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to + g.te - g.tp) },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return 2*g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * g.to },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * (ts - 2*g.tp + g.te + g.to) },
			},
		},
	},
	{
		label: "2.5",
		upper: func(g geometry) float64 { return g.tp + g.to },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return g.tp + g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to + g.te - g.tp) },
			},
			{
				upper: func(g geometry) float64 { return 2*g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to + g.te - 2*g.tp) },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return A * (g.to + ts + g.te - 2*g.tp) },
			},
		},
	},
	{
		label: "2.6",
		upper: func(g geometry) float64 { return 2 * g.tp },
		sub: [4]subCase{
			{
				upper: func(g geometry) float64 { return 2*g.tp - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to - ts) },
			},
			{
				upper: func(g geometry) float64 { return g.to },
				phi:   func(g geometry, ts, A float64) float64 { return A * (2*g.to + g.te - 2*g.tp) },
			},
			{
				upper: func(g geometry) float64 { return 2*g.tp + g.to - g.te },
				phi:   func(g geometry, ts, A float64) float64 { return A * (g.to + ts + g.te - 2*g.tp) },
			},
			{
				phi: func(g geometry, ts, A float64) float64 { return 2 * A * g.to },
			},
		},
	},
}

// casesFor returns the table for duty cycle D. D must already be validated.
func casesFor(D float64) *[6]exposureCase {
	if D <= 0.5 {
		return &lowDutyCases
	}
	return &highDutyCases
}

// findExposureCase returns the case whose te range holds g.te, or nil when te is
// beyond 2*tp and needs the periodic reduction first.
func findExposureCase(table *[6]exposureCase, g geometry) *exposureCase {
	for i := range table {
		if g.te <= table[i].upper(g) {
			return &table[i]
		}
	}
	return nil
}

// findSubCase returns the index of the sub-case holding ts, or -1 if ts lies outside
// [0, tp). Each interval's lower bound is the previous one's upper bound, so walking
// the breakpoints in order is equivalent to testing every half-open interval.
func (c *exposureCase) findSubCase(g geometry, ts float64) int {
	if !(ts >= 0) {
		return -1
	}
	for i := 0; i < len(c.sub)-1; i++ {
		if ts <= c.sub[i].upper(g) {
			return i
		}
	}
	if ts < g.tp {
		return len(c.sub) - 1
	}
	return -1
}
