package orbit

import (
	"math"

	"github.com/adedolapo/gnssl1/pkg/rtcm"
)

// trueAnomalyStep is the fixed sweep step for the orbit trace (spec §4.6).
const trueAnomalyStep = 0.01

// Trace is a full-orbit visualization dataset for one PRN, computed once
// from that PRN's first ephemeris. It is never consumed by the solver
// (spec §4.6).
type Trace struct {
	PRN    int
	Points []Vector3 // ECI, one per swept true-anomaly sample
}

// Sample sweeps true anomaly f over [0, 2π] in fixed steps to trace eph's
// orbit in ECI (spec §4.6). Degenerate ephemerides (A<=0, e outside
// [0,1)) yield an empty trace rather than propagating garbage.
func Sample(prn int, eph rtcm.Ephemeris) Trace {
	if eph.A <= 0 || eph.Ecc < 0 || eph.Ecc >= 1 {
		return Trace{PRN: prn}
	}

	points := make([]Vector3, 0, int(2*math.Pi/trueAnomalyStep)+1)
	for f := 0.0; f <= 2*math.Pi; f += trueAnomalyStep {
		r := eph.A * (1 - eph.Ecc*eph.Ecc) / (1 + eph.Ecc*math.Cos(f))
		pqw := Vector3{X: r * math.Cos(f), Y: r * math.Sin(f), Z: 0}

		eci := rotateZ(eph.Omega, pqw)
		eci = rotateX(eph.I0, eci)
		eci = rotateZ(eph.Omega0, eci)

		if !finiteVector(eci) {
			continue
		}
		points = append(points, eci)
	}
	return Trace{PRN: prn, Points: points}
}

// SampleFirst builds prn's orbit trace from the first entry of ephs, the
// sampler's frozen policy for PRNs with more than one ephemeris on file
// (spec's documented Open Question — intentionally not the best-fit
// ephemeris C4/C5 would choose).
func SampleFirst(prn int, ephs []rtcm.Ephemeris) Trace {
	if len(ephs) == 0 {
		return Trace{PRN: prn}
	}
	return Sample(prn, ephs[0])
}
