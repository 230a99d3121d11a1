// Package series aligns each PRN's observation history with the best-fit
// ephemeris by time-of-ephemeris, producing the dense per-PRN time series
// the orbit propagator and position solver consume (spec §4.4).
package series

import (
	"github.com/adedolapo/gnssl1/pkg/gtime"
	"github.com/adedolapo/gnssl1/pkg/history"
	"github.com/adedolapo/gnssl1/pkg/rtcm"
)

// Sample is one aligned (ephemeris, observation) entry at a PRN's
// insertion index k (spec §3's "Satellite series (per PRN)").
type Sample struct {
	Pseudorange float64 // m; 0 is the sentinel for "no observation"
	TObs        float64 // s of week, normalized from whatever unit arrived
	Eph         rtcm.Ephemeris
	HasEph      bool // false when no ephemeris satisfies TOE <= TObs
}

// Series is the dense, insertion-ordered per-PRN time series.
type Series struct {
	PRN     int
	Samples []Sample
}

// Build produces prn's satellite series from store: for every observation
// index k, select the ephemeris with the largest TOE satisfying
// TOE <= t_obs[k] (spec invariant 1). When no such ephemeris exists,
// Samples[k].HasEph is false and the solver must ignore that position.
func Build(store *history.Store, prn int) Series {
	obs := store.Observations(prn)
	ephs := store.Ephemerides(prn)

	samples := make([]Sample, len(obs))
	for k, o := range obs {
		tObs := gtime.NormalizeTOW(o.TimeMs)
		eph, ok := selectEphemeris(ephs, tObs)
		samples[k] = Sample{
			Pseudorange: o.Pseudorange,
			TObs:        tObs,
			Eph:         eph,
			HasEph:      ok,
		}
	}
	return Series{PRN: prn, Samples: samples}
}

// selectEphemeris scans ephs in arrival order and keeps the first
// ephemeris reaching the maximal TOE <= tObs. Ties at the same TOE break
// in favor of the earlier-arrived entry (spec's frozen Open Question),
// which falls out naturally from requiring a strict ">" to replace the
// current best.
func selectEphemeris(ephs []rtcm.Ephemeris, tObs float64) (rtcm.Ephemeris, bool) {
	var best rtcm.Ephemeris
	found := false
	for _, e := range ephs {
		if e.Toe <= tObs && (!found || e.Toe > best.Toe) {
			best = e
			found = true
		}
	}
	return best, found
}

// EphemerisOnly returns prn's ephemeris history deduplicated by TOE,
// keeping the first arrival for each TOE, independent of observation
// timing. This drives the orbit sampler (C6); the sampler itself only
// ever consumes the first entry (spec's documented Open Question), but
// the deduplicated series is the series builder's full responsibility.
func EphemerisOnly(store *history.Store, prn int) []rtcm.Ephemeris {
	ephs := store.Ephemerides(prn)
	seen := make(map[float64]bool, len(ephs))
	out := make([]rtcm.Ephemeris, 0, len(ephs))
	for _, e := range ephs {
		if seen[e.Toe] {
			continue
		}
		seen[e.Toe] = true
		out = append(out, e)
	}
	return out
}
