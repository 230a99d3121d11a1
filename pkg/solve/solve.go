// Package solve computes per-epoch receiver position and clock bias from
// synchronized satellite ranges via iterative Gauss-Newton least squares
// (spec §4.7).
package solve

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/adedolapo/gnssl1/pkg/orbit"
	"github.com/adedolapo/gnssl1/pkg/series"
)

const (
	// SpeedOfLight is c in m/s, used to convert the clock-bias term
	// between seconds and meters.
	SpeedOfLight = 299792458.0

	iterations             = 10
	singularPivotThreshold = 1e-18
	minSatellitesPerEpoch  = 4
	// MaxUniqueEpochs bounds the epoch list the solver iterates over
	// (spec §4.7).
	MaxUniqueEpochs = 100000
)

// PRNTrack pairs one PRN's aligned samples (C4) with its propagated
// states (C5), index-for-index, as the solver's epoch gather needs both.
type PRNTrack struct {
	PRN     int
	Samples []series.Sample
	States  []orbit.State
}

// satObservation is one satellite's contribution to a single epoch's
// gather.
type satObservation struct {
	ECEF        orbit.Vector3
	Pseudorange float64
}

// Result is one epoch's receiver position solution.
type Result struct {
	ID              string // uuid, unique per solved epoch
	TObs            float64
	ECEF            orbit.Vector3
	ClockBiasMeters float64
	SatelliteCount  int
}

// CollectEpochs builds the sorted unique epoch list and, for each epoch,
// the satellites visible with both a valid propagated ECEF position and an
// available pseudorange (spec §4.7 "Epoch collection" / "Per-epoch
// gather"). Pseudorange <= 0 covers both "no observation" (the 0
// sentinel) and "decoded but incomplete" (the -1.0 sentinel the MSM4 and
// legacy decoders mark a cell with when DF397/DF398/DF400, or
// DF011/DF014, are missing) — neither is a real range. Epochs beyond
// MaxUniqueEpochs are dropped, first-encountered wins (spec's
// "earliest-wins truncation").
func CollectEpochs(tracks []PRNTrack) ([]float64, map[float64][]satObservation) {
	seen := make(map[float64]bool)
	epochs := make([]float64, 0)
	gather := make(map[float64][]satObservation)

	for _, track := range tracks {
		for k, sample := range track.Samples {
			if sample.TObs == 0 || sample.Pseudorange <= 0 {
				continue
			}
			if k >= len(track.States) || !track.States[k].Valid {
				continue
			}
			if !seen[sample.TObs] {
				if len(epochs) >= MaxUniqueEpochs {
					continue
				}
				seen[sample.TObs] = true
				epochs = append(epochs, sample.TObs)
			}
			gather[sample.TObs] = append(gather[sample.TObs], satObservation{
				ECEF:        track.States[k].ECEF,
				Pseudorange: sample.Pseudorange,
			})
		}
	}

	sort.Float64s(epochs)
	return epochs, gather
}

// Solve runs CollectEpochs over tracks, then solves each sufficiently
// observed epoch independently (spec §4.7). Epochs with fewer than four
// visible satellites, or whose normal equations go singular mid-iteration,
// are skipped — never a fatal pipeline error (spec §7 Failure semantics).
func Solve(tracks []PRNTrack) []Result {
	epochs, gather := CollectEpochs(tracks)

	results := make([]Result, 0, len(epochs))
	for _, t := range epochs {
		obs := gather[t]
		if len(obs) < minSatellitesPerEpoch {
			continue
		}
		pos, clockBias, ok := solveEpoch(obs)
		if !ok {
			continue
		}
		results = append(results, Result{
			ID:              uuid.New().String(),
			TObs:            t,
			ECEF:            pos,
			ClockBiasMeters: clockBias,
			SatelliteCount:  len(obs),
		})
	}
	return results
}

// solveEpoch iterates the Gauss-Newton update a fixed ITERATIONS times
// from the initial guess (0,0,0,0) (spec §4.7). There is no convergence
// test beyond the iteration cap — a deliberate simplification, not a bug.
func solveEpoch(obs []satObservation) (orbit.Vector3, float64, bool) {
	var pos orbit.Vector3
	var clockBias float64
	m := len(obs)

	for iter := 0; iter < iterations; iter++ {
		g := make([][4]float64, m)
		y := make([]float64, m)

		for i, o := range obs {
			dx := o.ECEF.X - pos.X
			dy := o.ECEF.Y - pos.Y
			dz := o.ECEF.Z - pos.Z
			r := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if r == 0 || math.IsNaN(r) || math.IsInf(r, 0) {
				return orbit.Vector3{}, 0, false
			}
			y[i] = o.Pseudorange - r - clockBias
			g[i] = [4]float64{-dx / r, -dy / r, -dz / r, 1}
		}

		var gtg [4][4]float64
		var gty [4]float64
		for i := 0; i < m; i++ {
			for a := 0; a < 4; a++ {
				gty[a] += g[i][a] * y[i]
				for b := 0; b < 4; b++ {
					gtg[a][b] += g[i][a] * g[i][b]
				}
			}
		}

		delta, ok := solve4x4(gtg, gty)
		if !ok {
			return orbit.Vector3{}, 0, false
		}

		pos.X += delta[0]
		pos.Y += delta[1]
		pos.Z += delta[2]
		clockBias += delta[3]
	}

	return pos, clockBias, true
}

// solve4x4 solves a·x = b for a 4x4 system via Gauss-Jordan elimination
// with partial pivoting (spec §4.7 step 3). A pivot with absolute value at
// or below singularPivotThreshold aborts the solve.
func solve4x4(a [4][4]float64, b [4]float64) ([4]float64, bool) {
	var aug [4][5]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			aug[i][j] = a[i][j]
		}
		aug[i][4] = b[i]
	}

	for col := 0; col < 4; col++ {
		pivotRow := col
		maxAbs := math.Abs(aug[col][col])
		for r := col + 1; r < 4; r++ {
			if math.Abs(aug[r][col]) > maxAbs {
				maxAbs = math.Abs(aug[r][col])
				pivotRow = r
			}
		}
		if maxAbs <= singularPivotThreshold {
			return [4]float64{}, false
		}
		aug[col], aug[pivotRow] = aug[pivotRow], aug[col]

		pivot := aug[col][col]
		for j := col; j < 5; j++ {
			aug[col][j] /= pivot
		}
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			for j := col; j < 5; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}

	var x [4]float64
	for i := 0; i < 4; i++ {
		x[i] = aug[i][4]
	}
	return x, true
}
