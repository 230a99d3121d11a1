package solve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adedolapo/gnssl1/pkg/orbit"
	"github.com/adedolapo/gnssl1/pkg/series"
)

// tetrahedronTracks builds four PRN tracks whose pseudoranges are exact
// (noiseless) ranges from a known receiver position plus a known clock
// bias, so the solver's recovered position can be checked against ground
// truth (spec scenario S5).
func tetrahedronTracks(truePos orbit.Vector3, trueClockBias float64) []PRNTrack {
	sats := []orbit.Vector3{
		{X: 26000000, Y: 0, Z: 0},
		{X: -26000000, Y: 0, Z: 0},
		{X: 0, Y: 26000000, Z: 0},
		{X: 0, Y: 0, Z: 26000000},
	}

	tracks := make([]PRNTrack, len(sats))
	for i, sat := range sats {
		dx := sat.X - truePos.X
		dy := sat.Y - truePos.Y
		dz := sat.Z - truePos.Z
		rng := math.Sqrt(dx*dx + dy*dy + dz*dz)
		pr := rng + trueClockBias

		tracks[i] = PRNTrack{
			PRN:     i + 1,
			Samples: []series.Sample{{TObs: 100, Pseudorange: pr}},
			States:  []orbit.State{{ECEF: sat, Valid: true}},
		}
	}
	return tracks
}

func TestSolveRecoversKnownPosition(t *testing.T) {
	truePos := orbit.Vector3{X: 1000000, Y: 2000000, Z: 3000000}
	trueClockBias := 5.0

	results := Solve(tetrahedronTracks(truePos, trueClockBias))

	if !assert.Len(t, results, 1) {
		return
	}
	got := results[0]
	assert.InDelta(t, truePos.X, got.ECEF.X, 1.0)
	assert.InDelta(t, truePos.Y, got.ECEF.Y, 1.0)
	assert.InDelta(t, truePos.Z, got.ECEF.Z, 1.0)
	assert.InDelta(t, trueClockBias, got.ClockBiasMeters, 1.0)
	assert.Equal(t, 4, got.SatelliteCount)
	assert.NotEmpty(t, got.ID)
}

func TestSolveSkipsEpochWithFewerThanFourSatellites(t *testing.T) {
	tracks := tetrahedronTracks(orbit.Vector3{}, 0)[:3]
	results := Solve(tracks)
	assert.Empty(t, results)
}

func TestSolveSkipsEpochWithInvalidPropagatedState(t *testing.T) {
	tracks := tetrahedronTracks(orbit.Vector3{}, 0)
	tracks[0].States[0].Valid = false
	results := Solve(tracks)
	assert.Empty(t, results)
}

func TestSolveSkipsEpochWithSentinelPseudorange(t *testing.T) {
	tracks := tetrahedronTracks(orbit.Vector3{}, 0)
	tracks[0].Samples[0].Pseudorange = 0
	results := Solve(tracks)
	assert.Empty(t, results)
}

func TestSolveSkipsEpochWithIncompleteCellSentinel(t *testing.T) {
	// -1.0 is the decoder's sentinel for a cell with missing
	// DF397/DF398/DF400 (MSM4) or DF011/DF014 (legacy) components — it
	// must be excluded from the gather exactly like the 0 sentinel,
	// not treated as a real (negative) range.
	tracks := tetrahedronTracks(orbit.Vector3{}, 0)
	tracks[0].Samples[0].Pseudorange = -1.0
	results := Solve(tracks)
	assert.Empty(t, results)
}

func TestCollectEpochsExcludesIncompleteCellSentinel(t *testing.T) {
	tracks := []PRNTrack{
		{PRN: 1, Samples: []series.Sample{{TObs: 100, Pseudorange: -1.0}}, States: []orbit.State{{Valid: true}}},
	}
	epochs, gather := CollectEpochs(tracks)
	assert.Empty(t, epochs)
	assert.Empty(t, gather)
}

func TestCollectEpochsSortsAscending(t *testing.T) {
	tracks := []PRNTrack{
		{PRN: 1, Samples: []series.Sample{{TObs: 300, Pseudorange: 1}}, States: []orbit.State{{Valid: true}}},
		{PRN: 2, Samples: []series.Sample{{TObs: 100, Pseudorange: 1}}, States: []orbit.State{{Valid: true}}},
		{PRN: 3, Samples: []series.Sample{{TObs: 200, Pseudorange: 1}}, States: []orbit.State{{Valid: true}}},
	}
	epochs, _ := CollectEpochs(tracks)
	assert.Equal(t, []float64{100, 200, 300}, epochs)
}

func TestSolve4x4DetectsSingularMatrix(t *testing.T) {
	var singular [4][4]float64 // all zero rows is singular
	_, ok := solve4x4(singular, [4]float64{1, 1, 1, 1})
	assert.False(t, ok)
}

func TestSolve4x4SolvesIdentity(t *testing.T) {
	var identity [4][4]float64
	for i := 0; i < 4; i++ {
		identity[i][i] = 1
	}
	x, ok := solve4x4(identity, [4]float64{1, 2, 3, 4})
	assert.True(t, ok)
	assert.Equal(t, [4]float64{1, 2, 3, 4}, x)
}
