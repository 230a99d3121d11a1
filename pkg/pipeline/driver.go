// Package pipeline sequences the positioning engine's stages exactly once
// per input stream: READ, SORT, PROPAGATE, SOLVE, EMIT (spec §4.9).
package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adedolapo/gnssl1/pkg/geodetic"
	"github.com/adedolapo/gnssl1/pkg/history"
	"github.com/adedolapo/gnssl1/pkg/orbit"
	"github.com/adedolapo/gnssl1/pkg/rtcm"
	"github.com/adedolapo/gnssl1/pkg/series"
	"github.com/adedolapo/gnssl1/pkg/solve"
)

// ErrMixedStream wraps history.ErrMixedObservationStream as the driver's
// fatal configuration error (spec §7 "Configuration").
var ErrMixedStream = history.ErrMixedObservationStream

// SatFix is one propagated satellite position, timestamped for output
// (spec §6 output array 3).
type SatFix struct {
	ECEF orbit.Vector3
	TMs  float64
}

// Summary is the driver's EMIT-stage result: every output array the spec
// names, plus non-fatal error-class counters (spec §6, §7).
type Summary struct {
	RunID string

	SkippedLines    int
	DroppedCapacity int
	EphemerisGaps   int // samples with no TOE <= t_obs satisfying the bound
	NumericsDropped int // propagated states rejected as non-finite

	ReceiverECEF []orbit.Vector3
	ReceiverLLA  []geodetic.Geodetic
	Results      []solve.Result

	SatECEF     map[int][]SatFix
	SatOrbitECI map[int][]orbit.Vector3
}

// Driver runs the pipeline's five synchronous stages over one input
// stream. It is constructed once per run, the way pkg/server and
// pkg/caster are constructed with an injected logger.
type Driver struct {
	logger logrus.FieldLogger
}

// NewDriver constructs a Driver. logger receives per-stage diagnostics; a
// nil logger falls back to logrus's standard logger.
func NewDriver(logger logrus.FieldLogger) *Driver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Driver{logger: logger}
}

// Run executes READ -> SORT -> PROPAGATE -> SOLVE -> EMIT over r's lines
// exactly once. A fatal error (mixed observation stream) aborts the run
// and returns no partial Summary (spec §4.9: "no rollback; partial
// outputs are not produced").
func (d *Driver) Run(r io.Reader) (*Summary, error) {
	runID := uuid.New().String()
	log := d.logger.WithField("run_id", runID)

	store := history.NewStore(log)

	summary, err := d.read(r, store, log)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read stage: %w", err)
	}
	summary.RunID = runID

	tracks := d.sortAndPropagate(store, summary, log)

	results := solve.Solve(tracks)
	summary.Results = results
	summary.ReceiverECEF = make([]orbit.Vector3, len(results))
	summary.ReceiverLLA = make([]geodetic.Geodetic, len(results))
	for i, res := range results {
		summary.ReceiverECEF[i] = res.ECEF
		summary.ReceiverLLA[i] = geodetic.ECEFToGeodetic(res.ECEF)
	}

	log.WithFields(logrus.Fields{
		"epochs_solved":    len(results),
		"skipped_lines":    summary.SkippedLines,
		"dropped_capacity": summary.DroppedCapacity,
	}).Info("pipeline: run complete")

	return summary, nil
}

// read is the READ stage: decode every line and route it into store. It
// returns a Summary pre-populated with the non-fatal counters the READ
// stage owns (spec §4.2, §4.3, §7).
func (d *Driver) read(r io.Reader, store *history.Store, log logrus.FieldLogger) (*Summary, error) {
	summary := &Summary{
		SatECEF:     make(map[int][]SatFix),
		SatOrbitECI: make(map[int][]orbit.Vector3),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if rtcm.SkipLine(line) {
			continue
		}

		decoded, err := rtcm.Decode(line)
		if err != nil {
			summary.SkippedLines++
			log.WithError(err).Debug("pipeline: skipped line")
			continue
		}

		switch {
		case decoded.Ephemeris != nil:
			if err := store.StoreEphemeris(*decoded.Ephemeris); err != nil {
				summary.SkippedLines++
				log.WithError(err).Debug("pipeline: ephemeris rejected")
			}
		case decoded.MSM4 != nil:
			if err := store.StoreMSM4(*decoded.MSM4); err != nil {
				if errors.Is(err, history.ErrMixedObservationStream) {
					return summary, err
				}
				summary.SkippedLines++
			}
		case decoded.Legacy != nil:
			if err := store.StoreLegacy(*decoded.Legacy); err != nil {
				if errors.Is(err, history.ErrMixedObservationStream) {
					return summary, err
				}
				summary.SkippedLines++
			}
		}
	}
	summary.DroppedCapacity = store.DroppedCapacity()

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("pipeline: scanning input: %w", err)
	}
	return summary, nil
}

// sortAndPropagate is the SORT+PROPAGATE stages combined: for every PRN,
// build its series (C4), propagate it (C5), sample its orbit trace (C6),
// and record the satellite output arrays (spec §6 output arrays 3 and 4).
// It returns the per-PRN tracks the SOLVE stage consumes.
func (d *Driver) sortAndPropagate(store *history.Store, summary *Summary, log logrus.FieldLogger) []solve.PRNTrack {
	tracks := make([]solve.PRNTrack, 0, history.MaxPRN)

	for prn := 1; prn <= history.MaxPRN; prn++ {
		ser := series.Build(store, prn)
		if len(ser.Samples) == 0 && len(store.Ephemerides(prn)) == 0 {
			continue
		}

		states := orbit.PropagateSeries(ser)

		fixes := make([]SatFix, 0, len(states))
		for k, state := range states {
			if !ser.Samples[k].HasEph {
				summary.EphemerisGaps++
				continue
			}
			if !state.Valid {
				summary.NumericsDropped++
				continue
			}
			fixes = append(fixes, SatFix{ECEF: state.ECEF, TMs: state.TMs})
		}
		if len(fixes) > 0 {
			summary.SatECEF[prn] = fixes
		}

		if ephOnly := series.EphemerisOnly(store, prn); len(ephOnly) > 0 {
			trace := orbit.SampleFirst(prn, ephOnly)
			if len(trace.Points) > 0 {
				summary.SatOrbitECI[prn] = trace.Points
			}
		}

		if len(ser.Samples) > 0 {
			tracks = append(tracks, solve.PRNTrack{PRN: prn, Samples: ser.Samples, States: states})
		}
	}

	log.WithField("tracked_prns", len(tracks)).Debug("pipeline: series built")
	return tracks
}
