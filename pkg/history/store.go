// Package history accumulates per-PRN ephemerides and observations into
// bounded, append-only tables (spec §4.3). Each table is written once by
// the decoder that produces it and read only thereafter — the
// build-then-freeze lifecycle spec §9 recommends in place of the source's
// globally mutable arrays.
package history

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/adedolapo/gnssl1/pkg/rtcm"
)

const (
	// MaxPRN is the highest valid GPS PRN; index 0 is unused (spec §3).
	MaxPRN = 32
	// MaxEphemerisHistory bounds the per-PRN ephemeris table.
	MaxEphemerisHistory = 4096
	// MaxEpochs bounds the per-PRN observation table.
	MaxEpochs = 100000
)

// ErrMixedObservationStream is fatal (spec §7 Configuration): a stream
// that switches between 1002 and 1074 observations mid-run.
var ErrMixedObservationStream = errors.New("history: mixed 1002/1074 observation stream")

// ErrInvalidPRN rejects a record keyed by a PRN outside 1..32.
var ErrInvalidPRN = errors.New("history: PRN out of range")

// observationFamily tracks which message family is driving the
// process-wide observation_type scalar (spec §4.3).
type observationFamily int

const (
	familyNone observationFamily = iota
	familyLegacy
	familyMSM4
)

// Observation is one retained pseudorange sample for a PRN, keyed by its
// insertion index (spec §3).
type Observation struct {
	Pseudorange float64
	TimeMs      float64
}

// Store holds the three PRN-indexed history tables described in spec §4.3.
type Store struct {
	logger logrus.FieldLogger

	ephemeris [MaxPRN + 1][]rtcm.Ephemeris
	msm4      [MaxPRN + 1][]Observation
	legacy    [MaxPRN + 1][]Observation

	family observationFamily

	droppedCapacity int
}

// NewStore constructs an empty Store. logger receives Capacity warnings
// (spec §7) the way pkg/server and pkg/caster are constructed with an
// injected logrus.FieldLogger.
func NewStore(logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{logger: logger}
}

func validPRN(prn int) bool {
	return prn >= 1 && prn <= MaxPRN
}

// StoreEphemeris appends e to its PRN's ephemeris history. No dedup at
// store time; deduplication by TOE happens during series construction
// (spec §4.3).
func (s *Store) StoreEphemeris(e rtcm.Ephemeris) error {
	if !validPRN(e.PRN) {
		return fmt.Errorf("%w: %d", ErrInvalidPRN, e.PRN)
	}
	if len(s.ephemeris[e.PRN]) >= MaxEphemerisHistory {
		s.droppedCapacity++
		s.logger.WithFields(logrus.Fields{"prn": e.PRN, "table": "ephemeris"}).
			Warn("history: ephemeris capacity exceeded, dropping record")
		return nil
	}
	s.ephemeris[e.PRN] = append(s.ephemeris[e.PRN], e)
	return nil
}

// StoreMSM4 appends every retained cell of msg into that cell's PRN slot.
// Every PRN present in the message sees the same observation time at its
// own next index — this intentional duplication simplifies downstream
// iteration (spec §4.3).
func (s *Store) StoreMSM4(msg rtcm.Msm4Message) error {
	if s.family == familyLegacy {
		return ErrMixedObservationStream
	}
	s.family = familyMSM4

	for _, cell := range msg.Cells {
		if !validPRN(cell.PRN) {
			continue
		}
		if len(s.msm4[cell.PRN]) >= MaxEpochs {
			s.droppedCapacity++
			s.logger.WithFields(logrus.Fields{"prn": cell.PRN, "table": "msm4"}).
				Warn("history: observation capacity exceeded, dropping record")
			continue
		}
		s.msm4[cell.PRN] = append(s.msm4[cell.PRN], Observation{
			Pseudorange: cell.Pseudorange,
			TimeMs:      msg.ObsTimeMs,
		})
	}
	return nil
}

// StoreLegacy is StoreMSM4's analog for RTCM 1002 messages (spec §4.3).
func (s *Store) StoreLegacy(msg rtcm.LegacyMessage) error {
	if s.family == familyMSM4 {
		return ErrMixedObservationStream
	}
	s.family = familyLegacy

	for _, cell := range msg.Cells {
		if !validPRN(cell.PRN) {
			continue
		}
		if len(s.legacy[cell.PRN]) >= MaxEpochs {
			s.droppedCapacity++
			s.logger.WithFields(logrus.Fields{"prn": cell.PRN, "table": "legacy"}).
				Warn("history: observation capacity exceeded, dropping record")
			continue
		}
		s.legacy[cell.PRN] = append(s.legacy[cell.PRN], Observation{
			Pseudorange: cell.Pseudorange,
			TimeMs:      msg.ObsTimeMs,
		})
	}
	return nil
}

// Ephemerides returns the ephemeris history for prn in arrival order.
func (s *Store) Ephemerides(prn int) []rtcm.Ephemeris {
	if !validPRN(prn) {
		return nil
	}
	return s.ephemeris[prn]
}

// Observations returns the active observation family's history for prn —
// whichever of msm4/legacy is latched for this run (spec §4.3's
// observation_type scalar).
func (s *Store) Observations(prn int) []Observation {
	if !validPRN(prn) {
		return nil
	}
	switch s.family {
	case familyMSM4:
		return s.msm4[prn]
	case familyLegacy:
		return s.legacy[prn]
	default:
		return nil
	}
}

// DroppedCapacity returns the number of records dropped for exceeding a
// table's capacity across the whole store (spec §7 Capacity).
func (s *Store) DroppedCapacity() int {
	return s.droppedCapacity
}
